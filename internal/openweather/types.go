package openweather

// Wire types for the OpenWeatherMap JSON documents. Only the fields the
// bot renders are declared; the current and forecast documents share the
// main, weather, wind and clouds blocks.

type mainBlock struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  float64 `json:"pressure"`
	Humidity  float64 `json:"humidity"`
}

type weatherBlock struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type windBlock struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

type cloudsBlock struct {
	All float64 `json:"all"`
}

type currentResponse struct {
	Name     string         `json:"name"`
	Dt       int64          `json:"dt"`
	Timezone int64          `json:"timezone"`
	Main     mainBlock      `json:"main"`
	Weather  []weatherBlock `json:"weather"`
	Wind     windBlock      `json:"wind"`
	Clouds   cloudsBlock    `json:"clouds"`
	Sys      struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
}

type forecastPeriod struct {
	Dt      int64          `json:"dt"`
	Main    mainBlock      `json:"main"`
	Weather []weatherBlock `json:"weather"`
	Wind    windBlock      `json:"wind"`
	Clouds  cloudsBlock    `json:"clouds"`
}

type forecastResponse struct {
	List []forecastPeriod `json:"list"`
	City struct {
		Name     string `json:"name"`
		Country  string `json:"country"`
		Timezone int64  `json:"timezone"`
		Sunrise  int64  `json:"sunrise"`
		Sunset   int64  `json:"sunset"`
	} `json:"city"`
}
