package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/Max-Zhenzhera/discord-weather-bot/internal/config"
)

const mockLondonWeatherJSON = `{"name":"London","dt":1647257600,"timezone":0,` +
	`"main":{"temp":15.0,"feels_like":13.8,"temp_min":12.4,"temp_max":16.1,"pressure":1012,"humidity":62},` +
	`"weather":[{"id":802,"main":"Clouds","description":"scattered clouds","icon":"03d"}],` +
	`"wind":{"speed":4.1,"deg":240},"clouds":{"all":40},` +
	`"sys":{"country":"GB","sunrise":1647231822,"sunset":1647274664}}`

const mockLondonForecastJSON = `{"list":[` +
	`{"dt":1647291600,"main":{"temp":10.2,"feels_like":9.1,"temp_min":8.7,"temp_max":10.2,"pressure":1014,"humidity":71},` +
	`"weather":[{"id":500,"main":"Rain","description":"light rain","icon":"10n"}],"wind":{"speed":3.4,"deg":200},"clouds":{"all":75}},` +
	`{"dt":1647302400,"main":{"temp":7.4,"feels_like":5.9,"temp_min":6.1,"temp_max":7.4,"pressure":1015,"humidity":78},` +
	`"weather":[{"id":804,"main":"Clouds","description":"overcast clouds","icon":"04n"}],"wind":{"speed":4.0,"deg":210},"clouds":{"all":90}},` +
	`{"dt":1647313200,"main":{"temp":6.3,"feels_like":4.8,"temp_min":4.9,"temp_max":6.3,"pressure":1016,"humidity":80},` +
	`"weather":[{"id":803,"main":"Clouds","description":"broken clouds","icon":"04n"}],"wind":{"speed":3.1,"deg":215},"clouds":{"all":84}}],` +
	`"city":{"name":"London","country":"GB","timezone":0,"sunrise":1647231822,"sunset":1647274664}}`

// WeatherBotTestSuite drives the dispatcher end to end: real parser, real
// service and real provider client, talking to a mock OpenWeatherMap API.
type WeatherBotTestSuite struct {
	suite.Suite
	mockOWM    *httptest.Server
	dispatcher *Dispatcher
	requests   atomic.Int64
}

func (suite *WeatherBotTestSuite) SetupSuite() {
	// In SetupSuite, set the environment variable for the API key
	os.Setenv("WEATHER_API_TOKEN", "test_api_key")

	// Start a mock OpenWeatherMap API server
	suite.mockOWM = suite.mockOWMApi()
	// Set the API URL in Viper to the mock server's URL
	viper.Set("weather.api_url", suite.mockOWM.URL)
	config.ReloadConfigForTest()

	suite.dispatcher = NewDispatcher(zap.NewNop().Sugar())
}

func (suite *WeatherBotTestSuite) TearDownSuite() {
	if suite.mockOWM != nil {
		suite.mockOWM.Close()
	}
	os.Unsetenv("WEATHER_API_TOKEN")
}

func TestWeatherBotTestSuite(t *testing.T) {
	suite.Run(t, new(WeatherBotTestSuite))
}

func (suite *WeatherBotTestSuite) TestCommands() {
	tests := []struct {
		name         string
		content      string
		wantRequests int64
		validate     func(t *testing.T, reply *Reply)
	}{
		{
			name:         "Success - Current weather for a known city",
			content:      ".now london",
			wantRequests: 1,
			validate: func(t *testing.T, reply *Reply) {
				assert.NotNil(t, reply)
				assert.NotNil(t, reply.Embed)
				assert.Equal(t, "Current weather in London", reply.Embed.Title)
				assert.Equal(t, "+15.0 °C", suiteEmbedFieldValue(reply.Embed, "Now"))
				assert.Equal(t, "Scattered clouds", suiteEmbedFieldValue(reply.Embed, "Description"))
			},
		},
		{
			name:         "Success - Temperature outlook",
			content:      ".forecast london",
			wantRequests: 1,
			validate: func(t *testing.T, reply *Reply) {
				assert.NotNil(t, reply)
				assert.NotNil(t, reply.Embed)
				assert.Equal(t, "Temperature forecast in London", reply.Embed.Title)
				// Two forecast days plus the city info section.
				assert.Len(t, reply.Embed.Fields, 10)
			},
		},
		{
			name:         "Success - Today's detailed forecast",
			content:      ".today london",
			wantRequests: 1,
			validate: func(t *testing.T, reply *Reply) {
				assert.NotNil(t, reply)
				assert.NotNil(t, reply.Embed)
				assert.Equal(t, "Today's weather forecast in London", reply.Embed.Title)
				assert.Contains(t, suiteEmbedFieldValue(reply.Embed, "By 21:00:00 [GMT]"), "Temperature: +10.2 °C")
			},
		},
		{
			name:         "Success - Tomorrow's detailed forecast",
			content:      ".tomorrow london",
			wantRequests: 1,
			validate: func(t *testing.T, reply *Reply) {
				assert.NotNil(t, reply)
				assert.NotNil(t, reply.Embed)
				assert.Equal(t, "Tomorrow's weather forecast in London", reply.Embed.Title)
				assert.Contains(t, suiteEmbedFieldValue(reply.Embed, "By 00:00:00 [GMT]"), "Temperature: +7.4 °C")
			},
		},
		{
			name:         "Success - Ping",
			content:      ".ping",
			wantRequests: 0,
			validate: func(t *testing.T, reply *Reply) {
				assert.NotNil(t, reply)
				assert.Equal(t, "Pong!", reply.Content)
			},
		},
		{
			name:         "Failed - Missing location",
			content:      ".weather",
			wantRequests: 0,
			validate: func(t *testing.T, reply *Reply) {
				assert.NotNil(t, reply)
				assert.Contains(t, reply.Content, "tell me the city")
			},
		},
		{
			name:         "Failed - Unknown command",
			content:      ".blah london",
			wantRequests: 0,
			validate: func(t *testing.T, reply *Reply) {
				assert.NotNil(t, reply)
				assert.Contains(t, reply.Content, "**Commands**")
			},
		},
		{
			name:         "Failed - Unknown city",
			content:      ".now nosuchcity",
			wantRequests: 1,
			validate: func(t *testing.T, reply *Reply) {
				assert.NotNil(t, reply)
				assert.Equal(t, replyLocationNotFound, reply.Content)
			},
		},
		{
			name:    "Failed - Provider error",
			content: ".now failtown",
			// A provider failure is reported after a single attempt.
			wantRequests: 1,
			validate: func(t *testing.T, reply *Reply) {
				assert.NotNil(t, reply)
				assert.Equal(t, replyProviderUnavailable, reply.Content)
			},
		},
		{
			name:         "Ignored - Plain chatter",
			content:      "what a nice day",
			wantRequests: 0,
			validate: func(t *testing.T, reply *Reply) {
				assert.Nil(t, reply)
			},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			before := suite.requests.Load()

			reply := suite.dispatcher.Dispatch(context.Background(), Inbound{
				Content:  tt.content,
				AuthorID: "tester",
			})

			assert.Equal(suite.T(), tt.wantRequests, suite.requests.Load()-before,
				"unexpected number of provider requests")
			if tt.validate != nil {
				tt.validate(suite.T(), reply)
			}
		})
	}
}

func (suite *WeatherBotTestSuite) TestMentionAddressing() {
	suite.dispatcher.RecognizeMention("99")

	reply := suite.dispatcher.Dispatch(context.Background(), Inbound{Content: "<@99> now london"})

	assert.NotNil(suite.T(), reply)
	assert.NotNil(suite.T(), reply.Embed)
	assert.Equal(suite.T(), "Current weather in London", reply.Embed.Title)
}

func (suite *WeatherBotTestSuite) TestInvalidAPIKey() {
	// Set an invalid API key for this test
	os.Setenv("WEATHER_API_TOKEN", "invalid_key")
	defer func() {
		// Restore a valid API key after a test
		os.Setenv("WEATHER_API_TOKEN", "test_api_key")
	}()

	// The client captures the key when built, so build a fresh dispatcher.
	dispatcher := NewDispatcher(zap.NewNop().Sugar())
	reply := dispatcher.Dispatch(context.Background(), Inbound{Content: ".now london"})

	assert.NotNil(suite.T(), reply)
	assert.Equal(suite.T(), replyDeveloperError, reply.Content)
}

func (suite *WeatherBotTestSuite) mockOWMApi() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.requests.Add(1)

		apiKey := r.URL.Query().Get("appid")
		if apiKey != "test_api_key" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
			return
		}

		q := r.URL.Query().Get("q")
		if q == "failtown" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"cod":500,"message":"Internal error"}`))
			return
		}
		if q != "london" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/weather":
			_, _ = w.Write([]byte(mockLondonWeatherJSON))
		case "/forecast":
			_, _ = w.Write([]byte(mockLondonForecastJSON))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"cod":"404","message":"not found"}`))
		}
	}))
}

func suiteEmbedFieldValue(e *discordgo.MessageEmbed, name string) string {
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}
