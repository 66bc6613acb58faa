package openweather

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Custom error types, one per provider failure class. Callers classify
// with errors.Is to pick the user-facing reply.
var (
	// ErrBadRequest covers provider 400 responses.
	ErrBadRequest = errors.New("openweather: bad request")
	// ErrUnauthorized covers provider 401 responses: the API key is
	// invalid or not activated yet.
	ErrUnauthorized = errors.New("openweather: unauthorized")
	// ErrLocationNotFound covers provider 404 responses: the queried
	// city name or country code matched nothing.
	ErrLocationNotFound = errors.New("openweather: location not found")
	// ErrTooManyRequests covers provider 429 responses: the account's
	// request quota is exhausted.
	ErrTooManyRequests = errors.New("openweather: too many requests")
	// ErrProviderUnavailable covers network failures, timeouts and
	// provider 5xx responses.
	ErrProviderUnavailable = errors.New("openweather: provider unavailable")
	// ErrMalformedResponse covers undecodable payloads and payloads
	// missing required fields.
	ErrMalformedResponse = errors.New("openweather: malformed response")
)

// errorFromStatus maps a non-200 provider status to a sentinel error,
// carrying the provider's own message when the error body holds one.
func errorFromStatus(status int, body io.Reader) error {
	raw, _ := io.ReadAll(io.LimitReader(body, 4096))

	message := strings.TrimSpace(string(raw))
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		message = payload.Message
	}

	var base error
	switch {
	case status == http.StatusBadRequest:
		base = ErrBadRequest
	case status == http.StatusUnauthorized:
		base = ErrUnauthorized
	case status == http.StatusNotFound:
		base = ErrLocationNotFound
	case status == http.StatusTooManyRequests:
		base = ErrTooManyRequests
	case status >= 500:
		base = ErrProviderUnavailable
	default:
		return fmt.Errorf("openweather: unexpected status %d: %s", status, message)
	}
	return fmt.Errorf("%w: status %d: %s", base, status, message)
}
