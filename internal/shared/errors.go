package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrMissingSession   = fmt.Errorf("no session cookie found")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrEmptyResponse      = fmt.Errorf("empty response body")
	ErrListNotFound       = fmt.Errorf("list not found")

	// Webhook errors
	ErrInvalidPayload = fmt.Errorf("invalid webhook payload")
	ErrEventNotFound  = fmt.Errorf("webhook event not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
