package weather

import "fmt"

// APIError is returned when the weather service could not be reached or
// answered with a non-200 status.
type APIError struct {
	StatusCode int
	Reason     string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("weather api error: %v", e.Err)
	}
	return fmt.Sprintf("weather api error: unexpected status: %d %s", e.StatusCode, e.Reason)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return "malformed weather response: " + e.Reason
}
