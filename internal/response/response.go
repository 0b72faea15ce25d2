package response

import "github.com/labstack/echo/v4"

// Envelope is the standard success payload wrapper returned by every endpoint.
type Envelope struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
}

// ErrorEnvelope is the standard error payload wrapper.
type ErrorEnvelope struct {
	Success    bool     `json:"success"`
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
}

// JSON writes a success envelope with the given status, message and data.
func JSON(c echo.Context, statusCode int, message string, data interface{}) error {
	return c.JSON(statusCode, Envelope{
		Success:    true,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	})
}

// Error builds an error envelope. The errors slice is always non-nil so the
// field serializes as [] rather than null.
func Error(statusCode int, message string) ErrorEnvelope {
	return ErrorEnvelope{
		Success:    false,
		StatusCode: statusCode,
		Message:    message,
		Errors:     []string{},
	}
}
