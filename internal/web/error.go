package web

import "fmt"

// APIError is an error that carries the status code to answer with. Only
// Message reaches the caller.
type APIError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("api error: code=%d, message=%s", e.Code, e.Message)
}
