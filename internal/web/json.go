package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
)

// HandlerFunc is an http handler that reports failures by returning them.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Encode marshals v the same way WriteJSON puts it on the wire.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func WriteJSON(w http.ResponseWriter, status int, data any) error {
	body, err := Encode(data)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}

// ErrorStatus maps err to the status code and envelope it should be answered with.
func ErrorStatus(err error) (int, APIError) {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr
	}

	return http.StatusInternalServerError, APIError{
		Code:    http.StatusInternalServerError,
		Message: "internal server error",
	}
}

func MakeHandlerFunc(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			code, apiErr := ErrorStatus(err)
			WriteJSON(w, code, apiErr)
		}
	}
}
