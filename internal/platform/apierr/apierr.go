package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Internal is a server-side failure whose cause is kept for logs. Clients see
// only msg.
func Internal(code, msg string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: code, Message: msg, Err: err}
}

func BadRequest(code string, msg string) *Error {
	return New(http.StatusBadRequest, code, errors.New(msg))
}

// StatusOf resolves the HTTP status and code carried by err. Anything that is
// not an *Error maps to 500 with the given fallback code.
func StatusOf(err error, fallbackCode string) (int, string) {
	var ae *Error
	if errors.As(err, &ae) && ae != nil {
		status := ae.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		code := ae.Code
		if code == "" {
			code = fallbackCode
		}
		return status, code
	}
	return http.StatusInternalServerError, fallbackCode
}

const genericMessage = "Internal server error."

// PublicMessage is the text of err that is safe to send to a client. Plain
// errors carry no such text and get a generic message.
func PublicMessage(err error) string {
	var ae *Error
	if !errors.As(err, &ae) || ae == nil {
		return genericMessage
	}
	if ae.Message != "" {
		return ae.Message
	}
	return err.Error()
}
