package ollama

import "strings"

// ErrorMarker prefixes the text form of every failed generation.
const ErrorMarker = "[AI error]"

// Result is the outcome of one generation. A failed result still renders as
// text so callers that only want "some string" can use Text unconditionally,
// while Failed/Err keep the failure distinguishable from model output.
type Result struct {
	text string
	err  error
}

func Success(text string) Result { return Result{text: strings.TrimSpace(text)} }

func Failure(err error) Result { return Result{err: err} }

func (r Result) Failed() bool { return r.err != nil }

func (r Result) Err() error { return r.err }

func (r Result) Text() string {
	if r.err != nil {
		return ErrorMarker + " Could not reach local model: " + r.err.Error()
	}
	return r.text
}

// IsErrorText reports whether s is the rendered form of a failed Result.
func IsErrorText(s string) bool {
	return strings.HasPrefix(s, ErrorMarker)
}
