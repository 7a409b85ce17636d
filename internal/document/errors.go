package document

import (
	"errors"
	"fmt"
)

// ErrorCode identifies why a parse failed. It is carried by Error-kind
// values and implements error so it can be matched with errors.Is.
type ErrorCode uint8

const (
	ErrNone ErrorCode = iota
	ErrToken
	ErrString
	ErrFloat64
	ErrInt64
	ErrUint64
	ErrObject
	ErrObjectKey
	ErrObjectValue
	ErrMissingColon
	ErrMissingCommaOrRightCurly
	ErrArray
	ErrArrayValue
	ErrMissingCommaOrRightBracket
	ErrFile
	ErrMemory
)

var errorMessages = [...]string{
	ErrNone:                       "",
	ErrToken:                      "token error",
	ErrString:                     "string failed to parse",
	ErrFloat64:                    "float64 failed to parse",
	ErrInt64:                      "int64 failed to parse",
	ErrUint64:                     "uint64 failed to parse",
	ErrObject:                     "object failed to parse",
	ErrObjectKey:                  "object invalid key",
	ErrObjectValue:                "object invalid value",
	ErrMissingColon:               "object missing colon",
	ErrMissingCommaOrRightCurly:   "missing comma or right curly bracket",
	ErrArray:                      "array failed to parse",
	ErrArrayValue:                 "array invalid value",
	ErrMissingCommaOrRightBracket: "missing comma or right bracket",
	ErrFile:                       "failed to open file",
	ErrMemory:                     "failed to allocate memory",
}

// Message returns the human readable text for the code.
func (c ErrorCode) Message() string {
	if int(c) < len(errorMessages) {
		return errorMessages[c]
	}
	return fmt.Sprintf("unknown error %d", c)
}

func (c ErrorCode) Error() string {
	return c.Message()
}

var (
	ErrIndexRange  = errors.New("array index out of range")
	ErrNotCreated  = errors.New("container was not created by a document")
	ErrShortBuffer = errors.New("buffer too small for rendered output")
	ErrUnsupported = errors.New("unsupported Go type")
)

func memoryError(err error) error {
	return fmt.Errorf("%w: %w", ErrMemory, err)
}
