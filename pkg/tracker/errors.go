package tracker

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Kind classifies a failure.
type Kind int

const (
	// KindUnexpected is any failure that is not one of the kinds below.
	KindUnexpected Kind = iota
	// KindInvalidRepository is a malformed repository identifier, detected before any request.
	KindInvalidRepository
	// KindRemoteRejected is a provider error response carrying a message.
	KindRemoteRejected
	// KindTransportFailure is a network failure or an error response without a usable message.
	KindTransportFailure
	// KindMalformedResponse is a success response whose body could not be decoded.
	KindMalformedResponse
	// KindFileNotFound is a missing import file.
	KindFileNotFound
	// KindInvalidLineFormat is an import line that is not Id;Name;Description.
	KindInvalidLineFormat
)

var (
	// ErrUnexpected matches errors of KindUnexpected.
	ErrUnexpected = errors.New("unexpected error")
	// ErrInvalidRepository matches errors of KindInvalidRepository.
	ErrInvalidRepository = errors.New("invalid repository")
	// ErrRemoteRejected matches errors of KindRemoteRejected.
	ErrRemoteRejected = errors.New("request rejected by remote")
	// ErrTransportFailure matches errors of KindTransportFailure.
	ErrTransportFailure = errors.New("transport failure")
	// ErrMalformedResponse matches errors of KindMalformedResponse.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrFileNotFound matches errors of KindFileNotFound.
	ErrFileNotFound = errors.New("file not found")
	// ErrInvalidLineFormat matches errors of KindInvalidLineFormat.
	ErrInvalidLineFormat = errors.New("invalid line format")
	// ErrUnknownProvider is returned by ParseProvider.
	ErrUnknownProvider = errors.New("unknown provider")
)

// MsgSendFailed is the message of a transport failure whose cause is not
// meaningful to the user.
const MsgSendFailed = "failed to send request, contact the administrator"

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidRepository:
		return ErrInvalidRepository
	case KindRemoteRejected:
		return ErrRemoteRejected
	case KindTransportFailure:
		return ErrTransportFailure
	case KindMalformedResponse:
		return ErrMalformedResponse
	case KindFileNotFound:
		return ErrFileNotFound
	case KindInvalidLineFormat:
		return ErrInvalidLineFormat
	default:
		return ErrUnexpected
	}
}

func (k Kind) String() string {
	return k.sentinel().Error()
}

// Error is the domain failure returned by adapters and carried by Result.
type Error struct {
	Kind    Kind
	Message string
	// Context is optional provider-supplied detail (raw body, cause).
	Context string
}

// NewError returns an *Error of the given kind.
func NewError(kind Kind, message, context string) *Error {
	return &Error{Kind: kind, Message: message, Context: context}
}

func (e *Error) Error() string {
	if e.Context == "" {
		return e.Message
	}
	return e.Message + ": " + e.Context
}

// Unwrap exposes the sentinel of the error kind so errors.Is works.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

// AsError converts any error into an *Error. Errors that already are (or
// wrap) an *Error are returned unchanged; anything else is KindUnexpected.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var te *Error
	if errors.As(err, &te) {
		return te
	}
	return NewError(KindUnexpected, err.Error(), "")
}

// errorMessage is the body providers send with an error status.
type errorMessage struct {
	Message json.RawMessage `json:"message"`
}

// ClassifyErrorBody turns the body of an error response into an *Error.
// A body with a non-empty "message" is a remote rejection; anything else is
// a transport failure carrying the raw body as context.
func ClassifyErrorBody(body []byte) *Error {
	if msg := extractMessage(body); msg != "" {
		return NewError(KindRemoteRejected, msg, "")
	}
	return NewError(KindTransportFailure, MsgSendFailed, string(body))
}

func extractMessage(body []byte) string {
	var em errorMessage
	if err := json.Unmarshal(body, &em); err != nil || len(em.Message) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(em.Message, &s); err == nil {
		return strings.TrimSpace(s)
	}
	// GitLab validation errors put an object or array under "message".
	if bytes.Equal(em.Message, []byte("null")) {
		return ""
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, em.Message); err != nil {
		return ""
	}
	switch msg := compact.String(); msg {
	case "{}", "[]", `""`:
		return ""
	default:
		return msg
	}
}

// TransportError wraps a network-level failure.
func TransportError(err error) *Error {
	return NewError(KindTransportFailure, MsgSendFailed, err.Error())
}

// MalformedError wraps a decoding failure of a success response.
func MalformedError(err error) *Error {
	return NewError(KindMalformedResponse, "unable to parse the response", err.Error())
}
