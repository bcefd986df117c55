// Package errs holds the error taxonomy shared by the domain, application and
// infrastructure layers. Transport code maps a Kind to a status and a stable
// code; nothing below the handlers knows about HTTP.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the centralized translator.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindLocation
	KindCoordinates
	KindUser
	KindRegion
	KindNotFound
	KindInvalidCredentials
	KindUnauthorized
	KindGeocoding
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindLocation:
		return "location"
	case KindCoordinates:
		return "coordinates"
	case KindUser:
		return "user"
	case KindRegion:
		return "region"
	case KindNotFound:
		return "not_found"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindUnauthorized:
		return "unauthorized"
	case KindGeocoding:
		return "geocoding"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// FieldError is a single field-scoped validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the canonical error value. Message is safe for clients; Op and
// Cause are for server-side logs only.
type Error struct {
	Kind    Kind
	Message string
	Op      string
	Cause   error
	Fields  []FieldError
}

func (e *Error) Error() string {
	if e.Cause != nil && e.Op != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Cause)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches errors of the same kind and message, so sentinel values declared
// with these constructors work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

// Validation builds a VALIDATION_ERROR with optional per-field details.
func Validation(msg string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

// LocationInvariant reports a user built with both or neither of address and
// coordinates.
func LocationInvariant(msg string) *Error {
	return &Error{Kind: KindLocation, Message: msg}
}

// LocationValidation reports a user whose location is still incomplete after
// geocoding enrichment.
func LocationValidation(msg string) *Error {
	return &Error{Kind: KindLocation, Message: msg}
}

// CoordinatesInvalid reports a region constructed without usable rings.
func CoordinatesInvalid(msg string) *Error {
	return &Error{Kind: KindCoordinates, Message: msg}
}

func User(msg string) *Error {
	return &Error{Kind: KindUser, Message: msg}
}

// RegionValidation reports a region business-rule failure such as a missing
// owner.
func RegionValidation(msg string) *Error {
	return &Error{Kind: KindRegion, Message: msg}
}

// EntityNotFound formats "<entity> with ID <id> not found." or
// "<entity> not found." when id is empty.
func EntityNotFound(entity, id string) *Error {
	msg := entity + " not found."
	if id != "" {
		msg = fmt.Sprintf("%s with ID %s not found.", entity, id)
	}
	return &Error{Kind: KindNotFound, Message: msg}
}

// RegionNotUpdatable is returned by region repositories when an update
// targets an id that does not exist.
func RegionNotUpdatable(id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("Region with ID %s cannot be updated: not found.", id)}
}

// InvalidCredentials is deliberately message-identical for every login
// failure.
func InvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Message: "Invalid credentials"}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func Geocoding(op string, cause error) *Error {
	return &Error{Kind: KindGeocoding, Message: "geocoding provider failure", Op: op, Cause: cause}
}

// Storage wraps a provider failure. The cause never reaches clients.
func Storage(op string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: "storage failure", Op: op, Cause: cause}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// As extracts the first *Error in err's chain, or nil.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// IsNotFound reports whether err is an entity-not-found error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
