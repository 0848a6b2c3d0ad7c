package services

import "errors"

// Error kinds. Every error returned by a service matches exactly one of these with
// errors.Is; handlers map them onto HTTP status codes.
var (
	ErrValidation      = errors.New("validation error")
	ErrUnauthenticated = errors.New("authentication error")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrRateLimited     = errors.New("rate limited")
	ErrInternal        = errors.New("internal error")
)

// Error carries a message that is safe to show to the caller, its kind and, for
// internal failures, the underlying cause.
type Error struct {
	Kind  error
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Msg + ": " + e.Cause.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func internal(msg string, cause error) *Error {
	return &Error{Kind: ErrInternal, Msg: msg, Cause: cause}
}

var (
	ErrRecipientRequired  = newError(ErrValidation, "recipient_id is required")
	ErrSelfKudos          = newError(ErrValidation, "cannot give kudos to yourself")
	ErrEmptyMessage       = newError(ErrValidation, "message is required")
	ErrMessageTooLong     = newError(ErrValidation, "message exceeds 500 characters")
	ErrReasonTooLong      = newError(ErrValidation, "reason exceeds 255 characters")
	ErrRecipientNotFound  = newError(ErrNotFound, "recipient not found")
	ErrKudosNotFound      = newError(ErrNotFound, "kudos not found")
	ErrUserNotFound       = newError(ErrNotFound, "user not found")
	ErrDuplicateKudos     = newError(ErrRateLimited, "you can only give one kudos per hour to the same person")
	ErrAdminRequired      = newError(ErrForbidden, "admin access required")
	ErrNotAllowed         = newError(ErrForbidden, "not allowed")
	ErrInvalidCredentials = newError(ErrUnauthenticated, "invalid credentials")
	ErrGiverNotFound      = newError(ErrUnauthenticated, "account no longer exists")
)

// PublicMessage returns the part of err that may be shown to a client.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && !errors.Is(e.Kind, ErrInternal) {
		return e.Msg
	}
	return "Internal server error"
}
