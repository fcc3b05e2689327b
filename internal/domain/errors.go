package domain

import "errors"

// Common business errors. Handlers match on these, never on storage error text.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrAlreadyExists     = errors.New("resource already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrDuplicateVote     = errors.New("vote already cast in this campaign")
	ErrCampaignClosed    = errors.New("campaign is not open for voting")
	ErrCandidateNotFound = errors.New("candidate not found in campaign")
)

// AppError carries an HTTP status code alongside the wrapped cause.
type AppError struct {
	Code    int    // HTTP status code
	Message string // user-facing message
	Err     error  // underlying error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewNotFoundError(msg string) *AppError {
	return &AppError{Code: 404, Message: msg, Err: ErrNotFound}
}

func NewBadRequestError(msg string) *AppError {
	return &AppError{Code: 400, Message: msg, Err: ErrInvalidInput}
}

func NewUnauthorizedError(msg string) *AppError {
	return &AppError{Code: 401, Message: msg, Err: ErrUnauthorized}
}

func NewForbiddenError(msg string) *AppError {
	return &AppError{Code: 403, Message: msg, Err: ErrForbidden}
}

func NewConflictError(msg string) *AppError {
	return &AppError{Code: 409, Message: msg, Err: ErrAlreadyExists}
}

func NewDuplicateVoteError() *AppError {
	return &AppError{Code: 409, Message: "you have already voted in this campaign", Err: ErrDuplicateVote}
}

func NewCampaignClosedError() *AppError {
	return &AppError{Code: 409, Message: "campaign is not open for voting", Err: ErrCampaignClosed}
}

func NewInternalError(msg string, err error) *AppError {
	return &AppError{Code: 500, Message: msg, Err: err}
}
