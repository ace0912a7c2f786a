package domain

import "errors"

// Common domain errors
var (
	ErrValidation            = errors.New("validation failed")
	ErrDuplicateKey          = errors.New("duplicate key")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrBusy                  = errors.New("store busy")
	ErrTimeout               = errors.New("operation timed out")
	ErrInternalInconsistency = errors.New("internal inconsistency")
)

// Catalog errors
var (
	ErrBookNotFound      = errors.New("book not found")
	ErrAuthorNotFound    = errors.New("author not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateISBN     = errors.New("isbn already registered")
	ErrDuplicateCategory = errors.New("category name already registered")
)

// Membership errors
var (
	ErrMemberNotFound = errors.New("member not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrMemberInactive = errors.New("member is not active")
)

// Lending errors
var (
	ErrBorrowingNotFound = errors.New("borrowing not found")
	ErrNoCopiesAvailable = errors.New("no copies available")
	ErrAlreadyReturned   = errors.New("borrowing already returned")
)

// Error kinds carried in API error envelopes.
const (
	KindValidation            = "validation_error"
	KindDuplicateKey          = "duplicate_key"
	KindNotFound              = "not_found"
	KindMemberInactive        = "member_inactive"
	KindNoCopiesAvailable     = "no_copies_available"
	KindAlreadyReturned       = "already_returned"
	KindBusy                  = "busy"
	KindTimeout               = "timeout"
	KindInternalInconsistency = "internal_inconsistency"
	KindUnauthorized          = "unauthorized"
	KindForbidden             = "forbidden"
	KindInternal              = "internal_error"
)

// Kind maps a domain error to the machine-readable kind reported to clients.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrDuplicateKey),
		errors.Is(err, ErrDuplicateISBN),
		errors.Is(err, ErrDuplicateCategory),
		errors.Is(err, ErrDuplicateEmail):
		return KindDuplicateKey
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrBookNotFound),
		errors.Is(err, ErrAuthorNotFound),
		errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrMemberNotFound),
		errors.Is(err, ErrBorrowingNotFound):
		return KindNotFound
	case errors.Is(err, ErrMemberInactive):
		return KindMemberInactive
	case errors.Is(err, ErrNoCopiesAvailable):
		return KindNoCopiesAvailable
	case errors.Is(err, ErrAlreadyReturned):
		return KindAlreadyReturned
	case errors.Is(err, ErrBusy):
		return KindBusy
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrInternalInconsistency):
		return KindInternalInconsistency
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	}
	return KindInternal
}
