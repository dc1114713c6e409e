package library

import (
	"errors"
)

// Kind classifies business-rule failures. Anything that is not an *Error is a
// store or connectivity failure.
type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindAlreadyExists   Kind = "already_exists"
	KindConflict        Kind = "conflict"
	KindLimitReached    Kind = "limit_reached"
	KindOutOfStock      Kind = "out_of_stock"
	KindValidation      Kind = "validation"
	KindAlreadyMember   Kind = "already_member"
	KindNothingToUpdate Kind = "nothing_to_update"
)

// Error is a business-rule failure carrying the status shown to the user.
type Error struct {
	Kind    Kind
	Entity  string // book, member, loan, club
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// holds for every not-found failure regardless of entity.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrAlreadyExists   = &Error{Kind: KindAlreadyExists}
	ErrConflict        = &Error{Kind: KindConflict}
	ErrLimitReached    = &Error{Kind: KindLimitReached}
	ErrOutOfStock      = &Error{Kind: KindOutOfStock}
	ErrValidation      = &Error{Kind: KindValidation}
	ErrAlreadyMember   = &Error{Kind: KindAlreadyMember}
	ErrNothingToUpdate = &Error{Kind: KindNothingToUpdate}
)

const (
	EntityBook   = "book"
	EntityMember = "member"
	EntityLoan   = "loan"
	EntityClub   = "club"
)

// Status messages returned to the presentation layer.
const (
	StatusBookAdded         = "Book added successfully!"
	StatusBookExists        = "Book already exists!"
	StatusBookUpdated       = "Book updated!"
	StatusNothingToUpdate   = "Nothing to update!"
	StatusBookNotFound      = "Book not found!"
	StatusBookDeleted       = "Book deleted!"
	StatusBookHasLoans      = "Cannot delete: book has active loans"
	StatusMemberAdded       = "Member added successfully!"
	StatusMemberExists      = "Member already exists!"
	StatusMemberNotFound    = "Member not found!"
	StatusLimitReached      = "Borrow limit reached!"
	StatusNoCopiesLeft      = "No copies left!"
	StatusAlreadyBorrowed   = "Book already borrowed by this member!"
	StatusBorrowed          = "Book borrowed!"
	StatusNotBorrowed       = "This book was not borrowed!"
	StatusReturned          = "Book returned!"
	StatusClubNotFound      = "Club not found!"
	StatusClubExists        = "Club already exists!"
	StatusClubCreated       = "Club created!"
	StatusAlreadyInClub     = "Member already in club!"
	StatusJoinedClub        = "Member added to club!"
	StatusTooFewCopies      = "Cannot reduce copies below the number on loan"
	StatusUnexpectedFailure = "Something went wrong, please try again."
)

func notFound(entity, message string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, Message: message}
}

func validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// KindOf returns the kind of a business error, or "" for any other error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// StatusOf renders err as the short status shown to users. Store failures
// are not described beyond a generic message.
func StatusOf(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return StatusUnexpectedFailure
}
