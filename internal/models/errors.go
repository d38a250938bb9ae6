package models

import "fmt"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches on Code so wrapped, contextual errors still satisfy errors.Is
// against the sentinels below.
func (e *DomainError) Is(target error) bool {
	if t, ok := target.(*DomainError); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	ErrInsufficientPlayers = &DomainError{
		Code:    "INSUFFICIENT_PLAYERS",
		Message: "not enough players in the lineup",
	}

	ErrInvalidSlot = &DomainError{
		Code:    "INVALID_SLOT",
		Message: "player is in the wrong slot",
	}

	ErrRange = &DomainError{
		Code:    "RANGE",
		Message: "slot out of range",
	}

	ErrNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "resource not found",
	}

	// ErrNotMovable - the provider refused to move a locked slot
	ErrNotMovable = &DomainError{
		Code:    "NOT_MOVABLE",
		Message: "slot cannot be moved",
	}

	// ErrTooManyFailures - action replay hit the failure threshold
	ErrTooManyFailures = &DomainError{
		Code:    "TOO_MANY_FAILURES",
		Message: "too many failed roster actions",
	}
)

func NewInsufficientPlayersError(got, want int) *DomainError {
	return &DomainError{
		Code:    ErrInsufficientPlayers.Code,
		Message: fmt.Sprintf("not enough players in the lineup: got %d, want %d", got, want),
	}
}

func NewInvalidSlotError(p Player, slot int) *DomainError {
	return &DomainError{
		Code:    ErrInvalidSlot.Code,
		Message: fmt.Sprintf("%s is in the wrong slot (%d)", p.Name, slot),
	}
}

func NewRangeError(slot, lo, hi int) *DomainError {
	return &DomainError{
		Code:    ErrRange.Code,
		Message: fmt.Sprintf("slot %d is not in the bounds of [%d,%d]", slot, lo, hi),
	}
}

func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Code:    ErrNotFound.Code,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func NewNotMovableError(slot int) *DomainError {
	return &DomainError{
		Code:    ErrNotMovable.Code,
		Message: fmt.Sprintf("slot %d cannot be moved", slot),
	}
}
