package session

import (
	"errors"
	"fmt"
)

var (
	// Sequencing: the operation is not allowed on the current screen.
	ErrInvalidTransition = errors.New("session: invalid state transition")

	// Input validation.
	ErrInvalidCredentialsFormat = errors.New("session: invalid credentials format")
	ErrInvalidEmail             = errors.New("session: invalid e-mail address")
	ErrWeakPassword             = errors.New("session: password too short")
	ErrPasswordMismatch         = errors.New("session: passwords do not match")
	ErrInvalidName              = errors.New("session: name required")
	ErrInvalidRating            = errors.New("session: rating must be between 1 and 5")

	// Domain preconditions.
	ErrEmptyCart             = errors.New("session: cart is empty")
	ErrPaymentMethodRequired = errors.New("session: payment method required")
	ErrRatingRequired        = errors.New("session: rating required")
	ErrUnknownItem           = errors.New("session: unknown item")
	ErrUnknownVendor         = errors.New("session: unknown vendor")
	ErrUnknownPaymentMethod  = errors.New("session: unknown payment method")

	// Infrastructure.
	ErrOrderIDExhausted = errors.New("session: could not issue a unique order id")
)

// TransitionError reports an operation issued from a screen that does not
// allow it. It matches ErrInvalidTransition under errors.Is.
type TransitionError struct {
	Op   string
	From Screen
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("session: %s not allowed from %s", e.Op, e.From)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// Class groups rejections by who has to act on them.
type Class int

const (
	ClassUnknown Class = iota
	// ClassInput errors are fixed by correcting a field.
	ClassInput
	// ClassPrecondition errors are fixed by doing something else first.
	ClassPrecondition
	// ClassSequence errors mean the caller issued a command from the wrong screen.
	ClassSequence
)

func (c Class) String() string {
	switch c {
	case ClassInput:
		return "input"
	case ClassPrecondition:
		return "precondition"
	case ClassSequence:
		return "sequence"
	}
	return "unknown"
}

// Classify maps err onto a Class.
func Classify(err error) Class {
	switch {
	case err == nil:
		return ClassUnknown
	case errors.Is(err, ErrInvalidTransition):
		return ClassSequence
	case errors.Is(err, ErrInvalidCredentialsFormat),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrWeakPassword),
		errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrInvalidName),
		errors.Is(err, ErrInvalidRating):
		return ClassInput
	case errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrPaymentMethodRequired),
		errors.Is(err, ErrRatingRequired),
		errors.Is(err, ErrUnknownItem),
		errors.Is(err, ErrUnknownVendor),
		errors.Is(err, ErrUnknownPaymentMethod):
		return ClassPrecondition
	}
	return ClassUnknown
}

// Warning is a persistence failure that did not stop the transition.
type Warning struct {
	Op  string
	Err error
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s: %v", w.Op, w.Err)
}

func (w Warning) Unwrap() error { return w.Err }
