package session

import (
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want Class
	}{
		{nil, ClassUnknown},
		{errors.New("boom"), ClassUnknown},
		{ErrOrderIDExhausted, ClassUnknown},
		{&TransitionError{Op: OpRate, From: Browsing}, ClassSequence},
		{fmt.Errorf("%w: %w", ErrInvalidCredentialsFormat, ErrInvalidEmail), ClassInput},
		{ErrPasswordMismatch, ClassInput},
		{fmt.Errorf("%w: got 9", ErrInvalidRating), ClassInput},
		{ErrEmptyCart, ClassPrecondition},
		{fmt.Errorf("%w: 7", ErrUnknownItem), ClassPrecondition},
		{ErrRatingRequired, ClassPrecondition},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.err), "%v", tc.err)
	}
	assert.Equal(t, "sequence", ClassSequence.String())
	assert.Equal(t, "unknown", Class(42).String())
}

func TestWarningUnwraps(t *testing.T) {
	w := Warning{Op: OpLogout, Err: errBackend}
	assert.ErrorIs(t, w, errBackend)
	assert.Equal(t, "logout: backend down", w.Error())
}

func TestRatingLabel(t *testing.T) {
	assert.Equal(t, "Select a rating", RatingLabel(0))
	assert.Equal(t, "Very poor", RatingLabel(1))
	assert.Equal(t, "Fair", RatingLabel(3))
	assert.Equal(t, "Excellent", RatingLabel(5))
	assert.Equal(t, "Select a rating", RatingLabel(6))
}

func TestNewOrderIDFormat(t *testing.T) {
	re := regexp.MustCompile(`^[0-9A-F]{12}$`)
	for i := 0; i < 50; i++ {
		id := NewOrderID()
		assert.Regexp(t, re, id)
		assert.GreaterOrEqual(t, len(id), 9)
	}
}

func TestScreens(t *testing.T) {
	for _, s := range Screens() {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Screen("cart").Valid())
	assert.Equal(t, "checking_out", CheckingOut.String())
}
