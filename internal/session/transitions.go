package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/jask/drogafarm/internal/catalog"
	"github.com/jask/drogafarm/internal/validate"
)

// Operation names, used in TransitionError, warnings and logs.
const (
	OpLogin              = "login"
	OpAutoLogin          = "auto_login"
	OpBeginRegistration  = "begin_registration"
	OpCancelRegistration = "cancel_registration"
	OpRegister           = "register"
	OpAddToCart          = "add_to_cart"
	OpRemoveFromCart     = "remove_from_cart"
	OpSelectVendor       = "select_vendor"
	OpBeginCheckout      = "begin_checkout"
	OpCancelCheckout     = "cancel_checkout"
	OpSelectPayment      = "select_payment"
	OpConfirmOrder       = "confirm_order"
	OpRate               = "rate"
	OpSubmitFeedback     = "submit_feedback"
	OpSkipFeedback       = "skip_feedback"
	OpLogout             = "logout"
)

// Catalog is the read-only reference data the transitions consult.
type Catalog interface {
	Item(id int) (catalog.Item, bool)
	Vendor(id int) (catalog.Vendor, bool)
	PaymentMethod(id int) (catalog.PaymentMethod, bool)
}

// The functions below never modify their State argument. On rejection they
// return it unchanged together with the error.

func expect(s State, op string, allowed ...Screen) error {
	for _, a := range allowed {
		if s.Screen == a {
			return nil
		}
	}
	return &TransitionError{Op: op, From: s.Screen}
}

func checkLogin(s State, email, password string) error {
	if err := expect(s, OpLogin, Anonymous); err != nil {
		return err
	}
	if !validate.Email(email) {
		return fmt.Errorf("%w: %w", ErrInvalidCredentialsFormat, ErrInvalidEmail)
	}
	if !validate.Password(password) {
		return fmt.Errorf("%w: %w", ErrInvalidCredentialsFormat, ErrWeakPassword)
	}
	return nil
}

// signIn is the common tail of login, auto-login and register.
func signIn(id Identity, remember bool) State {
	next := initialState()
	next.Screen = Browsing
	next.Identity = &id
	next.RememberMe = remember
	return next
}

func beginRegistration(s State) (State, error) {
	if err := expect(s, OpBeginRegistration, Anonymous); err != nil {
		return s, err
	}
	next := s.clone()
	next.Screen = Registering
	return next, nil
}

func cancelRegistration(s State) (State, error) {
	if err := expect(s, OpCancelRegistration, Registering); err != nil {
		return s, err
	}
	next := s.clone()
	next.Screen = Anonymous
	return next, nil
}

// checkRegister stops at the first failing field, in form order.
func checkRegister(s State, name, email, password, confirm string) error {
	if err := expect(s, OpRegister, Registering); err != nil {
		return err
	}
	switch {
	case !validate.Name(name):
		return ErrInvalidName
	case !validate.Email(email):
		return ErrInvalidEmail
	case !validate.Password(password):
		return ErrWeakPassword
	case password != confirm:
		return ErrPasswordMismatch
	}
	return nil
}

func addToCart(s State, cat Catalog, itemID int) (State, error) {
	if err := expect(s, OpAddToCart, Browsing); err != nil {
		return s, err
	}
	it, ok := cat.Item(itemID)
	if !ok {
		return s, fmt.Errorf("%w: %d", ErrUnknownItem, itemID)
	}
	next := s.clone()
	next.Cart = s.Cart.with(it)
	return next, nil
}

func removeFromCart(s State, cat Catalog, itemID int) (State, error) {
	if err := expect(s, OpRemoveFromCart, Browsing); err != nil {
		return s, err
	}
	if _, ok := cat.Item(itemID); !ok {
		return s, fmt.Errorf("%w: %d", ErrUnknownItem, itemID)
	}
	next := s.clone()
	next.Cart = s.Cart.without(itemID)
	return next, nil
}

func selectVendor(s State, cat Catalog, vendorID int) (State, error) {
	if err := expect(s, OpSelectVendor, Browsing); err != nil {
		return s, err
	}
	v, ok := cat.Vendor(vendorID)
	if !ok {
		return s, fmt.Errorf("%w: %d", ErrUnknownVendor, vendorID)
	}
	next := s.clone()
	next.Vendor = &v
	return next, nil
}

func beginCheckout(s State) (State, error) {
	if err := expect(s, OpBeginCheckout, Browsing); err != nil {
		return s, err
	}
	if s.Cart.IsEmpty() {
		return s, ErrEmptyCart
	}
	next := s.clone()
	next.Screen = CheckingOut
	return next, nil
}

func cancelCheckout(s State) (State, error) {
	if err := expect(s, OpCancelCheckout, CheckingOut); err != nil {
		return s, err
	}
	next := s.clone()
	next.Payment = nil
	next.Screen = Browsing
	return next, nil
}

func selectPayment(s State, cat Catalog, methodID int) (State, error) {
	if err := expect(s, OpSelectPayment, CheckingOut); err != nil {
		return s, err
	}
	p, ok := cat.PaymentMethod(methodID)
	if !ok {
		return s, fmt.Errorf("%w: %d", ErrUnknownPaymentMethod, methodID)
	}
	next := s.clone()
	next.Payment = &p
	return next, nil
}

func checkConfirm(s State) error {
	if err := expect(s, OpConfirmOrder, CheckingOut); err != nil {
		return err
	}
	if s.Payment == nil {
		return ErrPaymentMethodRequired
	}
	if s.Cart.IsEmpty() {
		return ErrEmptyCart
	}
	return nil
}

func confirmOrder(s State, orderID string, at time.Time) (State, error) {
	if err := checkConfirm(s); err != nil {
		return s, err
	}
	next := s.clone()
	order := Order{
		ID:       orderID,
		Lines:    next.Cart.Lines,
		Total:    s.Cart.Total(),
		Payment:  *next.Payment,
		Vendor:   next.Vendor,
		PlacedAt: at,
	}
	order = order.clone()
	next.Order = &order
	next.History = append(next.History, order.clone())
	next.Cart = Cart{}
	next.Payment = nil
	next.Feedback = nil
	next.Screen = RatingOrder
	return next, nil
}

func rate(s State, stars int) (State, error) {
	if err := expect(s, OpRate, RatingOrder); err != nil {
		return s, err
	}
	if stars < MinRating || stars > MaxRating {
		return s, fmt.Errorf("%w: got %d", ErrInvalidRating, stars)
	}
	next := s.clone()
	if next.Feedback == nil {
		next.Feedback = &Feedback{OrderID: s.Order.ID}
	}
	next.Feedback.Rating = stars
	return next, nil
}

func submitFeedback(s State, comment string) (State, error) {
	if err := expect(s, OpSubmitFeedback, RatingOrder); err != nil {
		return s, err
	}
	if s.Feedback == nil || s.Feedback.Rating == 0 {
		return s, ErrRatingRequired
	}
	next := s.clone()
	next.Feedback.Comment = strings.TrimSpace(comment)
	next.Feedback.Submitted = true
	next.Screen = Browsing
	return next, nil
}

func skipFeedback(s State) (State, error) {
	if err := expect(s, OpSkipFeedback, RatingOrder); err != nil {
		return s, err
	}
	next := s.clone()
	next.Feedback = nil
	next.Screen = Browsing
	return next, nil
}

func logout(s State) (State, error) {
	if err := expect(s, OpLogout, Registering, Browsing, CheckingOut, RatingOrder); err != nil {
		return s, err
	}
	return initialState(), nil
}
