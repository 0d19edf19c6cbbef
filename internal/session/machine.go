package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// maxIDAttempts bounds re-draws when a generated order id collides.
const maxIDAttempts = 32

// Result is what a successful operation reports: the state after the
// transition and any persistence warnings. On rejection the returned Result
// carries the unchanged state.
type Result struct {
	State    State
	Warnings []Warning
}

// Machine serialises all operations on one session.
type Machine struct {
	mu      sync.Mutex
	state   State
	catalog Catalog
	store   *Store
	log     logrus.FieldLogger
	newID   func() string
	now     func() time.Time
	issued  map[string]struct{}
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger. The default discards output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Machine) { m.log = l }
}

// WithIDFunc replaces NewOrderID.
func WithIDFunc(fn func() string) Option {
	return func(m *Machine) { m.newID = fn }
}

// WithClock replaces time.Now for order timestamps.
func WithClock(fn func() time.Time) Option {
	return func(m *Machine) { m.now = fn }
}

// New returns a machine on the Anonymous screen.
func New(cat Catalog, st *Store, opts ...Option) *Machine {
	quiet := logrus.New()
	quiet.SetLevel(logrus.PanicLevel)
	m := &Machine{
		state:   initialState(),
		catalog: cat,
		store:   st,
		log:     quiet,
		newID:   NewOrderID,
		now:     func() time.Time { return time.Now().UTC() },
		issued:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// AttemptLogin signs in with an e-mail and password that pass the format
// checks. The identity and the remember-me flag are then persisted.
func (m *Machine) AttemptLogin(ctx context.Context, email, password string, remember bool) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email = strings.TrimSpace(email)
	if err := checkLogin(m.state, email, password); err != nil {
		return m.reject(OpLogin, err)
	}
	var warns []Warning
	id := Identity{Name: m.displayName(ctx, email, &warns), Email: email}
	m.commit(OpLogin, signIn(id, remember))

	if err := m.store.SaveIdentity(ctx, id); err != nil {
		warns = m.warn(warns, OpLogin, err)
	}
	if err := m.store.SetRememberMe(ctx, remember); err != nil {
		warns = m.warn(warns, OpLogin, err)
	}
	return m.result(warns), nil
}

// displayName reuses the stored name when it belongs to the same e-mail and
// otherwise falls back to the address's local part.
func (m *Machine) displayName(ctx context.Context, email string, warns *[]Warning) string {
	stored, err := m.store.LoadIdentity(ctx)
	if err != nil {
		*warns = m.warn(*warns, OpLogin, err)
	}
	if stored != nil && stored.Name != "" && strings.EqualFold(stored.Email, email) {
		return stored.Name
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}

// AttemptAutoLogin restores a remembered identity. It only acts on the
// Anonymous screen and never fails: read errors are reported as warnings and
// treated as "nothing remembered".
func (m *Machine) AttemptAutoLogin(ctx context.Context) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Screen != Anonymous {
		return m.result(nil)
	}
	var warns []Warning
	remember, err := m.store.RememberMe(ctx)
	if err != nil {
		return m.result(m.warn(warns, OpAutoLogin, err))
	}
	if !remember {
		return m.result(nil)
	}
	id, err := m.store.LoadIdentity(ctx)
	if err != nil {
		return m.result(m.warn(warns, OpAutoLogin, err))
	}
	if id == nil {
		return m.result(nil)
	}
	m.commit(OpAutoLogin, signIn(*id, true))
	return m.result(nil)
}

// BeginRegistration moves from the login screen to the registration form.
func (m *Machine) BeginRegistration(ctx context.Context) (Result, error) {
	return m.apply(OpBeginRegistration, beginRegistration)
}

// CancelRegistration returns from the registration form to the login screen.
func (m *Machine) CancelRegistration(ctx context.Context) (Result, error) {
	return m.apply(OpCancelRegistration, cancelRegistration)
}

// Register validates the form, stopping at the first bad field, then signs
// the new user in and persists the identity.
func (m *Machine) Register(ctx context.Context, name, email, password, confirm string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if err := checkRegister(m.state, name, email, password, confirm); err != nil {
		return m.reject(OpRegister, err)
	}
	id := Identity{Name: name, Email: email}
	m.commit(OpRegister, signIn(id, false))

	var warns []Warning
	if err := m.store.SaveIdentity(ctx, id); err != nil {
		warns = m.warn(warns, OpRegister, err)
	}
	return m.result(warns), nil
}

// AddToCart adds one unit of itemID at its current catalog price, merging
// with an existing line for the same item.
func (m *Machine) AddToCart(ctx context.Context, itemID int) (Result, error) {
	return m.apply(OpAddToCart, func(s State) (State, error) {
		return addToCart(s, m.catalog, itemID)
	})
}

// RemoveFromCart drops the line for itemID. Absent lines are a no-op.
func (m *Machine) RemoveFromCart(ctx context.Context, itemID int) (Result, error) {
	return m.apply(OpRemoveFromCart, func(s State) (State, error) {
		return removeFromCart(s, m.catalog, itemID)
	})
}

// SelectVendor records the pharmacy the order will come from.
func (m *Machine) SelectVendor(ctx context.Context, vendorID int) (Result, error) {
	return m.apply(OpSelectVendor, func(s State) (State, error) {
		return selectVendor(s, m.catalog, vendorID)
	})
}

func (m *Machine) BeginCheckout(ctx context.Context) (Result, error) {
	return m.apply(OpBeginCheckout, beginCheckout)
}

// CancelCheckout goes back to browsing, keeping the cart but dropping the
// payment selection.
func (m *Machine) CancelCheckout(ctx context.Context) (Result, error) {
	return m.apply(OpCancelCheckout, cancelCheckout)
}

// SelectPayment replaces any previous selection.
func (m *Machine) SelectPayment(ctx context.Context, methodID int) (Result, error) {
	return m.apply(OpSelectPayment, func(s State) (State, error) {
		return selectPayment(s, m.catalog, methodID)
	})
}

// ConfirmOrder snapshots the cart and payment into an Order with a fresh id
// and moves to the rating screen. The live cart and payment are discarded.
func (m *Machine) ConfirmOrder(ctx context.Context) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := checkConfirm(m.state); err != nil {
		return m.reject(OpConfirmOrder, err)
	}
	id, err := m.issueID()
	if err != nil {
		return m.reject(OpConfirmOrder, err)
	}
	next, err := confirmOrder(m.state, id, m.now())
	if err != nil {
		return m.reject(OpConfirmOrder, err)
	}
	m.issued[id] = struct{}{}
	m.commit(OpConfirmOrder, next)
	m.log.WithFields(logrus.Fields{
		"order_id": id,
		"total":    next.Order.Total.StringFixed(2),
		"payment":  next.Order.Payment.Name,
	}).Info("order confirmed")
	return m.result(nil), nil
}

func (m *Machine) issueID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := m.newID()
		if _, taken := m.issued[id]; !taken && id != "" {
			return id, nil
		}
	}
	return "", ErrOrderIDExhausted
}

// Rate sets or replaces the draft rating for the confirmed order.
func (m *Machine) Rate(ctx context.Context, stars int) (Result, error) {
	return m.apply(OpRate, func(s State) (State, error) {
		return rate(s, stars)
	})
}

// SubmitFeedback finalises the rating with an optional comment and returns
// to browsing. The feedback stays attached to the order in State.
func (m *Machine) SubmitFeedback(ctx context.Context, comment string) (Result, error) {
	res, err := m.apply(OpSubmitFeedback, func(s State) (State, error) {
		return submitFeedback(s, comment)
	})
	if err == nil {
		fb := res.State.Feedback
		m.log.WithFields(logrus.Fields{"order_id": fb.OrderID, "rating": fb.Rating}).Info("feedback submitted")
	}
	return res, err
}

// SkipFeedback returns to browsing without feedback.
func (m *Machine) SkipFeedback(ctx context.Context) (Result, error) {
	return m.apply(OpSkipFeedback, skipFeedback)
}

// Logout resets the session and forgets the remembered identity.
func (m *Machine) Logout(ctx context.Context) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := logout(m.state)
	if err != nil {
		return m.reject(OpLogout, err)
	}
	m.commit(OpLogout, next)

	var warns []Warning
	if err := m.store.Clear(ctx); err != nil {
		warns = m.warn(warns, OpLogout, err)
	}
	return m.result(warns), nil
}

// apply runs a transition that has no persistence side effects.
func (m *Machine) apply(op string, fn func(State) (State, error)) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := fn(m.state)
	if err != nil {
		return m.reject(op, err)
	}
	m.commit(op, next)
	return m.result(nil), nil
}

func (m *Machine) commit(op string, next State) {
	from := m.state.Screen
	m.state = next
	m.log.WithFields(logrus.Fields{"op": op, "from": from, "to": next.Screen}).Debug("transition")
}

func (m *Machine) reject(op string, err error) (Result, error) {
	m.log.WithFields(logrus.Fields{
		"op":     op,
		"screen": m.state.Screen,
		"class":  Classify(err).String(),
	}).WithError(err).Debug("rejected")
	return Result{State: m.state.clone()}, err
}

func (m *Machine) warn(warns []Warning, op string, err error) []Warning {
	m.log.WithField("op", op).WithError(err).Warn("session store")
	return append(warns, Warning{Op: op, Err: err})
}

func (m *Machine) result(warns []Warning) Result {
	return Result{State: m.state.clone(), Warnings: warns}
}
