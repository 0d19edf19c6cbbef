package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/jask/drogafarm/internal/catalog"
	"github.com/jask/drogafarm/internal/config"
	"github.com/jask/drogafarm/internal/session"
)

// App renders one view per session screen and turns keys into machine
// operations.
type App struct {
	ctx      context.Context
	machine  *session.Machine
	catalog  *catalog.Catalog
	currency string
	keys     keyMap
	help     help.Model

	state    session.State
	status   string
	warnings []string

	login    *form
	register *form
	remember bool

	itemCursor int
	search     textinput.Model
	searching  bool
	results    []catalog.Item

	payCursor int
	comment   textinput.Model
}

// field indexes
const (
	loginEmail = iota
	loginPassword
)

const (
	regName = iota
	regEmail
	regPassword
	regConfirm
)

func New(ctx context.Context, cfg config.Config, m *session.Machine, cat *catalog.Catalog) *App {
	a := &App{
		ctx:      ctx,
		machine:  m,
		catalog:  cat,
		currency: cfg.UI.CurrencySymbol,
		keys:     newKeyMap(),
		help:     help.New(),
		state:    m.State(),
		login:    newForm(formField{label: "E-mail"}, formField{label: "Password", secret: true}),
		register: newForm(
			formField{label: "Name"},
			formField{label: "E-mail"},
			formField{label: "Password", secret: true},
			formField{label: "Confirm", secret: true},
		),
		search:  newInput("Search", false),
		comment: newInput("Comment", false),
		results: cat.PromotedItems(),
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return nil
}

// resultMsg carries the outcome of one machine operation back into Update.
type resultMsg struct {
	op  string
	res session.Result
	err error
}

func (a *App) run(op string, fn func() (session.Result, error)) tea.Cmd {
	return func() tea.Msg {
		res, err := fn()
		return resultMsg{op: op, res: res, err: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.help.Width = m.Width
	case tea.KeyMsg:
		if key.Matches(m, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		switch a.state.Screen {
		case session.Anonymous:
			return a, a.handleLoginKey(m)
		case session.Registering:
			return a, a.handleRegisterKey(m)
		case session.Browsing:
			return a, a.handleBrowseKey(m)
		case session.CheckingOut:
			return a, a.handleCheckoutKey(m)
		case session.RatingOrder:
			return a, a.handleRatingKey(m)
		}
	case resultMsg:
		a.apply(m)
	}
	return a, nil
}

func (a *App) apply(m resultMsg) {
	prev := a.state.Screen
	a.state = m.res.State
	a.warnings = a.warnings[:0]
	for _, w := range m.res.Warnings {
		a.warnings = append(a.warnings, w.Error())
	}
	if m.err != nil {
		a.status = describe(m.err)
		return
	}
	a.status = ""
	if a.state.Screen != prev {
		a.enter()
	}
	switch m.op {
	case session.OpConfirmOrder:
		a.status = "order " + a.state.Order.ID + " placed"
	case session.OpSubmitFeedback:
		a.status = "thanks for the feedback"
	}
}

// enter resets per-screen input when the machine moves to a new screen.
func (a *App) enter() {
	switch a.state.Screen {
	case session.Anonymous:
		a.login.reset()
		a.register.reset()
		a.remember = false
	case session.Registering:
		a.register.reset()
	case session.Browsing:
		a.login.clear(loginPassword)
		a.register.clear(regPassword, regConfirm)
	case session.CheckingOut:
		a.payCursor = 0
	case session.RatingOrder:
		a.comment.Reset()
		a.comment.Focus()
	}
}

func describe(err error) string {
	var te *session.TransitionError
	if errors.As(err, &te) {
		return fmt.Sprintf("%s is not available here", strings.ReplaceAll(te.Op, "_", " "))
	}
	switch session.Classify(err) {
	case session.ClassInput, session.ClassPrecondition:
		return strings.ReplaceAll(err.Error(), "session: ", "")
	}
	return "error: " + err.Error()
}

func (a *App) handleLoginKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, a.keys.Back):
		return tea.Quit
	case key.Matches(m, a.keys.Register):
		return a.run(session.OpBeginRegistration, func() (session.Result, error) {
			return a.machine.BeginRegistration(a.ctx)
		})
	case key.Matches(m, a.keys.Remember):
		a.remember = !a.remember
		return nil
	case key.Matches(m, a.keys.Submit):
		email, password, remember := a.login.value(loginEmail), a.login.value(loginPassword), a.remember
		return a.run(session.OpLogin, func() (session.Result, error) {
			return a.machine.AttemptLogin(a.ctx, email, password, remember)
		})
	}
	return a.login.update(m, a.keys)
}

func (a *App) handleRegisterKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, a.keys.Back):
		return a.run(session.OpCancelRegistration, func() (session.Result, error) {
			return a.machine.CancelRegistration(a.ctx)
		})
	case key.Matches(m, a.keys.Submit):
		f := a.register
		name, email, password, confirm := f.value(regName), f.value(regEmail), f.value(regPassword), f.value(regConfirm)
		return a.run(session.OpRegister, func() (session.Result, error) {
			return a.machine.Register(a.ctx, name, email, password, confirm)
		})
	}
	return a.register.update(m, a.keys)
}

func (a *App) handleBrowseKey(m tea.KeyMsg) tea.Cmd {
	if a.searching {
		var cmd tea.Cmd
		switch {
		case key.Matches(m, a.keys.Back):
			a.search.Reset()
			a.stopSearch()
		case key.Matches(m, a.keys.Submit):
			a.stopSearch()
		default:
			a.search, cmd = a.search.Update(m)
		}
		a.results = a.catalog.Search(a.search.Value())
		a.itemCursor = 0
		return cmd
	}

	switch {
	case key.Matches(m, a.keys.Quit):
		return tea.Quit
	case key.Matches(m, a.keys.Search):
		a.searching = true
		return a.search.Focus()
	case key.Matches(m, a.keys.Up):
		if a.itemCursor > 0 {
			a.itemCursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.itemCursor < len(a.results)-1 {
			a.itemCursor++
		}
	case key.Matches(m, a.keys.Add):
		if it, ok := a.selectedItem(); ok {
			return a.run(session.OpAddToCart, func() (session.Result, error) {
				return a.machine.AddToCart(a.ctx, it.ID)
			})
		}
	case key.Matches(m, a.keys.Remove):
		if it, ok := a.selectedItem(); ok {
			return a.run(session.OpRemoveFromCart, func() (session.Result, error) {
				return a.machine.RemoveFromCart(a.ctx, it.ID)
			})
		}
	case key.Matches(m, a.keys.Vendor):
		if v, ok := a.nextVendor(); ok {
			return a.run(session.OpSelectVendor, func() (session.Result, error) {
				return a.machine.SelectVendor(a.ctx, v.ID)
			})
		}
	case key.Matches(m, a.keys.Checkout):
		return a.run(session.OpBeginCheckout, func() (session.Result, error) {
			return a.machine.BeginCheckout(a.ctx)
		})
	case key.Matches(m, a.keys.Logout):
		return a.logout()
	}
	return nil
}

func (a *App) stopSearch() {
	a.searching = false
	a.search.Blur()
}

func (a *App) selectedItem() (catalog.Item, bool) {
	if a.itemCursor < 0 || a.itemCursor >= len(a.results) {
		return catalog.Item{}, false
	}
	return a.results[a.itemCursor], true
}

// nextVendor cycles through the pharmacies, starting after the current one.
func (a *App) nextVendor() (catalog.Vendor, bool) {
	vendors := a.catalog.Vendors()
	if len(vendors) == 0 {
		return catalog.Vendor{}, false
	}
	if a.state.Vendor == nil {
		return vendors[0], true
	}
	for i, v := range vendors {
		if v.ID == a.state.Vendor.ID {
			return vendors[(i+1)%len(vendors)], true
		}
	}
	return vendors[0], true
}

func (a *App) logout() tea.Cmd {
	return a.run(session.OpLogout, func() (session.Result, error) {
		return a.machine.Logout(a.ctx)
	})
}

func (a *App) handleCheckoutKey(m tea.KeyMsg) tea.Cmd {
	methods := a.catalog.PaymentMethods()
	switch {
	case key.Matches(m, a.keys.Back):
		return a.run(session.OpCancelCheckout, func() (session.Result, error) {
			return a.machine.CancelCheckout(a.ctx)
		})
	case key.Matches(m, a.keys.Up):
		if a.payCursor > 0 {
			a.payCursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.payCursor < len(methods)-1 {
			a.payCursor++
		}
	case key.Matches(m, a.keys.Pay):
		if a.payCursor < len(methods) {
			id := methods[a.payCursor].ID
			return a.run(session.OpSelectPayment, func() (session.Result, error) {
				return a.machine.SelectPayment(a.ctx, id)
			})
		}
	case key.Matches(m, a.keys.Confirm):
		return a.run(session.OpConfirmOrder, func() (session.Result, error) {
			return a.machine.ConfirmOrder(a.ctx)
		})
	case key.Matches(m, a.keys.Logout):
		return a.logout()
	}
	return nil
}

func (a *App) handleRatingKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, a.keys.Back):
		return a.run(session.OpSkipFeedback, func() (session.Result, error) {
			return a.machine.SkipFeedback(a.ctx)
		})
	case key.Matches(m, a.keys.Submit):
		comment := a.comment.Value()
		return a.run(session.OpSubmitFeedback, func() (session.Result, error) {
			return a.machine.SubmitFeedback(a.ctx, comment)
		})
	case key.Matches(m, a.keys.StarUp, a.keys.StarDown):
		stars := a.rating() + 1
		if key.Matches(m, a.keys.StarDown) {
			stars = a.rating() - 1
		}
		if stars < session.MinRating || stars > session.MaxRating {
			return nil
		}
		return a.run(session.OpRate, func() (session.Result, error) {
			return a.machine.Rate(a.ctx, stars)
		})
	}
	var cmd tea.Cmd
	a.comment, cmd = a.comment.Update(m)
	return cmd
}

func (a *App) rating() int {
	if a.state.Feedback == nil {
		return 0
	}
	return a.state.Feedback.Rating
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	strikeStyle  = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Faint(true)
)

func (a *App) View() string {
	var body string
	switch a.state.Screen {
	case session.Registering:
		body = titleStyle.Render("DrogaFarm - Create account") + "\n" + a.register.view()
	case session.Browsing:
		body = a.renderBrowse()
	case session.CheckingOut:
		body = a.renderCheckout()
	case session.RatingOrder:
		body = a.renderRating()
	default:
		body = a.renderLogin()
	}
	body += "\n" + a.help.ShortHelpView(a.keys.helpFor(a.state.Screen, a.searching))
	if a.status != "" {
		body += "\n" + statusStyle.Render(a.status)
	}
	for _, w := range a.warnings {
		body += "\n" + warningStyle.Render("warning: "+w)
	}
	return body
}

func (a *App) money(d decimal.Decimal) string {
	return a.currency + " " + d.StringFixed(2)
}

func (a *App) renderLogin() string {
	check := "[ ]"
	if a.remember {
		check = "[x]"
	}
	return titleStyle.Render("DrogaFarm - Sign in") + "\n" + a.login.view() + "\n  " + check + " Remember me"
}

func (a *App) renderBrowse() string {
	s := a.state
	greeting := "DrogaFarm"
	if s.Identity != nil {
		greeting += " - Hello, " + s.Identity.Name
	}
	out := titleStyle.Render(greeting) + "\n"
	if s.Vendor != nil {
		out += fmt.Sprintf("Pharmacy: %s (%.1f km, %.1f)\n", s.Vendor.Name, s.Vendor.DistanceKM, s.Vendor.Rating)
	}
	if a.searching || a.search.Value() != "" {
		out += a.search.View() + "\n"
	}
	out += "\nPromotions\n"
	if len(a.results) == 0 {
		out += "  no products found\n"
	}
	for i, it := range a.results {
		line := fmt.Sprintf("%-24s %s %s -%d%%", it.Name, strikeStyle.Render(a.money(it.OriginalPrice)), a.money(it.Price), it.DiscountPercent())
		if l, ok := s.Cart.Line(it.ID); ok {
			line += fmt.Sprintf("  x%d", l.Quantity)
		}
		if i == a.itemCursor {
			out += cursorStyle.Render("> "+line) + "\n"
		} else {
			out += "  " + line + "\n"
		}
	}
	out += fmt.Sprintf("\nCart: %d item(s)  Total: %s", s.Cart.Units(), a.money(s.Cart.Total()))
	if s.Order != nil {
		out += fmt.Sprintf("\nLast order: %s (%d this session)", s.Order.ID, len(s.History))
	}
	return out
}

func (a *App) renderCheckout() string {
	s := a.state
	out := titleStyle.Render("Checkout") + "\n"
	for _, l := range s.Cart.Lines {
		out += fmt.Sprintf("  %-24s %2d x %s = %s\n", l.Name, l.Quantity, a.money(l.UnitPrice), a.money(l.Subtotal()))
	}
	out += fmt.Sprintf("  Total: %s\n\nPayment\n", a.money(s.Cart.Total()))
	methods := a.catalog.PaymentMethods()
	for i, p := range methods {
		mark := "( )"
		if s.Payment != nil && s.Payment.ID == p.ID {
			mark = "(*)"
		}
		line := fmt.Sprintf("%s %s %s", mark, p.Icon, p.Name)
		if i == a.payCursor {
			out += cursorStyle.Render("> " + line)
		} else {
			out += "  " + line
		}
		if i < len(methods)-1 {
			out += "\n"
		}
	}
	return out
}

func (a *App) renderRating() string {
	s := a.state
	out := titleStyle.Render("Rate your order") + "\n"
	if s.Order != nil {
		out += fmt.Sprintf("Order %s  %s  %s\n", s.Order.ID, a.money(s.Order.Total), s.Order.Payment.Name)
	}
	stars := a.rating()
	out += strings.Repeat("★", stars) + strings.Repeat("☆", session.MaxRating-stars) + "  " + session.RatingLabel(stars) + "\n"
	return out + a.comment.View()
}
