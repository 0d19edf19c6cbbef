package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jask/drogafarm/internal/session"
)

type keyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Submit    key.Binding
	Back      key.Binding
	NextField key.Binding
	PrevField key.Binding
	Remember  key.Binding
	Register  key.Binding

	Up       key.Binding
	Down     key.Binding
	Add      key.Binding
	Remove   key.Binding
	Search   key.Binding
	Vendor   key.Binding
	Checkout key.Binding
	Logout   key.Binding

	Pay     key.Binding
	Confirm key.Binding

	StarUp   key.Binding
	StarDown key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Remember:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "remember me")),
		Register:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "create account")),

		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("j/k", "navigate")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		Add:      key.NewBinding(key.WithKeys("a", "+", "enter"), key.WithHelp("a", "add")),
		Remove:   key.NewBinding(key.WithKeys("x", "-"), key.WithHelp("x", "remove")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Vendor:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "pharmacy")),
		Checkout: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "checkout")),
		Logout:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),

		Pay:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "choose payment")),
		Confirm: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "confirm order")),

		StarUp:   key.NewBinding(key.WithKeys("right"), key.WithHelp("←/→", "stars")),
		StarDown: key.NewBinding(key.WithKeys("left")),
	}
}

// helpFor lists the bindings shown in the footer of a screen.
func (k keyMap) helpFor(s session.Screen, searching bool) []key.Binding {
	switch s {
	case session.Anonymous:
		return []key.Binding{
			withHelp(k.Submit, "sign in"), k.NextField, k.Remember, k.Register, withHelp(k.Back, "quit"),
		}
	case session.Registering:
		return []key.Binding{withHelp(k.Submit, "register"), k.NextField, k.Back}
	case session.Browsing:
		if searching {
			return []key.Binding{withHelp(k.Submit, "done"), withHelp(k.Back, "clear")}
		}
		return []key.Binding{k.Up, k.Add, k.Remove, k.Search, k.Vendor, k.Checkout, k.Logout, k.Quit}
	case session.CheckingOut:
		return []key.Binding{k.Up, k.Pay, k.Confirm, withHelp(k.Back, "back to cart"), k.Logout}
	case session.RatingOrder:
		return []key.Binding{k.StarUp, withHelp(k.Submit, "send feedback"), withHelp(k.Back, "skip")}
	}
	return nil
}

func withHelp(b key.Binding, desc string) key.Binding {
	b.SetHelp(b.Help().Key, desc)
	return b
}
