package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formField struct {
	label  string
	secret bool
}

// form is a column of text inputs with one focused at a time.
type form struct {
	inputs []textinput.Model
	focus  int
}

func newInput(label string, secret bool) textinput.Model {
	inp := textinput.New()
	inp.Prompt = label + ": "
	inp.Cursor.SetMode(cursor.CursorStatic)
	if secret {
		inp.EchoMode = textinput.EchoPassword
		inp.EchoCharacter = '*'
	}
	return inp
}

func newForm(fields ...formField) *form {
	f := &form{}
	for _, fl := range fields {
		f.inputs = append(f.inputs, newInput(fl.label, fl.secret))
	}
	f.inputs[0].Focus()
	return f
}

// update moves focus on navigation keys and otherwise types into the
// focused input.
func (f *form) update(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	switch {
	case key.Matches(msg, keys.NextField):
		f.move(1)
		return nil
	case key.Matches(msg, keys.PrevField):
		f.move(-1)
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) move(dir int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + dir + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) value(i int) string {
	return f.inputs[i].Value()
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
		f.inputs[i].Blur()
	}
	f.focus = 0
	f.inputs[0].Focus()
}

// clear empties only the fields at idx, keeping focus.
func (f *form) clear(idx ...int) {
	for _, i := range idx {
		f.inputs[i].Reset()
	}
}

func (f *form) view() string {
	lines := make([]string, 0, len(f.inputs))
	for i, in := range f.inputs {
		line := in.View()
		if i == f.focus {
			line = cursorStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
