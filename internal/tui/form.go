package tui

import (
	"strings"

	"uadmin/internal/domain"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formItem is one focusable line of a dialog.
type formItem interface {
	setFocus(bool)
	update(msg tea.KeyMsg, keys formKeys)
	view(th Theme, focused bool) string
}

// input is a labelled text field. onChange returns the field's live
// validation message.
type input struct {
	label    string
	model    textinput.Model
	err      string
	onChange func(string) string
}

func newInput(label string, onChange func(string) string) *input {
	m := textinput.New()
	m.Prompt = ""
	m.CharLimit = 256
	// A static cursor keeps the input from scheduling blink ticks.
	m.Cursor.SetMode(cursor.CursorStatic)
	return &input{label: label, model: m, onChange: onChange}
}

func newSecretInput(label string, onChange func(string) string) *input {
	in := newInput(label, onChange)
	in.model.EchoMode = textinput.EchoPassword
	in.model.EchoCharacter = '•'
	return in
}

func (in *input) setFocus(on bool) {
	if on {
		in.model.Focus()
		return
	}
	in.model.Blur()
}

func (in *input) update(msg tea.KeyMsg, _ formKeys) {
	before := in.model.Value()
	in.model, _ = in.model.Update(msg)
	if v := in.model.Value(); v != before {
		in.change(v)
	}
}

// reset replaces the value without going through onChange and clears the
// message.
func (in *input) reset(v string) {
	in.model.SetValue(v)
	in.model.CursorEnd()
	in.err = ""
}

func (in *input) change(v string) {
	if in.onChange != nil {
		in.err = in.onChange(v)
	}
}

func (in *input) value() string {
	return in.model.Value()
}

func (in *input) view(th Theme, focused bool) string {
	label := th.Label.Render(in.label)
	if focused {
		label = th.Focused.Render(in.label)
	}
	line := label + in.model.View()
	if in.err != "" {
		line += "\n" + th.Label.Render("") + th.FieldErr.Render(in.err)
	}
	return line
}

// selector picks a task status with the left and right keys.
type selector struct {
	label    string
	value    domain.Status
	onChange func(domain.Status)
}

func newSelector(label string, onChange func(domain.Status)) *selector {
	return &selector{label: label, value: domain.StatusPending, onChange: onChange}
}

func (s *selector) setFocus(bool) {}

func (s *selector) update(msg tea.KeyMsg, keys formKeys) {
	switch {
	case key.Matches(msg, keys.NextItem):
		s.step(1)
	case key.Matches(msg, keys.PrevItem):
		s.step(-1)
	}
}

func (s *selector) step(delta int) {
	all := domain.Statuses()
	i := int(s.value) + delta
	if i < 0 {
		i = len(all) - 1
	}
	s.value = all[i%len(all)]
	if s.onChange != nil {
		s.onChange(s.value)
	}
}

func (s *selector) view(th Theme, focused bool) string {
	label := th.Label.Render(s.label)
	if focused {
		label = th.Focused.Render(s.label)
	}
	return label + "‹ " + th.Chip(s.value) + " ›"
}

// form moves focus between its items. The item order may change while the
// form is open; focus is clamped to it.
type form struct {
	items []formItem
	focus int
}

func (f *form) setItems(items []formItem) {
	f.items = items
	if f.focus >= len(items) {
		f.focus = len(items) - 1
	}
	if f.focus < 0 {
		f.focus = 0
	}
	for i, it := range items {
		it.setFocus(i == f.focus)
	}
}

func (f *form) focused() formItem {
	if len(f.items) == 0 {
		return nil
	}
	return f.items[f.focus]
}

func (f *form) move(delta int) {
	if len(f.items) == 0 {
		return
	}
	f.items[f.focus].setFocus(false)
	f.focus = (f.focus + delta + len(f.items)) % len(f.items)
	f.items[f.focus].setFocus(true)
}

func (f *form) focusOn(it formItem) {
	for i, candidate := range f.items {
		if candidate == it {
			f.move(i - f.focus)
			return
		}
	}
}

// update handles field navigation and hands other keys to the focused item.
func (f *form) update(msg tea.KeyMsg, keys formKeys) {
	switch {
	case key.Matches(msg, keys.Next):
		f.move(1)
	case key.Matches(msg, keys.Prev):
		f.move(-1)
	default:
		if it := f.focused(); it != nil {
			it.update(msg, keys)
		}
	}
}

func (f *form) view(th Theme, from, to int) string {
	lines := make([]string, 0, to-from)
	for i := from; i < to && i < len(f.items); i++ {
		lines = append(lines, f.items[i].view(th, i == f.focus))
	}
	return strings.Join(lines, "\n")
}
