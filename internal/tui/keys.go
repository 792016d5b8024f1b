package tui

import (
	"uadmin/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// keyMap binds the list screen's actions.
type keyMap struct {
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Filter   key.Binding
	PageSize key.Binding
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	View     key.Binding
	Refresh  key.Binding
	Dismiss  key.Binding
	Help     key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(k.Quit, "salir")),
		Up:       key.NewBinding(key.WithKeys(k.Up, "up"), key.WithHelp(k.Up+"/↑", "arriba")),
		Down:     key.NewBinding(key.WithKeys(k.Down, "down"), key.WithHelp(k.Down+"/↓", "abajo")),
		NextPage: key.NewBinding(key.WithKeys(k.NextPage, "right"), key.WithHelp(k.NextPage+"/→", "página siguiente")),
		PrevPage: key.NewBinding(key.WithKeys(k.PrevPage, "left"), key.WithHelp(k.PrevPage+"/←", "página anterior")),
		Filter:   key.NewBinding(key.WithKeys(k.Filter), key.WithHelp(k.Filter, "filtrar estado")),
		PageSize: key.NewBinding(key.WithKeys(k.PageSize), key.WithHelp(k.PageSize, "por página")),
		Add:      key.NewBinding(key.WithKeys(k.Add), key.WithHelp(k.Add, "nuevo usuario")),
		Edit:     key.NewBinding(key.WithKeys(k.Edit), key.WithHelp(k.Edit, "editar")),
		Delete:   key.NewBinding(key.WithKeys(k.Delete), key.WithHelp(k.Delete, "eliminar")),
		View:     key.NewBinding(key.WithKeys(k.View), key.WithHelp(k.View, "visualizar")),
		Refresh:  key.NewBinding(key.WithKeys(k.Refresh), key.WithHelp(k.Refresh, "recargar")),
		Dismiss:  key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(k.Cancel, "cerrar aviso")),
		Help:     key.NewBinding(key.WithKeys(k.Help), key.WithHelp(k.Help, "ayuda")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.View, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage},
		{k.Filter, k.PageSize, k.Refresh, k.Dismiss},
		{k.Add, k.Edit, k.View, k.Delete},
		{k.Help, k.Quit},
	}
}

// formKeys binds the dialogs. They are fixed so typing never collides with
// the configurable list keys.
type formKeys struct {
	Cancel     key.Binding
	Confirm    key.Binding
	Next       key.Binding
	Prev       key.Binding
	Submit     key.Binding
	AddTask    key.Binding
	DeleteTask key.Binding
	PrevItem   key.Binding
	NextItem   key.Binding
	PrevTask   key.Binding
	NextTask   key.Binding
	Yes        key.Binding
	No         key.Binding
}

func newFormKeys(k config.Keymap) formKeys {
	return formKeys{
		Cancel:     key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(k.Cancel, "cerrar")),
		Confirm:    key.NewBinding(key.WithKeys(k.Confirm), key.WithHelp(k.Confirm, "aceptar")),
		Next:       key.NewBinding(key.WithKeys(k.Next, "down"), key.WithHelp(k.Next, "campo siguiente")),
		Prev:       key.NewBinding(key.WithKeys(k.Prev, "up"), key.WithHelp(k.Prev, "campo anterior")),
		Submit:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "guardar")),
		AddTask:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "agregar tarea")),
		DeleteTask: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "eliminar tarea")),
		PrevItem:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "anterior")),
		NextItem:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "siguiente")),
		PrevTask:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "tarea anterior")),
		NextTask:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "tarea siguiente")),
		Yes:        key.NewBinding(key.WithKeys("s", "y", k.Confirm), key.WithHelp("s", "sí")),
		No:         key.NewBinding(key.WithKeys("n", k.Cancel), key.WithHelp("n", "no")),
	}
}
