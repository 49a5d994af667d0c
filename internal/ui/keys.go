package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Create key.Binding
	Search key.Binding
	Edit   key.Binding
	Delete key.Binding
	Space  key.Binding

	FilterPending    key.Binding
	FilterInProgress key.Binding
	FilterCompleted  key.Binding
	FilterAll        key.Binding
	CycleSort        key.Binding
	FlipSort         key.Binding
	ResetFilters     key.Binding

	SelectMode   key.Binding
	SelectAll    key.Binding
	BulkDelete   key.Binding
	BulkComplete key.Binding
	MoveUp       key.Binding
	MoveDown     key.Binding

	Theme      key.Binding
	ViewMode   key.Binding
	Animations key.Binding
	DragDrop   key.Binding
	Sidebar    key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	RunAction  key.Binding
	Dismiss    key.Binding

	Reload key.Binding
	Reset  key.Binding
	Escape key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Create: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new task")),
		Search: key.NewBinding(key.WithKeys("ctrl+k", "/"), key.WithHelp("/", "search")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Space:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "cycle status / select")),

		FilterPending:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "pending")),
		FilterInProgress: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "in progress")),
		FilterCompleted:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		FilterAll:        key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "all")),
		CycleSort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort field")),
		FlipSort:         key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sort direction")),
		ResetFilters:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset filters")),

		SelectMode:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "select mode")),
		SelectAll:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		BulkDelete:   key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "delete selected")),
		BulkComplete: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "complete selected")),
		MoveUp:       key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "move up")),
		MoveDown:     key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "move down")),

		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		ViewMode:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grid/list")),
		Animations: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "animations")),
		DragDrop:   key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "reordering")),
		Sidebar:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "sidebar")),
		PrevPage:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev page")),
		NextPage:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next page")),
		RunAction:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "notification action")),
		Dismiss:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss notification")),

		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Reset:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset demo data")),
		Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close / clear error")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Create, k.Search, k.Edit, k.Delete, k.Space, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Create, k.Search, k.Edit, k.Delete, k.Space},
		{k.FilterPending, k.FilterInProgress, k.FilterCompleted, k.FilterAll, k.CycleSort, k.FlipSort, k.ResetFilters},
		{k.SelectMode, k.SelectAll, k.BulkDelete, k.BulkComplete, k.MoveUp, k.MoveDown},
		{k.Theme, k.ViewMode, k.Animations, k.DragDrop, k.Sidebar, k.PrevPage, k.NextPage, k.RunAction, k.Dismiss},
		{k.Reload, k.Reset, k.Escape, k.Help, k.Quit},
	}
}

// formKeyMap is active while the create or edit form is open.
type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Status key.Binding
	Submit key.Binding
	Cancel key.Binding
}

func newFormKeyMap() formKeyMap {
	return formKeyMap{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		Status: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "cycle status")),
		Submit: key.NewBinding(key.WithKeys("enter", "ctrl+s"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Status, k.Submit, k.Cancel}
}

func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type confirmKeyMap struct {
	Yes key.Binding
	No  key.Binding
}

func newConfirmKeyMap() confirmKeyMap {
	return confirmKeyMap{
		Yes: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "delete")),
		No:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
	}
}

func (k confirmKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Yes, k.No}
}

func (k confirmKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
