package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up         key.Binding
	down       key.Binding
	tab        key.Binding
	backtab    key.Binding
	enter      key.Binding
	esc        key.Binding
	quit       key.Binding
	add        key.Binding
	edit       key.Binding
	toggle     key.Binding
	delete     key.Binding
	move       key.Binding
	copy       key.Binding
	search     key.Binding
	filter     key.Binding
	privacy    key.Binding
	changePw   key.Binding
	reset      key.Binding
	clearDone  key.Binding
	clearAll   key.Binding
	export     key.Binding
	importFile key.Binding
	theme      key.Binding
	autoLock   key.Binding
	feedback   key.Binding
	signIn     key.Binding
	signOut    key.Binding
	buildInfo  key.Binding
	yes        key.Binding
	no         key.Binding
	resetMove  key.Binding
	resetDrop  key.Binding
}

var keys = keyMap{
	up:         key.NewBinding(key.WithKeys("up", "k")),
	down:       key.NewBinding(key.WithKeys("down", "j")),
	tab:        key.NewBinding(key.WithKeys("tab")),
	backtab:    key.NewBinding(key.WithKeys("shift+tab")),
	enter:      key.NewBinding(key.WithKeys("enter")),
	esc:        key.NewBinding(key.WithKeys("esc")),
	quit:       key.NewBinding(key.WithKeys("q", "ctrl+c")),
	add:        key.NewBinding(key.WithKeys("a", "n")),
	edit:       key.NewBinding(key.WithKeys("e")),
	toggle:     key.NewBinding(key.WithKeys(" ", "enter")),
	delete:     key.NewBinding(key.WithKeys("d")),
	move:       key.NewBinding(key.WithKeys("m")),
	copy:       key.NewBinding(key.WithKeys("c")),
	search:     key.NewBinding(key.WithKeys("/")),
	filter:     key.NewBinding(key.WithKeys("f")),
	privacy:    key.NewBinding(key.WithKeys("u")),
	changePw:   key.NewBinding(key.WithKeys("P")),
	reset:      key.NewBinding(key.WithKeys("R")),
	clearDone:  key.NewBinding(key.WithKeys("x")),
	clearAll:   key.NewBinding(key.WithKeys("X")),
	export:     key.NewBinding(key.WithKeys("E")),
	importFile: key.NewBinding(key.WithKeys("I")),
	theme:      key.NewBinding(key.WithKeys("t")),
	autoLock:   key.NewBinding(key.WithKeys("A")),
	feedback:   key.NewBinding(key.WithKeys("F")),
	signIn:     key.NewBinding(key.WithKeys("S")),
	signOut:    key.NewBinding(key.WithKeys("O")),
	buildInfo:  key.NewBinding(key.WithKeys("v")),
	yes:        key.NewBinding(key.WithKeys("y")),
	no:         key.NewBinding(key.WithKeys("n")),
	resetMove:  key.NewBinding(key.WithKeys("m")),
	resetDrop:  key.NewBinding(key.WithKeys("d")),
}
