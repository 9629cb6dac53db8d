// Package shell is the keyboard-driven state machine behind the terminal
// résumé: boot, language selection, then tab navigation.
package shell

import "unicode"

// Phase is the top-level state of the shell.
type Phase int

const (
	NotBooted Phase = iota
	LanguageUnselected
	Active
)

func (p Phase) String() string {
	switch p {
	case LanguageUnselected:
		return "language-unselected"
	case Active:
		return "active"
	}
	return "not-booted"
}

// Lang is a supported display language.
type Lang string

const (
	English Lang = "en"
	Korean  Lang = "ko"
	Uzbek   Lang = "uz"
	Russian Lang = "ru"
)

// Languages in selection-prompt order.
var Languages = []Lang{English, Korean, Uzbek, Russian}

var langKeys = map[rune]Lang{'e': English, 'k': Korean, 'u': Uzbek, 'r': Russian}

// LangForKey maps a selection key (e, k, u, r in either case) to a Lang.
func LangForKey(r rune) (Lang, bool) {
	l, ok := langKeys[unicode.ToLower(r)]
	return l, ok
}

// Tab is one section of the active shell.
type Tab int

const (
	TabHome Tab = iota
	TabAbout
	TabSkills
	TabProjects
	TabContact
)

// Tabs is the fixed tab order.
var Tabs = []Tab{TabHome, TabAbout, TabSkills, TabProjects, TabContact}

var tabNames = [...]string{"Home", "About", "Skills", "Projects", "Contact"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "Tab(?)"
	}
	return tabNames[t]
}

// MessageID is the translation id of the tab label.
func (t Tab) MessageID() string {
	return [...]string{"tab.home", "tab.about", "tab.skills", "tab.projects", "tab.contact"}[t]
}

// KeyKind distinguishes named keys from printable runes.
type KeyKind int

const (
	KeyRune KeyKind = iota
	KeyEnter
	KeyLeft
	KeyRight
	KeyOther
)

// Key is a single key press.
type Key struct {
	Kind KeyKind
	Rune rune
}

var (
	Enter = Key{Kind: KeyEnter}
	Left  = Key{Kind: KeyLeft}
	Right = Key{Kind: KeyRight}
)

// Rune is a printable key.
func Rune(r rune) Key {
	return Key{Kind: KeyRune, Rune: r}
}

// Transition is the outcome of an input: whether state changed and which
// sounds to play.
type Transition struct {
	Changed bool
	Sounds  []Sound
}

func changed(sounds ...Sound) Transition {
	return Transition{Changed: true, Sounds: sounds}
}

func beep() Transition {
	return Transition{Sounds: []Sound{SoundBeep}}
}

// Machine holds shell state. The zero value is NotBooted with English and
// the Home tab. There is no way back from Active.
type Machine struct {
	phase Phase
	lang  Lang
	tab   int
}

// New returns a machine in the NotBooted phase.
func New() *Machine {
	return &Machine{lang: English}
}

func (m *Machine) Phase() Phase { return m.phase }

func (m *Machine) Lang() Lang {
	if m.lang == "" {
		return English
	}
	return m.lang
}

func (m *Machine) Tab() Tab { return Tabs[m.tab] }

// Press handles a key press in any phase.
func (m *Machine) Press(k Key) Transition {
	switch m.phase {
	case NotBooted:
		if k.Kind == KeyEnter {
			return m.Boot()
		}
		return Transition{}
	case LanguageUnselected:
		if k.Kind == KeyRune {
			if l, ok := LangForKey(k.Rune); ok {
				return m.Choose(l)
			}
		}
		return beep()
	default:
		switch k.Kind {
		case KeyRight:
			m.tab = (m.tab + 1) % len(Tabs)
			return changed(SoundClick)
		case KeyLeft:
			m.tab = (m.tab - 1 + len(Tabs)) % len(Tabs)
			return changed(SoundClick)
		}
		return Transition{}
	}
}

// Boot leaves NotBooted. It is a no-op in later phases.
func (m *Machine) Boot() Transition {
	if m.phase != NotBooted {
		return Transition{}
	}
	m.phase = LanguageUnselected
	return changed(SoundClick, SoundBoot)
}

// Choose selects the display language and activates the shell.
func (m *Machine) Choose(l Lang) Transition {
	if m.phase != LanguageUnselected {
		return Transition{}
	}
	m.lang = l
	m.phase = Active
	m.tab = 0
	return changed(SoundConfirm)
}

// ClickTab jumps to tab i. Out-of-range indexes and inactive shells are
// ignored.
func (m *Machine) ClickTab(i int) Transition {
	if m.phase != Active || i < 0 || i >= len(Tabs) {
		return Transition{}
	}
	m.tab = i
	return changed(SoundConfirm)
}
