// Package tui runs the terminal résumé: a bubbletea program around the
// shell state machine.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/glasscube/glasscube/api"
	"github.com/glasscube/glasscube/content"
	"github.com/glasscube/glasscube/locale"
	"github.com/glasscube/glasscube/settings"
	"github.com/glasscube/glasscube/shell"
)

// ProjectSource lists projects for the Projects tab. *api.Client
// satisfies it.
type ProjectSource interface {
	Projects(ctx context.Context) (api.ProjectList, error)
}

type tickMsg struct{ gen shell.Generation }

type projectsMsg struct {
	ticket   api.Ticket
	projects []content.Project
	err      error
}

type prefsMsg settings.Preferences

type savedMsg struct{ err error }

// Config wires the model's collaborators. Only Bundle is required.
type Config struct {
	Bundle   *locale.Bundle
	Prefs    *settings.Store
	Projects ProjectSource
	Player   shell.Player
	Logger   *slog.Logger
	// FetchTimeout bounds the Projects tab request (default 10s).
	FetchTimeout time.Duration
}

// Model is the bubbletea model. Use a pointer; it is not safe to copy.
type Model struct {
	cfg      Config
	machine  *shell.Machine
	tw       shell.Typewriter
	loc      *locale.Localizer
	projects *api.Tracker[[]content.Project]
	vp       viewport.Model

	remembered string
	width      int
	height     int
}

// New builds a model in the NotBooted phase.
func New(cfg Config) *Model {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	m := &Model{
		cfg:      cfg,
		machine:  shell.New(),
		projects: &api.Tracker[[]content.Project]{},
		vp:       viewport.New(80, 20),
		width:    80,
		height:   24,
	}
	lang := string(shell.English)
	if cfg.Prefs != nil {
		lang = cfg.Prefs.Get().Language
		if cfg.Prefs.Stored() {
			m.remembered = lang
		}
	}
	m.loc = cfg.Bundle.Localizer(lang)
	return m
}

// Subscribe forwards preference changes into a running program. The
// returned func stops forwarding.
func Subscribe(p *tea.Program, store *settings.Store) func() {
	return store.Subscribe(func(prefs settings.Preferences) {
		go p.Send(prefsMsg(prefs))
	})
}

// Machine exposes the shell state, mostly for tests.
func (m *Model) Machine() *shell.Machine { return m.machine }

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-3, 1)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, m.press(keyFor(msg))

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft || msg.Y != 0 {
			return m, nil
		}
		if i, ok := m.tabAt(msg.X); ok {
			return m, m.apply(m.machine.ClickTab(i))
		}
		return m, nil

	case tickMsg:
		if !m.tw.Tick(msg.gen) {
			m.refresh()
			return m, nil
		}
		m.refresh()
		return m, tick(msg.gen, m.tw.Interval())

	case projectsMsg:
		if !m.projects.Resolve(msg.ticket, msg.projects, msg.err, "") {
			m.cfg.Logger.Debug("dropped stale projects response")
			return m, nil
		}
		if msg.err != nil {
			m.cfg.Logger.Warn("load projects", "err", msg.err)
		}
		if m.machine.Phase() == shell.Active && m.machine.Tab() == shell.TabProjects {
			return m, m.startTab()
		}
		return m, nil

	case prefsMsg:
		m.remembered = msg.Language
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.cfg.Logger.Warn("save preferences", "err", msg.err)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func keyFor(msg tea.KeyMsg) shell.Key {
	switch msg.Type {
	case tea.KeyEnter:
		return shell.Enter
	case tea.KeyLeft:
		return shell.Left
	case tea.KeyRight:
		return shell.Right
	case tea.KeyRunes, tea.KeySpace:
		if len(msg.Runes) == 1 {
			return shell.Rune(msg.Runes[0])
		}
	}
	return shell.Key{Kind: shell.KeyOther}
}

func (m *Model) press(k shell.Key) tea.Cmd {
	before := m.machine.Phase()
	cmd := m.apply(m.machine.Press(k))
	if before == shell.LanguageUnselected && m.machine.Phase() == shell.Active {
		return tea.Batch(cmd, m.saveLanguage())
	}
	return cmd
}

// apply plays the transition's sounds and, when the shell moved, restarts
// the visible tab.
func (m *Model) apply(tr shell.Transition) tea.Cmd {
	shell.Emit(context.Background(), m.cfg.Player, tr.Sounds, func(s shell.Sound, err error) {
		m.cfg.Logger.Debug("play sound", "sound", s.String(), "err", err)
	})
	if !tr.Changed {
		return nil
	}
	if m.machine.Phase() != shell.Active {
		m.tw.Stop()
		return nil
	}
	m.loc = m.cfg.Bundle.Localizer(string(m.machine.Lang()))
	var cmds []tea.Cmd
	if m.machine.Tab() == shell.TabProjects && m.cfg.Projects != nil {
		cmds = append(cmds, m.fetchProjects())
	}
	cmds = append(cmds, m.startTab())
	return tea.Batch(cmds...)
}

func (m *Model) startTab() tea.Cmd {
	tab := m.machine.Tab()
	gen := m.tw.Start(m.tabLines(tab), shell.RevealInterval(tab))
	m.refresh()
	if m.tw.Done() {
		return nil
	}
	return tick(gen, m.tw.Interval())
}

func tick(gen shell.Generation, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (m *Model) fetchProjects() tea.Cmd {
	tk := m.projects.Begin("all")
	src, timeout := m.cfg.Projects, m.cfg.FetchTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		list, err := src.Projects(ctx)
		return projectsMsg{ticket: tk, projects: list.Projects, err: err}
	}
}

func (m *Model) saveLanguage() tea.Cmd {
	store := m.cfg.Prefs
	if store == nil {
		return nil
	}
	lang := string(m.machine.Lang())
	return func() tea.Msg {
		return savedMsg{err: store.Update(context.Background(), func(p *settings.Preferences) {
			p.Language = lang
		})}
	}
}

func (m *Model) tabLines(tab shell.Tab) []string {
	header := []string{m.loc.T("term.welcome"), m.loc.T("term.navigate"), ""}
	switch tab {
	case shell.TabHome:
		return m.loc.Lines("term.home")
	case shell.TabAbout:
		return m.loc.Lines("term.about")
	case shell.TabSkills:
		return m.loc.Lines("term.skills")
	case shell.TabContact:
		return append(header, m.loc.Lines("term.contact")...)
	case shell.TabProjects:
		if m.cfg.Projects == nil {
			return header[:2]
		}
		return append(header, m.projectLines()...)
	}
	return nil
}

func (m *Model) projectLines() []string {
	st := m.projects.State()
	switch st.Status {
	case api.StatusLoading:
		return []string{m.loc.T("term.projects.loading")}
	case api.StatusFailed:
		return []string{errorStyle.Render(m.loc.F("term.projects.failed", map[string]any{"Error": st.Message}))}
	}
	if len(st.Value) == 0 {
		return []string{m.loc.T("term.projects.empty")}
	}
	var lines []string
	for _, p := range st.Value {
		lines = append(lines, fmt.Sprintf("▸ %s: %s", p.Title, p.Short))
		if len(p.Tech) > 0 {
			lines = append(lines, "    ["+strings.Join(p.Tech, ", ")+"]")
		}
	}
	return lines
}

func (m *Model) refresh() {
	m.vp.SetContent(strings.Join(m.tw.Visible(), "\n"))
	m.vp.GotoBottom()
}

func (m *Model) tabLabels() []string {
	labels := make([]string, len(shell.Tabs))
	for i, tab := range shell.Tabs {
		style := tabStyle
		if m.machine.Phase() == shell.Active && tab == m.machine.Tab() {
			style = activeTabStyle
		}
		labels[i] = style.Render(m.loc.T(tab.MessageID()))
	}
	return labels
}

func (m *Model) tabAt(x int) (int, bool) {
	left := 0
	for i, label := range m.tabLabels() {
		w := lipgloss.Width(label)
		if x >= left && x < left+w {
			return i, true
		}
		left += w
	}
	return 0, false
}

func (m *Model) View() string {
	switch m.machine.Phase() {
	case shell.NotBooted:
		return m.center(promptStyle.Render(m.loc.T("term.boot")) + "\n\n" + hintStyle.Render(m.loc.T("term.quit")))
	case shell.LanguageUnselected:
		body := promptStyle.Render(m.loc.T("term.choose"))
		if m.remembered != "" {
			body += "\n\n" + hintStyle.Render(m.loc.F("term.remembered", map[string]any{"Lang": m.cfg.Bundle.Localizer("en").T("lang." + m.remembered)}))
		}
		return m.center(body)
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, m.tabLabels()...)
	return bar + "\n" + screenStyle.Render(m.vp.View()) + "\n" + hintStyle.Render(m.loc.T("term.navigate"))
}

func (m *Model) center(s string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, screenStyle.Render(s))
}
