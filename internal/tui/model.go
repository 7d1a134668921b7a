package tui

import (
	"context"
	"fmt"
	"strings"

	"platepal/internal/app"
	"platepal/internal/preferences"
	"platepal/internal/render"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	labelStyle   = lipgloss.NewStyle().Width(18)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	alertStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("196")).Padding(0, 1)
)

// stateMsg carries a session snapshot into the update loop.
type stateMsg app.State

// generatedMsg is the outcome of one generate call.
type generatedMsg struct {
	state app.State
	err   error
}

// Model is the preferences form and the rendered plan below it.
type Model struct {
	session *app.Session
	inputs  []textinput.Model
	focus   int
	state   app.State
}

// Focus order: the text fields, then the restriction toggles, then the button.
func (m Model) restrictionIndex(i int) (preferences.Restriction, bool) {
	i -= len(m.inputs)
	if i < 0 || i >= len(preferences.Restrictions) {
		return "", false
	}
	return preferences.Restrictions[i], true
}

func (m Model) buttonIndex() int {
	return len(m.inputs) + len(preferences.Restrictions)
}

// New builds the form around a fresh session.
func New(session *app.Session) Model {
	st := session.Snapshot()
	inputs := make([]textinput.Model, len(preferences.Fields))
	for i, f := range preferences.Fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 5
		if f == preferences.FieldFoodPreferences {
			in.CharLimit = 200
			in.Placeholder = "e.g. I love spicy food, no mushrooms"
		}
		in.SetValue(st.Preferences.Get(f))
		inputs[i] = in
	}
	inputs[0].Focus()

	return Model{session: session, inputs: inputs, state: st}
}

// Init runs the health probe.
func (m Model) Init() tea.Cmd {
	s := m.session
	return tea.Batch(textinput.Blink, func() tea.Msg {
		return stateMsg(s.Start(context.Background()))
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.state = app.State(msg)
		return m, nil
	case generatedMsg:
		m.state = msg.state
		if msg.err == nil && msg.state.Preferences.FoodPreferences != "" {
			return m, waitSuggestions(m.session)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.state.Alert != nil {
			m.state = m.session.DismissAlert()
			return m, nil
		}
		return m, tea.Quit
	case "tab", "down":
		return m.moveFocus(1), nil
	case "shift+tab", "up":
		return m.moveFocus(-1), nil
	case "enter", " ", "space":
		if r, ok := m.restrictionIndex(m.focus); ok {
			m.state = m.session.Update(func(p preferences.Preferences) preferences.Preferences {
				return p.ToggleRestriction(r)
			})
			return m, nil
		}
		if m.focus == m.buttonIndex() {
			return m.generate()
		}
		if msg.String() == "enter" {
			return m.moveFocus(1), nil
		}
	}

	if m.focus >= len(m.inputs) {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	field, value := preferences.Fields[m.focus], m.inputs[m.focus].Value()
	m.state = m.session.Update(func(p preferences.Preferences) preferences.Preferences {
		return p.Set(field, value)
	})
	return m, cmd
}

func (m Model) moveFocus(delta int) Model {
	n := m.buttonIndex() + 1
	m.focus = ((m.focus+delta)%n + n) % n

	// textinput.Model has value semantics; rebuild the slice so the caller's
	// copy keeps its focus state.
	inputs := make([]textinput.Model, len(m.inputs))
	copy(inputs, m.inputs)
	for i := range inputs {
		if i == m.focus {
			inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}
	m.inputs = inputs
	return m
}

func (m Model) generate() (tea.Model, tea.Cmd) {
	if m.state.Loading {
		return m, nil
	}
	m.state = m.state.WithLoading(true)

	s := m.session
	return m, func() tea.Msg {
		st, err := s.Generate(context.Background())
		return generatedMsg{state: st, err: err}
	}
}

// waitSuggestions reports the session once the background suggestion fetch
// is done. The plan is already on screen by then.
func waitSuggestions(s *app.Session) tea.Cmd {
	return func() tea.Msg {
		s.Wait()
		return stateMsg(s.Snapshot())
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("PlatePal"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  server: %s", m.state.Status.Label())))
	b.WriteString("\n\n")

	for i, f := range preferences.Fields {
		label := f.String()
		if f == preferences.FieldProtein || f == preferences.FieldCarbs || f == preferences.FieldFat {
			label += " (%)"
		}
		b.WriteString(m.cursor(i) + labelStyle.Render(label) + m.inputs[i].View() + "\n")
	}
	if !preferences.ValidateMacros(m.state.Preferences) {
		b.WriteString(mutedStyle.Render("  macros must add up to about 100%") + "\n")
	}
	b.WriteString("\n")

	for i, r := range preferences.Restrictions {
		box := "[ ]"
		if m.state.Preferences.Restrictions.Get(r) {
			box = "[x]"
		}
		b.WriteString(m.cursor(len(m.inputs)+i) + box + " " + preferences.Label(r) + "\n")
	}
	b.WriteString("\n")

	button := "[ Generate Meal Plan ]"
	if m.state.Loading {
		button = "[ Generating... ]"
	}
	if m.focus == m.buttonIndex() {
		button = focusedStyle.Render(button)
	}
	b.WriteString(m.cursor(m.buttonIndex()) + button + "\n")

	if a := m.state.Alert; a != nil {
		b.WriteString("\n" + alertStyle.Render(a.Title+"\n"+a.Message+"\n\n(esc to dismiss)") + "\n")
	}

	if m.state.Result != nil {
		b.WriteString("\n" + render.Text(render.Build(m.state.Result), m.state.Suggestions))
	}

	b.WriteString("\n" + mutedStyle.Render("tab/shift+tab move · space toggles · enter generates · ctrl+c quits") + "\n")
	return b.String()
}

func (m Model) cursor(i int) string {
	if i == m.focus {
		return focusedStyle.Render("> ")
	}
	return "  "
}
