// Package ui is the terminal front end. It renders the session's view
// and forwards raw command strings to the interpreter; it never
// mutates session state itself.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todotui/internal/config"
	"todotui/internal/engine"
)

type mode int

const (
	modeNormal mode = iota
	modeEditing
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	editingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	keyStyle     = lipgloss.NewStyle().Bold(true)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

type Model struct {
	sess   *engine.Session
	keys   config.Keymap
	input  textinput.Model
	mode   mode
	errMsg string
	width  int
}

func Run(sess *engine.Session, cfg config.Config) error {
	ti := textinput.New()
	ti.Placeholder = "list | add <todo> | done <ID> | remove <ID> | closest | important"
	ti.CharLimit = 256
	ti.Width = 60

	m := Model{
		sess:  sess,
		keys:  cfg.Keys,
		input: ti,
		mode:  modeNormal,
	}

	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == modeEditing {
			return m.updateEditing(msg)
		}
		return m.updateNormal(msg.String())
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) updateNormal(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.keys.Quit:
		return m, tea.Quit
	case m.keys.Edit:
		m.mode = modeEditing
		m.input.Focus()
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case m.keys.Cancel, "esc":
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	case m.keys.Confirm, "enter":
		m.errMsg = ""
		if err := m.sess.Execute(m.input.Value()); err != nil {
			m.errMsg = err.Error()
		}
		m.input.SetValue("")
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderInput())
	b.WriteString("\n")
	b.WriteString(m.renderTasks())
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderHeader() string {
	if m.errMsg != "" {
		return errorStyle.Render(m.errMsg)
	}
	switch m.mode {
	case modeEditing:
		return fmt.Sprintf("Press %s to cancel, %s to run.",
			keyStyle.Render(m.keys.Cancel), keyStyle.Render(m.keys.Confirm))
	default:
		return fmt.Sprintf("Press %s to quit, %s to enter a command.",
			keyStyle.Render(m.keys.Quit), keyStyle.Render(m.keys.Edit))
	}
}

func (m Model) renderInput() string {
	view := m.input.View()
	if m.mode == modeEditing {
		view = editingStyle.Render(view)
	}
	return boxStyle.Render(titleStyle.Render("Input") + "\n" + view)
}

// renderTasks draws the current view: 1-based positions into whatever
// subset the last command selected. Those positions are what done and
// remove take as arguments.
func (m Model) renderTasks() string {
	if len(m.sess.View) == 0 {
		return boxStyle.Render(titleStyle.Render("Todos") + "\n" + dimStyle.Render("(nothing to show)"))
	}

	var rows []string
	for displayIdx, taskIdx := range m.sess.View {
		task := m.sess.Tasks[taskIdx]
		row := fmt.Sprintf("%d: %s", displayIdx+1, task.Format())
		if !task.Description.Due.IsZero() {
			row += dimStyle.Render(fmt.Sprintf(" [due %s]", task.Description.Due))
		}
		rows = append(rows, row)
	}
	return boxStyle.Render(titleStyle.Render("Todos") + "\n" + strings.Join(rows, "\n"))
}
