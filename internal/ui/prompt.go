package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrAborted is returned when the player quits a prompt with ctrl+c or esc.
var ErrAborted = errors.New("prompt aborted")

// selectModel is an inline arrow-key menu.
type selectModel struct {
	title   string
	options []string
	cursor  int
	chosen  bool
	aborted bool
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case "enter":
			m.chosen = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.chosen || m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString(QuestionStyle.Render(m.title))
	b.WriteString("\n")
	for i, opt := range m.options {
		if i == m.cursor {
			b.WriteString(SuccessStyle.Render("> " + opt))
		} else {
			b.WriteString("  " + opt)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Select shows an inline menu and returns the chosen option index.
func Select(title string, options []string) (int, error) {
	model := selectModel{title: title, options: options}
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return 0, fmt.Errorf("menu: %w", err)
	}
	m := final.(selectModel)
	if m.aborted {
		return 0, ErrAborted
	}
	return m.cursor, nil
}

// inputModel is an inline single-line text prompt.
type inputModel struct {
	title   string
	input   textinput.Model
	done    bool
	aborted bool
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	return m.title + "\n" + m.input.View()
}

// Input shows an inline text prompt and returns the trimmed answer.
func Input(title, placeholder string) (string, error) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60
	ti.Prompt = "> "
	ti.PromptStyle = QuestionStyle
	ti.TextStyle = PlayerStyle

	final, err := tea.NewProgram(inputModel{title: title, input: ti}).Run()
	if err != nil {
		return "", fmt.Errorf("input: %w", err)
	}
	m := final.(inputModel)
	if m.aborted {
		return "", ErrAborted
	}
	return strings.TrimSpace(m.input.Value()), nil
}

// InputInt prompts until the player types a number within [min, max].
func InputInt(title string, min, max int) (int, error) {
	for {
		raw, err := Input(title, fmt.Sprintf("%d-%d", min, max))
		if err != nil {
			return 0, err
		}
		var n int
		if _, err := fmt.Sscanf(raw, "%d", &n); err != nil || n < min || n > max {
			fmt.Println(ErrorStyle.Render(fmt.Sprintf("Enter a number between %d and %d", min, max)))
			continue
		}
		return n, nil
	}
}

// Confirm asks a yes/no question.
func Confirm(question string) (bool, error) {
	idx, err := Select(question, []string{"Yes", "No"})
	if err != nil {
		return false, err
	}
	return idx == 0, nil
}
