// Package tui provides the interactive email prompt used when the unban
// command is invoked without an argument.
package tui

import (
	"fmt"
	"strings"

	"banctl/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PromptModel is a single text input asking for an email address.
// It implements the tea.Model interface for Bubble Tea.
type PromptModel struct {
	textInput textinput.Model

	// Cancelled is true when the user bailed out with Esc or Ctrl+C.
	Cancelled bool
	done      bool
}

// NewPromptModel creates the email prompt with a focused text input.
func NewPromptModel() PromptModel {
	ti := textinput.New()
	ti.Placeholder = "user@example.com"
	ti.Focus()
	ti.CharLimit = 254
	ti.Width = 40

	return PromptModel{textInput: ti}
}

func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.Cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m PromptModel) View() string {
	if m.done || m.Cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Email:"))
	b.WriteString("\n")
	b.WriteString(styles.InputStyle.Render(m.textInput.View()))
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("enter confirm • esc cancel"))
	b.WriteString("\n")
	return b.String()
}

// Value returns the entered email, trimmed.
func (m PromptModel) Value() string {
	return strings.TrimSpace(m.textInput.Value())
}

// PromptEmail runs the prompt and returns the entered address. Cancelling
// the prompt is an error so the caller halts without touching the store.
func PromptEmail() (string, error) {
	program := tea.NewProgram(NewPromptModel())

	finalModel, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("email prompt failed: %w", err)
	}

	prompt := finalModel.(PromptModel)
	if prompt.Cancelled {
		return "", fmt.Errorf("prompt cancelled by user")
	}

	return prompt.Value(), nil
}
