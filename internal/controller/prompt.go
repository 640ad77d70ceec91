package controller

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrPromptAborted is returned when the user cancels an interactive prompt.
var ErrPromptAborted = errors.New("prompt aborted")

// TUIPrompt collects values with an inline bubbletea input.
type TUIPrompt struct{}

// NewTUIPrompt creates a TUIPrompt.
func NewTUIPrompt() *TUIPrompt {
	return &TUIPrompt{}
}

// PromptSecret reads a masked value.
func (p *TUIPrompt) PromptSecret(label string) (string, error) {
	return p.run(label, "", true)
}

// PromptString reads a plain value, returning defaultValue on empty input.
func (p *TUIPrompt) PromptString(label, defaultValue string) (string, error) {
	value, err := p.run(label, defaultValue, false)
	if err != nil {
		return "", err
	}

	if value == "" {
		return defaultValue, nil
	}

	return value, nil
}

func (p *TUIPrompt) run(label, placeholder string, secret bool) (string, error) {
	model := newPromptModel(label, placeholder, secret)

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	result, ok := final.(promptModel)
	if !ok {
		return "", fmt.Errorf("unexpected prompt model type %T", final)
	}

	if result.aborted {
		return "", ErrPromptAborted
	}

	return result.input.Value(), nil
}

// promptModel is the bubbletea model behind a single prompt.
type promptModel struct {
	input      textinput.Model
	label      string
	done       bool
	aborted    bool
	labelStyle lipgloss.Style
}

func newPromptModel(label, placeholder string, secret bool) promptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 48

	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}

	return promptModel{
		input: ti,
		label: label,
		labelStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true),
	}
}

// Init initializes the model.
func (pm promptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key messages for the prompt.
func (pm promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			pm.done = true
			return pm, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			pm.aborted = true
			return pm, tea.Quit
		}
	}

	var cmd tea.Cmd
	pm.input, cmd = pm.input.Update(msg)

	return pm, cmd
}

// View renders the prompt line.
func (pm promptModel) View() string {
	if pm.done || pm.aborted {
		return ""
	}

	return fmt.Sprintf("%s %s\n", pm.labelStyle.Render(pm.label), pm.input.View())
}
