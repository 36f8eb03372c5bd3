package ui

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moodmix/internal/shared"
)

const (
	fieldClientID = iota
	fieldClientSecret
	fieldRedirectURI
	fieldCount
)

var fieldLabels = [fieldCount]string{"Client ID", "Client Secret", "Redirect URI"}

// SetupModel is the credential form shown by `moodmix setup`.
type SetupModel struct {
	inputs    [fieldCount]textinput.Model
	focus     int
	submitted bool
	canceled  bool
	err       error
	help      help.Model
	keys      keyMap
}

// NewSetupModel pre-fills the form from initial. Placeholder values from the example config are cleared.
func NewSetupModel(initial shared.SpotifyConfig) *SetupModel {
	m := &SetupModel{help: help.New(), keys: newKeyMap()}

	values := [fieldCount]string{initial.ClientID, initial.ClientSecret, initial.RedirectURI}
	placeholders := [fieldCount]string{"32 hex characters", "32 hex characters", "http://127.0.0.1:3000/callback"}

	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = "› "
		in.Placeholder = placeholders[i]
		in.CharLimit = 256
		if !strings.HasPrefix(values[i], "your_") {
			in.SetValue(values[i])
		}
		m.inputs[i] = in
	}
	m.inputs[fieldClientSecret].EchoMode = textinput.EchoPassword
	m.inputs[fieldClientSecret].EchoCharacter = '•'
	m.inputs[fieldClientID].Focus()

	return m
}

// Init starts the cursor blinking.
func (m *SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update moves focus between fields and submits on enter in the last field.
func (m *SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.quit):
			m.canceled = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.next):
			return m, m.setFocus(m.focus + 1)
		case key.Matches(msg, m.keys.prev):
			return m, m.setFocus(m.focus - 1)
		case key.Matches(msg, m.keys.submit):
			if m.focus < fieldCount-1 {
				return m, m.setFocus(m.focus + 1)
			}
			if err := m.validate(); err != nil {
				m.err = err
				return m, nil
			}
			m.submitted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *SetupModel) setFocus(i int) tea.Cmd {
	i = (i + fieldCount) % fieldCount
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m *SetupModel) validate() error {
	for i, in := range m.inputs {
		if strings.TrimSpace(in.Value()) == "" {
			return fmt.Errorf("%w: %s is required", shared.ErrMissingCredentials, fieldLabels[i])
		}
	}
	u, err := url.Parse(strings.TrimSpace(m.inputs[fieldRedirectURI].Value()))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: redirect URI must be an absolute URL", shared.ErrInvalidConfig)
	}
	return nil
}

// View renders the form.
func (m *SetupModel) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title("Spotify credentials"))
	b.WriteString("\n")

	for i, in := range m.inputs {
		label := fieldLabels[i]
		if i == m.focus {
			label = Styles.Warn(label)
		}
		fmt.Fprintf(&b, "%s\n%s\n\n", label, in.View())
	}

	if m.err != nil {
		b.WriteString(Styles.Err(m.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// Values returns the trimmed form contents.
func (m *SetupModel) Values() shared.SpotifyConfig {
	return shared.SpotifyConfig{
		ClientID:     strings.TrimSpace(m.inputs[fieldClientID].Value()),
		ClientSecret: strings.TrimSpace(m.inputs[fieldClientSecret].Value()),
		RedirectURI:  strings.TrimSpace(m.inputs[fieldRedirectURI].Value()),
	}
}

// Submitted reports whether the form was completed.
func (m *SetupModel) Submitted() bool {
	return m.submitted
}

// RunSetup shows the form on in/out and returns the entered credentials.
func RunSetup(ctx context.Context, initial shared.SpotifyConfig, in io.Reader, out io.Writer) (shared.SpotifyConfig, error) {
	model := NewSetupModel(initial)
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))

	if _, err := p.Run(); err != nil {
		return shared.SpotifyConfig{}, fmt.Errorf("setup form failed: %w", err)
	}
	if !model.Submitted() {
		return shared.SpotifyConfig{}, fmt.Errorf("%w: setup canceled", shared.ErrMissingCredentials)
	}
	return model.Values(), nil
}
