package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moodmix/internal/shared"
)

func typeText(m *SetupModel, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func press(m *SetupModel, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestSetupModel(t *testing.T) {
	t.Run("prefills and clears placeholders", func(t *testing.T) {
		m := NewSetupModel(shared.SpotifyConfig{
			ClientID:     "your_spotify_client_id",
			ClientSecret: "secret",
			RedirectURI:  "http://127.0.0.1:3000/callback",
		})

		got := m.Values()
		if got.ClientID != "" || got.ClientSecret != "secret" || got.RedirectURI != "http://127.0.0.1:3000/callback" {
			t.Errorf("unexpected prefill %+v", got)
		}
	})

	t.Run("fills and submits", func(t *testing.T) {
		m := NewSetupModel(shared.SpotifyConfig{})

		typeText(m, "abc123")
		press(m, tea.KeyTab)
		typeText(m, "s3cret")
		press(m, tea.KeyEnter)
		typeText(m, "http://127.0.0.1:3000/callback")
		cmd := press(m, tea.KeyEnter)

		if !m.Submitted() || !isQuit(cmd) {
			t.Fatalf("expected submit and quit, err=%v", m.err)
		}
		want := shared.SpotifyConfig{ClientID: "abc123", ClientSecret: "s3cret", RedirectURI: "http://127.0.0.1:3000/callback"}
		if m.Values() != want {
			t.Errorf("got %+v, want %+v", m.Values(), want)
		}
	})

	t.Run("missing field blocks submit", func(t *testing.T) {
		m := NewSetupModel(shared.SpotifyConfig{RedirectURI: "http://127.0.0.1:3000/callback"})
		press(m, tea.KeyShiftTab)
		cmd := press(m, tea.KeyEnter)

		if m.Submitted() || isQuit(cmd) {
			t.Fatal("form should not submit with empty credentials")
		}
		if !errors.Is(m.err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", m.err)
		}
		if !strings.Contains(m.View(), "Client ID is required") {
			t.Errorf("error not rendered:\n%s", m.View())
		}
	})

	t.Run("relative redirect rejected", func(t *testing.T) {
		m := NewSetupModel(shared.SpotifyConfig{ClientID: "id", ClientSecret: "secret", RedirectURI: "/callback"})
		press(m, tea.KeyShiftTab)
		press(m, tea.KeyEnter)

		if !errors.Is(m.err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", m.err)
		}
	})

	t.Run("focus wraps", func(t *testing.T) {
		m := NewSetupModel(shared.SpotifyConfig{})
		press(m, tea.KeyShiftTab)
		if m.focus != fieldRedirectURI {
			t.Errorf("expected focus on last field, got %d", m.focus)
		}
		press(m, tea.KeyTab)
		if m.focus != fieldClientID {
			t.Errorf("expected focus on first field, got %d", m.focus)
		}
	})

	t.Run("escape cancels", func(t *testing.T) {
		m := NewSetupModel(shared.SpotifyConfig{})
		cmd := press(m, tea.KeyEsc)

		if !isQuit(cmd) || !m.canceled || m.Submitted() {
			t.Error("expected cancel and quit")
		}
	})

	t.Run("view lists fields", func(t *testing.T) {
		view := NewSetupModel(shared.SpotifyConfig{}).View()
		for _, label := range fieldLabels {
			if !strings.Contains(view, label) {
				t.Errorf("view missing %q", label)
			}
		}
	})
}

func TestPalette(t *testing.T) {
	if !strings.Contains(Styles.Ok("connected"), "✓ connected") {
		t.Error("Ok should prefix a check mark")
	}
	if !strings.Contains(Styles.Err("failed"), "✗ failed") {
		t.Error("Err should prefix a cross")
	}
}
