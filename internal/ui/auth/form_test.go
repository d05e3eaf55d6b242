package auth

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeInto(f *Form, text string) {
	for _, r := range text {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func fillCredentials(f *Form, email, password string) {
	typeInto(f, email)
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeInto(f, password)
}

func TestFormSubmit(t *testing.T) {
	f := NewForm()
	fillCredentials(f, "user@example.com", "hunter2")

	cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected submit command")
	}

	msg, ok := cmd().(SubmitMsg)
	if !ok {
		t.Fatalf("expected SubmitMsg, got %T", cmd())
	}
	if msg.SignUp {
		t.Error("expected sign-in submit by default")
	}
	if msg.Email != "user@example.com" {
		t.Errorf("expected email, got %q", msg.Email)
	}
	if msg.Password != "hunter2" {
		t.Errorf("expected password, got %q", msg.Password)
	}
}

func TestFormSubmitRequiresBothFields(t *testing.T) {
	f := NewForm()
	typeInto(f, "user@example.com")

	cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected validation command")
	}
	msg, ok := cmd().(ValidationMsg)
	if !ok {
		t.Fatalf("expected ValidationMsg, got %T", cmd())
	}
	if msg.Field != "password" {
		t.Errorf("expected password flagged, got %q", msg.Field)
	}
}

func TestFormTabToggle(t *testing.T) {
	f := NewForm()

	f.Update(tea.KeyMsg{Type: tea.KeyRight})
	fillCredentials(f, "user@example.com", "hunter2")

	cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected submit command")
	}

	msg := cmd().(SubmitMsg)
	if !msg.SignUp {
		t.Error("expected sign-up submit after switching tabs")
	}
}

func TestFormBusyIgnoresInput(t *testing.T) {
	f := NewForm()
	fillCredentials(f, "user@example.com", "hunter2")
	f.SetBusy(true)

	if cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("expected no submit while busy")
	}

	typeInto(f, "x")
	if strings.Contains(f.email.Value(), "x") || strings.Contains(f.password.Value(), "x") {
		t.Error("expected typing ignored while busy")
	}
}

func TestFormView(t *testing.T) {
	f := NewForm()
	view := f.View()

	for _, want := range []string{"Taskdeck", "Sign In", "Sign Up", "Email", "Password"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}

	f.SetBusy(true)
	if !strings.Contains(f.View(), "Signing in...") {
		t.Error("expected busy hint while request is in flight")
	}
}
