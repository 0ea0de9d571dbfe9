package ui

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func testTheme() *Theme {
	return NewTheme(ThemeConfig{NoColor: true, Mode: "dark"})
}

// newTestProgram creates a tea.Program configured for test environments without a TTY.
func newTestProgram(m tea.Model) *tea.Program {
	return tea.NewProgram(m,
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
	)
}

// waitFor fails the test if done is not closed within two seconds.
func waitFor(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Error("tea.Program did not exit within 2 second timeout")
	}
}

func TestInteractiveSpinner_SetTitleThenStop(t *testing.T) {
	s := startSpinner(newTestProgram(newSpinnerModel(testTheme(), "Resolving")))

	s.SetTitle("Materializing")
	s.Stop()

	waitFor(t, s.done)
}

func TestInteractiveSpinner_Stop_Idempotent(t *testing.T) {
	s := startSpinner(newTestProgram(newSpinnerModel(testTheme(), "Resolving")))

	s.Stop()
	s.Stop()
	s.Stop()

	waitFor(t, s.done)
}

func TestInteractiveProgressBar(t *testing.T) {
	b := startProgressBar(newTestProgram(newProgressModel(testTheme(), "Sweeping", 4)))

	b.Increment(1)
	b.SetTitle("api-service_sqlite_sqlx")
	b.Println("✓ api-service_sqlite_sqlx")
	b.Increment(3)
	b.Done()
	b.Done()

	waitFor(t, b.done)
}

func TestSpinnerModel_Update(t *testing.T) {
	m := newSpinnerModel(NewTheme(ThemeConfig{Mode: "dark"}), "Ticking")

	updated, _ := m.Update(spinnerTitleMsg("Renamed"))
	if got := updated.(spinnerModel).title; got != "Renamed" {
		t.Errorf("title = %q, want %q", got, "Renamed")
	}

	tick := m.Init()
	if tick == nil {
		t.Fatal("Init should return a non-nil tick command")
	}
	if msg, ok := tick().(spinner.TickMsg); ok {
		updated, _ = m.Update(msg)
		if updated.(spinnerModel).done {
			t.Error("tick should not stop the spinner")
		}
	}

	updated, cmd := m.Update(spinnerStopMsg{})
	if !updated.(spinnerModel).done || cmd == nil {
		t.Error("stop should finish the model and quit")
	}
	if v := updated.(spinnerModel).View(); v != "" {
		t.Errorf("View after stop = %q, want empty", v)
	}
}

func TestProgressModel_Update(t *testing.T) {
	m := newProgressModel(NewTheme(ThemeConfig{Mode: "dark"}), "Sweeping", 10)

	updated, _ := m.Update(progressIncrMsg(4))
	m = updated.(progressModel)
	if m.current != 4 {
		t.Errorf("current = %d, want 4", m.current)
	}

	updated, _ = m.Update(progressIncrMsg(20))
	m = updated.(progressModel)
	if m.current != 10 {
		t.Errorf("current = %d, want clamped to 10", m.current)
	}
	if !strings.Contains(m.View(), "[10/10] Sweeping") {
		t.Errorf("View = %q, want counter", m.View())
	}

	updated, _ = m.Update(progress.FrameMsg{})
	if updated.(progressModel).done {
		t.Error("FrameMsg should not mark the progress bar as done")
	}

	if got := (progressModel{}).percent(); got != 0 {
		t.Errorf("percent with zero total = %v, want 0", got)
	}
}

func TestHeadlessProgress(t *testing.T) {
	hm := NewHeadlessManager()
	hm.ForceHeadless(true)

	var buf strings.Builder
	p := NewProgress(testTheme(), hm, &buf)

	sp := p.Spinner("Generating orders")
	sp.SetTitle("Writing files")
	sp.Stop()

	bar := p.Start("Sweeping", 2)
	bar.Increment(1)
	bar.Println("✗ web-app_none_none: destination exists")
	bar.Increment(5)
	bar.Done()

	want := "Generating orders\nWriting files\n[1/2] Sweeping\n✗ web-app_none_none: destination exists\n[2/2] Sweeping\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestHeadlessManager_Force(t *testing.T) {
	hm := NewHeadlessManager()
	hm.ForceHeadless(false)
	if hm.IsHeadless() {
		t.Error("forced interactive mode reported headless")
	}
	hm.ForceHeadless(true)
	if !hm.IsHeadless() {
		t.Error("forced headless mode reported interactive")
	}
	hm.ClearForce()

	detached := &HeadlessManager{}
	if !detached.IsHeadless() {
		t.Error("manager without terminals must be headless")
	}
}
