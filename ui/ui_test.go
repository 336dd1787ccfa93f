package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/config"
)

func testModel() model {
	return newModel(Config{}, config.Default())
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{}
}

func TestTabSwitch(t *testing.T) {
	m := testModel()
	if m.tab != tabTTS {
		t.Fatalf("expected initial tab to be %v, got %v", tabTTS, m.tab)
	}

	next, _ := m.Update(keyMsg("tab"))
	m = next.(model)
	if m.tab != tabSTT {
		t.Errorf("expected tab %v after switch, got %v", tabSTT, m.tab)
	}

	next, _ = m.Update(keyMsg("tab"))
	m = next.(model)
	if m.tab != tabTTS {
		t.Errorf("expected tab %v after second switch, got %v", tabTTS, m.tab)
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	m := testModel()
	m.pdfFiles = []fileItem{
		{path: "/tmp/a.pdf", note: "a.pdf"},
		{path: "/tmp/b.pdf", note: "b.pdf"},
	}

	next, _ := m.Update(keyMsg("up"))
	m = next.(model)
	if m.cursor[tabTTS] != 0 {
		t.Errorf("cursor moved above first item: %d", m.cursor[tabTTS])
	}

	for i := 0; i < 5; i++ {
		next, _ = m.Update(keyMsg("down"))
		m = next.(model)
	}
	if m.cursor[tabTTS] != 1 {
		t.Errorf("cursor moved past last item: %d", m.cursor[tabTTS])
	}
}

func TestMicToggleOnlyOnSTTTab(t *testing.T) {
	m := testModel()

	next, _ := m.Update(keyMsg("m"))
	m = next.(model)
	if m.micMode {
		t.Error("mic mode toggled on the TTS tab")
	}

	m.tab = tabSTT
	next, _ = m.Update(keyMsg("m"))
	m = next.(model)
	if !m.micMode {
		t.Error("mic mode did not toggle on the STT tab")
	}
}

func TestStartConversionWithoutFiles(t *testing.T) {
	m := testModel()

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(model)
	if cmd != nil {
		t.Error("expected no command when there is nothing to convert")
	}
	if m.running {
		t.Error("model should not be running")
	}
	if !m.statusErr {
		t.Errorf("expected an error status, got %q", m.status)
	}
}

func TestStartMicConversionNeedsNoFile(t *testing.T) {
	m := testModel()
	m.tab = tabSTT
	m.micMode = true

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(model)
	if cmd == nil {
		t.Fatal("expected a conversion command for mic input")
	}
	if !m.running {
		t.Error("model should be running")
	}
	if m.cancel == nil {
		t.Error("running conversion should be cancellable")
	}
	m.cancel()
}

func TestFinishConversion(t *testing.T) {
	m := testModel()
	m.running = true

	next, _ := m.Update(conversionDoneMsg{transcript: "hello there"})
	m = next.(model)
	if m.running {
		t.Error("model still running after completion")
	}
	if m.transcript != "hello there" {
		t.Errorf("transcript not stored: %q", m.transcript)
	}
	if m.statusErr {
		t.Errorf("unexpected error status: %q", m.status)
	}
}

func TestFinishConversionCancelled(t *testing.T) {
	m := testModel()
	m.running = true

	next, _ := m.Update(conversionDoneMsg{err: context.Canceled})
	m = next.(model)
	if m.statusErr {
		t.Error("cancellation should not be reported as an error")
	}
	if m.status != "Cancelled" {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestFinishConversionKeepsTranscriptOnSpeakBack(t *testing.T) {
	m := testModel()
	m.transcript = "existing words"

	next, _ := m.Update(conversionDoneMsg{})
	m = next.(model)
	if m.transcript != "existing words" {
		t.Errorf("transcript was clobbered: %q", m.transcript)
	}
}

func TestFileItemKind(t *testing.T) {
	if !(fileItem{path: "/x/report.PDF"}).isPDF() {
		t.Error("uppercase extension not recognized as PDF")
	}
	if (fileItem{path: "/x/take.wav"}).isPDF() {
		t.Error("WAV recognized as PDF")
	}
}

func TestSortFileItems(t *testing.T) {
	items := []fileItem{{note: "b.pdf"}, {note: "a.pdf"}, {note: "c.pdf"}}
	sortFileItems(items)
	if items[0].note != "a.pdf" || items[2].note != "c.pdf" {
		t.Errorf("items not sorted: %v", items)
	}
}

func TestViewShowsEmptyState(t *testing.T) {
	m := testModel()
	m.width = 80
	m.height = 24

	view := m.View()
	if !strings.Contains(view, "No PDF files found") {
		t.Errorf("empty state missing from view:\n%s", view)
	}
}

func TestViewShowsTranscript(t *testing.T) {
	m := testModel()
	m.width = 80
	m.height = 24
	m.transcript = "the quick brown fox"

	view := m.View()
	if !strings.Contains(view, "the quick brown fox") {
		t.Errorf("transcript missing from view:\n%s", view)
	}
}
