// Package ui provides the interactive interface for the pdf-audio
// application.
package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/gitcha"
	"github.com/muesli/reflow/wordwrap"

	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/config"
)

const maxVisibleFiles = 8

// NewProgram returns a new Tea program.
func NewProgram(cfg Config, conv config.Config) *tea.Program {
	log.Debug("Starting pdf-audio", "engine", conv.TTS.Engine, "backend", conv.STT.Backend)
	return tea.NewProgram(newModel(cfg, conv), tea.WithAltScreen())
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// tab selects the conversion direction.
type tab int

const (
	tabTTS tab = iota // PDF to audio
	tabSTT            // audio or mic to PDF
)

func (t tab) String() string {
	return map[tab]string{
		tabTTS: "PDF → Audio",
		tabSTT: "Audio → PDF",
	}[t]
}

type model struct {
	cfg  Config
	conv config.Config

	width  int
	height int
	cwd    string

	tab      tab
	pdfFiles []fileItem
	wavFiles []fileItem
	cursor   [2]int
	micMode  bool

	fileFinder chan gitcha.SearchResult

	outInput textinput.Model
	editing  bool

	spin    spinner.Model
	running bool
	cancel  context.CancelFunc

	transcript string
	status     string
	statusErr  bool
	fatalErr   error
}

func newModel(cfg Config, conv config.Config) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(fuchsia)

	ti := textinput.New()
	ti.Placeholder = "output file (optional)"
	ti.Prompt = "> "
	ti.CharLimit = 256

	return model{
		cfg:      cfg,
		conv:     conv,
		spin:     sp,
		outInput: ti,
	}
}

func (m model) Init() tea.Cmd {
	return findLocalFiles(m)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case errMsg:
		m.fatalErr = msg.err
		return m, tea.Quit

	case initLocalFileSearchMsg:
		m.cwd = msg.cwd
		m.fileFinder = msg.ch
		return m, findNextLocalFile(m)

	case foundLocalFileMsg:
		item := localFileToItem(m.cwd, gitcha.SearchResult(msg))
		if item.isPDF() {
			m.pdfFiles = append(m.pdfFiles, item)
			sortFileItems(m.pdfFiles)
		} else {
			m.wavFiles = append(m.wavFiles, item)
			sortFileItems(m.wavFiles)
		}
		return m, findNextLocalFile(m)

	case localFileSearchFinished:
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case conversionDoneMsg:
		return m.finishConversion(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "esc":
			m.editing = false
			m.outInput.Blur()
			return m, nil
		case "enter":
			m.editing = false
			m.outInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.outInput, cmd = m.outInput.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case "tab", "shift+tab":
		if m.tab == tabTTS {
			m.tab = tabSTT
		} else {
			m.tab = tabTTS
		}
		return m, nil

	case "up", "k":
		if m.cursor[m.tab] > 0 {
			m.cursor[m.tab]--
		}
		return m, nil

	case "down", "j":
		if m.cursor[m.tab] < len(m.files())-1 {
			m.cursor[m.tab]++
		}
		return m, nil

	case "m":
		if m.tab == tabSTT {
			m.micMode = !m.micMode
		}
		return m, nil

	case "o":
		m.editing = true
		m.outInput.Focus()
		return m, textinput.Blink

	case "x":
		if m.cancel != nil {
			m.cancel()
		}
		return m, nil

	case "c":
		if m.transcript == "" {
			return m, nil
		}
		if err := clipboard.WriteAll(m.transcript); err != nil {
			m.setStatus("Unable to copy: "+err.Error(), true)
		} else {
			m.setStatus("Copied transcript to clipboard", false)
		}
		return m, nil

	case "s":
		return m.saveTranscript()

	case "p":
		if m.transcript == "" || m.running {
			return m, nil
		}
		return m.startSpeakBack()

	case "enter":
		return m.startConversion()
	}
	return m, nil
}

func (m model) finishConversion(msg conversionDoneMsg) (tea.Model, tea.Cmd) {
	m.running = false
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	if msg.transcript != "" {
		m.transcript = msg.transcript
	}

	switch {
	case errors.Is(msg.err, context.Canceled):
		m.setStatus("Cancelled", false)
	case msg.err != nil:
		m.setStatus(msg.err.Error(), true)
	case msg.saved != "":
		m.setStatus("Wrote "+msg.saved, false)
	default:
		m.setStatus("Done", false)
	}
	return m, nil
}

func (m *model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m model) files() []fileItem {
	if m.tab == tabTTS {
		return m.pdfFiles
	}
	return m.wavFiles
}

func (m model) selectedFile() (fileItem, bool) {
	files := m.files()
	if len(files) == 0 {
		return fileItem{}, false
	}
	i := m.cursor[m.tab]
	if i >= len(files) {
		i = len(files) - 1
	}
	return files[i], true
}

func (m model) startConversion() (tea.Model, tea.Cmd) {
	if m.running {
		return m, nil
	}

	out := strings.TrimSpace(m.outInput.Value())
	if out != "" && !filepath.IsAbs(out) {
		out = filepath.Join(m.cwd, out)
	}

	ctx, cancel := context.WithCancel(context.Background())

	var cmd tea.Cmd
	switch m.tab {
	case tabTTS:
		f, ok := m.selectedFile()
		if !ok {
			cancel()
			m.setStatus("No PDF files found here", true)
			return m, nil
		}
		cmd = speakPDF(ctx, m.conv, f.path, out)

	case tabSTT:
		if m.micMode {
			cmd = transcribe(ctx, m.conv, "", out, m.conv.STT.MicLimit)
		} else {
			f, ok := m.selectedFile()
			if !ok {
				cancel()
				m.setStatus("No WAV files found here", true)
				return m, nil
			}
			cmd = transcribe(ctx, m.conv, f.path, out, 0)
		}
	}

	m.cancel = cancel
	m.running = true
	m.setStatus("", false)
	return m, tea.Batch(m.spin.Tick, cmd)
}

func (m model) startSpeakBack() (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.running = true
	m.setStatus("", false)
	return m, tea.Batch(m.spin.Tick, speakText(ctx, m.conv, m.transcript))
}

func (m model) saveTranscript() (tea.Model, tea.Cmd) {
	if m.transcript == "" {
		return m, nil
	}
	name := fmt.Sprintf("transcript-%s.txt", time.Now().Format("20060102-150405"))
	path := filepath.Join(m.cwd, name)
	if err := os.WriteFile(path, []byte(m.transcript+"\n"), 0o644); err != nil { //nolint:gosec
		m.setStatus("Unable to save transcript: "+err.Error(), true)
		return m, nil
	}
	m.setStatus("Wrote "+name, false)
	return m, nil
}

func (m model) View() string {
	if m.fatalErr != nil {
		return errorStyle.Render("Error: "+m.fatalErr.Error()) + "\n"
	}

	var b strings.Builder

	b.WriteString(m.tabsView())
	b.WriteString("\n\n")
	b.WriteString(m.bodyView())
	b.WriteString("\n")
	b.WriteString(m.paramsView())
	b.WriteString("\n")
	b.WriteString(m.statusView())

	if m.transcript != "" {
		width := m.width - 4
		if width < 20 {
			width = 20
		}
		b.WriteString("\n")
		b.WriteString(transcriptStyle.Render(wordwrap.String(m.transcript, width)))
	}

	b.WriteString(m.helpView())
	return b.String()
}

func (m model) tabsView() string {
	var views []string
	for _, t := range []tab{tabTTS, tabSTT} {
		if t == m.tab {
			views = append(views, activeTabStyle.Render(t.String()))
		} else {
			views = append(views, tabStyle.Render(t.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

func (m model) bodyView() string {
	if m.tab == tabSTT && m.micMode {
		return itemStyle.Render("  Microphone input") + subtleStyle.Render("  (press m for file input)") + "\n"
	}

	files := m.files()
	if len(files) == 0 {
		if m.tab == tabTTS {
			return subtleStyle.Render("  No PDF files found here.") + "\n"
		}
		return subtleStyle.Render("  No WAV files found here. Press m to use the microphone.") + "\n"
	}

	cursor := m.cursor[m.tab]
	start := 0
	if cursor >= maxVisibleFiles {
		start = cursor - maxVisibleFiles + 1
	}
	end := start + maxVisibleFiles
	if end > len(files) {
		end = len(files)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		if i == cursor {
			b.WriteString(selectedItemStyle.Render("> " + files[i].label()))
		} else {
			b.WriteString(itemStyle.Render("  " + files[i].label()))
		}
		b.WriteString("\n")
	}
	if end < len(files) {
		b.WriteString(subtleStyle.Render(fmt.Sprintf("  …and %d more", len(files)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) paramsView() string {
	var line string
	if m.tab == tabTTS {
		line = fmt.Sprintf("engine %s · %d wpm · volume %.1f", m.conv.TTS.Engine, m.conv.TTS.Rate, m.conv.TTS.Volume)
	} else {
		line = fmt.Sprintf("backend %s · %s", m.conv.STT.Backend, m.conv.STT.Language)
	}

	out := subtleStyle.Render(" " + line)
	if m.editing || m.outInput.Value() != "" {
		out += "\n " + m.outInput.View()
	}
	return out
}

func (m model) statusView() string {
	switch {
	case m.running:
		return " " + m.spin.View() + subtleStyle.Render("working, press x to cancel")
	case m.statusErr:
		return " " + errorStyle.Render(m.status)
	case m.status != "":
		return " " + statusStyle.Render(m.status)
	}
	return ""
}

func (m model) helpView() string {
	help := "tab: switch · enter: run · o: output file · x: cancel · q: quit"
	if m.tab == tabSTT {
		help = "tab: switch · enter: run · m: mic · o: output file · x: cancel · q: quit"
	}
	if m.transcript != "" {
		help += " · c: copy · s: save · p: speak"
	}
	return helpStyle.Render(help)
}
