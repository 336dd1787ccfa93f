package ui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/muesli/gitcha"
)

var inputExtensions = []string{"*.pdf", "*.wav"}

// fileItem is an input file found in the working directory.
type fileItem struct {
	path string // absolute
	note string // path relative to cwd, for display
	size int64
}

func (f fileItem) isPDF() bool {
	return strings.EqualFold(filepath.Ext(f.path), ".pdf")
}

func (f fileItem) label() string {
	return f.note + " " + subtleStyle.Render(humanize.Bytes(uint64(f.size))) //nolint:gosec
}

type (
	initLocalFileSearchMsg struct {
		cwd string
		ch  chan gitcha.SearchResult
	}
	foundLocalFileMsg       gitcha.SearchResult
	localFileSearchFinished struct{}
)

// findLocalFiles searches the working directory for PDF and WAV files.
func findLocalFiles(m model) tea.Cmd {
	return func() tea.Msg {
		var (
			cwd = m.cfg.Path
			err error
		)

		if cwd == "" {
			cwd, err = os.Getwd()
		} else {
			var info os.FileInfo
			info, err = os.Stat(cwd)
			if err == nil && info.IsDir() {
				cwd, err = filepath.Abs(cwd)
			}
		}

		// Note that this is one error check for both cases above
		if err != nil {
			log.Error("error finding local files", "error", err)
			return errMsg{err}
		}

		log.Debug("local directory is", "cwd", cwd)

		// Switch between FindFiles and FindAllFiles to bypass .gitignore rules
		var ch chan gitcha.SearchResult
		if m.cfg.ShowAllFiles {
			ch, err = gitcha.FindAllFilesExcept(cwd, inputExtensions, nil)
		} else {
			ch, err = gitcha.FindFilesExcept(cwd, inputExtensions, []string{"node_modules", ".*"})
		}

		if err != nil {
			log.Error("error finding local files", "error", err)
			return errMsg{err}
		}

		return initLocalFileSearchMsg{ch: ch, cwd: cwd}
	}
}

func findNextLocalFile(m model) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-m.fileFinder
		if ok {
			return foundLocalFileMsg(res)
		}
		// We're done
		log.Debug("local file search finished")
		return localFileSearchFinished{}
	}
}

func localFileToItem(cwd string, res gitcha.SearchResult) fileItem {
	return fileItem{
		path: res.Path,
		note: stripAbsolutePath(res.Path, cwd),
		size: res.Info.Size(),
	}
}

func stripAbsolutePath(fullPath, cwd string) string {
	fp, _ := filepath.EvalSymlinks(fullPath)
	cp, _ := filepath.EvalSymlinks(cwd)
	return strings.ReplaceAll(fp, cp+string(os.PathSeparator), "")
}

func sortFileItems(items []fileItem) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].note < items[j].note
	})
}
