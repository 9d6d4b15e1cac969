package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Styles
var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	cursorStyle  = focusedStyle
	checkedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Select  key.Binding
	Combine key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open dir")),
	Select:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	Combine: key.NewBinding(key.WithKeys("c", "b"), key.WithHelp("c", "combine selected")),
	Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
}

func helpLine() string {
	bindings := []key.Binding{keys.Up, keys.Down, keys.Open, keys.Select, keys.Combine, keys.Quit}
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		parts[i] = h.Key + ": " + h.Desc
	}
	return strings.Join(parts, " | ")
}

type fileItem struct {
	path     string
	name     string
	isDir    bool
	selected bool
}

type model struct {
	path     string
	outDir   string
	files    []fileItem
	cursor   int
	status   string
	failed   bool
	quitting bool
}

func initialModel(dir string) model {
	m := model{
		path:   dir,
		outDir: dir,
		status: helpLine(),
	}
	m.loadFiles()
	return m
}

func (m *model) loadFiles() {
	entries, err := os.ReadDir(m.path)
	if err != nil {
		m.status = "Error reading directory"
		m.failed = true
		return
	}

	m.files = []fileItem{{name: "..", isDir: true, path: filepath.Dir(m.path)}}
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && !strings.EqualFold(filepath.Ext(name), shareExt) {
			continue
		}
		m.files = append(m.files, fileItem{
			name:  name,
			isDir: e.IsDir(),
			path:  filepath.Join(m.path, name),
		})
	}
	m.cursor = 0
}

func (m model) selectedPaths() []string {
	var paths []string
	for _, f := range m.files {
		if f.selected {
			paths = append(paths, f.path)
		}
	}
	return paths
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.files)-1 {
				m.cursor++
			}

		case key.Matches(msg, keys.Open):
			if len(m.files) > 0 && m.files[m.cursor].isDir {
				m.path = m.files[m.cursor].path
				m.loadFiles()
			}

		case key.Matches(msg, keys.Select):
			if len(m.files) > 0 && !m.files[m.cursor].isDir {
				m.files[m.cursor].selected = !m.files[m.cursor].selected
			}

		case key.Matches(msg, keys.Combine):
			return m, combineSelected(m.selectedPaths(), m.outDir)
		}

	case combineResult:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.failed = true
			break
		}
		m.status = fmt.Sprintf("Success! Secret recovered into %s", m.outDir)
		m.failed = false
		for i := range m.files {
			m.files[i].selected = false
		}
	}

	return m, nil
}

type combineResult struct {
	err error
}

func combineSelected(paths []string, outDir string) tea.Cmd {
	return func() tea.Msg {
		if len(paths) == 0 {
			return combineResult{err: errors.New("no shares selected")}
		}
		return combineResult{err: combineFiles(paths, outDir, false)}
	}
}

func (m model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Directory: %s\n\n", m.path)

	for i, file := range m.files {
		if m.cursor == i {
			b.WriteString(cursorStyle.Render(">"))
		} else {
			b.WriteString(" ")
		}

		var line string
		if file.isDir {
			line = fmt.Sprintf("[DIR] %s", file.name)
		} else {
			checked := " "
			if file.selected {
				checked = "x"
			}
			line = fmt.Sprintf("[%s] %s", checked, file.name)
		}
		if file.selected {
			line = checkedStyle.Render(line)
		}
		b.WriteString(" " + line + "\n")
	}

	status := m.status
	if m.failed {
		status = errorStyle.Render(status)
	}
	fmt.Fprintf(&b, "\n%s\n", status)
	return docStyle.Render(b.String())
}

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Terminal UI for picking shares to combine",
	Long: `Browse for armored share files, select them and combine them. Recovered
secrets are written to the directory the UI was started in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}

		// Log lines would tear the rendered UI.
		logger := log.Logger
		log.Logger = zerolog.Nop()
		defer func() { log.Logger = logger }()

		p := tea.NewProgram(initialModel(cwd), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
