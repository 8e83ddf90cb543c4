package watch

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lotl/internal/diag"
	"lotl/internal/diagfmt"
)

const pollInterval = 300 * time.Millisecond

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

type tickMsg time.Time
type snapshotMsg Snapshot

// Model is a Bubble Tea model that polls a source file's mtime and
// recompiles it whenever it changes, rendering the latest diagnostics.
type Model struct {
	path     string
	spinner  spinner.Model
	last     Snapshot
	lastMod  time.Time
	compiles int
	width    int
}

// NewModel returns a watch Model rooted at path. The first tick
// triggers an immediate compile since lastMod starts at the zero time.
func NewModel(path string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	return Model{path: path, spinner: sp, width: 80}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tick(), recompileCmd(m.path))
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func recompileCmd(path string) tea.Cmd {
	return func() tea.Msg { return snapshotMsg(recompile(path)) }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tickMsg:
		current := modTime(m.path)
		if current.IsZero() || current.Equal(m.lastMod) {
			return m, tick()
		}
		m.lastMod = current
		return m, tea.Batch(tick(), recompileCmd(m.path))
	case snapshotMsg:
		m.last = Snapshot(msg)
		m.compiles++
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	status := pendingStyle.Render("watching")
	if m.compiles > 0 {
		if m.last.Err != nil {
			status = errStyle.Render("error")
		} else if m.last.HasErrors() {
			status = errStyle.Render("errors")
		} else {
			status = okStyle.Render("ok")
		}
	}
	header := fmt.Sprintf("%s %s — %s (build %d)", m.spinner.View(), pathStyle.Render(m.path), status, m.compiles)
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	switch {
	case m.compiles == 0:
		b.WriteString("compiling…\n")
	case m.last.Err != nil:
		fmt.Fprintf(&b, "failed to compile: %v\n", m.last.Err)
	case len(m.last.Diagnostics) == 0:
		b.WriteString(okStyle.Render("no diagnostics") + "\n")
	default:
		bag := diag.NewBag(max(len(m.last.Diagnostics), 1))
		for i := range m.last.Diagnostics {
			bag.Add(&m.last.Diagnostics[i])
		}
		bag.Sort()
		diagfmt.Pretty(&b, bag, m.last.FileSet, diagfmt.PrettyOpts{Color: true, Context: 1, ShowNotes: true})
	}

	b.WriteString("\n")
	b.WriteString(pendingStyle.Render("q to quit, watching for changes every ") + pollInterval.String())
	b.WriteString("\n")
	return b.String()
}
