package controller

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "ghostscan.dev/pkg/ghostscan/internal/model"
)

// maxVisibleFailures caps the failure list rendered below the progress bar.
const maxVisibleFailures = 10

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	passedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

type (
	headerMsg string
	totalMsg  int
	resultMsg m.Result
	doneMsg   struct{}
)

// TUI renders a live progress view with Bubble Tea. The header and reported
// module names are written to out once the view closes, so the list survives
// the redraws.
type TUI struct {
	view io.Writer
	out  io.Writer

	// options are appended to the program options on Start.
	options []tea.ProgramOption

	mu       sync.Mutex
	program  *tea.Program
	finished chan struct{}
	header   string
	reported []string
	fallback *SimpleUI
}

// NewTUI creates a TUI drawing on view and listing results on out.
func NewTUI(view, out io.Writer, fallback *SimpleUI) *TUI {
	return &TUI{view: view, out: out, fallback: fallback}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := newStartConfig(options...)

	programOptions := append([]tea.ProgramOption{
		tea.WithOutput(t.view),
		tea.WithContext(ctx),
	}, t.options...)

	program := tea.NewProgram(newScanModel(cfg.cancel), programOptions...)

	finished := make(chan struct{})

	go func() {
		defer close(finished)

		_, _ = program.Run()
	}()

	t.mu.Lock()
	t.program = program
	t.finished = finished
	t.mu.Unlock()

	return nil
}

// Close stops the program, waits for it to exit and prints reported modules.
func (t *TUI) Close(_ context.Context) {
	t.mu.Lock()
	program, finished := t.program, t.finished
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Send(doneMsg{})
	<-finished

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.header != "" {
		_, _ = io.WriteString(t.out, t.header+"\n")
	}

	for _, name := range t.reported {
		_, _ = io.WriteString(t.out, name+"\n")
	}

	t.program = nil
}

// DisplayHeader shows the header as the view title and keeps it for out.
func (t *TUI) DisplayHeader(_ context.Context, header string) {
	t.mu.Lock()
	t.header = header
	t.mu.Unlock()

	t.send(headerMsg(header))
}

// DisplayModuleCount sets the progress bar total.
func (t *TUI) DisplayModuleCount(_ context.Context, total int) {
	t.send(totalMsg(total))
}

// DisplayResult advances the progress bar and records reported modules.
func (t *TUI) DisplayResult(_ context.Context, result m.Result) {
	if result.Reported() {
		t.mu.Lock()
		t.reported = append(t.reported, result.Module.Name)
		t.mu.Unlock()
	}

	t.send(resultMsg(result))
}

// DisplaySummary is rendered by the live view; nothing more to do.
func (t *TUI) DisplaySummary(_ context.Context, _ m.Summary) {}

// DisplayListing is not interactive and defers to the plain UI.
func (t *TUI) DisplayListing(ctx context.Context, modules []m.Module, err error) error {
	return t.fallback.DisplayListing(ctx, modules, err)
}

func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program != nil {
		program.Send(msg)
	}
}

// scanModel is the Bubble Tea model behind TUI.
type scanModel struct {
	header   string
	spinner  spinner.Model
	progress progress.Model
	total    int
	summary  m.Summary
	failures []string
	cancel   context.CancelFunc
	done     bool
	quitting bool
}

func newScanModel(cancel context.CancelFunc) scanModel {
	return scanModel{
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		cancel:   cancel,
	}
}

func (sm scanModel) Init() tea.Cmd {
	return sm.spinner.Tick
}

func (sm scanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case headerMsg:
		sm.header = string(msg)
		return sm, nil

	case totalMsg:
		sm.total = int(msg)
		return sm, nil

	case resultMsg:
		result := m.Result(msg)
		sm.summary.Add(result)

		if result.Reported() {
			sm.failures = append(sm.failures, result.Module.Name)
		}

		return sm, nil

	case doneMsg:
		sm.done = true
		return sm, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			sm.quitting = true
			if sm.cancel != nil {
				sm.cancel()
			}

			return sm, tea.Quit
		}

		return sm, nil

	case tea.WindowSizeMsg:
		width := msg.Width - 4
		if width > 80 {
			width = 80
		}

		if width > 10 {
			sm.progress.Width = width
		}

		return sm, nil

	case spinner.TickMsg:
		var cmd tea.Cmd

		sm.spinner, cmd = sm.spinner.Update(msg)

		return sm, cmd
	}

	return sm, nil
}

func (sm scanModel) percent() float64 {
	if sm.total <= 0 {
		return 0
	}

	pct := float64(sm.summary.Total) / float64(sm.total)
	if pct > 1 {
		return 1
	}

	return pct
}

func (sm scanModel) View() string {
	var b strings.Builder

	if sm.header != "" {
		b.WriteString(titleStyle.Render(sm.header) + "\n\n")
	}

	status := sm.spinner.View() + " Scanning"
	if sm.done {
		status = passedStyle.Render("✓") + " Done"
	}

	fmt.Fprintf(&b, "%s %d/%d modules\n", status, sm.summary.Total, sm.total)
	b.WriteString(sm.progress.ViewAs(sm.percent()) + "\n\n")

	b.WriteString(countStyle.Render(fmt.Sprintf(
		"passed %d · expected %d · unexpected %d · timed out %d",
		sm.summary.Passed, sm.summary.Expected, sm.summary.Unexpected, sm.summary.TimedOut,
	)) + "\n")

	if len(sm.failures) > 0 {
		b.WriteString("\n")

		start := 0
		if len(sm.failures) > maxVisibleFailures {
			start = len(sm.failures) - maxVisibleFailures
			fmt.Fprintf(&b, "  … %d more\n", start)
		}

		for _, name := range sm.failures[start:] {
			b.WriteString("  " + failureStyle.Render(name) + "\n")
		}
	}

	if !sm.done && !sm.quitting {
		b.WriteString("\n" + hintStyle.Render("q: abort") + "\n")
	}

	return b.String()
}
