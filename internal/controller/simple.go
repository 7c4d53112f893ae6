package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "ghostscan.dev/pkg/ghostscan/internal/model"
)

// SimpleUI prints one reported module per line on the command's stdout.
// Summaries and tables go to stderr so stdout stays a plain list.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI (no-op for SimpleUI).
func (s *SimpleUI) Close(_ context.Context) {}

// DisplayHeader prints the leading comment line.
func (s *SimpleUI) DisplayHeader(ctx context.Context, header string) {
	if ctx.Err() != nil {
		return
	}

	s.println(s.cmd.OutOrStdout(), header)
}

// DisplayModuleCount is a no-op; plain output carries no progress.
func (s *SimpleUI) DisplayModuleCount(_ context.Context, _ int) {}

// DisplayResult prints the module name when the result is reported.
// Each line is a single write so it reaches the reader immediately.
func (s *SimpleUI) DisplayResult(_ context.Context, result m.Result) {
	if !result.Reported() {
		return
	}

	s.println(s.cmd.OutOrStdout(), result.Module.Name)
}

// DisplaySummary renders outcome counts on stderr.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.Summary) {
	if ctx.Err() != nil {
		return
	}

	_, _ = io.WriteString(s.cmd.ErrOrStderr(), "\n"+renderSummaryTable(summary))
}

// DisplayListing prints module names on stdout and a per-package table on stderr.
// A listing error is returned unprinted.
func (s *SimpleUI) DisplayListing(ctx context.Context, modules []m.Module, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil {
		return err
	}

	for _, module := range modules {
		s.println(s.cmd.OutOrStdout(), module.Name)
	}

	_, _ = io.WriteString(s.cmd.ErrOrStderr(), "\n"+renderPackageTable(buildPackageStats(modules), len(modules)))

	return nil
}

func (s *SimpleUI) println(w io.Writer, line string) {
	_, _ = io.WriteString(w, line+"\n")
}

type packageStat struct {
	name  string
	count int
}

// buildPackageStats groups modules by their top-level package.
func buildPackageStats(modules []m.Module) []packageStat {
	counts := make(map[string]int)

	for _, module := range modules {
		top, _, _ := strings.Cut(module.Name, ".")
		counts[top]++
	}

	stats := make([]packageStat, 0, len(counts))
	for name, count := range counts {
		stats = append(stats, packageStat{name: name, count: count})
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].name < stats[j].name
	})

	return stats
}

func renderPackageTable(stats []packageStat, total int) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Package", "Modules"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, stat := range stats {
		table.Append([]string{stat.name, fmt.Sprintf("%d", stat.count)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Packages %d", len(stats)),
		fmt.Sprintf("%d", total),
	})

	table.Render()

	return buf.String()
}

func renderSummaryTable(summary m.Summary) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Outcome", "Modules"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	table.Append([]string{m.Passed.String(), fmt.Sprintf("%d", summary.Passed)})
	table.Append([]string{m.Expected.String(), fmt.Sprintf("%d", summary.Expected)})
	table.Append([]string{m.Unexpected.String(), fmt.Sprintf("%d", summary.Unexpected)})
	table.Append([]string{"timed out", fmt.Sprintf("%d", summary.TimedOut)})

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", summary.Total)})

	table.Render()

	return buf.String()
}
