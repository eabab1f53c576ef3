package controller

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/heft/internal/model"
)

// shortHashLength is how many hash characters the scan table shows per file.
const shortHashLength = 8

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(_ ...StartOption) error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {

}

// Wait returns immediately; plain text output has nothing to keep open.
func (s *SimpleUI) Wait() {

}

// DisplayScan prints the scanned source files or the scan error.
func (s *SimpleUI) DisplayScan(sources []m.Source, err error) error {
	if err != nil {
		s.printf("scan error: %v\n", err)
		return err
	}

	if len(sources) == 0 {
		s.printf("No source files found\n")
		return nil
	}

	sorted := make([]m.Source, len(sources))
	copy(sorted, sources)

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Origin < sorted[j].Origin
	})

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Hash"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, source := range sorted {
		table.Append([]string{string(source.Origin), shortHash(source.Hash)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(sorted)),
		"",
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayScores prints the scored scopes ordered by score, or the error.
func (s *SimpleUI) DisplayScores(files []m.FileScore, top int, err error) error {
	if err != nil {
		s.printf("score error: %v\n", err)
		return err
	}

	if len(files) == 0 {
		s.printf("No scores to display\n")
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Score", "Scope", "Location"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, row := range scopeRows(files, top) {
		table.Append([]string{fmt.Sprintf("%d", row.score), row.signature, row.location})
	}

	table.SetFooter([]string{
		fmt.Sprintf("%d", totalScore(files)),
		fmt.Sprintf("Total Files %d", len(files)),
		"",
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayConcurencyInfo shows concurrency settings.
func (s *SimpleUI) DisplayConcurencyInfo(threads int, files int) {
	s.printf("Scoring %d file(s) with %d worker(s)\n", files, threads)
}

// DisplayUpcomingScoresInfo shows the number of files queued for scoring.
func (s *SimpleUI) DisplayUpcomingScoresInfo(paths []m.Path) {
	s.printf("Upcoming files: %d\n", len(paths))
}

// DisplayScoringStartedInfo shows which file a worker picked up.
func (s *SimpleUI) DisplayScoringStartedInfo(path m.Path, _ int) {
	s.printf("Scoring %s\n", path)
}

// DisplayScoringCompletedInfo shows the total for a scored file.
func (s *SimpleUI) DisplayScoringCompletedInfo(file m.FileScore) {
	s.printf("Scored %s: %d\n", file.File, file.Total())
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

// scopeRows flattens file scores into display rows ordered by score, highest
// first. A positive top limits the result to that many rows.
func scopeRows(files []m.FileScore, top int) []scopeRow {
	rows := make([]scopeRow, 0)

	for _, file := range files {
		for _, scope := range file.Scopes {
			rows = append(rows, scopeRow{
				score:     scope.Score,
				signature: scope.Signature,
				location:  scopeLocation(file.File, scope.Line),
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].score > rows[j].score
	})

	if top > 0 && len(rows) > top {
		rows = rows[:top]
	}

	return rows
}

// scopeLocation renders a file position. Whole-file scopes carry line zero
// and display as the bare path.
func scopeLocation(path m.Path, line int) string {
	if line == 0 {
		return string(path)
	}

	return fmt.Sprintf("%s:%d", path, line)
}

// totalScore sums the file totals.
func totalScore(files []m.FileScore) int {
	total := 0

	for _, file := range files {
		total += file.Total()
	}

	return total
}

// scopeCount sums the scope counts across files.
func scopeCount(files []m.FileScore) int {
	count := 0

	for _, file := range files {
		count += file.ScopeCount()
	}

	return count
}

func shortHash(hash string) string {
	if len(hash) > shortHashLength {
		return hash[:shortHashLength]
	}

	return hash
}
