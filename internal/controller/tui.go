package controller

import (
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	m "github.com/mouse-blink/heft/internal/model"
)

// TUI implements UI with an interactive Bubble Tea interface.
type TUI struct {
	output  io.Writer
	program *tea.Program
	done    chan struct{}
	started bool
}

// NewTUI creates a new TUI writing to the given output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the interactive program for the requested mode.
func (t *TUI) Start(options ...StartOption) error {
	config := StartConfig{}

	for _, option := range options {
		option(&config)
	}

	if config.mode == ModeScore {
		return t.startWithModel(newScoreModel())
	}

	return t.startWithModel(newScanModel())
}

func (t *TUI) startWithModel(model tea.Model) error {
	t.program = tea.NewProgram(model, tea.WithOutput(t.output), tea.WithMouseCellMotion())
	t.done = make(chan struct{})
	t.started = true

	go func() {
		defer close(t.done)

		if _, err := t.program.Run(); err != nil {
			slog.Error("TUI terminated", "error", err)
		}
	}()

	return nil
}

func (t *TUI) send(msg tea.Msg) {
	if t.program == nil {
		return
	}

	t.program.Send(msg)
}

func (t *TUI) ensureStarted() {
	if t.started {
		return
	}

	_ = t.Start()
}

// Wait blocks until the user closes the interface.
func (t *TUI) Wait() {
	if t.done == nil {
		return
	}

	<-t.done
}

// Close shuts the interactive program down.
func (t *TUI) Close() {
	if t.program == nil {
		return
	}

	t.program.Quit()
	<-t.done
	t.program = nil
}

// DisplayScan shows the scanned source files or the scan error.
func (t *TUI) DisplayScan(sources []m.Source, err error) error {
	t.ensureStarted()

	if err != nil {
		_, _ = fmt.Fprintf(t.output, "scan error: %v\n", err)

		return err
	}

	if t.program == nil {
		_, _ = fmt.Fprintf(t.output, "Found %d source file(s)\n", len(sources))

		return nil
	}

	t.send(scanMsg{sources: sources})

	return nil
}

// DisplayScores shows the scored scopes or the scoring error.
func (t *TUI) DisplayScores(files []m.FileScore, top int, err error) error {
	t.ensureStarted()

	if err != nil {
		_, _ = fmt.Fprintf(t.output, "score error: %v\n", err)

		return err
	}

	if t.program == nil {
		_, _ = fmt.Fprintf(t.output, "Scored %d file(s), total %d\n", len(files), totalScore(files))

		return nil
	}

	t.send(scoresMsg{files: files, top: top})

	return nil
}

// DisplayConcurencyInfo shows concurrency settings.
func (t *TUI) DisplayConcurencyInfo(threads int, files int) {
	t.ensureStarted()

	if t.program == nil {
		_, _ = fmt.Fprintf(t.output, "Scoring %d file(s) with %d worker(s)\n", files, threads)

		return
	}

	t.send(concurrencyMsg{threads: threads, files: files})
}

// DisplayUpcomingScoresInfo shows the number of files queued for scoring.
func (t *TUI) DisplayUpcomingScoresInfo(paths []m.Path) {
	t.ensureStarted()

	if t.program == nil {
		_, _ = fmt.Fprintf(t.output, "Upcoming files: %d\n", len(paths))

		return
	}

	t.send(upcomingMsg{count: len(paths)})
}

// DisplayScoringStartedInfo shows which file a worker picked up.
func (t *TUI) DisplayScoringStartedInfo(path m.Path, thread int) {
	t.ensureStarted()

	if t.program == nil {
		_, _ = fmt.Fprintf(t.output, "Scoring %s\n", path)

		return
	}

	t.send(fileStartedMsg{path: string(path), thread: thread})
}

// DisplayScoringCompletedInfo shows the total for a scored file.
func (t *TUI) DisplayScoringCompletedInfo(file m.FileScore) {
	t.ensureStarted()

	if t.program == nil {
		_, _ = fmt.Fprintf(t.output, "Scored %s: %d\n", file.File, file.Total())

		return
	}

	t.send(fileScoredMsg{path: string(file.File), total: file.Total(), scopes: file.ScopeCount()})
}
