package domain

import (
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/heft/internal/adapter"
	"github.com/mouse-blink/heft/internal/controller"
	m "github.com/mouse-blink/heft/internal/model"
)

// EstimateArgs carries the arguments for scanning source trees.
type EstimateArgs struct {
	Paths   []m.Path
	Exclude []string
}

// RunArgs carries the arguments for a scoring run.
type RunArgs struct {
	EstimateArgs
	Reports m.Path
	Threads uint
	Top     uint
}

// ViewArgs carries the arguments for viewing persisted scores.
type ViewArgs struct {
	Reports m.Path
	Top     uint
}

// Workflow defines the interface for complexity scoring operations.
type Workflow interface {
	Estimate(args EstimateArgs) error
	Run(args RunArgs) error
	View(args ViewArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.JSFileAdapter
	adapter.ReportStore
	controller.UI
	weights m.Weights
}

// NewWorkflow creates a Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	jsAdapter adapter.JSFileAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	weights m.Weights,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		JSFileAdapter:   jsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		weights:         weights,
	}
}

// Estimate scans the provided paths and displays the files a scoring run
// would cover, without scoring them.
func (w *workflow) Estimate(args EstimateArgs) error {
	if err := w.Start(controller.WithScanMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	sources, err := w.Get(args.Paths, args.Exclude...)
	if err != nil {
		w.Close()
		slog.Error("Failed to scan sources", "error", err)

		return fmt.Errorf("scan sources: %w", err)
	}

	if err := w.DisplayScan(sources, nil); err != nil {
		w.Close()
		slog.Error("Failed to display scan results", "error", err)

		return fmt.Errorf("display: %w", err)
	}

	// Wait for UI to be closed by user (press 'q')
	w.Wait()
	w.Close()

	return nil
}

// Run scans, scores and displays every matching file, persisting one report
// per file when a reports directory is configured.
func (w *workflow) Run(args RunArgs) error {
	threads := int(args.Threads)
	if threads <= 0 {
		threads = 1
	}

	if err := w.Start(controller.WithScoreMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	sources, err := w.Get(args.Paths, args.Exclude...)
	if err != nil {
		w.Close()
		slog.Error("Failed to scan sources", "error", err)

		return fmt.Errorf("scan sources: %w", err)
	}

	w.DisplayConcurencyInfo(threads, len(sources))
	w.DisplayUpcomingScoresInfo(sourcePaths(sources))

	files, err := w.scoreSources(sources, threads)
	if err != nil {
		w.Close()
		slog.Error("Failed to score sources", "error", err)

		return fmt.Errorf("score sources: %w", err)
	}

	if args.Reports != "" {
		if err := w.SaveScores(args.Reports, files); err != nil {
			w.Close()
			slog.Error("Failed to save scores", "error", err)

			return fmt.Errorf("save scores: %w", err)
		}
	}

	if err := w.DisplayScores(files, int(args.Top), nil); err != nil {
		w.Close()
		slog.Error("Failed to display scores", "error", err)

		return fmt.Errorf("display: %w", err)
	}

	// Wait for UI to be closed by user (press 'q')
	w.Wait()
	w.Close()

	return nil
}

// View loads previously persisted scores and displays them.
func (w *workflow) View(args ViewArgs) error {
	if err := w.Start(controller.WithScoreMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	files, err := w.LoadScores(args.Reports)
	if err != nil {
		w.Close()
		slog.Error("Failed to load scores", "error", err)

		return fmt.Errorf("load scores: %w", err)
	}

	if err := w.DisplayScores(files, int(args.Top), nil); err != nil {
		w.Close()
		slog.Error("Failed to display scores", "error", err)

		return fmt.Errorf("display: %w", err)
	}

	// Wait for UI to be closed by user (press 'q')
	w.Wait()
	w.Close()

	return nil
}

// scoreSources scores every source on a bounded worker pool, keeping results
// in input order. Each worker holds a slot number for the duration of one
// file so the UI can attribute progress to a fixed lane.
func (w *workflow) scoreSources(sources []m.Source, threads int) ([]m.FileScore, error) {
	files := make([]m.FileScore, len(sources))
	scored := make([]bool, len(sources))

	slots := make(chan int, threads)
	for slot := range threads {
		slots <- slot
	}

	var group errgroup.Group
	group.SetLimit(threads)

	for i, source := range sources {
		index := i
		currentSource := source

		group.Go(func() error {
			slot := <-slots
			defer func() { slots <- slot }()

			w.DisplayScoringStartedInfo(currentSource.Origin, slot)

			file, ok := w.scoreSource(currentSource)
			if !ok {
				return nil
			}

			files[index] = file
			scored[index] = true

			w.DisplayScoringCompletedInfo(file)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	kept := make([]m.FileScore, 0, len(files))

	for i, file := range files {
		if scored[i] {
			kept = append(kept, file)
		}
	}

	return kept, nil
}

// scoreSource reads, parses and scores one file. Files that cannot be read
// or parsed are skipped rather than failing the run.
func (w *workflow) scoreSource(source m.Source) (m.FileScore, bool) {
	content, err := w.ReadFile(source.Origin)
	if err != nil {
		slog.Debug("Skipping unreadable file", "path", source.Origin, "error", err)
		return m.FileScore{}, false
	}

	root, comments, err := w.Parse(content)
	if err != nil {
		slog.Debug("Skipping unparsable file", "path", source.Origin, "error", err)
		return m.FileScore{}, false
	}

	file := NewScoreFile(source, comments)
	NewEngine(w.weights).Analyze(root, file)

	return file.Report(), true
}

// sourcePaths projects sources onto their origin paths.
func sourcePaths(sources []m.Source) []m.Path {
	paths := make([]m.Path, 0, len(sources))

	for _, source := range sources {
		paths = append(paths, source.Origin)
	}

	return paths
}
