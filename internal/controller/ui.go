// Package controller provides output controllers for displaying source scans
// and complexity scores.
package controller

import (
	m "github.com/mouse-blink/heft/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeScan StartMode = iota
	ModeScore
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithScanMode sets the UI to source scanning mode.
func WithScanMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeScan
	}
}

// WithScoreMode sets the UI to scoring mode.
func WithScoreMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeScore
	}
}

// UI defines the interface for displaying scanned sources and their scores.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(options ...StartOption) error
	Close()
	Wait() // Wait for UI to finish (user closes it)
	DisplayScan(sources []m.Source, err error) error
	DisplayScores(files []m.FileScore, top int, err error) error
	DisplayConcurencyInfo(threads int, files int)
	DisplayUpcomingScoresInfo(paths []m.Path)
	DisplayScoringStartedInfo(path m.Path, thread int)
	DisplayScoringCompletedInfo(file m.FileScore)
}
