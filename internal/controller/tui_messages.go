package controller

import (
	m "github.com/mouse-blink/heft/internal/model"
)

// Message types.
type scanMsg struct {
	sources []m.Source
}

type concurrencyMsg struct {
	threads int
	files   int
}

type upcomingMsg struct {
	count int
}

type fileStartedMsg struct {
	path   string
	thread int
}

type fileScoredMsg struct {
	path   string
	total  int
	scopes int
}

type scoresMsg struct {
	files []m.FileScore
	top   int
}

// List item types.
type fileItem struct {
	path string
	hash string
}

func (f fileItem) FilterValue() string {
	return f.path
}

type scopeRow struct {
	score     int
	signature string
	location  string
}

func (r scopeRow) FilterValue() string {
	return r.signature + " " + r.location
}
