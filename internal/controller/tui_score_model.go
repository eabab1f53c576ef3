package controller

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// scoreDelegate is the delegate for rendering scope rows in the list.
type scoreDelegate struct {
	offset int
}

func (d scoreDelegate) Height() int  { return 1 }
func (d scoreDelegate) Spacing() int { return 0 }
func (d scoreDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d scoreDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(scopeRow)
	if !ok {
		return
	}

	isSelected := index == m.Index()
	locationWidth := m.Width() - 38 // Reserve space for Score and Scope columns and spacing

	scoreStyle, scopeStyle, locationStyle, displayLocation := d.getStylesAndLocation(row, isSelected, locationWidth)

	line := fmt.Sprintf("%s  %s  %s",
		scoreStyle.Render(fmt.Sprintf("%6d", row.score)),
		scopeStyle.Render(fmt.Sprintf("%-28s", truncateFile(row.signature, 28))),
		locationStyle.Render(displayLocation),
	)
	_, _ = fmt.Fprint(w, line)
}

func (d scoreDelegate) getStylesAndLocation(row scopeRow, isSelected bool, locationWidth int) (lipgloss.Style, lipgloss.Style, lipgloss.Style, string) {
	if isSelected {
		return lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("6")).
				Bold(true).
				Width(6).
				Align(lipgloss.Right),
			lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("6")).
				Bold(true).
				Width(30).
				Align(lipgloss.Left),
			lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("6")).
				Bold(true),
			animateScrollFile(row.location, locationWidth, d.offset)
	}

	return lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true).
			Width(6).
			Align(lipgloss.Right),
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Width(30).
			Align(lipgloss.Left),
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")),
		truncateFile(row.location, locationWidth)
}

// scoreModel handles the TUI display during complexity scoring.
type scoreModel struct {
	width           int
	height          int
	progressBar     progress.Model
	totalFiles      int
	completedCount  int
	progressPercent float64
	threads         int
	threadFiles     map[int]string // Maps thread ID to the file it is scoring
	rendered        bool
	scoringFinished bool
	rows            []scopeRow
	rowsList        list.Model
	delegate        scoreDelegate
	animOffset      int
	lastSelected    int
	totalScore      int
	totalScopes     int
}

func newScoreModel() scoreModel {
	prog := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	delegate := scoreDelegate{}
	rowsList := list.New([]list.Item{}, delegate, 80, 20)
	rowsList.SetShowPagination(false)
	rowsList.SetShowFilter(true)
	rowsList.SetShowHelp(false)
	rowsList.SetShowTitle(false)
	rowsList.SetShowStatusBar(false)
	rowsList.FilterInput.Placeholder = "Filter scopes…"

	return scoreModel{
		progressBar:  prog,
		rowsList:     rowsList,
		delegate:     delegate,
		threadFiles:  make(map[int]string),
		lastSelected: -1,
	}
}

func (m scoreModel) Init() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m scoreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)

	case tea.KeyMsg:
		m, cmd = m.handleKeyMsg(msg)

	case tea.MouseMsg:
		m, cmd = m.handleMouseMsg(msg)

	case tickMsg:
		return m.handleTickMsg(msg)

	case concurrencyMsg:
		m.threads = msg.threads
		m.progressPercent = 0

	case upcomingMsg:
		m.totalFiles = msg.count
		m.completedCount = 0
		m.progressPercent = 0

	case fileStartedMsg:
		m = m.handleFileStarted(msg)

	case fileScoredMsg:
		m = m.handleFileScored(msg)

	case scoresMsg:
		m = m.handleScores(msg)

	case scanMsg:
		// Shouldn't happen in the score model, but handle gracefully
	}

	return m, cmd
}

func (m scoreModel) View() string {
	if !m.rendered {
		return "Initializing scoring…\n"
	}

	if m.scoringFinished {
		return m.viewResults()
	}

	return m.viewProgress()
}

func (m scoreModel) viewProgress() string {
	accentColor := lipgloss.Color("6") // Cyan

	// Styles
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(accentColor) // Cyan

	// 1. Title
	title := titleStyle.Render("⚖️ Heft Complexity Scoring")

	// 2. Summary with metadata
	summary := summaryStyle.Render(fmt.Sprintf(
		"Progress: %s / %s  •  Workers: %s",
		accentStyle.Render(fmt.Sprintf("%d", m.completedCount)),
		accentStyle.Render(fmt.Sprintf("%d", m.totalFiles)),
		accentStyle.Render(fmt.Sprintf("%d", m.threads)),
	))

	// 3. Progress Bar
	progressStyle := lipgloss.NewStyle().
		Padding(0, 2)

	progressView := progressStyle.Render(m.progressBar.ViewAs(m.progressPercent))

	// 4. Worker Progress Section
	threadsBox := m.renderThreadBox(accentColor)

	// 5. Footer
	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(m.width).
		Padding(0, 0)

	footer := footerStyle.Render("Press q to quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		progressView,
		threadsBox,
		footer,
	)
}

func (m scoreModel) renderThreadBox(accentColor lipgloss.Color) string {
	contentStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(0, 1). // Compact padding
		Margin(1, 1, 1, 0).
		Width(m.width - 4) // Constrain width

	fileStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("14"))

	threadLines := make([]string, 0, m.threads)
	// Calculate max specific width for file path:
	// Width - Border(2) - Padding(2)
	availableWidth := m.width - 4 - 2 - 2
	prefixWidth := 0
	threadLabelFormat := ""

	if m.threads > 1 {
		// Calculate width needed for thread number
		digits := len(fmt.Sprintf("%d", m.threads-1))
		prefixWidth = 7 + digits + 2 // "Thread " + digits + ": "
		threadLabelFormat = fmt.Sprintf("Thread %%%dd: %%s", digits)
	}

	for i := range m.threads {
		file := m.threadFiles[i]

		var lineContent string

		if file == "" {
			lineContent = "idle"
		} else {
			remainingForFile := availableWidth - prefixWidth
			if remainingForFile < 10 {
				remainingForFile = 10
			}

			lineContent = fileStyle.Render(truncateFile(file, remainingForFile))
		}

		var threadLine string
		if m.threads > 1 {
			threadLine = fmt.Sprintf(threadLabelFormat,
				i,
				lineContent,
			)
		} else {
			threadLine = lineContent
		}

		threadLines = append(threadLines, threadLine)
	}

	// Join lines and put in one box
	threadsContent := lipgloss.JoinVertical(lipgloss.Left, threadLines...)

	return contentStyle.Render(threadsContent)
}

func (m scoreModel) viewResults() string {
	accentColor := lipgloss.Color("6") // Cyan

	// Styles
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(accentColor)

	// 1. Title
	title := titleStyle.Render("⚖️ Heft Complexity Scores")

	// 2. Summary
	summary := summaryStyle.Render(fmt.Sprintf(
		"Files: %s  •  Scopes: %s  •  Total Score: %s",
		accentStyle.Render(fmt.Sprintf("%d", m.totalFiles)),
		accentStyle.Render(fmt.Sprintf("%d", m.totalScopes)),
		accentStyle.Render(fmt.Sprintf("%d", m.totalScore)),
	))

	// 3. Scope table with list
	resultsBox := m.renderResultsBox(accentColor)

	// 4. Footer
	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(m.width)

	footer := footerStyle.Render("↑/k up • ↓/j down • g/G top/bottom • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		resultsBox,
		footer,
	)
}

func (m scoreModel) renderResultsBox(accentColor lipgloss.Color) string {
	listWidth := m.width - 4

	listHeight := m.height - 9
	if listHeight < 5 {
		listHeight = 5
	}

	m.rowsList.SetHeight(listHeight)
	m.rowsList.SetWidth(listWidth)

	// Column Headers
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(listWidth)

	headers := headerStyle.Render(fmt.Sprintf("%6s  %-28s  %s", "Score", "Scope", "Location"))

	resultsStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Margin(0, 1, 0, 0).
		Padding(0, 1)

	return resultsStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			headers,
			m.rowsList.View(),
		),
	)
}

func animateScrollFile(text string, width int, offset int) string {
	if width <= 0 {
		return ""
	}

	textWidth := lipgloss.Width(text)
	if textWidth <= width {
		return text
	}

	// Gap between repeats
	gap := "   "

	// Initial pause before scrolling starts (in ticks)
	pause := 5

	if offset < pause {
		return truncateFile(text, width)
	}

	effectiveStep := offset - pause

	// Create the repeating pattern
	runes := []rune(text + gap)
	n := len(runes)

	if n == 0 {
		return ""
	}

	start := effectiveStep % n

	// Construct the window
	res := make([]rune, 0, width)
	for i := range width {
		idx := (start + i) % n
		res = append(res, runes[idx])
	}

	return string(res)
}

func truncateFile(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	if width <= 1 {
		return "…"
	}

	ellipsis := "…"

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

func (m scoreModel) handleFileStarted(msg fileStartedMsg) scoreModel {
	// Track which file this thread is working on
	m.threadFiles[msg.thread] = msg.path
	m.rendered = true

	return m
}

func (m scoreModel) handleFileScored(_ fileScoredMsg) scoreModel {
	m.completedCount++

	if m.totalFiles > 0 {
		m.progressPercent = float64(m.completedCount) / float64(m.totalFiles)
	}

	return m
}

// handleScores marks scoring as finished. Skipped files never report
// completion, so the final score set is what flips the view, not the
// completion count.
func (m scoreModel) handleScores(msg scoresMsg) scoreModel {
	m.rows = scopeRows(msg.files, msg.top)
	m.totalFiles = len(msg.files)
	m.totalScore = totalScore(msg.files)
	m.totalScopes = scopeCount(msg.files)

	items := make([]list.Item, 0, len(m.rows))

	for _, row := range m.rows {
		items = append(items, row)
	}

	m.rowsList.SetItems(items)

	m.scoringFinished = true
	m.rendered = true
	m.progressPercent = 1

	if len(items) > 0 && m.lastSelected == -1 {
		m.lastSelected = 0
	}

	return m
}

func (m scoreModel) handleKeyMsg(msg tea.KeyMsg) (scoreModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	default:
		if m.scoringFinished {
			var newList list.Model

			newList, cmd = m.rowsList.Update(msg)
			m.rowsList = newList

			// Detect selection change to reset animation
			if m.rowsList.Index() != m.lastSelected {
				m.lastSelected = m.rowsList.Index()
				m.animOffset = 0
				m.delegate.offset = 0
				m.rowsList.SetDelegate(m.delegate)
			}

			return m, cmd
		}
	}

	return m, nil
}

func (m scoreModel) handleMouseMsg(msg tea.MouseMsg) (scoreModel, tea.Cmd) {
	var cmd tea.Cmd

	if !m.scoringFinished {
		return m, nil
	}

	var newList list.Model

	newList, cmd = m.rowsList.Update(msg)
	m.rowsList = newList

	if m.rowsList.Index() != m.lastSelected {
		m.lastSelected = m.rowsList.Index()
		m.animOffset = 0
		m.delegate.offset = 0
		m.rowsList.SetDelegate(m.delegate)
	}

	return m, cmd
}

func (m scoreModel) handleWindowSize(msg tea.WindowSizeMsg) scoreModel {
	m.width = msg.Width
	m.height = msg.Height

	m.progressBar.Width = m.width - 8
	if m.progressBar.Width < 20 {
		m.progressBar.Width = 20
	}

	return m
}

func (m scoreModel) handleTickMsg(_ tickMsg) (scoreModel, tea.Cmd) {
	// Keep the UI responsive
	if m.scoringFinished && m.rowsList.FilterState() != list.Filtering {
		m.animOffset++
		m.delegate.offset = m.animOffset
		m.rowsList.SetDelegate(m.delegate)
	}

	return m, tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
