package controller

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type tickMsg time.Time

// Simple delegate for scanned file list items.
type scanDelegate struct {
	offset int
}

func (d scanDelegate) Height() int  { return 1 }
func (d scanDelegate) Spacing() int { return 0 }
func (d scanDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d scanDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	file, ok := item.(fileItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	var pathStyle, hashStyle lipgloss.Style

	var displayPath string

	width := m.Width() - 10 // Subtract hash width (8) + spacing (2)

	if isSelected {
		pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		hashStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true).
			Width(8).
			Align(lipgloss.Right)

		displayPath = animateScroll(file.path, width, d.offset)
	} else {
		pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		hashStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true).
			Width(8).
			Align(lipgloss.Right)

		displayPath = truncateToWidth(file.path, width)
	}

	line := fmt.Sprintf("%s  %s",
		hashStyle.Render(file.hash),
		pathStyle.Render(displayPath),
	)
	_, _ = fmt.Fprint(w, line)
}

func animateScroll(text string, width int, offset int) string {
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
		return truncateToWidth(text, width)
	}

	effectiveStep := offset - pause

	// Create the repeating pattern: text + gap
	// We work with runes to handle multi-byte characters correctly
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

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	if width <= 1 {
		return ellipsis
	}

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

// scanModel is used for listing source files without scoring them.
type scanModel struct {
	width        int
	height       int
	fileList     list.Model
	delegate     scanDelegate
	totalFiles   int
	rendered     bool
	animOffset   int
	lastSelected int
}

func newScanModel() scanModel {
	delegate := scanDelegate{}
	fileList := list.New([]list.Item{}, delegate, 80, 20)
	fileList.SetShowPagination(false)
	fileList.SetShowFilter(true)
	fileList.SetShowHelp(false)
	fileList.SetShowTitle(false)
	fileList.SetShowStatusBar(false)
	fileList.FilterInput.Placeholder = "Filter by path…"

	return scanModel{
		fileList:     fileList,
		delegate:     delegate,
		lastSelected: -1,
	}
}

func (m scanModel) Init() tea.Cmd {
	return tea.Tick(time.Second/2, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m scanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.fileList.SetWidth(m.width)
		// ... adjustment logic handles in View ...

	case tickMsg:
		if m.fileList.FilterState() != list.Filtering && m.rendered {
			m.animOffset++
			m.delegate.offset = m.animOffset
			m.fileList.SetDelegate(m.delegate)

			return m, tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
				return tickMsg(t)
			})
		}

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		default:
			// Pass all key events to the list
			var newList list.Model

			newList, cmd = m.fileList.Update(msg)
			m.fileList = newList

			// Detect selection change to reset animation
			if m.fileList.Index() != m.lastSelected {
				m.lastSelected = m.fileList.Index()
				m.animOffset = 0
				m.delegate.offset = 0
				m.fileList.SetDelegate(m.delegate)
			}

			return m, cmd
		}

	case scanMsg:
		m = m.handleScanMsg(msg)
	}

	return m, cmd
}

func (m scanModel) handleScanMsg(msg scanMsg) scanModel {
	m.totalFiles = len(msg.sources)

	// Create sorted file items
	sorted := make([]string, 0, len(msg.sources))
	hashes := make(map[string]string, len(msg.sources))

	for _, source := range msg.sources {
		sorted = append(sorted, string(source.Origin))
		hashes[string(source.Origin)] = shortHash(source.Hash)
	}

	sort.Strings(sorted)

	items := make([]list.Item, 0, len(sorted))
	for _, path := range sorted {
		items = append(items, fileItem{path: path, hash: hashes[path]})
	}

	m.fileList.SetItems(items)
	m.rendered = true

	// Start animation loop if not started (Init calls it, but just in case)
	// Or ensure selection is tracked
	if len(items) > 0 && m.lastSelected == -1 {
		m.lastSelected = 0
	}

	return m
}

func (m scanModel) View() string {
	if !m.rendered {
		return "Scanning sources…\n"
	}

	// Styles
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // Cyan

	// 1. Title
	title := titleStyle.Render("⚖️ Heft Source Scan")

	// 2. Summary
	summary := summaryStyle.Render(fmt.Sprintf(
		"Files: %s",
		accentStyle.Render(fmt.Sprintf("%d", m.totalFiles)),
	))

	// 3. Table with border
	table := m.renderTable()

	// 4. Footer
	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(m.width)

	footer := footerStyle.Render("↑/k up • ↓/j down • g/G top/bottom • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		table,
		footer,
	)
}

func (m scanModel) renderTable() string {
	// List sizing
	// Display calculations:
	// Screen Height
	// - Title (2)
	// - Summary (2)
	// - Footer (1)
	// - Border (2)
	// - Padding/Headers (2)
	// = Left for list
	listHeight := m.height - 9
	if listHeight < 5 {
		listHeight = 5
	}

	// Widths:
	// Window Width
	// - Margin (2)
	// - Border (2)
	// - Padding (2)
	// = List Width
	listWidth := m.width - 6

	m.fileList.SetHeight(listHeight)
	m.fileList.SetWidth(listWidth)

	// Column Headers inside the table area
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(listWidth)

	headers := headerStyle.Render(fmt.Sprintf("%8s  %s", "Hash", "File Path"))

	tableContainer := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1). // Outer margin
		Padding(0, 1) // Inner padding

	return tableContainer.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			headers,
			m.fileList.View(),
		),
	)
}
