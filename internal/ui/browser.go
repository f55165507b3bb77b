// Package ui contains the terminal UI for browsing scan reports.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nomadcxx/aniparse"
	"github.com/Nomadcxx/aniparse/internal/library"
	"github.com/Nomadcxx/aniparse/internal/reporter"
)

// Browser is a bubbletea model that pages through a scan report: a list of
// title groups on top of a detail viewport, with an optional filter input.
type Browser struct {
	report reporter.Report
	groups []library.TitleGroup // filtered view

	cursor    int
	filtering bool
	filter    textinput.Model
	detail    viewport.Model
	width     int
	height    int
	ready     bool
}

// NewBrowser creates a report browser
func NewBrowser(report reporter.Report) Browser {
	filter := textinput.New()
	filter.Placeholder = "filter titles..."
	filter.CharLimit = 64

	return Browser{
		report: report,
		groups: report.Result.Groups,
		filter: filter,
	}
}

// Init implements tea.Model
func (b Browser) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		detailHeight := msg.Height / 2
		if !b.ready {
			b.detail = viewport.New(msg.Width, detailHeight)
			b.ready = true
		} else {
			b.detail.Width = msg.Width
			b.detail.Height = detailHeight
		}
		b.refreshDetail()
		return b, nil

	case tea.KeyMsg:
		if b.filtering {
			return b.updateFilter(msg)
		}
		return b.updateList(msg)
	}

	return b, nil
}

func (b Browser) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		b.filtering = false
		b.filter.Blur()
		return b, nil
	}

	var cmd tea.Cmd
	b.filter, cmd = b.filter.Update(msg)
	b.applyFilter()
	return b, cmd
}

func (b Browser) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return b, tea.Quit
	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
			b.refreshDetail()
		}
	case "down", "j":
		if b.cursor < len(b.groups)-1 {
			b.cursor++
			b.refreshDetail()
		}
	case "pgup":
		b.detail.LineUp(5)
	case "pgdown":
		b.detail.LineDown(5)
	case "/":
		b.filtering = true
		b.filter.Focus()
	}
	return b, nil
}

func (b *Browser) applyFilter() {
	query := strings.ToLower(b.filter.Value())
	if query == "" {
		b.groups = b.report.Result.Groups
	} else {
		var filtered []library.TitleGroup
		for _, group := range b.report.Result.Groups {
			if strings.Contains(strings.ToLower(group.Title), query) {
				filtered = append(filtered, group)
			}
		}
		b.groups = filtered
	}
	if b.cursor >= len(b.groups) {
		b.cursor = 0
	}
	b.refreshDetail()
}

func (b *Browser) refreshDetail() {
	if !b.ready || len(b.groups) == 0 {
		return
	}
	b.detail.SetContent(renderGroup(b.groups[b.cursor]))
	b.detail.GotoTop()
}

// View implements tea.Model
func (b Browser) View() string {
	var sb strings.Builder

	header := fmt.Sprintf("aniparse report — %s — %d titles, %d files",
		b.report.Timestamp.Format("2006-01-02 15:04"),
		len(b.report.Result.Groups),
		b.report.Result.TotalFiles)
	sb.WriteString(HeaderStyle.Render(header) + "\n")

	if b.filtering || b.filter.Value() != "" {
		sb.WriteString(b.filter.View() + "\n")
	}

	sb.WriteString(b.renderList() + "\n")

	if b.ready && len(b.groups) > 0 {
		sb.WriteString(TitleStyle.Render("Details") + "\n")
		sb.WriteString(b.detail.View() + "\n")
	}

	sb.WriteString(FormatFooter(
		FormatKeybinding("↑/↓", "select"),
		FormatKeybinding("/", "filter"),
		FormatKeybinding("pgup/pgdn", "scroll"),
		FormatKeybinding("q", "quit"),
	))

	return sb.String()
}

func (b Browser) renderList() string {
	if len(b.groups) == 0 {
		return MutedStyle.Render("no titles match")
	}

	// Show a window of entries around the cursor.
	visible := 10
	start := 0
	if b.cursor >= visible {
		start = b.cursor - visible + 1
	}
	end := start + visible
	if end > len(b.groups) {
		end = len(b.groups)
	}

	var sb strings.Builder
	for i := start; i < end; i++ {
		group := b.groups[i]
		line := fmt.Sprintf("%s (%d files)", group.Title, len(group.Files))
		if i == b.cursor {
			sb.WriteString(HighlightStyle.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderGroup(group library.TitleGroup) string {
	var sb strings.Builder
	for _, file := range group.Files {
		sb.WriteString(StatStyle.Render(file.Path) + "\n")
		sb.WriteString(fmt.Sprintf("  size: %s\n", reporter.FormatBytes(file.Size)))
		sb.WriteString(RenderRecord(file.Record, "  "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderRecord renders the non-empty fields of a parse record, one per
// line, with the given indent.
func RenderRecord(record aniparse.Record, indent string) string {
	fields := []struct {
		label string
		value string
	}{
		{"title", record.Title},
		{"season", record.Season},
		{"episode", record.Episode},
		{"episode title", record.EpisodeTitle},
		{"year", record.Year},
		{"volume", record.Volume},
		{"type", record.Type},
		{"resolution", record.VideoResolution},
		{"source", record.Source},
		{"video", record.VideoTerm},
		{"audio", record.AudioTerm},
		{"language", record.Language},
		{"subtitles", record.Subtitles},
		{"group", record.ReleaseGroup},
		{"version", record.ReleaseVersion},
		{"release info", record.ReleaseInformation},
		{"checksum", record.FileChecksum},
		{"extension", record.FileExtension},
		{"device", record.DeviceCompatibility},
		{"other", record.Other},
	}

	var sb strings.Builder
	for _, field := range fields {
		if field.value == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s%s %s\n", indent, LabelStyle.Render(field.label+":"), field.value))
	}
	return sb.String()
}
