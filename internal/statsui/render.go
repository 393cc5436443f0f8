package statsui

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/lssstats/internal/model"
	"github.com/verte-zerg/lssstats/internal/splittime"
	"github.com/verte-zerg/lssstats/internal/stats"
)

const missing = "-"

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	title := fmt.Sprintf("%s - %s  (%s)  window=%d",
		orDash(m.run.GameName), orDash(m.run.CategoryName), filepath.Base(m.run.Source), m.cfg.CurveWindow)
	return tabs + "\n" + headerStyle.Render(truncateLine(title, m.width))
}

func (m *Model) renderHelp() string {
	help := "Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Reload: r  Quit: q"
	switch m.activeTab {
	case tabSegments:
		help = "Nav: left/right  Select: up/down  Curve: enter  Reload: r  Quit: q"
	case tabSegmentCurve:
		help = "Nav: left/right  Segment: n/p  Jump: enter  Window: -/=  Reload: r  Quit: q"
	}
	return headerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderFooter() string {
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(m.errMsg)
	}
	return m.renderHelp()
}

func (m *Model) renderBody(height int) string {
	if m.activeTab == tabSegments {
		if len(m.run.Segments) == 0 {
			return fitLines("No segments found.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.segTable.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = fallbackWidth
	}
	opts := stats.ChartOptions{TotalWidth: width, Height: m.cfg.PlotHeight, Window: m.cfg.CurveWindow, Color: true}
	m.viewports[tabOverview].SetContent(renderOverview(m.run, opts, m.cfg.Precision))
	m.viewports[tabSegmentCurve].SetContent(renderSegmentCurve(m.run, m.selected, opts, m.cfg.Precision))
	m.viewports[tabCharts].SetContent(renderCharts(m.run, opts))
}

func renderOverview(run model.RunSummary, opts stats.ChartOptions, precision int) string {
	cards := []string{
		metricCard("Attempts", strconv.Itoa(run.AttemptsStarted)),
		metricCard("Finished", fmt.Sprintf("%d (%s)", run.AttemptsFinished, run.CompletionRate())),
		metricCard("Sum of Best", run.SumOfBest.Display(precision, missing)),
		metricCard("Total Runtime", splittime.FormatPrecision(run.TotalRuntime, 0)),
		metricCard("Total Playtime", splittime.FormatPrecision(run.TotalPlaytime, 0)),
	}
	var summary string
	if opts.TotalWidth < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
		summary = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}

	var b strings.Builder
	b.WriteString(summary)
	b.WriteString("\n\n")
	if top := stats.TopTimeSaves(run.Segments, 3); len(top) > 0 {
		b.WriteString(cardTitleStyle.Render("Biggest possible time saves"))
		b.WriteString("\n")
		for _, seg := range top {
			fmt.Fprintf(&b, "  %d. %s  %s\n", seg.Index, seg.Name, goldStyle.Render(seg.PossibleTimeSave.Display(precision, missing)))
		}
		b.WriteString("\n")
	}
	if top := stats.MostInconsistent(run.Segments, 3); len(top) > 0 {
		b.WriteString(cardTitleStyle.Render("Most inconsistent"))
		b.WriteString("\n")
		for _, seg := range top {
			fmt.Fprintf(&b, "  %d. %s  std dev %s\n", seg.Index, seg.Name, seg.Stats.StdDev.Display(precision, missing))
		}
		b.WriteString("\n")
	}
	var buf bytes.Buffer
	if err := stats.RenderRunCurve(&buf, run, opts); err != nil {
		return fmt.Sprintf("Failed to render run curve: %v", err)
	}
	b.WriteString(buf.String())
	return strings.TrimRight(b.String(), "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderSegmentCurve(run model.RunSummary, selected int, opts stats.ChartOptions, precision int) string {
	if len(run.Segments) == 0 {
		return "No segments found."
	}
	seg := run.Segments[selected]
	lines := []string{
		fmt.Sprintf("Best %s  Worst %s  Average %s  Median %s  Std Dev %s",
			goldStyle.Render(seg.Gold.Time.Display(precision, missing)),
			seg.Worst.Time.Display(precision, missing),
			seg.Stats.Average.Display(precision, missing),
			seg.Stats.Median.Display(precision, missing),
			seg.Stats.StdDev.Display(precision, missing)),
		fmt.Sprintf("Completed %s  Above average %s  Possible save %s",
			seg.Stats.FinishRate, stats.PercentLabel(seg.Stats.AboveAverageRate),
			seg.PossibleTimeSave.Display(precision, missing)),
		"",
	}
	var buf bytes.Buffer
	if err := stats.RenderSegmentCurve(&buf, seg, opts); err != nil {
		return fmt.Sprintf("Failed to render segment curve: %v", err)
	}
	return strings.TrimRight(headerStyle.Render(strings.Join(lines, "\n"))+"\n"+buf.String(), "\n")
}

func renderCharts(run model.RunSummary, opts stats.ChartOptions) string {
	if len(run.Segments) == 0 {
		return "No segments found."
	}
	var buf bytes.Buffer
	for _, render := range []func(*bytes.Buffer) error{
		func(b *bytes.Buffer) error { return stats.RenderStdDevChart(b, run, opts) },
		func(b *bytes.Buffer) error { return stats.RenderAboveAverageChart(b, run, opts) },
		func(b *bytes.Buffer) error { return stats.RenderTimeSaveChart(b, run, opts) },
	} {
		if err := render(&buf); err != nil {
			return fmt.Sprintf("Failed to render charts: %v", err)
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}

func buildSegmentTable(run model.RunSummary, precision, width, height int) table.Model {
	columns, rows := buildSegmentTableData(run, precision, width)
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(max(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(segmentTableStyles())
	return t
}

func buildSegmentTableData(run model.RunSummary, precision, width int) ([]table.Column, []table.Row) {
	timeWidth := len(splittime.FormatPrecision(0, precision))
	fixed := []table.Column{
		{Title: "#", Width: 3},
		{Title: "PB Segment", Width: max(10, timeWidth)},
		{Title: "Best", Width: timeWidth},
		{Title: "Average", Width: max(7, timeWidth)},
		{Title: "Std Dev", Width: max(7, timeWidth)},
		{Title: "Save", Width: timeWidth},
		{Title: "Done", Width: 7},
	}
	used := 0
	for _, c := range fixed {
		used += c.Width + 1
	}
	nameWidth := max(8, width-used-1)
	columns := append([]table.Column{fixed[0], {Title: "Segment", Width: nameWidth}}, fixed[1:]...)

	rows := make([]table.Row, 0, len(run.Segments))
	for _, seg := range run.Segments {
		rows = append(rows, table.Row{
			strconv.Itoa(seg.Index),
			seg.Name,
			seg.SegmentTimePB.Display(precision, missing),
			seg.Gold.Time.Display(precision, missing),
			seg.Stats.Average.Display(precision, missing),
			seg.Stats.StdDev.Display(precision, missing),
			seg.PossibleTimeSave.Display(precision, missing),
			seg.Stats.FinishRate.String(),
		})
	}
	return columns, rows
}

func segmentTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) renderSegmentModal() string {
	body := []string{
		cardValueStyle.Render("Go to Segment"),
		m.segmentInput.View(),
		headerStyle.Render(fmt.Sprintf("1-%d. Enter to apply / Esc to cancel", len(m.run.Segments))),
	}
	if m.inputError != "" {
		body = append(body, errorStyle.Render(m.inputError))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return missing
	}
	return s
}
