package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Series represents a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

// Bar is one labelled value of a bar chart.
type Bar struct {
	Label string
	Value float64
}

// PlotOptions controls plot geometry and labels.
type PlotOptions struct {
	Width  int
	Height int
	Color  bool
	// Format renders axis and value labels. Defaults to two decimals.
	Format func(float64) string
}

type lineStyle struct {
	name   string
	period int
	on     int
}

type ansiColor struct {
	name string
	code string
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	minBarWidth         = 10
	maxBarLabelWidth    = 24
	axisLabelWidth      = 9
	axisSeparator       = " │ "
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var lineStyles = []lineStyle{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
	{name: "dashdot", period: 8, on: 3},
}

var colorPalette = []ansiColor{
	{name: "cyan", code: "\x1b[36m"},
	{name: "magenta", code: "\x1b[35m"},
	{name: "yellow", code: "\x1b[33m"},
	{name: "green", code: "\x1b[32m"},
	{name: "blue", code: "\x1b[34m"},
}

// Partial blocks from one eighth to seven eighths.
var barEighths = []rune{'▏', '▎', '▍', '▌', '▋', '▊', '▉'}

const barFull = '█'

// PlotSeries renders a braille line plot. All series share one vertical scale.
func PlotSeries(w io.Writer, title string, series []Series, opts PlotOptions) error {
	series = filterSeries(series)
	if len(series) == 0 {
		return nil
	}
	height := opts.Height
	if height <= 0 {
		height = defaultPlotHeight
	}
	width := opts.Width
	if width <= 0 {
		width = autoPlotWidth()
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}
	format := labelFormat(opts.Format)

	scaled := make([]Series, 0, len(series))
	for _, s := range series {
		scaled = append(scaled, Series{
			Name:   s.Name,
			Values: resampleSeries(s.Values, width),
		})
	}

	minVal, maxVal := seriesMinMax(series)
	lo, hi := minVal, maxVal
	if math.Abs(hi-lo) < 1e-9 {
		lo--
		hi++
	}

	seriesCells := make([][][]uint8, 0, len(scaled))
	for range scaled {
		seriesCells = append(seriesCells, makeCells(height, width))
	}
	for si, s := range scaled {
		style := lineStyles[si%len(lineStyles)]
		prevX, prevY := -1, -1
		for x, v := range s.Values {
			px := x * 2
			py := valueToRow(v, lo, hi, height*4)
			if prevX >= 0 {
				drawLine(prevX, prevY, px, py, func(dx, dy int) {
					if style.shouldPlot(dx) {
						setBrailleDot(seriesCells[si], dx, dy)
					}
				})
			} else if style.shouldPlot(px) {
				setBrailleDot(seriesCells[si], px, py)
			}
			prevX, prevY = px, py
		}
	}

	useColor := shouldUseColor(w, opts.Color)
	axisLabels := makeAxisLabels(height, lo, hi, format)

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Range: %s to %s\n", format(minVal), format(maxVal)); err != nil {
		return err
	}
	for y := 0; y < height; y++ {
		var row strings.Builder
		row.WriteString(padLeft(axisLabels[y], axisLabelWidth))
		row.WriteString(axisSeparator)
		for x := 0; x < width; x++ {
			mask, colorIdx := composeCell(seriesCells, x, y)
			ch := brailleFromMask(mask)
			if useColor && colorIdx >= 0 {
				row.WriteString(colorPalette[colorIdx%len(colorPalette)].code)
				row.WriteRune(ch)
				row.WriteString(colorReset)
			} else {
				row.WriteRune(ch)
			}
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, renderLegend(scaled, useColor)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// PlotBars renders a horizontal bar chart scaled to the largest value.
// Negative values are drawn as empty bars.
func PlotBars(w io.Writer, title string, bars []Bar, opts PlotOptions) error {
	if len(bars) == 0 {
		return nil
	}
	format := labelFormat(opts.Format)
	totalWidth := opts.Width
	if totalWidth <= 0 {
		totalWidth = terminalWidth()
	}

	labels := make([]string, len(bars))
	values := make([]string, len(bars))
	labelWidth, valueWidth := 0, 0
	maxVal := 0.0
	for i, b := range bars {
		labels[i] = runewidth.Truncate(b.Label, maxBarLabelWidth, "…")
		values[i] = format(b.Value)
		labelWidth = max(labelWidth, runewidth.StringWidth(labels[i]))
		valueWidth = max(valueWidth, runewidth.StringWidth(values[i]))
		maxVal = math.Max(maxVal, b.Value)
	}
	barWidth := totalWidth - labelWidth - valueWidth - len(axisSeparator) - 1
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	useColor := shouldUseColor(w, opts.Color)
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for i, b := range bars {
		bar := barString(b.Value, maxVal, barWidth)
		if useColor && bar != "" {
			bar = colorPalette[0].code + bar + colorReset
		}
		line := padRight(labels[i], labelWidth) + axisSeparator + bar +
			strings.Repeat(" ", barWidth-barCells(b.Value, maxVal, barWidth)) + " " +
			padLeft(values[i], valueWidth)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func barString(v, maxVal float64, width int) string {
	if v <= 0 || maxVal <= 0 {
		return ""
	}
	eighths := int(math.Round(v / maxVal * float64(width*8)))
	var b strings.Builder
	b.WriteString(strings.Repeat(string(barFull), eighths/8))
	if rem := eighths % 8; rem > 0 {
		b.WriteRune(barEighths[rem-1])
	}
	return b.String()
}

// barCells is the number of terminal cells barString occupies.
func barCells(v, maxVal float64, width int) int {
	if v <= 0 || maxVal <= 0 {
		return 0
	}
	eighths := int(math.Round(v / maxVal * float64(width*8)))
	return (eighths + 7) / 8
}

func labelFormat(format func(float64) string) func(float64) string {
	if format != nil {
		return format
	}
	return func(v float64) string { return fmt.Sprintf("%.2f", v) }
}

func padLeft(value string, width int) string {
	if pad := width - runewidth.StringWidth(value); pad > 0 {
		return strings.Repeat(" ", pad) + value
	}
	return value
}

func padRight(value string, width int) string {
	if pad := width - runewidth.StringWidth(value); pad > 0 {
		return value + strings.Repeat(" ", pad)
	}
	return value
}

func filterSeries(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		out = append(out, s)
	}
	return out
}

func autoPlotWidth() int {
	return PlotWidthFor(terminalWidth())
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	plotWidth := totalWidth - axisLabelWidth - runewidth.StringWidth(axisSeparator)
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// makeAxisLabels labels the top, middle and bottom rows with the values they represent.
func makeAxisLabels(height int, lo, hi float64, format func(float64) string) []string {
	labels := make([]string, height)
	if height <= 0 {
		return labels
	}
	labels[0] = format(hi)
	if height > 2 {
		labels[height/2] = format(hi - (hi-lo)*float64(height/2)/float64(height-1))
	}
	if height > 1 {
		labels[height-1] = format(lo)
	}
	return labels
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]uint8, width)
	}
	return cells
}

func composeCell(seriesCells [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	colorIdx := -1
	for i, cells := range seriesCells {
		if y < 0 || y >= len(cells) || x < 0 || x >= len(cells[y]) {
			continue
		}
		cellMask := cells[y][x]
		if cellMask == 0 {
			continue
		}
		if colorIdx == -1 {
			colorIdx = i
		}
		mask |= cellMask
	}
	return mask, colorIdx
}

func (ls lineStyle) shouldPlot(x int) bool {
	if ls.period <= 1 {
		return true
	}
	if x < 0 {
		x = -x
	}
	return x%ls.period < ls.on
}

// resampleSeries fits values to width columns: buckets are averaged when
// shrinking and linearly interpolated when stretching.
func resampleSeries(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	out := make([]float64, width)
	switch {
	case len(values) == width:
		copy(out, values)
	case len(values) > width:
		for i := 0; i < width; i++ {
			start := i * len(values) / width
			end := (i + 1) * len(values) / width
			if end <= start {
				end = start + 1
			}
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case width == 1 || len(values) == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		for i := 0; i < width; i++ {
			pos := float64(i) * float64(len(values)-1) / float64(width-1)
			idx := int(math.Floor(pos))
			if idx >= len(values)-1 {
				out[i] = values[len(values)-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

func seriesMinMax(series []Series) (float64, float64) {
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)
	for _, s := range series {
		for _, v := range s.Values {
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
	}
	if math.IsInf(minVal, 1) {
		return 0, 0
	}
	return minVal, maxVal
}

func valueToRow(v, minVal, maxVal float64, height int) int {
	if height <= 1 {
		return 0
	}
	pos := (v - minVal) / (maxVal - minVal)
	row := int(math.Round((1 - pos) * float64(height-1)))
	if row < 0 {
		row = 0
	}
	if row >= height {
		row = height - 1
	}
	return row
}

func renderLegend(series []Series, useColor bool) string {
	parts := make([]string, 0, len(series))
	marker := brailleFromMask(0x01)
	for i, s := range series {
		label := fmt.Sprintf("%c %s (%s)", marker, s.Name, lineStyles[i%len(lineStyles)].name)
		if useColor {
			label = colorPalette[i%len(colorPalette)].code + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

// drawLine walks a Bresenham line between two dot coordinates.
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func setBrailleDot(cells [][]uint8, x, y int) {
	if y < 0 || x < 0 {
		return
	}
	cellY := y / 4
	cellX := x / 2
	if cellY >= len(cells) || cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
}

// brailleDotMask maps a dot within a 2x4 cell to its Unicode braille bit.
func brailleDotMask(x, y int) uint8 {
	left := [4]uint8{0x01, 0x02, 0x04, 0x40}
	right := [4]uint8{0x08, 0x10, 0x20, 0x80}
	if y < 0 || y > 3 {
		return 0
	}
	switch x {
	case 0:
		return left[y]
	case 1:
		return right[y]
	}
	return 0
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
