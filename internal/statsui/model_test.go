package statsui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/lssstats/internal/lss"
	"github.com/verte-zerg/lssstats/internal/model"
	"github.com/verte-zerg/lssstats/internal/stats"
	"github.com/verte-zerg/lssstats/internal/testutil"
)

func sampleRun(t *testing.T) model.RunSummary {
	t.Helper()
	run, err := lss.NewReader().Read(testutil.WriteSample(t))
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	return run
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sized(t *testing.T, m *Model) *Model {
	t.Helper()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func TestViewShowsTabsAndSummary(t *testing.T) {
	m := sized(t, NewModel(sampleRun(t), model.ReportConfig{Precision: 2}, nil))
	view := m.View()
	for _, want := range []string{"Overview", "Segments", "Segment Curve", "Charts", "Sample Quest", "Sum of Best"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view", want)
		}
	}
	if lines := strings.Split(view, "\n"); len(lines) != 40 {
		t.Fatalf("expected view to fill 40 lines, got %d", len(lines))
	}
}

func TestTabNavigationWraps(t *testing.T) {
	m := sized(t, NewModel(sampleRun(t), model.ReportConfig{}, nil))
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.ActiveTab() != tabCharts {
		t.Fatalf("expected wrap to last tab, got %d", m.ActiveTab())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.ActiveTab() != tabOverview {
		t.Fatalf("expected wrap to first tab, got %d", m.ActiveTab())
	}
}

func TestSegmentSelection(t *testing.T) {
	m := sized(t, NewModel(sampleRun(t), model.ReportConfig{}, nil))
	m.Update(key("p"))
	if m.Selected() != 2 {
		t.Fatalf("expected selection to wrap to last segment, got %d", m.Selected())
	}
	m.Update(key("n"))
	m.Update(key("n"))
	if m.Selected() != 1 {
		t.Fatalf("expected second segment, got %d", m.Selected())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if !strings.Contains(m.View(), "Segment 2. Temple") {
		t.Fatalf("expected curve for selected segment")
	}
}

func TestSegmentInputModal(t *testing.T) {
	m := sized(t, NewModel(sampleRun(t), model.ReportConfig{}, nil))
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.View(), "Go to Segment") {
		t.Fatalf("expected segment modal")
	}
	m.segmentInput.SetValue("9")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.View(), "between 1 and 3") {
		t.Fatalf("expected range error in modal")
	}
	m.segmentInput.SetValue("3")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() != 2 {
		t.Fatalf("expected third segment, got %d", m.Selected())
	}
	if strings.Contains(m.View(), "Go to Segment") {
		t.Fatalf("expected modal to close")
	}
}

func TestReload(t *testing.T) {
	run := sampleRun(t)
	calls := 0
	var loadErr error
	m := sized(t, NewModel(run, model.ReportConfig{}, func() (model.RunSummary, error) {
		calls++
		if loadErr != nil {
			return model.RunSummary{}, loadErr
		}
		next := run
		next.GameName = "Reloaded Quest"
		return next, nil
	}))
	m.Update(key("r"))
	if calls != 1 || !strings.Contains(m.View(), "Reloaded Quest") {
		t.Fatalf("expected reloaded run in view")
	}
	loadErr = errors.New("boom")
	m.Update(key("r"))
	if !strings.Contains(m.View(), "Reload failed: boom") {
		t.Fatalf("expected reload error in footer")
	}
	if !strings.Contains(m.View(), "Reloaded Quest") {
		t.Fatalf("failed reload must keep the previous run")
	}
}

func TestRunLoadedMsgClampsSelection(t *testing.T) {
	run := sampleRun(t)
	m := sized(t, NewModel(run, model.ReportConfig{}, nil))
	m.Update(key("p"))
	shorter := run
	shorter.Segments = run.Segments[:1]
	m.Update(RunLoadedMsg{Run: shorter})
	if m.Selected() != 0 {
		t.Fatalf("expected selection clamped to 0, got %d", m.Selected())
	}
}

func TestCurveWindowSteps(t *testing.T) {
	if got := nextCurveWindow(1); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := nextCurveWindow(7); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if got := prevCurveWindow(5); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := prevCurveWindow(12); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
}

func TestParseSegmentNumber(t *testing.T) {
	if idx, err := parseSegmentNumber(" 2 ", 3); err != nil || idx != 1 {
		t.Fatalf("expected index 1, got %d %v", idx, err)
	}
	for _, in := range []string{"0", "4", "x"} {
		if _, err := parseSegmentNumber(in, 3); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}

func TestOverviewListsTopSegments(t *testing.T) {
	run := sampleRun(t)
	out := renderOverview(run, stats.ChartOptions{TotalWidth: 100, Height: 5, Window: 2}, 2)
	for _, want := range []string{"Biggest possible time saves", "Most inconsistent"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in overview:\n%s", want, out)
		}
	}
	top := stats.MostInconsistent(run.Segments, 1)
	if len(top) == 0 {
		t.Fatalf("expected a segment with a std dev")
	}
	if !strings.Contains(out, top[0].Name+"  std dev "+top[0].Stats.StdDev.Display(2, missing)) {
		t.Fatalf("expected %s listed with its std dev:\n%s", top[0].Name, out)
	}
}
