package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/stackchart/pkg/dataset"
	"github.com/matzehuels/stackchart/pkg/pipeline"
	"github.com/matzehuels/stackchart/pkg/render/chart"
	"github.com/matzehuels/stackchart/pkg/render/chart/axis"
	"github.com/matzehuels/stackchart/pkg/render/chart/model"
	"github.com/matzehuels/stackchart/pkg/render/chart/path"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorMuted)
)

// pixelsPerColumn converts terminal columns into chart width on resize.
const pixelsPerColumn = 8

// =============================================================================
// PointListModel - Interactive point browser
// =============================================================================

// PointPress is the record delivered by the chart's press callback.
type PointPress struct {
	Index  int
	Record dataset.Record
}

// pressLog receives OnPointPress callbacks. It is shared by every copy of
// the model, since the chart keeps the callback across relayouts.
type pressLog struct {
	last *PointPress
}

func (l *pressLog) record(i int, r dataset.Record) {
	l.last = &PointPress{Index: i, Record: r}
}

// PointListModel is the bubbletea model for browsing the points of a line
// chart. Enter presses the point under the cursor and quits.
type PointListModel struct {
	Chart   chart.LineChart
	XLabels []string
	YValues []string
	YAxis   []string
	Cursor  int
	Height  int
	Offset  int
	Err     error

	ds      dataset.Dataset
	opts    pipeline.Options
	cfg     chart.Config
	memo    *axis.Memo
	memoKey string
	presses *pressLog
}

// NewPointListModel lays out ds as a line chart and prepares the point
// list. Y axis labels are memoized under memoKey, so relayouts of the same
// dataset reuse them.
func NewPointListModel(ds dataset.Dataset, opts pipeline.Options, memoKey string) (PointListModel, error) {
	opts.Kind = pipeline.KindLine
	memo, presses := &axis.Memo{}, &pressLog{}
	customize := opts.Customize
	opts.Customize = func(cfg *chart.Config) {
		if customize != nil {
			customize(cfg)
		}
		cfg.YLabelMemo = memo
		cfg.MemoKey = memoKey
		cfg.OnPointPress = presses.record
	}

	m := PointListModel{
		Height:  15,
		ds:      ds,
		opts:    opts,
		memo:    memo,
		memoKey: memoKey,
		presses: presses,
	}

	if err := m.layout(); err != nil {
		return PointListModel{}, err
	}
	keys := opts.Keys()
	m.XLabels = axis.XLabels(ds, keys, m.cfg.XFormatter)
	m.YValues = make([]string, len(ds))
	for i, r := range ds {
		m.YValues[i] = m.cfg.TooltipFormatter.Apply(keys.Y(r).String())
	}
	return m, nil
}

// layout recomputes the chart for the current options.
func (m *PointListModel) layout() error {
	c, err := pipeline.LineChart(m.ds, m.opts)
	if err != nil {
		return err
	}
	m.Chart = c
	m.cfg = m.opts.ChartConfig()
	m.YAxis = nil
	for _, p := range c.Model.Layer(model.LayerYLabels) {
		m.YAxis = append(m.YAxis, p.Text.Content)
	}
	if len(m.YAxis) == 0 {
		// Hidden Y labels never reached the memo during layout.
		m.YAxis = m.memo.YLabels(m.memoKey, c.Scale, m.cfg.YFormatter)
	}
	return nil
}

// Pressed returns the last pressed point, if any.
func (m PointListModel) Pressed() (PointPress, bool) {
	if m.presses == nil || m.presses.last == nil {
		return PointPress{}, false
	}
	return *m.presses.last, true
}

// MemoHits reports how many Y label computations were served from the memo.
func (m PointListModel) MemoHits() int { return m.memo.Hits() }

func (m PointListModel) Init() tea.Cmd {
	return nil
}

func (m PointListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Chart.Points)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if m.Chart.Press(m.Cursor) {
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
		if width := float64(msg.Width * pixelsPerColumn); width > 2*m.Chart.Scale.Margin && width != m.opts.Width {
			m.opts.Width = width
			if err := m.layout(); err != nil {
				m.Err = err
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m PointListModel) View() string {
	var b strings.Builder

	s := m.Chart.Scale
	b.WriteString(styleTitle.Render("Inspect Line Chart"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%s×%s, margin %s",
		path.FormatNumber(s.Width), path.FormatNumber(s.Height), path.FormatNumber(s.Margin))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ press point  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Chart.Points) {
		end = len(m.Chart.Points)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Chart.Points[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", i),
			m.XLabels[i],
			m.YValues[i],
			path.FormatNumber(p.X),
			path.FormatNumber(p.Y),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorLabel).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("", "#", m.opts.XKey, m.opts.YKey, "x px", "y px").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle()
			if col >= 4 {
				base = base.Foreground(colorMuted)
			}
			if m.Offset+row == m.Cursor {
				return base.Foreground(colorAccent).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render("  Y axis: " + strings.Join(m.YAxis, " · ")))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Chart.Points))))
	if p, ok := m.Pressed(); ok {
		b.WriteString("  ")
		b.WriteString(listSelectedStyle.Render(fmt.Sprintf("pressed #%d", p.Index)))
	}

	return b.String()
}
