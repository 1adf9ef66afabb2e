package chart

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"EdgeLab/internal/domain/models"
	"EdgeLab/pkg/util"
)

// EquityLine builds a line chart of the cumulative-return curve.
func EquityLine(run *models.RunResult) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s equity curve", run.Ticker),
			Subtitle: fmt.Sprintf("horizon=%d threshold=%.2f accuracy=%.3f", run.Horizon, run.Threshold, run.Report.Accuracy),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)

	x := make([]string, len(run.Equity))
	y := make([]opts.LineData, len(run.Equity))
	for i, p := range run.Equity {
		x[i] = util.FormatISODate(p.Timestamp)
		y[i] = opts.LineData{Value: p.Value}
	}
	line.SetXAxis(x).AddSeries("equity", y)
	return line
}

// Render writes the chart HTML to w.
func Render(run *models.RunResult, w io.Writer) error {
	return EquityLine(run).Render(w)
}

// RenderFile writes the chart HTML to path.
func RenderFile(run *models.RunResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	if err := Render(run, f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
