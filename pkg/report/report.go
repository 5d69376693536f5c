// Package report renders recorded utilization samples for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/danpilch/sampled/pkg/sampler"
)

var (
	reportTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	reportDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	reportBold  = lipgloss.NewStyle().Bold(true)
)

// Options configures rendering.
type Options struct {
	// Window is how many of the most recent samples the sparkline shows.
	Window int

	// JSON switches to machine-readable output.
	JSON bool
}

// Summary holds aggregate statistics over a sample set.
type Summary struct {
	Count int       `json:"count"`
	Min   float64   `json:"min"`
	Mean  float64   `json:"mean"`
	Max   float64   `json:"max"`
	Last  float64   `json:"last"`
	From  time.Time `json:"from"`
	To    time.Time `json:"to"`
}

// Summarize computes aggregate statistics. An empty input yields a zero
// summary.
func Summarize(samples []sampler.Sample) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	s := Summary{
		Count: len(samples),
		Min:   samples[0].Utilization,
		Max:   samples[0].Utilization,
		Last:  samples[len(samples)-1].Utilization,
		From:  samples[0].Time,
		To:    samples[len(samples)-1].Time,
	}

	var sum float64
	for _, sample := range samples {
		sum += sample.Utilization
		if sample.Utilization < s.Min {
			s.Min = sample.Utilization
		}
		if sample.Utilization > s.Max {
			s.Max = sample.Utilization
		}
	}
	s.Mean = sum / float64(len(samples))
	return s
}

// Render writes a summary of the samples. Plain mode prints a styled
// header, the aggregate statistics as percentages and a sparkline of the
// most recent window; JSON mode encodes the Summary.
func Render(w io.Writer, samples []sampler.Sample, opts Options) error {
	summary := Summarize(samples)

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Fprintln(w, reportTitle.Render("CPU Utilization Report"))
	fmt.Fprintln(w, reportDim.Render(strings.Repeat("─", 40)))

	if summary.Count == 0 {
		fmt.Fprintln(w, "  no samples recorded")
		return nil
	}

	fmt.Fprintf(w, "  %s %d (%s → %s)\n",
		reportBold.Render("Samples:"),
		summary.Count,
		summary.From.Local().Format("15:04:05"),
		summary.To.Local().Format("15:04:05"))
	fmt.Fprintf(w, "  %s  %.1f%% min, %.1f%% mean, %.1f%% max\n",
		reportBold.Render("Spread:"),
		summary.Min*100, summary.Mean*100, summary.Max*100)
	fmt.Fprintf(w, "  %s    %.1f%%\n", reportBold.Render("Last:"), summary.Last*100)

	window := opts.Window
	if window < 1 {
		window = 60
	}
	recent := samples
	if len(recent) > window {
		recent = recent[len(recent)-window:]
	}
	values := make([]float64, len(recent))
	for i, s := range recent {
		values[i] = s.Utilization
	}
	fmt.Fprintf(w, "  %s   %s\n", reportBold.Render("Trend:"), renderSparkline(values))

	return nil
}
