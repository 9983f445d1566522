package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	snapdex "github.com/kailas-cloud/snapdex/pkg/sdk"
)

var (
	rankStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	previewStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

const previewWidth = 80

func statusLabel(s snapdex.Status) string {
	switch s {
	case snapdex.StatusCompleted:
		return okStyle.Render(string(s))
	case snapdex.StatusFailed:
		return failStyle.Render(string(s))
	default:
		return warnStyle.Render(string(s))
	}
}

func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) > previewWidth {
		return string(runes[:previewWidth-3]) + "..."
	}
	return text
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func printSearch(w io.Writer, query string, results []snapdex.SearchResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "\n%s %s\n\n", headerStyle.Render("Results for:"), idStyle.Render(fmt.Sprintf("%q", query)))
	for i, r := range results {
		fmt.Fprintf(w, "  %s  %s  %s  %s\n",
			rankStyle.Render(fmt.Sprintf("#%d", i+1)),
			scoreStyle.Render(fmt.Sprintf("confidence: %.3f", r.Confidence)),
			idStyle.Render(r.ID),
			r.Filename,
		)
		if r.TextExcerpt != "" {
			fmt.Fprintf(w, "  %s\n", previewStyle.Render(preview(r.TextExcerpt)))
		}

		parts := make([]string, 0, len(r.Signals))
		for _, name := range sortedKeys(r.Signals) {
			parts = append(parts, fmt.Sprintf("%s=%.3f", name, r.Signals[name]))
		}
		fmt.Fprintf(w, "  %s\n", dimStyle.Render(strings.Join(parts, " ")))

		for _, name := range sortedKeys(r.Matches) {
			fmt.Fprintf(w, "  %s %s\n", dimStyle.Render(name+":"), strings.Join(r.Matches[name], ", "))
		}
		fmt.Fprintln(w)
	}
}

func printExplain(w io.Writer, exp snapdex.Explanation) {
	fmt.Fprintf(w, "%s %s  %s %q\n", headerStyle.Render("Screenshot"), idStyle.Render(exp.ID),
		headerStyle.Render("query"), exp.Query)

	if exp.TimeFilter != nil {
		fmt.Fprintf(w, "%s %s in [%s, %s]\n", dimStyle.Render("time filter:"), exp.TimeFilter.Field,
			exp.TimeFilter.From.Format(time.RFC3339), exp.TimeFilter.To.Format(time.RFC3339))
	}
	if exp.Excluded {
		fmt.Fprintln(w, warnStyle.Render("excluded before scoring"))
		return
	}

	for _, s := range exp.Signals {
		line := fmt.Sprintf("  %-10s %.3f x %.2f", s.Name, s.Value, s.Weight)
		if len(s.Matches) > 0 {
			line += "  " + dimStyle.Render(strings.Join(s.Matches, ", "))
		}
		fmt.Fprintln(w, line)
	}

	verdict := failStyle.Render("below threshold")
	if exp.Accepted {
		verdict = okStyle.Render("accepted")
	}
	fmt.Fprintf(w, "%s %.3f (%s set, threshold %.2f) %s\n",
		headerStyle.Render("overall"), exp.Overall, exp.SignalSet, exp.Threshold, verdict)
}

func printStatus(w io.Writer, st snapdex.StatusSummary) {
	fmt.Fprintf(w, "%s %d\n", headerStyle.Render("Total:"), st.Total)
	for _, s := range []snapdex.Status{
		snapdex.StatusPending, snapdex.StatusProcessing, snapdex.StatusCompleted, snapdex.StatusFailed,
	} {
		fmt.Fprintf(w, "  %-22s %d\n", statusLabel(s), st.Counts[s])
	}
	if len(st.Recent) > 0 {
		fmt.Fprintln(w, headerStyle.Render("Recent:"))
		printScreenshots(w, st.Recent)
	}
}

func printScreenshots(w io.Writer, shots []snapdex.Screenshot) {
	if len(shots) == 0 {
		fmt.Fprintln(w, "No screenshots.")
		return
	}
	for _, s := range shots {
		fmt.Fprintf(w, "  %s  %s  %s  %s\n",
			idStyle.Render(s.ID),
			statusLabel(s.Status),
			dimStyle.Render(s.UploadedAt.Format(time.RFC3339)),
			s.File.Name,
		)
		if s.ProcessingError != "" {
			fmt.Fprintf(w, "    %s\n", failStyle.Render(s.ProcessingError))
		}
	}
}

// YAML views keep field names stable for scripting.

type resultView struct {
	ID          string              `yaml:"id"`
	Filename    string              `yaml:"filename"`
	Confidence  float64             `yaml:"confidence"`
	Signals     map[string]float64  `yaml:"signals"`
	Matches     map[string][]string `yaml:"matches,omitempty"`
	TextExcerpt string              `yaml:"text_excerpt,omitempty"`
	UploadedAt  time.Time           `yaml:"uploaded_at"`
}

type searchOutput struct {
	Query   string       `yaml:"query"`
	Count   int          `yaml:"count"`
	Results []resultView `yaml:"results"`
}

func searchView(query string, results []snapdex.SearchResult) searchOutput {
	out := searchOutput{Query: query, Count: len(results), Results: make([]resultView, len(results))}
	for i, r := range results {
		out.Results[i] = resultView{
			ID:          r.ID,
			Filename:    r.Filename,
			Confidence:  r.Confidence,
			Signals:     r.Signals,
			Matches:     r.Matches,
			TextExcerpt: r.TextExcerpt,
			UploadedAt:  r.UploadedAt,
		}
	}
	return out
}

type signalView struct {
	Name    string   `yaml:"name"`
	Value   float64  `yaml:"value"`
	Weight  float64  `yaml:"weight"`
	Matches []string `yaml:"matches,omitempty"`
}

type timeFilterView struct {
	Field string    `yaml:"field"`
	From  time.Time `yaml:"from"`
	To    time.Time `yaml:"to"`
}

type explainOutput struct {
	ID         string          `yaml:"id"`
	Query      string          `yaml:"query"`
	SignalSet  string          `yaml:"signal_set"`
	Threshold  float64         `yaml:"threshold"`
	Overall    float64         `yaml:"overall"`
	Accepted   bool            `yaml:"accepted"`
	Excluded   bool            `yaml:"excluded"`
	Signals    []signalView    `yaml:"signals"`
	TimeFilter *timeFilterView `yaml:"time_filter,omitempty"`
}

func explainView(exp snapdex.Explanation) explainOutput {
	out := explainOutput{
		ID:        exp.ID,
		Query:     exp.Query,
		SignalSet: exp.SignalSet,
		Threshold: exp.Threshold,
		Overall:   exp.Overall,
		Accepted:  exp.Accepted,
		Excluded:  exp.Excluded,
		Signals:   make([]signalView, len(exp.Signals)),
	}
	for i, s := range exp.Signals {
		out.Signals[i] = signalView{Name: s.Name, Value: s.Value, Weight: s.Weight, Matches: s.Matches}
	}
	if tf := exp.TimeFilter; tf != nil {
		out.TimeFilter = &timeFilterView{Field: tf.Field, From: tf.From, To: tf.To}
	}
	return out
}

type screenshotView struct {
	ID              string     `yaml:"id"`
	Owner           string     `yaml:"owner"`
	Status          string     `yaml:"status"`
	Filename        string     `yaml:"filename"`
	UploadedAt      time.Time  `yaml:"uploaded_at"`
	ProcessedAt     *time.Time `yaml:"processed_at,omitempty"`
	ProcessingError string     `yaml:"processing_error,omitempty"`
}

func screenshotViews(shots []snapdex.Screenshot) []screenshotView {
	out := make([]screenshotView, len(shots))
	for i, s := range shots {
		out[i] = screenshotView{
			ID:              s.ID,
			Owner:           s.Owner,
			Status:          string(s.Status),
			Filename:        s.File.Name,
			UploadedAt:      s.UploadedAt,
			ProcessedAt:     s.ProcessedAt,
			ProcessingError: s.ProcessingError,
		}
	}
	return out
}

type statusOutput struct {
	Total  int              `yaml:"total"`
	Counts map[string]int   `yaml:"counts"`
	Recent []screenshotView `yaml:"recent,omitempty"`
}

func statusView(st snapdex.StatusSummary) statusOutput {
	counts := make(map[string]int, len(st.Counts))
	for s, n := range st.Counts {
		counts[string(s)] = n
	}
	return statusOutput{Total: st.Total, Counts: counts, Recent: screenshotViews(st.Recent)}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
