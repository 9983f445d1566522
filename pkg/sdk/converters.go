package snapdex

import (
	domitem "github.com/kailas-cloud/snapdex/internal/domain/item"
	"github.com/kailas-cloud/snapdex/internal/domain/search/entity"
	"github.com/kailas-cloud/snapdex/internal/domain/search/result"
	"github.com/kailas-cloud/snapdex/internal/domain/search/signal"
	itemuc "github.com/kailas-cloud/snapdex/internal/usecase/item"
	searchuc "github.com/kailas-cloud/snapdex/internal/usecase/search"
)

func toInternalFeatures(f Features) domitem.Features {
	out := domitem.Features{
		UIElements:     f.UIElements,
		DominantColors: f.DominantColors,
		ErrorStates:    f.ErrorStates,
		VisualPatterns: f.VisualPatterns,
		ColorContext:   f.ColorContext,
	}
	if f.ExtractedText != "" {
		out.ExtractedText = domitem.StringPtr(f.ExtractedText)
	}
	if f.VisualDescription != "" {
		out.VisualDescription = domitem.StringPtr(f.VisualDescription)
	}
	return out
}

func fromInternalFeatures(f domitem.Features) Features {
	return Features{
		ExtractedText:     f.Text(),
		VisualDescription: f.Description(),
		UIElements:        f.UIElements,
		DominantColors:    f.DominantColors,
		ErrorStates:       f.ErrorStates,
		VisualPatterns:    f.VisualPatterns,
		ColorContext:      f.ColorContext,
	}
}

func toInternalFile(f File) domitem.File {
	return domitem.File(f)
}

func fromInternalScreenshot(it domitem.Item) Screenshot {
	return Screenshot{
		ID:              it.ID(),
		Owner:           it.Owner(),
		Status:          Status(it.Status()),
		File:            File(it.File()),
		Features:        fromInternalFeatures(it.Features()),
		ProcessingError: it.ProcessingError(),
		UploadedAt:      it.UploadedAt(),
		ProcessedAt:     it.ProcessedAt(),
	}
}

func fromInternalResult(r *result.Result) SearchResult {
	rec := r.Record()
	out := SearchResult{
		ID:          r.ID(),
		Filename:    r.Item().File().Name,
		Confidence:  result.Round(r.Overall()),
		Signals:     make(map[string]float64, len(rec.Signals())),
		TextExcerpt: r.Excerpt(result.ExcerptLength),
		UploadedAt:  r.Item().UploadedAt(),
	}
	for name, v := range rec.Signals() {
		out.Signals[string(name)] = result.Round(v)
	}
	if m := rec.Matches(); len(m) > 0 {
		out.Matches = make(map[string][]string, len(m))
		for name, values := range m {
			out.Matches[string(name)] = values
		}
	}
	return out
}

func fromInternalExplanation(id, query string, exp searchuc.Explanation, setName string, threshold float64) Explanation {
	out := Explanation{
		ID:        id,
		Query:     query,
		SignalSet: setName,
		Threshold: threshold,
		Overall:   result.Round(exp.Breakdown.Overall),
		Accepted:  exp.Breakdown.Accepted && !exp.Excluded,
		Excluded:  exp.Excluded,
		Signals:   make([]SignalScore, len(exp.Breakdown.Scores)),
	}
	for i, sc := range exp.Breakdown.Scores {
		out.Signals[i] = SignalScore{
			Name:    string(sc.Name),
			Value:   result.Round(sc.Value),
			Weight:  sc.Weight,
			Matches: exp.Breakdown.Matches[sc.Name],
		}
	}
	if f := exp.Filter; f != nil {
		out.TimeFilter = &TimeFilter{Field: string(f.Field), From: f.From, To: f.To}
	}
	return out
}

func fromInternalStatus(st itemuc.Status) StatusSummary {
	out := StatusSummary{
		Total:  st.Total,
		Counts: make(map[Status]int, len(st.Counts)),
		Recent: make([]Screenshot, len(st.Recent)),
	}
	for status, n := range st.Counts {
		out.Counts[Status(status)] = n
	}
	for i, it := range st.Recent {
		out.Recent[i] = fromInternalScreenshot(it)
	}
	return out
}

func toInternalRules(entities []Entity) []entity.Rule {
	rules := make([]entity.Rule, len(entities))
	for i, e := range entities {
		rules[i] = entity.Rule{Term: e.Term, Variants: e.Variants}
	}
	return rules
}

func toInternalWeights(w map[string]float64) map[signal.Name]float64 {
	if len(w) == 0 {
		return nil
	}
	out := make(map[signal.Name]float64, len(w))
	for name, v := range w {
		out[signal.Name(name)] = v
	}
	return out
}
