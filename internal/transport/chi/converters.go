package chi

import (
	domitem "github.com/kailas-cloud/snapdex/internal/domain/item"
	"github.com/kailas-cloud/snapdex/internal/domain/search/result"
	"github.com/kailas-cloud/snapdex/internal/domain/search/signal"
	gen "github.com/kailas-cloud/snapdex/internal/transport/generated"
	itemuc "github.com/kailas-cloud/snapdex/internal/usecase/item"
	searchuc "github.com/kailas-cloud/snapdex/internal/usecase/search"
)

func searchResultToGen(r *result.Result) gen.SearchResult {
	rec := r.Record()
	out := gen.SearchResult{
		Id:         r.ID(),
		Filename:   r.Item().File().Name,
		Confidence: result.Round(r.Overall()),
		Signals:    make(map[string]float64, len(rec.Signals())),
		UploadedAt: r.Item().UploadedAt(),
	}
	for name, v := range rec.Signals() {
		out.Signals[string(name)] = result.Round(v)
	}
	if m := rec.Matches(); len(m) > 0 {
		matches := make(map[string][]string, len(m))
		for name, values := range m {
			matches[string(name)] = values
		}
		out.Matches = &matches
	}
	if excerpt := r.Excerpt(result.ExcerptLength); excerpt != "" {
		out.TextExcerpt = &excerpt
	}
	return out
}

func explanationToGen(id, query string, exp searchuc.Explanation, set *signal.Set) gen.ExplainResponse {
	out := gen.ExplainResponse{
		Id:        id,
		Query:     query,
		SignalSet: set.Name(),
		Threshold: set.Threshold(),
		Overall:   result.Round(exp.Breakdown.Overall),
		Accepted:  exp.Breakdown.Accepted && !exp.Excluded,
		Excluded:  exp.Excluded,
		Signals:   make([]gen.SignalScore, len(exp.Breakdown.Scores)),
	}
	for i, sc := range exp.Breakdown.Scores {
		out.Signals[i] = gen.SignalScore{
			Name:   string(sc.Name),
			Value:  result.Round(sc.Value),
			Weight: sc.Weight,
		}
		if m := exp.Breakdown.Matches[sc.Name]; len(m) > 0 {
			matches := append([]string(nil), m...)
			out.Signals[i].Matches = &matches
		}
	}
	if f := exp.Filter; f != nil {
		out.TimeFilter = &gen.TimeFilterInfo{Field: string(f.Field), From: f.From, To: f.To}
	}
	return out
}

func screenshotToGen(it domitem.Item, withFeatures bool) gen.Screenshot {
	file := it.File()
	out := gen.Screenshot{
		Id:             it.ID(),
		Filename:       file.Name,
		MimeType:       file.MIMEType,
		Size:           file.Size,
		Status:         gen.ScreenshotStatus(it.Status()),
		UploadedAt:     it.UploadedAt(),
		ProcessedAt:    it.ProcessedAt(),
		FileCreatedAt:  file.CreatedAt,
		FileModifiedAt: file.ModifiedAt,
	}
	if file.Width > 0 {
		width := file.Width
		out.Width = &width
	}
	if file.Height > 0 {
		height := file.Height
		out.Height = &height
	}
	if msg := it.ProcessingError(); msg != "" {
		out.ProcessingError = &msg
	}
	if withFeatures {
		f := featuresToGen(it.Features())
		out.Features = &f
	}
	return out
}

func featuresToGen(f domitem.Features) gen.Features {
	return gen.Features{
		ExtractedText:     f.ExtractedText,
		VisualDescription: f.VisualDescription,
		UiElements:        &f.UIElements,
		DominantColors:    &f.DominantColors,
		ErrorStates:       &f.ErrorStates,
		VisualPatterns:    &f.VisualPatterns,
		ColorContext:      &f.ColorContext,
	}
}

func featuresFromGen(g gen.Features) domitem.Features {
	f := domitem.Features{
		UIElements:     derefStrings(g.UiElements),
		DominantColors: derefStrings(g.DominantColors),
		ErrorStates:    derefStrings(g.ErrorStates),
		VisualPatterns: derefStrings(g.VisualPatterns),
	}
	if g.ExtractedText != nil {
		f.ExtractedText = domitem.StringPtr(*g.ExtractedText)
	}
	if g.VisualDescription != nil {
		f.VisualDescription = domitem.StringPtr(*g.VisualDescription)
	}
	if g.ColorContext != nil {
		f.ColorContext = *g.ColorContext
	}
	return f
}

func statusToGen(st itemuc.Status) gen.StatusResponse {
	out := gen.StatusResponse{
		Total:  st.Total,
		Counts: make(map[string]int, len(st.Counts)),
		Recent: make([]gen.Screenshot, len(st.Recent)),
	}
	for status, n := range st.Counts {
		out.Counts[string(status)] = n
	}
	for i, it := range st.Recent {
		out.Recent[i] = screenshotToGen(it, false)
	}
	return out
}

func derefStrings(p *[]string) []string {
	if p == nil {
		return nil
	}
	return *p
}
