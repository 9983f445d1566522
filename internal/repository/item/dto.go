package item

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/snapdex/internal/domain/item"
)

// featuresRow is the JSON form of item.Features stored in one hash field.
// Pointers keep "absent" distinct from "empty".
type featuresRow struct {
	ExtractedText     *string           `json:"extracted_text,omitempty"`
	VisualDescription *string           `json:"visual_description,omitempty"`
	UIElements        []string          `json:"ui_elements"`
	DominantColors    []string          `json:"dominant_colors"`
	ErrorStates       []string          `json:"error_states"`
	VisualPatterns    []string          `json:"visual_patterns"`
	ColorContext      map[string]string `json:"color_context"`
}

// itemToHash converts an Item to a map for HSET. Every field is written so
// an upsert overwrites stale values.
func itemToHash(it item.Item) (map[string]string, error) {
	f := it.Features()
	featuresJSON, err := json.Marshal(featuresRow{
		ExtractedText:     f.ExtractedText,
		VisualDescription: f.VisualDescription,
		UIElements:        f.UIElements,
		DominantColors:    f.DominantColors,
		ErrorStates:       f.ErrorStates,
		VisualPatterns:    f.VisualPatterns,
		ColorContext:      f.ColorContext,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal features: %w", err)
	}

	file := it.File()
	return map[string]string{
		"id":               it.ID(),
		"owner":            it.Owner(),
		"status":           string(it.Status()),
		"file_name":        file.Name,
		"mime_type":        file.MIMEType,
		"size":             strconv.FormatInt(file.Size, 10),
		"width":            strconv.Itoa(file.Width),
		"height":           strconv.Itoa(file.Height),
		"file_created_at":  formatTime(file.CreatedAt),
		"file_modified_at": formatTime(file.ModifiedAt),
		"uploaded_at":      formatTime(timePtr(it.UploadedAt())),
		"processed_at":     formatTime(it.ProcessedAt()),
		"processing_error": it.ProcessingError(),
		"features_json":    string(featuresJSON),
	}, nil
}

// itemFromHash hydrates an Item from an HGETALL result map.
func itemFromHash(m map[string]string) (item.Item, error) {
	var row featuresRow
	if raw := m["features_json"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &row); err != nil {
			return item.Item{}, fmt.Errorf("unmarshal features: %w", err)
		}
	}

	file := item.File{
		Name:     m["file_name"],
		MIMEType: m["mime_type"],
	}
	var err error
	if file.Size, err = parseInt64(m["size"]); err != nil {
		return item.Item{}, fmt.Errorf("invalid size: %w", err)
	}
	file.Width, _ = strconv.Atoi(m["width"])
	file.Height, _ = strconv.Atoi(m["height"])
	if file.CreatedAt, err = parseTime(m["file_created_at"]); err != nil {
		return item.Item{}, fmt.Errorf("invalid file_created_at: %w", err)
	}
	if file.ModifiedAt, err = parseTime(m["file_modified_at"]); err != nil {
		return item.Item{}, fmt.Errorf("invalid file_modified_at: %w", err)
	}

	uploadedAt, err := parseTime(m["uploaded_at"])
	if err != nil {
		return item.Item{}, fmt.Errorf("invalid uploaded_at: %w", err)
	}
	processedAt, err := parseTime(m["processed_at"])
	if err != nil {
		return item.Item{}, fmt.Errorf("invalid processed_at: %w", err)
	}

	features := item.Features{
		ExtractedText:     row.ExtractedText,
		VisualDescription: row.VisualDescription,
		UIElements:        row.UIElements,
		DominantColors:    row.DominantColors,
		ErrorStates:       row.ErrorStates,
		VisualPatterns:    row.VisualPatterns,
		ColorContext:      row.ColorContext,
	}

	var uploaded time.Time
	if uploadedAt != nil {
		uploaded = *uploadedAt
	}
	return item.Reconstruct(
		m["id"], m["owner"], item.Status(m["status"]), file, features,
		m["processing_error"], uploaded, processedAt,
	), nil
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// formatTime encodes as unix milliseconds, "" for nil.
func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func parseTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	t := time.UnixMilli(ms).UTC()
	return &t, nil
}

func parseInt64(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
