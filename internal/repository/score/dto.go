package score

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/snapdex/internal/domain/score"
	"github.com/kailas-cloud/snapdex/internal/domain/search/signal"
)

// recordToHash converts a Record to a map for HSET.
func recordToHash(r score.Record) (map[string]string, error) {
	signalsJSON, err := json.Marshal(r.Signals())
	if err != nil {
		return nil, fmt.Errorf("marshal signals: %w", err)
	}
	matchesJSON, err := json.Marshal(r.Matches())
	if err != nil {
		return nil, fmt.Errorf("marshal matches: %w", err)
	}
	return map[string]string{
		"item_id":      r.ItemID(),
		"owner":        r.Owner(),
		"query":        r.Query(),
		"signals_json": string(signalsJSON),
		"matches_json": string(matchesJSON),
		"overall":      strconv.FormatFloat(r.Overall(), 'g', -1, 64),
		"scored_at":    strconv.FormatInt(r.ScoredAt().UnixNano(), 10),
	}, nil
}

// recordFromHash hydrates a Record from an HGETALL result map.
func recordFromHash(m map[string]string) (score.Record, error) {
	signals := map[signal.Name]float64{}
	if raw := m["signals_json"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &signals); err != nil {
			return score.Record{}, fmt.Errorf("unmarshal signals: %w", err)
		}
	}
	matches := map[signal.Name][]string{}
	if raw := m["matches_json"]; raw != "" && raw != "null" {
		if err := json.Unmarshal([]byte(raw), &matches); err != nil {
			return score.Record{}, fmt.Errorf("unmarshal matches: %w", err)
		}
	}
	overall, err := strconv.ParseFloat(m["overall"], 64)
	if err != nil {
		return score.Record{}, fmt.Errorf("invalid overall: %w", err)
	}
	nanos, err := strconv.ParseInt(m["scored_at"], 10, 64)
	if err != nil {
		return score.Record{}, fmt.Errorf("invalid scored_at: %w", err)
	}
	return score.Reconstruct(
		m["item_id"], m["owner"], m["query"], signals, overall, matches,
		time.Unix(0, nanos).UTC(),
	), nil
}
