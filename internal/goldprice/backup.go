package goldprice

import (
	"os"
	"sort"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/simplifymoney/kuberai-backend/internal/models"
)

// BackupStore reads the static local price snapshot used when the live
// gold API is unreachable. The file is never written to.
type BackupStore struct {
	path string
	log  zerolog.Logger
}

func NewBackupStore(path string, log zerolog.Logger) *BackupStore {
	return &BackupStore{path: path, log: log}
}

// Load returns the snapshot sorted ascending by date, regardless of
// on-disk order. A missing file or malformed content yields an empty
// slice, never an error. Entries with unparsable dates are dropped.
func (s *BackupStore) Load() []models.PricePoint {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		s.log.Warn().Str("file", s.path).Err(err).Msg("backup snapshot unavailable")
		return nil
	}

	var entries []models.PricePoint
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.log.Warn().Str("file", s.path).Err(err).Msg("backup snapshot malformed")
		return nil
	}

	type dated struct {
		point models.PricePoint
		when  time.Time
	}
	parsed := make([]dated, 0, len(entries))
	for _, e := range entries {
		when, err := parseDate(e.Date)
		if err != nil {
			s.log.Warn().Str("date", e.Date).Msg("dropping backup entry with bad date")
			continue
		}
		parsed = append(parsed, dated{point: e, when: when})
	}

	sort.Slice(parsed, func(i, j int) bool {
		return parsed[i].when.Before(parsed[j].when)
	})

	out := make([]models.PricePoint, len(parsed))
	for i, d := range parsed {
		out[i] = d.point
	}
	return out
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
