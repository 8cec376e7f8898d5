// Package export writes the accumulated course rows to tabular output.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/coursecrawl/internal/course"
)

// Column order is part of the output contract; keep it stable.
var csvHeader = []string{
	"course_title",
	"short_description",
	"skills",
	"URL",
	"course_level",
	"duration",
	"rating",
	"price",
	"platform",
	"category_query",
}

// WriteCSV writes rows to path and returns the path actually written. When
// the destination cannot be created (for example the file is open in a
// spreadsheet application holding a lock), it falls back to a
// timestamp-suffixed sibling instead of failing the run. Empty input is a
// no-op that only logs.
func WriteCSV(rows []course.Record, path string) (string, error) {
	if len(rows) == 0 {
		log.Info().Msg("no rows to save")
		return "", nil
	}
	f, err := os.Create(path)
	if err != nil {
		alt := fallbackPath(path, time.Now())
		log.Warn().Err(err).Str("path", path).Str("fallback", alt).Msg("output locked; using fallback path")
		f, err = os.Create(alt)
		if err != nil {
			return "", fmt.Errorf("create fallback output: %w", err)
		}
		path = alt
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		row := []string{
			r.Title, r.Description, r.Skills, r.URL, r.Level,
			r.Duration, r.Rating, r.Price, r.Platform, r.CategoryQuery,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return path, nil
}

func fallbackPath(path string, now time.Time) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s_%s%s", base, now.Format("20060102_150405"), ext)
}
