package dataset

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"AgriForecast/internal/forecast"
	"AgriForecast/internal/model"
)

// dateLayouts accepted in the dataset, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// CSVSource loads the daily pricing dataset from a CSV export with
// commodity, date and amount columns. It implements forecast.SeriesSource.
// Reload swaps the whole dataset atomically, so lookups stay safe while a
// reload is in flight.
type CSVSource struct {
	path string

	mu     sync.RWMutex
	series map[string]model.Series // keyed by normalized commodity name
	names  []string                // display names, sorted
}

// NewCSVSource loads the dataset at path.
func NewCSVSource(path string) (*CSVSource, error) {
	s := &CSVSource{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the CSV file and replaces the in-memory dataset.
func (s *CSVSource) Reload() error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read dataset header: %w", err)
	}
	commodityCol, dateCol, amountCol := -1, -1, -1
	for i, name := range header {
		switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_") {
		case "commodity":
			commodityCol = i
		case "date":
			dateCol = i
		case "amount", "price":
			amountCol = i
		}
	}
	if commodityCol < 0 || dateCol < 0 || amountCol < 0 {
		return fmt.Errorf("dataset %s: missing required columns (need commodity, date, amount)", s.path)
	}

	byName := make(map[string][]model.Observation)
	rows, skipped := 0, 0
	for {
		record, err := r.Read()
		if err != nil {
			break
		}
		maxCol := commodityCol
		if dateCol > maxCol {
			maxCol = dateCol
		}
		if amountCol > maxCol {
			maxCol = amountCol
		}
		if len(record) <= maxCol {
			skipped++
			continue
		}

		name := strings.TrimSpace(record[commodityCol])
		date, dateErr := parseDate(strings.TrimSpace(record[dateCol]))
		price, priceErr := decimal.NewFromString(strings.TrimSpace(record[amountCol]))
		if name == "" || dateErr != nil || priceErr != nil || price.IsNegative() {
			skipped++
			continue
		}

		byName[name] = append(byName[name], model.Observation{
			Date:  date,
			Price: price.InexactFloat64(),
		})
		rows++
	}

	series := make(map[string]model.Series, len(byName))
	names := make([]string, 0, len(byName))
	for name, obs := range byName {
		series[normalize(name)] = model.Series{Commodity: name, Observations: obs}
		names = append(names, name)
	}
	sort.Strings(names)

	s.mu.Lock()
	s.series = series
	s.names = names
	s.mu.Unlock()

	if skipped > 0 {
		log.Printf("[WARN] dataset %s: skipped %d malformed rows", s.path, skipped)
	}
	log.Printf("[INFO] dataset loaded: %d rows, %d commodities", rows, len(names))
	return nil
}

// Commodities returns the catalog of known commodity names, sorted.
func (s *CSVSource) Commodities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Series looks up a commodity case- and whitespace-insensitively. An exact
// normalized match wins; otherwise a unique substring match is accepted.
func (s *CSVSource) Series(name string) (model.Series, error) {
	norm := normalize(name)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if series, ok := s.series[norm]; ok {
		return series, nil
	}

	var matches []string
	for key := range s.series {
		if norm != "" && strings.Contains(key, norm) {
			matches = append(matches, key)
		}
	}
	if len(matches) == 1 {
		return s.series[matches[0]], nil
	}
	return model.Series{}, fmt.Errorf("commodity %q: %w", name, forecast.ErrNotFound)
}

// normalize lowercases and collapses all whitespace runs to single spaces.
func normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

var _ forecast.SeriesSource = (*CSVSource)(nil)
