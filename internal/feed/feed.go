// Package feed reads and normalizes the workbook's alert tabs.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/couchcryptid/disaster-alert-service/internal/domain"
	"github.com/couchcryptid/disaster-alert-service/internal/store"
	"github.com/jonboulle/clockwork"
)

// whitespaceRe collapses header whitespace when deriving snake_case keys.
var whitespaceRe = regexp.MustCompile(`\s+`)

// Adapter produces normalized records from the workbook's feed tabs.
// Results are computed fresh per call, never cached.
type Adapter struct {
	store  store.Tabular
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewAdapter creates an Adapter over the given store.
func NewAdapter(s store.Tabular, clock clockwork.Clock, logger *slog.Logger) *Adapter {
	return &Adapter{store: s, clock: clock, logger: logger}
}

// AIAlerts reads the AI-alerts tab and normalizes its heterogeneous columns.
// Column indices are located by case-insensitive substring match on the
// header, first match wins per field. A missing header or empty tab yields an
// empty slice, not an error; only store failures are surfaced.
func (a *Adapter) AIAlerts(ctx context.Context) ([]domain.AIAlertRecord, error) {
	rows, err := a.store.Rows(ctx, store.TabAIFeed)
	if err != nil {
		return nil, fmt.Errorf("read ai-alerts tab: %w", err)
	}
	if len(rows) == 0 {
		return []domain.AIAlertRecord{}, nil
	}

	headers := rows[0]
	dateIdx := findColumn(headers, "pubdate", "date")
	riskIdx := findColumn(headers, "risk", "percentage")
	titleIdx := findColumn(headers, "title", "name")

	now := a.clock.Now().UTC()
	records := make([]domain.AIAlertRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		title := cell(row, titleIdx)
		if strings.TrimSpace(title) == "" {
			continue
		}
		risk := parseFloatOrZero(cell(row, riskIdx))
		records = append(records, domain.AIAlertRecord{
			ID:             fmt.Sprintf("ai-%d", i+1),
			PubDate:        cell(row, dateIdx),
			RiskPercentage: risk,
			TitleName:      title,
			Timestamp:      now,
			Category:       domain.CategoryCritical,
			Severity:       risk / 100,
			Resolved:       false,
		})
	}
	return records, nil
}

// Alerts reads the generic alerts tab, mapping each row to a record keyed by
// the snake_cased header names. Missing cells become empty strings.
func (a *Adapter) Alerts(ctx context.Context) ([]map[string]string, error) {
	rows, err := a.store.Rows(ctx, store.TabAlerts)
	if err != nil {
		return nil, fmt.Errorf("read alerts tab: %w", err)
	}
	if len(rows) == 0 {
		return []map[string]string{}, nil
	}

	keys := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		keys[i] = snakeCase(header)
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(keys))
		for i, key := range keys {
			record[key] = cell(row, i)
		}
		records = append(records, record)
	}
	return records, nil
}

// findColumn returns the index of the first header containing any of the
// given substrings, case-insensitively, or -1 when none match.
func findColumn(headers []string, substrings ...string) int {
	for i, header := range headers {
		h := strings.ToLower(header)
		for _, sub := range substrings {
			if strings.Contains(h, sub) {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func parseFloatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func snakeCase(header string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(header)), "_")
}
