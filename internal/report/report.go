package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nilszeilon/keystats/internal/domain"
)

// Output formats accepted by Write.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Reader is the read side of the aggregate store.
type Reader interface {
	TotalsByKey() ([]domain.KeyTotal, error)
	DailyTotals(days int) ([]domain.DailyTotal, error)
	TopKeys(days, limit int) ([]domain.KeyTotal, error)
	TotalCount(date string) (int64, error)
}

// Report is a snapshot of the aggregate store over a trailing window.
type Report struct {
	Date        string              `json:"date" yaml:"date"`
	Days        int                 `json:"days" yaml:"days"`
	Today       int64               `json:"today" yaml:"today"`
	AllTime     int64               `json:"all_time" yaml:"all_time"`
	DailyTotals []domain.DailyTotal `json:"daily_totals" yaml:"daily_totals"`
	TopKeys     []domain.KeyTotal   `json:"top_keys" yaml:"top_keys"`
	TotalsByKey []domain.KeyTotal   `json:"totals_by_key" yaml:"totals_by_key"`
}

// Build runs the read queries for the last days days and the top keys in that window.
func Build(r Reader, now time.Time, days, top int) (*Report, error) {
	today := now.Local().Format(domain.DateLayout)
	rep := &Report{Date: today, Days: days}

	var err error
	if rep.Today, err = r.TotalCount(today); err != nil {
		return nil, fmt.Errorf("count today: %w", err)
	}
	if rep.AllTime, err = r.TotalCount(""); err != nil {
		return nil, fmt.Errorf("count all time: %w", err)
	}
	if rep.DailyTotals, err = r.DailyTotals(days); err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	if rep.TopKeys, err = r.TopKeys(days, top); err != nil {
		return nil, fmt.Errorf("top keys: %w", err)
	}
	if rep.TotalsByKey, err = r.TotalsByKey(); err != nil {
		return nil, fmt.Errorf("totals by key: %w", err)
	}
	return rep, nil
}

// Write renders rep to w in format.
func Write(w io.Writer, rep *Report, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatTable:
		return writeTable(w, rep)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func writeTable(w io.Writer, rep *Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Today (%s):\t%d\n", rep.Date, rep.Today)
	fmt.Fprintf(tw, "All time:\t%d\n", rep.AllTime)

	fmt.Fprintf(tw, "\nLast %d days\n", rep.Days)
	fmt.Fprintln(tw, "DATE\tPRESSES")
	for _, d := range rep.DailyTotals {
		fmt.Fprintf(tw, "%s\t%d\n", d.Date, d.Total)
	}

	fmt.Fprintln(tw, "\nTop keys")
	fmt.Fprintln(tw, "RANK\tCODE\tKEY\tPRESSES")
	for i, k := range rep.TopKeys {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\n", i+1, k.ScanCode, k.KeyName, k.Total)
	}

	fmt.Fprintln(tw, "\nAll keys")
	fmt.Fprintln(tw, "CODE\tKEY\tPRESSES")
	for _, k := range rep.TotalsByKey {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", k.ScanCode, k.KeyName, k.Total)
	}
	return tw.Flush()
}
