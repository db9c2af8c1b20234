// Package holidays reads production-calendar files listing the public
// holidays of a year and answers whether a date is one of them.
package holidays

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// calendarJSON is the on-disk format: per month, a comma separated list of
// day numbers. A trailing "+" or "*" marks bridge and shortened days and is
// ignored.
type calendarJSON struct {
	Year   int         `json:"year"`
	Months []monthDays `json:"months"`
}

type monthDays struct {
	Month int    `json:"month"`
	Days  string `json:"days"`
}

// Set is a collection of holiday dates keyed by YYYY-MM-DD.
type Set map[string]struct{}

// Load reads one or more calendar files and merges them.
func Load(paths ...string) (Set, error) {
	set := Set{}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read holidays file: %w", err)
		}
		if err := set.parse(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return set, nil
}

// Parse builds a Set from a single calendar document.
func Parse(data []byte) (Set, error) {
	set := Set{}
	if err := set.parse(data); err != nil {
		return nil, err
	}
	return set, nil
}

func (s Set) parse(data []byte) error {
	var cal calendarJSON
	if err := json.Unmarshal(data, &cal); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	for _, m := range cal.Months {
		if m.Month < 1 || m.Month > 12 {
			return fmt.Errorf("invalid month %d", m.Month)
		}
		for _, dayStr := range strings.Split(m.Days, ",") {
			dayStr = strings.TrimSpace(dayStr)
			dayStr = strings.TrimRight(dayStr, "+*")
			if dayStr == "" {
				continue
			}

			day, err := strconv.Atoi(dayStr)
			if err != nil {
				return fmt.Errorf("failed to parse day '%s' in month %d: %w", dayStr, m.Month, err)
			}

			date := time.Date(cal.Year, time.Month(m.Month), day, 0, 0, 0, 0, time.UTC)
			if date.Day() != day {
				return fmt.Errorf("day %d does not exist in %d-%02d", day, cal.Year, m.Month)
			}
			s[date.Format(dateLayout)] = struct{}{}
		}
	}
	return nil
}

// Contains reports whether the YYYY-MM-DD date is a holiday. A nil Set
// contains nothing.
func (s Set) Contains(date string) bool {
	_, ok := s[date]
	return ok
}

// InMonth lists the holidays of a YYYY-MM month in order.
func (s Set) InMonth(month string) []string {
	prefix := month + "-"
	var dates []string
	for d := range s {
		if strings.HasPrefix(d, prefix) {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	return dates
}
