package report

import (
	"fmt"
	"regexp"
	"time"
)

// Date sentinels. Each call site owns its own placeholder text: diaries,
// table cells and the identity header all degrade differently.
const (
	SentinelDiaryDate  = "Data não disponível"
	SentinelTableDate  = "-"
	SentinelHeaderDate = "Data não informada"
)

// isoDatePrefix matches an ISO calendar date at the start of a string,
// ignoring any trailing time/fraction/timezone component.
var isoDatePrefix = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)

// parseLayouts are tried, in order, for strings that do not carry an ISO
// date prefix. Layouts without a zone parse as UTC.
var parseLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// FormatDate renders a stored date value as DD/MM/YYYY, or the given
// sentinel when the value is absent.
//
// Strings are matched against the ISO date prefix first and reassembled
// without date parsing: parsing a date-only string through a timezone-
// aware clock can silently shift the calendar day, and the stored dates
// are calendar dates, not instants. Parsing is only the fallback for
// non-ISO inputs; strings that still fail to parse pass through opaquely.
func FormatDate(v any, sentinel string) string {
	switch t := v.(type) {
	case nil:
		return sentinel
	case time.Time:
		return formatDMY(t)
	case *time.Time:
		if t == nil {
			return sentinel
		}
		return formatDMY(*t)
	case string:
		if t == "" {
			return sentinel
		}
		if m := isoDatePrefix.FindStringSubmatch(t); m != nil {
			return fmt.Sprintf("%s/%s/%s", m[3], m[2], m[1])
		}
		for _, layout := range parseLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return formatDMY(parsed)
			}
		}
		return t
	default:
		return asString(v)
	}
}

func formatDMY(t time.Time) string {
	return fmt.Sprintf("%02d/%02d/%04d", t.Day(), int(t.Month()), t.Year())
}
