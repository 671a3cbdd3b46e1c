package internal

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// Epoch values above this are treated as milliseconds, below as seconds.
const millisecondThreshold = 1e10

// MaxFileNameLength caps generated filenames.
const MaxFileNameLength = 160

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatTimestamp normalizes a timestamp to "YYYY-MM-DD HH:MM:SS". Numeric
// values are epoch seconds or milliseconds depending on magnitude; strings
// are parsed as ISO-8601 (a trailing Z means UTC). Values that cannot be
// parsed come back in their literal string form.
func FormatTimestamp(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case FlexTime:
		return FormatTimestamp(v.Value())
	case float64:
		return formatEpoch(v)
	case int64:
		return formatEpoch(float64(v))
	case int:
		return formatEpoch(float64(v))
	case string:
		return formatISO(v)
	default:
		return fmt.Sprint(value)
	}
}

func formatEpoch(value float64) string {
	seconds := value
	if value > millisecondThreshold {
		seconds = value / 1000
	}
	sec, frac := math.Modf(seconds)
	return time.Unix(int64(sec), int64(frac*float64(time.Second))).Format(timestampLayout)
}

func formatISO(value string) string {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(timestampLayout)
		}
	}
	return value
}

var (
	illegalFileChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
	dateReplacer     = strings.NewReplacer(" ", "-", ":", "-")
)

// SafeFileName builds a filesystem-safe "{date}--{title}" name. The title is
// stripped of characters illegal in filenames and whitespace runs collapse to
// single dashes. Names longer than MaxFileNameLength are shortened by
// truncating the title; the date prefix is never cut.
func SafeFileName(timestamp interface{}, title string) string {
	dateStr := dateReplacer.Replace(FormatTimestamp(timestamp))

	safeTitle := illegalFileChars.ReplaceAllString(title, "")
	safeTitle = whitespaceRuns.ReplaceAllString(safeTitle, "-")

	combined := dateStr + "--" + safeTitle
	if runeLen(combined) <= MaxFileNameLength {
		return combined
	}

	limit := MaxFileNameLength - runeLen(dateStr) - 4
	if limit < 0 {
		limit = 0
	}
	return dateStr + "--" + truncateRunes(safeTitle, limit)
}

func runeLen(s string) int {
	return len([]rune(s))
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
