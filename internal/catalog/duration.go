package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Day is the unit catalog durations are expressed in.
const Day = 24 * time.Hour

const daysPerMonth = 30

// durationPattern accepts "1 week", "2-3 weeks", "10 days", "1-2 months".
// Ranges use their lower bound.
var durationPattern = regexp.MustCompile(`^(\d+)(?:\s*-\s*\d+)?\s*(day|days|week|weeks|month|months)$`)

// ParseDuration converts a human duration string into a time.Duration.
func ParseDuration(raw string) (time.Duration, error) {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	m := durationPattern.FindStringSubmatch(cleaned)
	if m == nil {
		return 0, fmt.Errorf("invalid duration %q", raw)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid duration %q", raw)
	}
	switch {
	case strings.HasPrefix(m[2], "month"):
		return time.Duration(n*daysPerMonth) * Day, nil
	case strings.HasPrefix(m[2], "week"):
		return time.Duration(n*7) * Day, nil
	default:
		return time.Duration(n) * Day, nil
	}
}

// FormatDays renders a day count as "N months M days", "N months" or "N days",
// counting 30 days per month.
func FormatDays(days int) string {
	if days < 0 {
		days = 0
	}
	months := days / daysPerMonth
	rest := days % daysPerMonth
	switch {
	case months > 0 && rest > 0:
		return fmt.Sprintf("%d months %d days", months, rest)
	case months > 0:
		return fmt.Sprintf("%d months", months)
	default:
		return fmt.Sprintf("%d days", rest)
	}
}
