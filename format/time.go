package format

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// HumanDuration returns a rough, human-readable approximation of a
// duration, eg. "About a minute" or "4 hours".
func HumanDuration(d time.Duration) string {
	seconds := int(d.Seconds())

	switch {
	case seconds < 1:
		return "Less than a second"
	case seconds == 1:
		return "1 second"
	case seconds < 60:
		return fmt.Sprintf("%d seconds", seconds)
	}

	minutes := int(d.Minutes())
	switch {
	case minutes == 1:
		return "About a minute"
	case minutes < 60:
		return fmt.Sprintf("%d minutes", minutes)
	}

	hours := int(math.Round(d.Hours()))
	switch {
	case hours == 1:
		return "About an hour"
	case hours < 48:
		return fmt.Sprintf("%d hours", hours)
	case hours < 24*7*2:
		return fmt.Sprintf("%d days", hours/24)
	case hours < 24*30*2:
		return fmt.Sprintf("%d weeks", hours/24/7)
	case hours < 24*365*2:
		return fmt.Sprintf("%d months", hours/24/30)
	}

	return fmt.Sprintf("%d years", int(d.Hours())/24/365)
}

// HumanTime renders t relative to now ("3 days ago"), or zeroValue when t
// is the zero time.
func HumanTime(t time.Time, zeroValue string) string {
	if t.IsZero() {
		return zeroValue
	}

	delta := time.Since(t)
	if delta < 0 {
		return HumanDuration(-delta) + " from now"
	}
	return HumanDuration(delta) + " ago"
}

// ExactDuration renders d in whole hours, minutes and seconds, falling back
// to milliseconds below one second.
func ExactDuration(d time.Duration) string {
	if d < time.Second {
		if d.Milliseconds() == 1 {
			return "1 millisecond"
		}
		return fmt.Sprintf("%d milliseconds", d.Milliseconds())
	}

	var parts []string
	plural := func(n int64, unit string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, unit)
		}
		return fmt.Sprintf("%d %ss", n, unit)
	}

	if h := int64(d.Hours()); h > 0 {
		parts = append(parts, plural(h, "hour"))
	}
	if m := int64(d.Minutes()) % 60; m > 0 {
		parts = append(parts, plural(m, "minute"))
	}
	if s := int64(d.Seconds()) % 60; s > 0 {
		parts = append(parts, plural(s, "second"))
	}

	return strings.Join(parts, " ")
}
