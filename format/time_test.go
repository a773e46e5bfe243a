package format

import (
	"testing"
	"time"
)

func assertEqual(t *testing.T, a interface{}, b interface{}) {
	t.Helper()
	if a != b {
		t.Errorf("Assert failed, expected %v, got %v", b, a)
	}
}

func TestHumanTime(t *testing.T) {
	now := time.Now()

	t.Run("zero value", func(t *testing.T) {
		assertEqual(t, HumanTime(time.Time{}, "Never"), "Never")
	})

	t.Run("time in the future", func(t *testing.T) {
		v := now.Add(48 * time.Hour)
		assertEqual(t, HumanTime(v, ""), "2 days from now")
	})

	t.Run("time in the past", func(t *testing.T) {
		v := now.Add(-48 * time.Hour)
		assertEqual(t, HumanTime(v, ""), "2 days ago")
	})

	t.Run("moments ago", func(t *testing.T) {
		v := now.Add(-time.Millisecond)
		assertEqual(t, HumanTime(v, ""), "Less than a second ago")
	})
}

func TestExactDuration(t *testing.T) {
	type testCase struct {
		input    time.Duration
		expected string
	}

	tests := []testCase{
		{0, "0 milliseconds"},
		{time.Millisecond, "1 millisecond"},
		{42 * time.Millisecond, "42 milliseconds"},
		{time.Second, "1 second"},
		{45 * time.Second, "45 seconds"},
		{time.Minute, "1 minute"},
		{time.Minute + 30*time.Second, "1 minute 30 seconds"},
		{10 * time.Minute, "10 minutes"},
		{time.Hour, "1 hour"},
		{2*time.Hour + 15*time.Minute + 5*time.Second, "2 hours 15 minutes 5 seconds"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			assertEqual(t, ExactDuration(tc.input), tc.expected)
		})
	}
}
