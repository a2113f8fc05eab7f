package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHumanDate(t *testing.T) {
	assert.Equal(t, "Today", HumanDate(time.Now()))
	assert.Equal(t, "Yesterday", HumanDate(time.Now().AddDate(0, 0, -1)))

	old := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mar 15, 2024", HumanDate(old))
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Now()

	assert.Equal(t, "Just now", HumanTimestamp(now.Add(-30*time.Second)))
	assert.Equal(t, "5m ago", HumanTimestamp(now.Add(-5*time.Minute)))
	assert.Equal(t, "3h ago", HumanTimestamp(now.Add(-3*time.Hour)))
}

func TestDateOrDash(t *testing.T) {
	assert.Contains(t, DateOrDash(nil), "--")

	d := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Contains(t, DateOrDash(&d), "2026-01-31")
}

func TestTruncID(t *testing.T) {
	out := TruncID("12345678-aaaa-bbbb-cccc-1234567890ab")
	assert.Contains(t, out, "12345678")
	assert.NotContains(t, out, "aaaa")

	assert.Contains(t, TruncID("short"), "short")
}
