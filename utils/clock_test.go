package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9*60+30, minutes)

	_, err = ParseClock("9:30am")
	assert.Error(t, err)
	_, err = ParseClock("25:00")
	assert.Error(t, err)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "08:05", FormatClock(8*60+5))
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "23:59", FormatClock(23*60+59))
}

func TestMinutesBetween(t *testing.T) {
	span, err := MinutesBetween("09:00", "10:30")
	require.NoError(t, err)
	assert.Equal(t, 90, span)

	span, err = MinutesBetween("14:00", "13:00")
	require.NoError(t, err)
	assert.Equal(t, -60, span)

	_, err = MinutesBetween("nope", "10:00")
	assert.Error(t, err)
}

func TestAddMinutes(t *testing.T) {
	end, err := AddMinutes("09:00", 60)
	require.NoError(t, err)
	assert.Equal(t, "10:00", end)

	end, err = AddMinutes("23:30", 60)
	require.NoError(t, err)
	assert.Equal(t, "23:59", end)
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("2026-02-30")
	assert.Error(t, err)
	_, err = ParseDate("2026-09-01")
	assert.NoError(t, err)
}
