package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("15/01/2025")
	require.NoError(t, err)
	assert.Equal(t, "15/01/2025", d.String())
	assert.Equal(t, NewDate(2025, time.January, 15), d)
}

func TestParseDateRejectsISO(t *testing.T) {
	_, err := ParseDate("2025-01-15")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2025, time.March, 7)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"07/03/2025"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)
}

func TestDateJSONZero(t *testing.T) {
	var d Date
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `""`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &back))
	assert.True(t, back.IsZero())
}

func TestDaysSince(t *testing.T) {
	due := NewDate(2025, time.January, 10)
	returned := NewDate(2025, time.January, 15)
	assert.Equal(t, 5, returned.DaysSince(due))
	assert.Equal(t, -5, due.DaysSince(returned))
	assert.Equal(t, 0, due.DaysSince(due))
}

func TestAddDays(t *testing.T) {
	d := NewDate(2025, time.January, 30)
	assert.Equal(t, NewDate(2025, time.February, 1), d.AddDays(2))
}

func TestDateTimeJSON(t *testing.T) {
	dt := DateTimeOf(time.Date(2025, time.June, 2, 14, 30, 59, 0, time.UTC))
	data, err := json.Marshal(dt)
	require.NoError(t, err)
	assert.Equal(t, `"02/06/2025 14:30"`, string(data))

	var back DateTime
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "02/06/2025 14:30", back.String())
}
