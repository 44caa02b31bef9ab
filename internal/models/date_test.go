package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2026, time.March, 15)

	raw, err := json.Marshal(d)
	assert.NoError(t, err)
	assert.Equal(t, `"2026-03-15"`, string(raw))

	var parsed Date
	assert.NoError(t, json.Unmarshal(raw, &parsed))
	assert.Equal(t, d.String(), parsed.String())
}

func TestDate_UnmarshalInvalid(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"15.03.2026"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`"2026-13-40"`), &d))
}

func TestDate_Compare(t *testing.T) {
	earlier := NewDate(2026, time.January, 1)
	later := NewDate(2026, time.June, 1)

	assert.True(t, earlier.Before(later))
	assert.True(t, later.After(earlier))
	assert.False(t, earlier.After(later))
	assert.False(t, earlier.Before(earlier))
}

func TestDate_Scan(t *testing.T) {
	var d Date

	assert.NoError(t, d.Scan(time.Date(2026, time.May, 9, 13, 45, 0, 0, time.UTC)))
	assert.Equal(t, "2026-05-09", d.String())

	assert.NoError(t, d.Scan([]byte("2026-07-01")))
	assert.Equal(t, "2026-07-01", d.String())

	assert.NoError(t, d.Scan("2026-08-02"))
	assert.Equal(t, "2026-08-02", d.String())

	assert.Error(t, d.Scan(42))
}
