package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/pocketledger/backend/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestDateUnmarshalJSON(t *testing.T) {
	var target struct {
		Date types.Date
	}

	tests := []struct {
		json string
		want types.Date
	}{
		{`{ "date": "2025-06-05" }`, types.NewDate(2025, 6, 5)},
		{`{ "date": "2024-05-12T17:59:23+02:00" }`, types.NewDate(2024, 5, 12)},
	}

	for _, tt := range tests {
		err := json.Unmarshal([]byte(tt.json), &target)

		assert.Nil(t, err)
		assert.Equal(t, tt.want, target.Date)
	}
}

func TestDateMarshalJSON(t *testing.T) {
	b, err := json.Marshal(types.NewDate(2025, 1, 31))

	assert.Nil(t, err)
	assert.Equal(t, `"2025-01-31"`, string(b))
}

func TestDateOf(t *testing.T) {
	tz, _ := time.LoadLocation("Europe/Berlin")

	// 00:30 on June 1 in Berlin is still May 31 in UTC
	date := types.DateOf(time.Date(2025, 6, 1, 0, 30, 0, 0, tz))
	assert.Equal(t, types.NewDate(2025, 5, 31), date)
}

func TestParseDate(t *testing.T) {
	date, err := types.ParseDate("2025-06-05")
	assert.Nil(t, err)
	assert.Equal(t, types.NewDate(2025, 6, 5), date)

	_, err = types.ParseDate("not-a-date")
	assert.NotNil(t, err)
}

func TestDateComparisons(t *testing.T) {
	earlier := types.NewDate(2025, 6, 1)
	later := types.NewDate(2025, 6, 30)

	assert.True(t, earlier.Before(later))
	assert.True(t, later.After(earlier))
	assert.False(t, earlier.Equal(later))
	assert.True(t, earlier.Equal(earlier.AddDate(0, 0, 0)))
	assert.Equal(t, types.NewDate(2025, 7, 1), later.AddDate(0, 0, 1))
}
