package conditions_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/myrjola/jurassictravel/internal/conditions"
	"github.com/myrjola/jurassictravel/internal/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		hour           int
		wantWeather    string
		wantActivity   string
		wantVisibility string
	}{
		{hour: 0, wantWeather: "tropical-storm", wantActivity: "high", wantVisibility: "MED"},
		{hour: 5, wantWeather: "tropical-storm", wantActivity: "medium", wantVisibility: "MED"},
		{hour: 7, wantWeather: "clear", wantActivity: "medium", wantVisibility: "HIGH"},
		{hour: 10, wantWeather: "partly", wantActivity: "low", wantVisibility: "HIGH"},
		{hour: 15, wantWeather: "trade-winds", wantActivity: "medium", wantVisibility: "HIGH"},
		{hour: 18, wantWeather: "fog", wantActivity: "high", wantVisibility: "LOW"},
		{hour: 23, wantWeather: "tropical-storm", wantActivity: "high", wantVisibility: "MED"},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.hour), func(t *testing.T) {
			now := time.Date(2030, 1, 1, tt.hour, 30, 0, 0, time.UTC)
			report := conditions.New(now, random.NewSeeded(uint64(tt.hour)))

			assert.Equal(t, tt.wantWeather, report.Weather.ID)
			assert.Equal(t, tt.wantActivity, report.Activity.ID)
			assert.Equal(t, tt.wantVisibility, report.Visibility)
			assert.GreaterOrEqual(t, report.TemperatureC, report.Weather.MinTemp)
			assert.Less(t, report.TemperatureC, report.Weather.MaxTemp)
			assert.GreaterOrEqual(t, report.HumidityPct, 65)
			assert.Less(t, report.HumidityPct, 90)

			seismic, err := strconv.ParseFloat(report.Seismic, 64)
			require.NoError(t, err)
			assert.InDelta(t, 2.4, seismic, 1.21)
		})
	}
}

func TestNew_alertFeed(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	report := conditions.New(now, random.NewSeeded(7))
	require.Len(t, report.Alerts, 3)

	seen := map[string]bool{}
	for _, a := range report.Alerts {
		assert.False(t, seen[a.Text], "alert %q repeated", a.Text)
		seen[a.Text] = true
	}
	assert.Equal(t, report.Alerts, conditions.New(now, random.NewSeeded(7)).Alerts, "equal seeds give equal feeds")
}
