// Package conditions simulates the island status report of the conditions widget: weather and dinosaur activity
// follow the hour of day, the gauges and the alert feed are randomised.
package conditions

import (
	"fmt"
	"time"

	"github.com/myrjola/jurassictravel/internal/random"
)

// alertsShown is the length of the alert feed.
const alertsShown = 3

type Weather struct {
	ID      string
	Label   string
	MinTemp int
	MaxTemp int
}

var (
	clearSkies    = Weather{ID: "clear", Label: "Clear Skies", MinTemp: 31, MaxTemp: 36}
	partlyCloudy  = Weather{ID: "partly", Label: "Partly Cloudy", MinTemp: 28, MaxTemp: 33}
	tropicalStorm = Weather{ID: "tropical-storm", Label: "Tropical Storm", MinTemp: 24, MaxTemp: 28}
	fog           = Weather{ID: "fog", Label: "Dense Fog", MinTemp: 22, MaxTemp: 26}
	tradeWinds    = Weather{ID: "trade-winds", Label: "Trade Winds", MinTemp: 27, MaxTemp: 31}
)

type Activity struct {
	ID          string
	Label       string
	Description string
	// Percent fills the activity gauge.
	Percent int
}

var (
	activityLow    = Activity{ID: "low", Label: "LOW", Description: "Minimal surface activity", Percent: 33}
	activityMedium = Activity{ID: "medium", Label: "MEDIUM", Description: "Standard patrol patterns", Percent: 66}
	activityHigh   = Activity{ID: "high", Label: "HIGH", Description: "Heightened territorial behavior", Percent: 100}
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

type Alert struct {
	Icon     string
	Text     string
	Severity Severity
}

var alerts = []Alert{
	{Icon: "🦖", Text: "T-Rex spotted near Zone 9 perimeter", Severity: SeverityCritical},
	{Icon: "🌊", Text: "Mosasaurus feeding scheduled in 30 min", Severity: SeverityInfo},
	{Icon: "⚡", Text: "Fence Section 7B voltage spike detected", Severity: SeverityWarning},
	{Icon: "🦕", Text: "Argentinosaurus herd migrating to Sector 4", Severity: SeverityInfo},
	{Icon: "🔴", Text: "Spinosaurus sonar contact in river delta", Severity: SeverityCritical},
	{Icon: "🪺", Text: "Triceratops nesting activity confirmed", Severity: SeverityInfo},
	{Icon: "⚠️", Text: "Pteranodon flock circling Cliff Station", Severity: SeverityWarning},
	{Icon: "🌧️", Text: "Tropical storm approaching western coast", Severity: SeverityWarning},
	{Icon: "🦎", Text: "Compy pack detected near Guest Lodge B", Severity: SeverityWarning},
	{Icon: "🔵", Text: "Plesiosaurus pod surfacing at Coral Bay", Severity: SeverityInfo},
	{Icon: "🏗️", Text: "Containment breach drill in 45 min, Zone 3", Severity: SeverityCritical},
	{Icon: "🌡️", Text: "Thermal sensors indicate nest incubation peak", Severity: SeverityInfo},
}

// Report is one reading of the island conditions.
type Report struct {
	Time         time.Time
	Weather      Weather
	Activity     Activity
	TemperatureC int
	HumidityPct  int
	WindKmh      int
	Seismic      string
	Visibility   string
	Alerts       []Alert
}

// WeatherAt returns the weather pattern of the hour.
func WeatherAt(hour int) Weather {
	switch {
	case hour >= 6 && hour < 10:
		return clearSkies
	case hour >= 10 && hour < 14:
		return partlyCloudy
	case hour >= 14 && hour < 17:
		return tradeWinds
	case hour >= 17 && hour < 20:
		return fog
	default:
		return tropicalStorm
	}
}

// ActivityAt returns the dinosaur activity level of the hour. Predators are most active from dusk until dawn.
func ActivityAt(hour int) Activity {
	switch {
	case hour >= 5 && hour < 9:
		return activityMedium
	case hour >= 9 && hour < 12:
		return activityLow
	case hour >= 12 && hour < 17:
		return activityMedium
	default:
		return activityHigh
	}
}

func visibility(w Weather) string {
	switch w.ID {
	case fog.ID:
		return "LOW"
	case tropicalStorm.ID:
		return "MED"
	default:
		return "HIGH"
	}
}

// New takes a reading at now.
func New(now time.Time, rng random.Source) Report {
	hour := now.Hour()
	w := WeatherAt(hour)

	feed := make([]Alert, len(alerts))
	copy(feed, alerts)
	for i := len(feed) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		feed[i], feed[j] = feed[j], feed[i]
	}

	//nolint:mnd // gauge ranges of the widget.
	return Report{
		Time:         now,
		Weather:      w,
		Activity:     ActivityAt(hour),
		TemperatureC: w.MinTemp + rng.IntN(w.MaxTemp-w.MinTemp),
		HumidityPct:  65 + rng.IntN(25),
		WindKmh:      8 + rng.IntN(35),
		Seismic:      fmt.Sprintf("%.1f", 1.2+float64(rng.IntN(25))/10),
		Visibility:   visibility(w),
		Alerts:       feed[:alertsShown],
	}
}
