package models

import "strings"

// SpecimenType classifies a Specimen for the encyclopedia filters.
type SpecimenType string

const (
	SpecimenTypeCarnivore SpecimenType = "carnivore"
	SpecimenTypeHerbivore SpecimenType = "herbivore"
	SpecimenTypeAquatic   SpecimenType = "aquatic"
	SpecimenTypeFlying    SpecimenType = "flying"
)

// SpecimenTypes lists the valid types in encyclopedia filter order.
var SpecimenTypes = []SpecimenType{
	SpecimenTypeCarnivore,
	SpecimenTypeHerbivore,
	SpecimenTypeAquatic,
	SpecimenTypeFlying,
}

// Specimen is a species entry of the encyclopedia and a sector on the island map.
type Specimen struct {
	ID          string       `yaml:"id"`
	Species     string       `yaml:"species"`
	Type        SpecimenType `yaml:"type"`
	DangerLevel int          `yaml:"dangerLevel"`
	Height      string       `yaml:"height"`
	Weight      string       `yaml:"weight"`
	Speed       string       `yaml:"speed"`
	Diet        string       `yaml:"diet"`
	Habitat     string       `yaml:"habitat"`
	Era         string       `yaml:"era"`
	Description string       `yaml:"description"`
	FunFact     string       `yaml:"funFact"`
	// Coordinates locate the sector marker on the 1000x1000 island map.
	Coordinates []int `yaml:"coordinates"`
}

// DangerLabel maps the numeric danger level to the label shown on the zone panel.
func (s Specimen) DangerLabel() string {
	switch {
	case s.DangerLevel >= 5: //nolint:mnd // danger scale is 1-5
		return "Extreme"
	case s.DangerLevel == 4: //nolint:mnd // danger scale is 1-5
		return "High"
	case s.DangerLevel == 3: //nolint:mnd // danger scale is 1-5
		return "Medium"
	default:
		return "Low"
	}
}

// SpecimenRole is the billing of a specimen inside a tour.
type SpecimenRole string

const (
	SpecimenRoleStar     SpecimenRole = "star"
	SpecimenRoleIncluded SpecimenRole = "included"
	SpecimenRoleBonus    SpecimenRole = "bonus"
)

// IncludedSpecimen references a catalog Specimen by DinoID or, for attractions without an encyclopedia entry,
// carries a free-form Label.
type IncludedSpecimen struct {
	DinoID    string       `yaml:"dinoId,omitempty"`
	Label     string       `yaml:"label,omitempty"`
	Role      SpecimenRole `yaml:"role"`
	Highlight string       `yaml:"highlight"`
}

// ComparisonStats are the five radar axes of the comparison panel, each scored 0-10.
type ComparisonStats struct {
	Thrill      int `yaml:"thrill"`
	Safety      int `yaml:"safety"`
	Duration    int `yaml:"duration"`
	Value       int `yaml:"value"`
	Exclusivity int `yaml:"exclusivity"`
}

// StatAxis is one labelled axis of ComparisonStats.
type StatAxis struct {
	Label string
	Value int
}

// Axes returns the stats in display order.
func (c ComparisonStats) Axes() []StatAxis {
	return []StatAxis{
		{Label: "Thrill", Value: c.Thrill},
		{Label: "Safety", Value: c.Safety},
		{Label: "Duration", Value: c.Duration},
		{Label: "Value", Value: c.Value},
		{Label: "Exclusivity", Value: c.Exclusivity},
	}
}

// RoutePoint is a waypoint of the tour route display.
type RoutePoint struct {
	Label string `yaml:"label"`
	Time  string `yaml:"time"`
}

// DashboardMetric describes a live metric tile of the tour drawer.
type DashboardMetric struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
	Unit  string `yaml:"unit"`
}

// Tour is a bookable package anchored to one headline Specimen.
type Tour struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Subtitle     string `yaml:"subtitle"`
	Price        int    `yaml:"price"`
	Duration     string `yaml:"duration"`
	MaxGroupSize int    `yaml:"maxGroupSize"`
	// AgeRestriction is the minimum age, nil means all ages.
	AgeRestriction    *int               `yaml:"ageRestriction"`
	FamilyFriendly    bool               `yaml:"familyFriendly"`
	Theme             string             `yaml:"theme"`
	AnchorDinoID      string             `yaml:"anchorDinoId"`
	SpecimensIncluded []IncludedSpecimen `yaml:"specimensIncluded"`
	ComparisonStats   ComparisonStats    `yaml:"comparisonStats"`
	WarningMessage    string             `yaml:"warningMessage"`
	Vehicle           string             `yaml:"vehicle"`
	RoutePoints       []RoutePoint       `yaml:"routePoints"`
	Dashboard         []DashboardMetric  `yaml:"dashboard"`
}

// RequiresWaiver reports whether bookings must acknowledge the liability waiver.
func (t Tour) RequiresWaiver() bool {
	return t.AgeRestriction != nil
}

// Includes reports whether the specimen appears in the tour's specimen list.
func (t Tour) Includes(specimenID string) bool {
	for _, s := range t.SpecimensIncluded {
		if s.DinoID == specimenID {
			return true
		}
	}
	return false
}

// Testimonial is a guest review shown on the testimonial wall.
type Testimonial struct {
	Name     string `yaml:"name"`
	Visited  string `yaml:"visited"`
	Rating   int    `yaml:"rating"`
	Quote    string `yaml:"quote"`
	TourID   string `yaml:"tourId"`
	Location string `yaml:"location"`
}

// Stars renders the rating out of five, e.g. ★★★★☆.
func (t Testimonial) Stars() string {
	const maxRating = 5
	rating := min(max(t.Rating, 0), maxRating)
	return strings.Repeat("★", rating) + strings.Repeat("☆", maxRating-rating)
}
