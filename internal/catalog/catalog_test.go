package catalog_test

import (
	"testing"

	"github.com/myrjola/jurassictravel/internal/catalog"
	"github.com/myrjola/jurassictravel/internal/models"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	c, err := catalog.Load()
	require.NoError(t, err)

	tours := c.AllTours()
	require.Len(t, tours, 7)
	require.Len(t, c.AllSpecimens(), 8)

	apex, ok := c.Tour("apex-predator")
	require.True(t, ok, "apex-predator must be present, the assistant relies on it")
	require.Equal(t, "tyrannosaurus", apex.AnchorDinoID)
	require.True(t, apex.RequiresWaiver())
	require.Equal(t, 18, *apex.AgeRestriction)

	for _, id := range []string{"abyssal-grace", "leviathan-frenzy", "primeval-river", "amber-canopy", "coastal-cliffs"} {
		_, ok = c.Tour(id)
		require.True(t, ok, "tour %s missing", id)
	}

	testimonials := c.Testimonials()
	require.Len(t, testimonials, 6)
	for _, testimonial := range testimonials {
		_, ok = c.Tour(testimonial.TourID)
		require.True(t, ok, "testimonial by %s reviews an unknown tour", testimonial.Name)
	}
	require.Equal(t, "★★★★☆", testimonials[2].Stars())

	// Catalog copies must not alias the internal slice.
	tours[0].Name = "changed"
	first, _ := c.Tour(tours[0].ID)
	require.NotEqual(t, "changed", first.Name)
}

func TestCatalog_lookups(t *testing.T) {
	c, err := catalog.Load()
	require.NoError(t, err)

	tests := []struct {
		name       string
		specimenID string
		wantAnchor string
		wantTour   string
	}{
		{name: "anchor", specimenID: "tyrannosaurus", wantAnchor: "apex-predator", wantTour: "apex-predator"},
		{name: "included only", specimenID: "argentinosaurus", wantAnchor: "", wantTour: "cretaceous-safari"},
		{name: "unknown", specimenID: "dilophosaurus", wantAnchor: "", wantTour: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anchor, ok := c.TourAnchoring(tt.specimenID)
			require.Equal(t, tt.wantAnchor != "", ok)
			require.Equal(t, tt.wantAnchor, anchor.ID)

			featured, ok := c.TourFeaturing(tt.specimenID)
			require.Equal(t, tt.wantTour != "", ok)
			require.Equal(t, tt.wantTour, featured.ID)
		})
	}

	require.Len(t, c.SpecimensByType(models.SpecimenTypeFlying), 2)
	require.Len(t, c.SpecimensByType(""), 8)
	require.Empty(t, c.SpecimensByType("fungus"))
}

func TestParse_invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "unknown field",
			doc:  "tours: []\nspecimens: []\ncolour: red\n",
		},
		{
			name: "anchor missing",
			doc: `specimens: []
tours:
  - {id: a, name: A, price: 1, maxGroupSize: 1, anchorDinoId: ghost}
`,
		},
		{
			name: "anchor shared by two tours",
			doc: `specimens:
  - {id: rex, species: Rex, type: carnivore, dangerLevel: 5}
tours:
  - {id: a, name: A, price: 1, maxGroupSize: 1, anchorDinoId: rex}
  - {id: b, name: B, price: 1, maxGroupSize: 1, anchorDinoId: rex}
`,
		},
		{
			name: "non-positive price",
			doc: `specimens:
  - {id: rex, species: Rex, type: carnivore, dangerLevel: 5}
tours:
  - {id: a, name: A, price: 0, maxGroupSize: 1, anchorDinoId: rex}
`,
		},
		{
			name: "danger level out of range",
			doc: `specimens:
  - {id: rex, species: Rex, type: carnivore, dangerLevel: 9}
tours: []
`,
		},
		{
			name: "unknown specimen type",
			doc: `specimens:
  - {id: rex, species: Rex, type: mammal, dangerLevel: 1}
tours: []
`,
		},
		{
			name: "comparison stat out of range",
			doc: `specimens:
  - {id: rex, species: Rex, type: carnivore, dangerLevel: 5}
tours:
  - {id: a, name: A, price: 1, maxGroupSize: 1, anchorDinoId: rex, comparisonStats: {thrill: 11}}
`,
		},
		{
			name: "testimonial for unknown tour",
			doc: `specimens:
  - {id: rex, species: Rex, type: carnivore, dangerLevel: 5}
tours:
  - {id: a, name: A, price: 1, maxGroupSize: 1, anchorDinoId: rex}
testimonials:
  - {name: Ian, rating: 5, quote: Life finds a way., tourId: b}
`,
		},
		{
			name: "testimonial rating out of range",
			doc: `specimens:
  - {id: rex, species: Rex, type: carnivore, dangerLevel: 5}
tours:
  - {id: a, name: A, price: 1, maxGroupSize: 1, anchorDinoId: rex}
testimonials:
  - {name: Ian, rating: 6, quote: Life finds a way., tourId: a}
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := catalog.Parse([]byte(tt.doc))
			require.Error(t, err)
			require.Nil(t, c)
			if tt.name != "unknown field" {
				require.ErrorIs(t, err, catalog.ErrInvalidCatalog)
			}
		})
	}
}
