// Package catalog holds the immutable tour and encyclopedia reference data.
//
// The catalog is loaded once at start-up and validated so that lookups elsewhere can rely on its invariants: ids
// are unique, every tour anchors an existing specimen and no specimen anchors more than one tour.
package catalog

import (
	"bytes"
	_ "embed"
	"log/slog"

	"github.com/myrjola/jurassictravel/internal/errors"
	"github.com/myrjola/jurassictravel/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

var ErrInvalidCatalog = errors.NewSentinel("invalid catalog")

const maxStat = 10

// Catalog is safe for concurrent use because it is never mutated after construction. Returned tours share their
// slices with the catalog and must be treated as read-only.
type Catalog struct {
	tours       []models.Tour
	specimens   []models.Specimen
	tourIdx     map[string]int
	specimenIdx map[string]int
	anchorIdx   map[string]int

	testimonials []models.Testimonial
}

type document struct {
	Tours        []models.Tour        `yaml:"tours"`
	Specimens    []models.Specimen    `yaml:"specimens"`
	Testimonials []models.Testimonial `yaml:"testimonials"`
}

// Load parses the catalog embedded in the binary.
func Load() (*Catalog, error) {
	return Parse(embeddedCatalog)
}

// Parse decodes a YAML catalog document and validates it.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	c, err := New(doc.Tours, doc.Specimens)
	if err != nil {
		return nil, err
	}
	if err = c.setTestimonials(doc.Testimonials); err != nil {
		return nil, err
	}
	return c, nil
}

// setTestimonials attaches the testimonial wall. Every testimonial reviews a catalog tour.
func (c *Catalog) setTestimonials(testimonials []models.Testimonial) error {
	var errs []error
	for _, t := range testimonials {
		name := slog.String("name", t.Name)
		switch {
		case t.Name == "" || t.Quote == "":
			errs = append(errs, invalid("testimonial without name or quote", name))
		case t.Rating < 1 || t.Rating > 5:
			errs = append(errs, invalid("testimonial rating out of range", name, slog.Int("rating", t.Rating)))
		default:
			if _, ok := c.tourIdx[t.TourID]; !ok {
				errs = append(errs, invalid("testimonial tour not found", name, slog.String("tour_id", t.TourID)))
			}
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	c.testimonials = testimonials
	return nil
}

// New builds a Catalog from tours and specimens in display order.
func New(tours []models.Tour, specimens []models.Specimen) (*Catalog, error) {
	c := Catalog{
		tours:       tours,
		specimens:   specimens,
		tourIdx:     make(map[string]int, len(tours)),
		specimenIdx: make(map[string]int, len(specimens)),
		anchorIdx:   make(map[string]int, len(tours)),
	}

	var errs []error
	for i, s := range specimens {
		if err := validateSpecimen(s); err != nil {
			errs = append(errs, err)
		}
		if _, dup := c.specimenIdx[s.ID]; dup {
			errs = append(errs, invalid("duplicate specimen id", slog.String("specimen_id", s.ID)))
		}
		c.specimenIdx[s.ID] = i
	}
	for i, t := range tours {
		if err := c.validateTour(t); err != nil {
			errs = append(errs, err)
		}
		if _, dup := c.tourIdx[t.ID]; dup {
			errs = append(errs, invalid("duplicate tour id", slog.String("tour_id", t.ID)))
		}
		c.tourIdx[t.ID] = i
		if prev, dup := c.anchorIdx[t.AnchorDinoID]; dup {
			errs = append(errs, invalid("specimen anchors more than one tour",
				slog.String("specimen_id", t.AnchorDinoID),
				slog.String("tour_id", t.ID),
				slog.String("other_tour_id", tours[prev].ID)))
			continue
		}
		c.anchorIdx[t.AnchorDinoID] = i
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &c, nil
}

func invalid(msg string, attrs ...slog.Attr) error {
	return errors.Wrap(ErrInvalidCatalog, msg, attrs...)
}

func validateSpecimen(s models.Specimen) error {
	id := slog.String("specimen_id", s.ID)
	switch {
	case s.ID == "":
		return invalid("specimen without id", slog.String("species", s.Species))
	case s.Species == "":
		return invalid("specimen without species", id)
	case s.DangerLevel < 1 || s.DangerLevel > 5:
		return invalid("danger level out of range", id, slog.Int("danger_level", s.DangerLevel))
	}
	for _, t := range models.SpecimenTypes {
		if s.Type == t {
			return nil
		}
	}
	return invalid("unknown specimen type", id, slog.String("type", string(s.Type)))
}

func (c *Catalog) validateTour(t models.Tour) error {
	id := slog.String("tour_id", t.ID)
	switch {
	case t.ID == "":
		return invalid("tour without id", slog.String("name", t.Name))
	case t.Name == "":
		return invalid("tour without name", id)
	case t.Price <= 0:
		return invalid("price must be positive", id, slog.Int("price", t.Price))
	case t.MaxGroupSize <= 0:
		return invalid("max group size must be positive", id)
	case t.AgeRestriction != nil && *t.AgeRestriction <= 0:
		return invalid("age restriction must be positive", id)
	}
	if _, ok := c.specimenIdx[t.AnchorDinoID]; !ok {
		return invalid("anchor specimen not found", id, slog.String("specimen_id", t.AnchorDinoID))
	}
	for _, s := range t.SpecimensIncluded {
		if s.DinoID == "" && s.Label == "" {
			return invalid("included specimen needs a reference or a label", id)
		}
		if s.DinoID == "" {
			continue
		}
		if _, ok := c.specimenIdx[s.DinoID]; !ok {
			return invalid("included specimen not found", id, slog.String("specimen_id", s.DinoID))
		}
	}
	for _, axis := range t.ComparisonStats.Axes() {
		if axis.Value < 0 || axis.Value > maxStat {
			return invalid("comparison stat out of range", id, slog.String("axis", axis.Label))
		}
	}
	return nil
}

// Testimonials returns the testimonial wall in catalog order.
func (c *Catalog) Testimonials() []models.Testimonial {
	return append([]models.Testimonial(nil), c.testimonials...)
}

// AllTours returns every tour in catalog order.
func (c *Catalog) AllTours() []models.Tour {
	return append([]models.Tour(nil), c.tours...)
}

// AllSpecimens returns every specimen in catalog order.
func (c *Catalog) AllSpecimens() []models.Specimen {
	return append([]models.Specimen(nil), c.specimens...)
}

func (c *Catalog) Tour(id string) (models.Tour, bool) {
	i, ok := c.tourIdx[id]
	if !ok {
		return models.Tour{}, false
	}
	return c.tours[i], true
}

func (c *Catalog) Specimen(id string) (models.Specimen, bool) {
	i, ok := c.specimenIdx[id]
	if !ok {
		return models.Specimen{}, false
	}
	return c.specimens[i], true
}

// TourAnchoring returns the tour whose headline attraction is the specimen.
func (c *Catalog) TourAnchoring(specimenID string) (models.Tour, bool) {
	i, ok := c.anchorIdx[specimenID]
	if !ok {
		return models.Tour{}, false
	}
	return c.tours[i], true
}

// TourFeaturing returns the tour anchoring the specimen or, failing that, the first tour that includes it. The
// second result is false for specimens that are not bookable yet.
func (c *Catalog) TourFeaturing(specimenID string) (models.Tour, bool) {
	if t, ok := c.TourAnchoring(specimenID); ok {
		return t, true
	}
	for _, t := range c.tours {
		if t.Includes(specimenID) {
			return t, true
		}
	}
	return models.Tour{}, false
}

// SpecimensByType filters the encyclopedia. The empty type returns all specimens.
func (c *Catalog) SpecimensByType(typ models.SpecimenType) []models.Specimen {
	if typ == "" {
		return c.AllSpecimens()
	}
	var filtered []models.Specimen
	for _, s := range c.specimens {
		if s.Type == typ {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
