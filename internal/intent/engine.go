// Package intent resolves free-text guest messages to canned assistant responses.
//
// Resolution is an ordered list of rules evaluated against the lowercased input. The first rule whose predicate
// matches produces the response; later rules are never consulted, even when their handler would have been a better
// fit. A handler that cannot find the catalog entries it needs degrades to the fallback response.
package intent

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/myrjola/jurassictravel/internal/catalog"
	"github.com/myrjola/jurassictravel/internal/models"
	"github.com/myrjola/jurassictravel/internal/random"
)

// Selector is the part of the selection store an Effect drives.
type Selector interface {
	SetActiveZone(specimen *models.Specimen)
	SetActiveTour(tour *models.Tour)
}

// Effect is a deferred change to the selection state requested by a response.
type Effect struct {
	FocusZone *models.Specimen
	OpenTour  *models.Tour
}

// Apply focuses the zone first and opens the tour second.
func (e Effect) Apply(s Selector) {
	if e.FocusZone != nil {
		s.SetActiveZone(e.FocusZone)
	}
	if e.OpenTour != nil {
		s.SetActiveTour(e.OpenTour)
	}
}

type Response struct {
	// Intent names the rule that produced the response.
	Intent      string
	Text        string
	Suggestions []string
	// TourRef is informational only, it is never acted upon.
	TourRef *models.Tour
	Effect  *Effect
}

type rule struct {
	intent  string
	matches func(lower string) bool
	// respond returns false when a catalog lookup missed.
	respond func(lower string) (Response, bool)
}

type Engine struct {
	catalog *catalog.Catalog
	rng     random.Source
	rules   []rule
}

// NewEngine creates an Engine. The random source picks greetings and fallback phrasings.
func NewEngine(c *catalog.Catalog, rng random.Source) *Engine {
	e := &Engine{
		catalog: c,
		rng:     rng,
	}
	e.rules = []rule{
		{intent: "greeting", matches: greetingPattern.MatchString, respond: e.greeting},
		{intent: "all_tours", matches: containsAny("all tour", "show tour", "list tour"), respond: e.allTours},
		{intent: "thrill", matches: containsAny("thrill", "danger", "scariest", "scary", "extreme"), respond: e.thrill},
		{intent: "family", matches: containsAny("family", "kid", "child", "safe", "something safer"), respond: e.family},
		{intent: "cheapest", matches: containsAny("cheap", "budget", "lowest price"), respond: e.cheapest},
		{intent: "aquatic", matches: containsAny("aqua", "water", "ocean", "swim", "submarine", "diving"), respond: e.aquatic},
		{intent: "aerial", matches: containsAny("fly", "aerial", "ptero", "sky", "bird"), respond: e.aerial},
		{intent: "t_rex", matches: containsAny("t-rex", "tyrannosaurus", "trex", "t rex"), respond: e.tRex},
		{intent: "booking", matches: containsAny("book"), respond: e.booking},
		{intent: "specimen", matches: e.mentionsSpecimen, respond: e.specimen},
		{intent: "pricing", matches: containsAny("price", "cost", "how much"), respond: e.pricing},
		{intent: "help", matches: isHelp, respond: e.help},
		{intent: "safety", matches: containsAny("safety", "safe"), respond: e.safety},
	}
	return e
}

// Resolve maps a guest message to a response. It never fails.
func (e *Engine) Resolve(text string) Response {
	lower := strings.ToLower(text)
	for _, r := range e.rules {
		if !r.matches(lower) {
			continue
		}
		resp, ok := r.respond(lower)
		if !ok {
			return e.Fallback()
		}
		resp.Intent = r.intent
		return resp
	}
	return e.Fallback()
}

// Greeting picks the opening line of a new conversation.
func (e *Engine) Greeting() string {
	return random.Pick(e.rng, Greetings)
}

// Fallback is the response to unrecognised input.
func (e *Engine) Fallback() Response {
	return Response{
		Intent:      "fallback",
		Text:        random.Pick(e.rng, fallbacks),
		Suggestions: slices.Clone(QuickReplies[:3]),
	}
}

var greetingPattern = regexp.MustCompile(`^(hi|hello|hey|xin chào|chào)`)

func containsAny(keywords ...string) func(string) bool {
	return func(lower string) bool {
		for _, k := range keywords {
			if strings.Contains(lower, k) {
				return true
			}
		}
		return false
	}
}

func isHelp(lower string) bool {
	const shortQuestion = 10
	return containsAny("help", "what can", "options")(lower) ||
		(strings.Contains(lower, "?") && utf8.RuneCountInString(lower) < shortQuestion)
}

func (e *Engine) greeting(string) (Response, bool) {
	return Response{
		Text: "Greetings, guest. Welcome to Jurassic World — where 65 million years of evolution are at your " +
			"fingertips. What can I help you with?",
		Suggestions: []string{replyAllTours, replyThrilling},
	}, true
}

func (e *Engine) allTours(string) (Response, bool) {
	tours := e.catalog.AllTours()
	if len(tours) == 0 {
		return Response{}, false
	}
	return Response{
		Text: fmt.Sprintf("Sector scan complete. %d active tour packages detected:\n\n%s\n\nWhich tour interests you?",
			len(tours), bulletList(tours, withDuration)),
		Suggestions: []string{replyThrilling, replyFamily},
	}, true
}

func (e *Engine) thrill(string) (Response, bool) {
	apex, ok := e.catalog.Tour(apexPredatorID)
	if !ok {
		return Response{}, false
	}
	return Response{
		Text: fmt.Sprintf("⚠️ **APEX PREDATOR VIP NIGHT TOUR** — Threat Level: MAXIMUM\n\n"+
			"Enter Zone 9 after sunset to witness T-Rex feeding time. Absolute silence required. "+
			"One wrong move and... well.\n\n"+
			"• Price: **$%d**\n• Age: **18+** only\n• Survival rate: 99.97%%\n\n"+
			"_\"The most terrifying 2 hours of your life.\"_ — InGen Marketing\n\n"+
			"Shall I book this tour?", apex.Price),
		Suggestions: []string{"📋 Book Apex Predator", "👨‍👩‍👧 Something safer?"},
		TourRef:     &apex,
	}, true
}

func (e *Engine) family(string) (Response, bool) {
	var family []models.Tour
	for _, t := range e.catalog.AllTours() {
		if t.FamilyFriendly {
			family = append(family, t)
		}
	}
	if len(family) == 0 {
		return Response{}, false
	}
	return Response{
		Text: "Family-approved packages with enhanced safety protocols:\n\n" + bulletList(family, withDuration) +
			"\n\n✅ All tours include InGen safety staff escort, child-friendly zones, and emergency extraction " +
			"systems.\n\nThe **Cretaceous Safari** is our most popular family choice — kids can hand-feed baby " +
			"Triceratops!",
		Suggestions: []string{"📋 Book Cretaceous Safari", replyCheapest},
	}, true
}

func (e *Engine) cheapest(string) (Response, bool) {
	sorted := e.toursByPrice()
	if len(sorted) == 0 {
		return Response{}, false
	}
	cheapest := sorted[0]
	family := "No"
	if cheapest.FamilyFriendly {
		family = "Yes ✅"
	}
	lines := make([]string, 0, len(sorted))
	for _, t := range sorted {
		lines = append(lines, fmt.Sprintf("• $%d — %s", t.Price, t.Name))
	}
	shortName, _, _ := strings.Cut(cheapest.Name, ":")
	return Response{
		Text: fmt.Sprintf("Best value package: **%s**\n\n• Price: **$%d** — lowest in our catalog\n"+
			"• Duration: %s\n• Family-friendly: %s\n\nFull tour lineup by price:\n%s",
			cheapest.Name, cheapest.Price, cheapest.Duration, family, strings.Join(lines, "\n")),
		Suggestions: []string{"📋 Book " + shortName, replyThrilling},
	}, true
}

func (e *Engine) aquatic(string) (Response, bool) {
	tours := e.toursByID("abyssal-grace", "leviathan-frenzy", "primeval-river")
	if len(tours) == 0 {
		return Response{}, false
	}
	return Response{
		Text: "Aquatic sector tours detected:\n\n" + bulletList(tours, priceOnly) + "\n\n" +
			"🔵 **Abyssal Grace** — peaceful submarine dive with Plesiosaurus (family-friendly)\n" +
			"🔴 **Leviathan Frenzy** — Mosasaurus feeding show, 13,000 PSI bite (you WILL get soaked)\n" +
			"🟢 **Primeval River** — Spinosaurus territory by armored hovercraft (maximum danger)\n\n" +
			"Which aquatic adventure calls to you?",
		Suggestions: []string{"📋 Book Abyssal Grace", "📋 Book Leviathan Frenzy"},
	}, true
}

func (e *Engine) aerial(string) (Response, bool) {
	tours := e.toursByID("amber-canopy", "coastal-cliffs")
	if len(tours) == 0 {
		return Response{}, false
	}
	return Response{
		Text: "Aerial sector packages:\n\n" + bulletList(tours, priceOnly) + "\n\n" +
			"🟣 **Amber Canopy** — Walk through the Aviary at 300m altitude with Pterosaurs\n" +
			"🔵 **Coastal Cliffs** — Watch Pteranodon dive at 100km/h from suspended gondola\n\n" +
			"Both offer breathtaking views. Acrophobia disclaimer applies.",
		Suggestions: []string{"📋 Book Amber Canopy", "📋 Book Coastal Cliffs"},
	}, true
}

func (e *Engine) tRex(string) (Response, bool) {
	apex, ok := e.catalog.Tour(apexPredatorID)
	if !ok {
		return Response{}, false
	}
	return Response{
		Text: fmt.Sprintf("🦖 **Tyrannosaurus Rex** — The Apex Predator herself.\n\n"+
			"Length: 12m | Weight: 8 tons | Bite Force: 12,800 PSI\n\n"+
			"Available on: **APEX PREDATOR VIP NIGHT TOUR**\n• Enter Zone 9 at night\n• Witness feeding time\n"+
			"• $%d | 18+ only\n\n"+
			"_\"When the T-Rex doesn't want to be found, she finds you.\"_", apex.Price),
		Suggestions: []string{"📋 Book Apex Predator", replyAllTours},
		TourRef:     &apex,
	}, true
}

// booking matches a tour by the first word of its name or by its id, in catalog order.
func (e *Engine) booking(lower string) (Response, bool) {
	for _, t := range e.catalog.AllTours() {
		firstWord, _, _ := strings.Cut(strings.ToLower(t.Name), " ")
		if !strings.Contains(lower, firstWord) && !strings.Contains(lower, t.ID) {
			continue
		}
		effect := Effect{OpenTour: &t}
		if anchor, ok := e.catalog.Specimen(t.AnchorDinoID); ok {
			effect.FocusZone = &anchor
		}
		return Response{
			Text: fmt.Sprintf("Initiating booking protocol for **%s**...\n\n"+
				"✅ Opening tour details panel now. Please complete the registration form.\n\n⚠️ %s",
				t.Name, t.WarningMessage),
			Suggestions: []string{replyAllTours},
			Effect:      &effect,
		}, true
	}
	return Response{
		Text:        "Which tour would you like to book? I can open the registration form for you.",
		Suggestions: []string{replyAllTours, replyThrilling},
	}, true
}

func (e *Engine) findSpecimen(lower string) (models.Specimen, bool) {
	for _, s := range e.catalog.AllSpecimens() {
		if strings.Contains(lower, strings.ToLower(s.Species)) || strings.Contains(lower, strings.ToLower(s.ID)) {
			return s, true
		}
	}
	return models.Specimen{}, false
}

func (e *Engine) mentionsSpecimen(lower string) bool {
	_, ok := e.findSpecimen(lower)
	return ok
}

func (e *Engine) specimen(lower string) (Response, bool) {
	s, ok := e.findSpecimen(lower)
	if !ok {
		return Response{}, false
	}
	resp := Response{
		Suggestions: []string{replyAllTours},
	}
	featured := ""
	if t, anchored := e.catalog.TourAnchoring(s.ID); anchored {
		featured = fmt.Sprintf("\nFeatured in: **%s** ($%d)", t.Name, t.Price)
		firstWord, _, _ := strings.Cut(t.Name, " ")
		resp.Suggestions = []string{"📋 Book " + firstWord, replyAllTours}
		resp.TourRef = &t
	}
	resp.Text = fmt.Sprintf("🔬 **%s** — *%s*\n\nBio-scan data retrieved from InGen database.\n%s\n\n"+
		"Would you like more details or to book a tour?", s.Species, s.Type, featured)
	return resp, true
}

func (e *Engine) pricing(string) (Response, bool) {
	sorted := e.toursByPrice()
	if len(sorted) == 0 {
		return Response{}, false
	}
	lines := make([]string, 0, len(sorted))
	for _, t := range sorted {
		lines = append(lines, fmt.Sprintf("• **$%d** — %s (%s)", t.Price, t.Name, t.Duration))
	}
	return Response{
		Text: "Current pricing matrix:\n\n" + strings.Join(lines, "\n") +
			"\n\nPrices include InGen liability insurance and emergency extraction.",
		Suggestions: []string{replyCheapest, replyThrilling},
	}, true
}

func (e *Engine) help(string) (Response, bool) {
	return Response{
		Text: "InGen Guest Relations Terminal — available commands:\n\n" +
			"• Ask about specific **dinosaurs** (T-Rex, Triceratops, etc.)\n" +
			"• Request **tour recommendations** (thrill, family, aquatic, aerial)\n" +
			"• Check **pricing** and tour details\n" +
			"• **Book** a tour directly\n" +
			"• Ask about **safety** protocols\n\n" +
			"Or just tell me what you're looking for!",
		Suggestions: slices.Clone(QuickReplies[:4]),
	}, true
}

func (e *Engine) safety(string) (Response, bool) {
	return Response{
		Text: "InGen Safety Protocols — Clearance Level: Guest\n\n" +
			"• All vehicles are **reinforced titanium-glass** composites\n" +
			"• Each zone has **24/7 armed response teams**\n" +
			"• Emergency extraction available within **90 seconds**\n" +
			"• Electrified containment fences: **10,000V - 120,000V**\n" +
			"• Overall guest survival rate: **99.97%**\n\n" +
			"_*The 0.03% were due to guests ignoring safety protocols._",
		Suggestions: []string{replyFamily, replyDangerous},
	}, true
}

// toursByPrice sorts ascending by price. Equal prices keep catalog order.
func (e *Engine) toursByPrice() []models.Tour {
	tours := e.catalog.AllTours()
	slices.SortStableFunc(tours, func(a, b models.Tour) int {
		return a.Price - b.Price
	})
	return tours
}

func (e *Engine) toursByID(ids ...string) []models.Tour {
	var tours []models.Tour
	for _, t := range e.catalog.AllTours() {
		if slices.Contains(ids, t.ID) {
			tours = append(tours, t)
		}
	}
	return tours
}

type lineStyle int

const (
	priceOnly lineStyle = iota
	withDuration
)

func bulletList(tours []models.Tour, style lineStyle) string {
	lines := make([]string, 0, len(tours))
	for _, t := range tours {
		line := fmt.Sprintf("• **%s** — $%d", t.Name, t.Price)
		if style == withDuration {
			line += fmt.Sprintf(" (%s)", t.Duration)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
