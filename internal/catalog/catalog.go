package catalog

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sort"

	"github.com/rs/zerolog/log"

	"hotel_audit/internal/adapters/observability"
)

// GeneralCategories are the property-wide sections every audit covers.
var GeneralCategories = []string{
	"Facade & Structure", "Main Lobby", "Corridors & Hallways", "Public Toilets",
	"Spa & Wellness", "Fitness Center", "Swimming Pools",
	"Landscaping & Outdoor", "Parking & Entry",
}

// Specialized sections are audited once per named instance (outlet,
// meeting room, guestroom type) with a context label.
const (
	SectionFnB       = "F&B Outlets"
	SectionMeeting   = "Ballrooms & Meeting Rooms"
	SectionGuestroom = "Guestroom"
)

var SpecializedSections = []string{SectionFnB, SectionMeeting, SectionGuestroom}

// Catalog is the immutable checklist table: section name to ordered
// item texts. Built once at startup and passed by reference; consumers
// must tolerate an empty or partial catalog.
type Catalog struct {
	items map[string][]string
	order []string
}

// Load reads the checklist JSON at path. A missing file degrades to the
// default catalog, any other failure to an empty one; Load never fails.
func Load(path string) *Catalog {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn().Str("path", path).Msg("checklist file not found, using default categories")
			observability.ObserveCatalog("fallback_default")
			return Default()
		}
		log.Error().Err(err).Str("path", path).Msg("checklist read failed")
		observability.ObserveCatalog("fallback_empty")
		return New(nil)
	}
	var items map[string][]string
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Error().Err(err).Str("path", path).Msg("checklist parse failed")
		observability.ObserveCatalog("fallback_empty")
		return New(nil)
	}
	observability.ObserveCatalog("loaded")
	return New(items)
}

// New builds a catalog from a section->items mapping. Section order is
// general categories first, then specialized sections, then any extra
// keys sorted by name.
func New(items map[string][]string) *Catalog {
	c := &Catalog{items: map[string][]string{}}
	for sec, list := range items {
		c.items[sec] = append([]string(nil), list...)
	}
	seen := map[string]bool{}
	for _, sec := range append(append([]string{}, GeneralCategories...), SpecializedSections...) {
		if _, ok := c.items[sec]; ok {
			c.order = append(c.order, sec)
			seen[sec] = true
		}
	}
	var extras []string
	for sec := range c.items {
		if !seen[sec] {
			extras = append(extras, sec)
		}
	}
	sort.Strings(extras)
	c.order = append(c.order, extras...)
	return c
}

// Default maps every known section to an empty item list.
func Default() *Catalog {
	items := map[string][]string{}
	for _, sec := range GeneralCategories {
		items[sec] = nil
	}
	for _, sec := range SpecializedSections {
		items[sec] = nil
	}
	return New(items)
}

func (c *Catalog) Sections() []string {
	return append([]string(nil), c.order...)
}

func (c *Catalog) Items(section string) []string {
	return append([]string(nil), c.items[section]...)
}

func (c *Catalog) Has(section string) bool {
	_, ok := c.items[section]
	return ok
}

func (c *Catalog) Empty() bool { return len(c.items) == 0 }
