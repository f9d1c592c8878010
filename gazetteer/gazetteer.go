package gazetteer

import (
	"strings"
)

// Gazetteer is the read-only lookup table used by the scoring engine.
// Construct one with New and share it freely: all methods are safe for
// unbounded concurrent reads.
type Gazetteer struct {
	places []Place
	byKey  map[string]Place
	zones  []Zone
}

// New builds a Gazetteer from explicit place and zone tables.
// The slice order of places is preserved and determines resolution
// precedence for ambiguous free-text input.
func New(places []Place, zones []Zone) *Gazetteer {
	g := &Gazetteer{
		places: make([]Place, len(places)),
		byKey:  make(map[string]Place, len(places)),
		zones:  make([]Zone, len(zones)),
	}
	copy(g.places, places)
	copy(g.zones, zones)
	for _, p := range g.places {
		g.byKey[p.Key] = p
	}
	return g
}

// Default builds a Gazetteer from the compiled-in tables.
func Default() *Gazetteer {
	return New(DefaultPlaces(), DefaultZones())
}

// Places returns a copy of the place table in declaration order.
func (g *Gazetteer) Places() []Place {
	out := make([]Place, len(g.places))
	copy(out, g.places)
	return out
}

// Zones returns a copy of the zone table.
func (g *Gazetteer) Zones() []Zone {
	out := make([]Zone, len(g.zones))
	copy(out, g.zones)
	return out
}

// Lookup returns the place declared under the given canonical key.
func (g *Gazetteer) Lookup(key string) (Place, bool) {
	p, ok := g.byKey[key]
	return p, ok
}

// Resolve extracts a canonical place from free-form route text.
//
// Matching stages, first hit wins:
//  1. the normalized text contains a place key
//  2. the normalized text contains a place alias
//  3. token fallback: any whitespace token of length >= 3 is a substring
//     of (or contains) a place key or alias
//
// Places are always scanned in declaration order, so ambiguous input
// resolves deterministically. A failed resolution is not an error; the
// caller treats ok=false as "no geographic signal".
func (g *Gazetteer) Resolve(text string) (Place, bool) {
	norm := Normalize(text)
	if norm == "" {
		return Place{}, false
	}

	for _, p := range g.places {
		if strings.Contains(norm, p.Key) {
			return p, true
		}
	}

	for _, p := range g.places {
		for _, alias := range p.Aliases {
			if strings.Contains(norm, alias) {
				return p, true
			}
		}
	}

	for _, token := range strings.Fields(norm) {
		if len(token) < 3 {
			continue
		}
		for _, p := range g.places {
			if tokenMatches(token, p.Key) {
				return p, true
			}
			for _, alias := range p.Aliases {
				if tokenMatches(token, alias) {
					return p, true
				}
			}
		}
	}

	return Place{}, false
}

// SameZone reports whether some declared zone contains both place keys.
func (g *Gazetteer) SameZone(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	for _, z := range g.zones {
		if containsKey(z.Places, a) && containsKey(z.Places, b) {
			return true
		}
	}
	return false
}

// ZoneContains reports whether the zone declared under zoneKey maps to the
// given place key.
func (g *Gazetteer) ZoneContains(zoneKey, placeKey string) bool {
	for _, z := range g.zones {
		if z.Key == zoneKey {
			return containsKey(z.Places, placeKey)
		}
	}
	return false
}

func tokenMatches(token, candidate string) bool {
	return strings.Contains(candidate, token) || strings.Contains(token, candidate)
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// accentFold maps the accented runes that appear in Mexican place names to
// their ASCII base, so "Tehuacán" and "tehuacan" normalize identically.
var accentFold = map[rune]rune{
	'á': 'a', 'é': 'e', 'í': 'i', 'ó': 'o', 'ú': 'u', 'ü': 'u', 'ñ': 'n',
}

// routeSeparators are the glyphs route text uses between origin and
// destination, plus ordinary punctuation. All become plain spaces.
var routeSeparators = []string{"→", "->", "=>", "–", "—", ",", ".", "-", "/"}

// Normalize lower-cases free-form route text, folds accents, replaces route
// arrows and punctuation with spaces, and collapses whitespace.
func Normalize(text string) string {
	s := strings.ToLower(text)
	for _, sep := range routeSeparators {
		s = strings.ReplaceAll(s, sep, " ")
	}
	s = strings.Map(func(r rune) rune {
		if folded, ok := accentFold[r]; ok {
			return folded
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
