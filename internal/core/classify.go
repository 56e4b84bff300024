package core

import (
	"fmt"
	"strings"
)

// chainKeywords drives the chain heuristic. Matching is substring,
// case-insensitive, against the display name and the brand tag; false
// positives for unrelated names containing a keyword are accepted.
var chainKeywords = []string{
	"starbucks", "mcdonalds", "mcdonald's", "subway", "costa", "pret",
	"wagamama", "nando", "pizza express", "prezzo", "zizzi", "pizza hut",
	"kfc", "burger king", "five guys", "chipotle", "shake shack",
}

// TagPair is an OSM key=value tag.
type TagPair struct {
	Key   string
	Value string
}

// CategoryTags maps each app category to the OSM tag that selects it.
var CategoryTags = map[Category]TagPair{
	CategoryCafe:       {"amenity", "cafe"},
	CategoryRestaurant: {"amenity", "restaurant"},
	CategoryMuseum:     {"tourism", "museum"},
	CategoryPark:       {"leisure", "park"},
	CategoryAttraction: {"tourism", "attraction"},
}

// IsChainName reports whether the display name or brand tag contains a
// known chain keyword.
func IsChainName(name, brand string) bool {
	name = strings.ToLower(name)
	brand = strings.ToLower(brand)
	for _, kw := range chainKeywords {
		if strings.Contains(name, kw) || (brand != "" && strings.Contains(brand, kw)) {
			return true
		}
	}
	return false
}

// IsTouristTags reports whether the raw tags mark a formal attraction:
// tourism=attraction or tourism=museum, or any historic designation.
func IsTouristTags(tags map[string]string) bool {
	if v := tags["tourism"]; v == "attraction" || v == "museum" {
		return true
	}
	_, historic := tags["historic"]
	return historic
}

// CategoryFromTags resolves raw tags to one of the fixed categories.
// Resolution follows AllCategories order; unmatched tags classify as
// CategoryOther.
func CategoryFromTags(tags map[string]string) Category {
	for _, cat := range AllCategories() {
		pair := CategoryTags[cat]
		if tags[pair.Key] == pair.Value {
			return cat
		}
	}
	return CategoryOther
}

// DedupePlaces collapses entries whose case-folded name and coordinates
// rounded to 5 decimal degrees (~1.1m) coincide, keeping the first
// occurrence.
func DedupePlaces(places []Place) []Place {
	seen := make(map[string]struct{}, len(places))
	out := make([]Place, 0, len(places))
	for _, p := range places {
		key := fmt.Sprintf("%s|%.5f|%.5f", strings.ToLower(p.Name), p.Lat, p.Lon)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}
