package ingest

import "osu-dumper/internal/domain"

// ratingCache holds the known star ratings of a single map keyed by canonical
// mod combo. A new cache is built for every map visit.
type ratingCache struct {
	mapID   int64
	ratings map[string]float64
}

func newRatingCache(mapID int64) *ratingCache {
	return &ratingCache{mapID: mapID, ratings: make(map[string]float64)}
}

// seed loads stored ratings; rows of other maps are ignored.
func (c *ratingCache) seed(combos []domain.RatedModCombo) {
	for _, combo := range combos {
		if combo.MapID != c.mapID {
			continue
		}
		c.ratings[combo.ModCombo] = combo.StarRating
	}
}

func (c *ratingCache) get(combo string) (float64, bool) {
	rating, ok := c.ratings[combo]
	return rating, ok
}

func (c *ratingCache) put(combo string, rating float64) {
	c.ratings[combo] = rating
}

func (c *ratingCache) len() int {
	return len(c.ratings)
}

// CanonicalCombo joins mod acronyms in play order with commas. The empty string
// means no mods.
func CanonicalCombo(mods []domain.Mod) (string, error) {
	acronyms := make([]string, 0, len(mods))
	for _, m := range mods {
		if m.HasSettings {
			return "", ErrMalformedScore
		}
		acronyms = append(acronyms, m.Acronym)
	}
	return domain.JoinAcronyms(acronyms), nil
}
