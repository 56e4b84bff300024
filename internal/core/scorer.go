package core

import "sort"

// Scoring weights and penalties. With these values the crowd score is
// naturally bounded to [0, 0.85]; callers must not assume [0, 1].
const (
	// DefaultNormalizeKM is the radius at which the distance component
	// of the crowd score bottoms out.
	DefaultNormalizeKM = 5.0

	distanceWeight    = 0.4
	attractionWeight  = 0.3
	chainWeight       = 0.3
	attractionPenalty = 0.8
	chainPenalty      = 0.7
)

// ScorePlace computes the crowd-avoidance score for a place, stores it
// on the place and returns it. Lower means quieter: central, chain and
// formally touristy places all score higher.
//
// The distance component is 1 - min(distance/normalizeKM, 1), so a
// place at the reference center contributes the full distance weight
// and places at or beyond normalizeKM contribute nothing.
func ScorePlace(p *Place, normalizeKM float64) float64 {
	if normalizeKM <= 0 {
		normalizeKM = DefaultNormalizeKM
	}

	distanceScore := 1.0 - min(p.DistanceFromCenter/normalizeKM, 1.0)

	var attraction, chain float64
	if p.IsTouristAttraction {
		attraction = attractionPenalty
	}
	if p.IsChain {
		chain = chainPenalty
	}

	p.CrowdScore = distanceScore*distanceWeight + attraction*attractionWeight + chain*chainWeight
	return p.CrowdScore
}

// RankPlaces scores every place in the slice (mutating each) and sorts
// it by crowd score: ascending when avoidCrowds is true (the product
// default, least crowded first), descending otherwise. The sort is
// stable so equal scores keep their input order.
func RankPlaces(places []Place, avoidCrowds bool) []Place {
	for i := range places {
		ScorePlace(&places[i], DefaultNormalizeKM)
	}

	sort.SliceStable(places, func(i, j int) bool {
		if avoidCrowds {
			return places[i].CrowdScore < places[j].CrowdScore
		}
		return places[i].CrowdScore > places[j].CrowdScore
	})

	return places
}
