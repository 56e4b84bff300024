package http

import (
	"fmt"
	"net/http"

	"collie/internal/core"
)

const (
	suggestionLimit     = 6
	itineraryPlaceLimit = 10
)

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tripID := r.PathValue("id")

	results, err := s.store.Results(ctx, tripID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to tally votes")
		return
	}

	winner := results.Winner.Destination
	if winner == "" {
		// Nothing decided yet: seed the screen from the option list.
		_, options, err := s.store.Options(ctx, tripID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load options")
			return
		}

		starters := make([]core.Suggestion, 0, 3)
		for _, destination := range options.Destination {
			if destination == "" {
				continue
			}
			starters = append(starters, core.Suggestion{
				Destination: destination,
				Reason:      "Vote first, here are starter ideas",
			})
			if len(starters) == 3 {
				break
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"suggestions": starters})
		return
	}

	suggestions := s.recommender.Suggestions(ctx, winner, suggestionLimit)
	if len(suggestions) == 0 {
		suggestions = []core.Suggestion{{Destination: winner, Reason: "Winner of vote"}}
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

type itineraryDay struct {
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
}

type itineraryPlace struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	CrowdScore  float64 `json:"crowd_score"`
	DistanceKM  float64 `json:"distance_km"`
	IsHiddenGem bool    `json:"is_hidden_gem"`
}

func (s *Server) handleItinerary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tripID := r.PathValue("id")

	results, err := s.store.Results(ctx, tripID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to tally votes")
		return
	}

	winner := results.Winner.Destination
	if winner == "" {
		writeError(w, http.StatusBadRequest, "No destination selected yet. Vote first!")
		return
	}

	days := map[string]itineraryDay{
		"day_1": {
			Morning:   fmt.Sprintf("Explore %s (slow start)", winner),
			Afternoon: "Local lunch + walk",
			Evening:   "Dinner in a neighbourhood",
		},
		"day_2": {
			Morning:   "Museum / park",
			Afternoon: "Markets / bookshops",
			Evening:   "Low-key bars / sunset spot",
		},
		"day_3": {
			Morning:   "Brunch",
			Afternoon: "Last sights",
			Evening:   "Pack + depart",
		},
	}

	recommendations := []itineraryPlace{}
	ranked, err := s.recommender.RankedPlaces(ctx, winner)
	if err == nil && len(ranked) > 0 {
		for _, p := range ranked {
			recommendations = append(recommendations, itineraryPlace{
				Name:        p.Name,
				Category:    string(p.Category),
				CrowdScore:  round2(p.CrowdScore),
				DistanceKM:  round2(p.DistanceFromCenter),
				IsHiddenGem: p.CrowdScore < 0.3,
			})
			if len(recommendations) == itineraryPlaceLimit {
				break
			}
		}

		// The quietest finds anchor the first slots.
		if len(ranked) >= 1 {
			day := days["day_1"]
			day.Morning = fmt.Sprintf("Coffee / start at %s", ranked[0].Name)
			days["day_1"] = day
		}
		if len(ranked) >= 2 {
			day := days["day_1"]
			day.Afternoon = fmt.Sprintf("Wander around %s", ranked[1].Name)
			days["day_1"] = day
		}
		if len(ranked) >= 3 {
			day := days["day_2"]
			day.Morning = fmt.Sprintf("Go to %s", ranked[2].Name)
			days["day_2"] = day
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"trip_id":         tripID,
		"destination":     winner,
		"days":            days,
		"recommendations": recommendations,
	})
}
