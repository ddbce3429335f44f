// Package fakeserp serves canned SerpAPI responses for the engines the
// explorer uses. It backs the integration tests and the mock-serpapi
// development server.
package fakeserp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const weeks = 12

type metadata struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type value struct {
	Query          string `json:"query,omitempty"`
	Value          string `json:"value"`
	ExtractedValue any    `json:"extracted_value"`
}

// NewHandler answers /search.json requests authenticated with apiKey.
func NewHandler(apiKey string) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/search.json", func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()
		if params.Get("api_key") != apiKey {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid API key."})
			return
		}

		body := map[string]any{
			"search_metadata": metadata{ID: uuid.NewString(), Status: "Success"},
		}

		q := params.Get("q")
		switch params.Get("engine") {
		case "google_trends":
			if q == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing query `q` parameter."})
				return
			}
			switch params.Get("data_type") {
			case "TIMESERIES":
				body["interest_over_time"] = map[string]any{"timeline_data": timeline(q)}
			case "GEO_MAP_0":
				body["interest_by_region"] = []map[string]any{
					{"geo": "US", "location": "United States", "value": "100", "extracted_value": 100},
					{"geo": "DE", "location": "Germany", "value": "75", "extracted_value": 75},
					{"geo": "JP", "location": "Japan", "value": "<1", "extracted_value": 0},
				}
			case "RELATED_QUERIES":
				body["related_queries"] = map[string]any{
					"top": []value{
						{Query: q + " tutorial", Value: "100", ExtractedValue: 100},
						{Query: q + " examples", Value: "60", ExtractedValue: 60},
					},
					"rising": []value{
						{Query: q + " release", Value: "Breakout", ExtractedValue: "Breakout"},
						{Query: "learn " + q, Value: "+250%", ExtractedValue: 250},
					},
				}
			default:
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Unsupported `data_type` parameter."})
				return
			}
		case "google_trends_trending_now":
			searches := make([]map[string]string, 0, 3)
			for _, s := range []string{"World Cup", "Election results", "New phone launch"} {
				searches = append(searches, map[string]string{"query": s})
			}
			body["trending_searches"] = searches
		case "google_autocomplete":
			body["suggestions"] = []map[string]string{
				{"value": q},
				{"value": q + " tutorial"},
				{"value": q + " vs python"},
			}
		default:
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Unsupported `engine` parameter."})
			return
		}

		writeJSON(w, http.StatusOK, body)
	}).Methods(http.MethodGet)

	return r
}

func timeline(q string) []map[string]any {
	start := time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC)
	points := make([]map[string]any, 0, weeks)
	for i := 0; i < weeks; i++ {
		t := start.AddDate(0, 0, 7*i)
		v := 40 + (len(q)*7+i*13)%60
		points = append(points, map[string]any{
			"date":      t.Format("Jan 2, 2006"),
			"timestamp": fmt.Sprint(t.Unix()),
			"values":    []value{{Query: q, Value: fmt.Sprint(v), ExtractedValue: v}},
		})
	}
	return points
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
