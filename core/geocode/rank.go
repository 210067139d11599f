package geocode

import (
	"sort"
	"strings"
)

const maxSuggestions = 8

// score weights
const (
	scoreExact       = 100
	scorePrefix      = 50
	scoreContains    = 25
	scoreDisplayOnly = 15

	bonusCountry = 120
	bonusCity    = 10
	bonusTown    = 5
)

var keptCategories = map[string]bool{
	"city":         true,
	"town":         true,
	"village":      true,
	"municipality": true,
	"postcode":     true,
	"country":      true,
}

// Ranker filters and orders raw geocode candidates for display as
// suggestions.
type Ranker struct {
	// IncludeCountries grants the country category its ranking bonus;
	// off unless the caller supports country-wide search.
	IncludeCountries bool
}

// Rank retains relevant candidates, scores them against the query, drops
// zero scores and returns at most 8 results by descending score, original
// order preserved on ties.
func (r Ranker) Rank(query string, places []Place) []Suggestion {
	query = strings.ToLower(strings.TrimSpace(query))

	ranked := make([]Suggestion, 0, len(places))
	for _, p := range places {
		if !r.relevant(p) {
			continue
		}
		score := r.score(query, p)
		if score == 0 {
			continue
		}
		ranked = append(ranked, Suggestion{Place: p, Label: label(p), Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	if len(ranked) > maxSuggestions {
		ranked = ranked[:maxSuggestions]
	}
	return ranked
}

// relevant keeps city-like categories, plus anything whose structured
// address carries a city/town/village component.
func (r Ranker) relevant(p Place) bool {
	if keptCategories[p.Category] {
		return true
	}
	return p.Address.Locality() != ""
}

func (r Ranker) score(query string, p Place) int {
	var score int

	// best match among the candidate's locality names
	best := 0
	for _, name := range []string{p.Address.City, p.Address.Town, p.Address.Village, p.Address.County} {
		if name == "" {
			continue
		}
		if s := nameScore(query, name); s > best {
			best = s
		}
	}
	if best == 0 && query != "" && strings.Contains(strings.ToLower(p.DisplayName), query) {
		best = scoreDisplayOnly
	}
	if best == 0 {
		// the category bonus alone never surfaces a non-matching candidate
		return 0
	}
	score += best

	switch p.Category {
	case "country":
		if r.IncludeCountries {
			score += bonusCountry
		}
	case "city":
		score += bonusCity
	case "town":
		score += bonusTown
	}
	return score
}

func nameScore(query, name string) int {
	name = strings.ToLower(name)
	switch {
	case query == "":
		return 0
	case name == query:
		return scoreExact
	case strings.HasPrefix(name, query):
		return scorePrefix
	case strings.Contains(name, query):
		return scoreContains
	}
	return 0
}

// label formats a retained candidate for display:
// "{city}, {state}" > "{city}, {country}" > "{city}, {postcode}" > raw
// display name.
func label(p Place) string {
	city := p.Address.Locality()
	if city == "" {
		return p.DisplayName
	}
	switch {
	case p.Address.State != "":
		return city + ", " + p.Address.State
	case p.Address.Country != "":
		return city + ", " + p.Address.Country
	case p.Address.Postcode != "":
		return city + ", " + p.Address.Postcode
	}
	return p.DisplayName
}
