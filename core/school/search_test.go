package school

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearch(t *testing.T) {
	candidates := []string{
		"--- Delhi ---",
		"Sardar Patel Vidyalaya",
		"Patel High School",
		"Modern School",
		"--- Mumbai ---",
		"Bombay Scottish School",
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query returns nothing", query: "", want: []string{}},
		{name: "whitespace query returns nothing", query: "   ", want: []string{}},
		{
			name:  "starts-with precedes contains, no false matches",
			query: "patel",
			want:  []string{"Patel High School", "Sardar Patel Vidyalaya"},
		},
		{
			name:  "case insensitive",
			query: "SCHOOL",
			want:  []string{"Bombay Scottish School", "Modern School", "Patel High School"},
		},
		{
			name:  "headers are never matched",
			query: "delhi",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Search(tt.query, candidates))
		})
	}
}

func TestSearch_capsResults(t *testing.T) {
	candidates := make([]string, 0, 80)
	for i := 0; i < 80; i++ {
		candidates = append(candidates, fmt.Sprintf("School %02d", i))
	}
	got := Search("school", candidates)
	assert.Len(t, got, 50)
}

func TestSearch_tiersAreAlphabetical(t *testing.T) {
	candidates := []string{"Zeta Academy", "Academy of Arts", "Alpha Academy", "Beta Academy House"}
	got := Search("a", candidates)
	// every candidate contains "a"; the ones starting with it come first,
	// each tier alphabetical
	want := []string{"Academy of Arts", "Alpha Academy", "Beta Academy House", "Zeta Academy"}
	assert.Equal(t, want, got)
}
