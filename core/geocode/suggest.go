package geocode

import (
	"sync"
	"time"
)

// DebounceDelay is the quiet period required before a lookup is issued.
const DebounceDelay = 400 * time.Millisecond

// minQueryLen mirrors the original behavior of only searching on 3+ chars.
const minQueryLen = 3

// SearchFunc performs the actual suggestion lookup for a committed query.
type SearchFunc func(query string) ([]Suggestion, error)

// Suggester debounces search-as-you-type queries for one input field. Each
// keystroke cancels any pending timer, and a generation counter invalidates
// in-flight lookups so a stale response can never overwrite the suggestions
// of a newer query.
type Suggester struct {
	search   SearchFunc
	delay    time.Duration
	onResult func([]Suggestion)

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

func NewSuggester(search SearchFunc, delay time.Duration, onResult func([]Suggestion)) *Suggester {
	if delay <= 0 {
		delay = DebounceDelay
	}
	return &Suggester{search: search, delay: delay, onResult: onResult}
}

// Update registers a keystroke. Short queries clear the suggestion list
// immediately; longer ones schedule a lookup after the quiet period.
func (s *Suggester) Update(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	gen := s.gen

	if len(query) < minQueryLen {
		go s.deliver(gen, nil)
		return
	}

	s.timer = time.AfterFunc(s.delay, func() {
		res, err := s.search(query)
		if err != nil {
			// lookup failures degrade to no suggestions
			res = nil
		}
		s.deliver(gen, res)
	})
}

// Close cancels any pending lookup and invalidates in-flight ones.
func (s *Suggester) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

func (s *Suggester) deliver(gen uint64, res []Suggestion) {
	s.mu.Lock()
	stale := gen != s.gen
	s.mu.Unlock()
	if stale {
		return
	}
	if res == nil {
		res = []Suggestion{}
	}
	s.onResult(res)
}
