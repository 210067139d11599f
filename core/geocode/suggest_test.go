package geocode

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type resultSink struct {
	mu      sync.Mutex
	results [][]Suggestion
}

func (rs *resultSink) add(res []Suggestion) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.results = append(rs.results, res)
}

func (rs *resultSink) last() ([]Suggestion, int) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if len(rs.results) == 0 {
		return nil, 0
	}
	return rs.results[len(rs.results)-1], len(rs.results)
}

func suggestionsFor(q string) []Suggestion {
	return []Suggestion{{Label: q}}
}

func TestSuggester_debouncesRapidKeystrokes(t *testing.T) {
	var calls int32
	search := func(q string) ([]Suggestion, error) {
		atomic.AddInt32(&calls, 1)
		return suggestionsFor(q), nil
	}
	sink := &resultSink{}
	s := NewSuggester(search, 20*time.Millisecond, sink.add)
	defer s.Close()

	s.Update("mum")
	s.Update("mumb")
	s.Update("mumba")
	s.Update("mumbai")

	time.Sleep(100 * time.Millisecond)

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected a single lookup after the quiet period, got %d", got)
	}
	last, n := sink.last()
	if n != 1 || len(last) != 1 || last[0].Label != "mumbai" {
		t.Fatalf("expected one delivery for %q, got %d deliveries, last=%v", "mumbai", n, last)
	}
}

func TestSuggester_staleResponseIsDropped(t *testing.T) {
	release := make(chan struct{})
	search := func(q string) ([]Suggestion, error) {
		if q == "delhi" {
			<-release // hold the first lookup until a newer query lands
		}
		return suggestionsFor(q), nil
	}
	sink := &resultSink{}
	s := NewSuggester(search, time.Millisecond, sink.add)
	defer s.Close()

	s.Update("delhi")
	time.Sleep(20 * time.Millisecond) // let the first lookup fire and block

	s.Update("mumbai")
	time.Sleep(20 * time.Millisecond)
	close(release)
	time.Sleep(20 * time.Millisecond)

	last, _ := sink.last()
	if len(last) != 1 || last[0].Label != "mumbai" {
		t.Fatalf("stale response overwrote newer suggestions: %v", last)
	}
}

func TestSuggester_shortQueryClearsImmediately(t *testing.T) {
	var calls int32
	search := func(q string) ([]Suggestion, error) {
		atomic.AddInt32(&calls, 1)
		return suggestionsFor(q), nil
	}
	sink := &resultSink{}
	s := NewSuggester(search, time.Millisecond, sink.add)
	defer s.Close()

	s.Update("mu")
	time.Sleep(20 * time.Millisecond)

	if atomic.LoadInt32(&calls) != 0 {
		t.Fatal("short queries must not trigger lookups")
	}
	last, n := sink.last()
	if n != 1 || len(last) != 0 {
		t.Fatalf("expected one empty delivery, got %d deliveries, last=%v", n, last)
	}
}

func TestSuggester_lookupFailureDegradesToEmpty(t *testing.T) {
	search := func(q string) ([]Suggestion, error) {
		return nil, errors.New("service unavailable")
	}
	sink := &resultSink{}
	s := NewSuggester(search, time.Millisecond, sink.add)
	defer s.Close()

	s.Update("mumbai")
	time.Sleep(20 * time.Millisecond)

	last, n := sink.last()
	if n != 1 || len(last) != 0 {
		t.Fatalf("expected empty suggestions on failure, got %d deliveries, last=%v", n, last)
	}
}
