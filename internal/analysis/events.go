package analysis

import (
	"sort"
	"time"
)

// PlayEvent is a single scrobble. Album and SourceID are empty when unknown.
type PlayEvent struct {
	Artist    string    `json:"artist" yaml:"artist"`
	Album     string    `json:"album,omitempty" yaml:"album,omitempty"`
	Track     string    `json:"track" yaml:"track"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Source    string    `json:"source" yaml:"source"`
	SourceID  string    `json:"source_id,omitempty" yaml:"source_id,omitempty"`
}

type trackKey struct {
	artist string
	track  string
}

type albumKey struct {
	artist string
	album  string
}

// sortedByTime returns a copy of events in ascending timestamp order. Equal
// timestamps keep their input order.
func sortedByTime(events []PlayEvent) []PlayEvent {
	sorted := make([]PlayEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}

// counter tallies keys and remembers the order in which they were first seen,
// so rankings break ties deterministically.
type counter[K comparable] struct {
	counts map[K]int
	order  []K
}

func newCounter[K comparable]() *counter[K] {
	return &counter[K]{counts: make(map[K]int)}
}

func (c *counter[K]) add(key K) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *counter[K]) get(key K) int {
	return c.counts[key]
}

func (c *counter[K]) len() int {
	return len(c.order)
}

// ranked returns keys by descending count, ties in first-seen order.
func (c *counter[K]) ranked() []K {
	keys := make([]K, len(c.order))
	copy(keys, c.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.counts[keys[i]] > c.counts[keys[j]]
	})
	return keys
}

// top returns the highest-count key. ok is false when nothing was counted.
func (c *counter[K]) top() (key K, count int, ok bool) {
	for _, k := range c.order {
		if c.counts[k] > count {
			key, count, ok = k, c.counts[k], true
		}
	}
	return
}

func percentOf(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
