package guess

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Guess is a set of extracted properties, each tagged with the confidence of
// the pass that produced it. A Guess is never mutated after construction;
// combining guesses always builds a new one.
type Guess struct {
	values     map[string]any
	confidence map[string]float64
}

// New builds a Guess holding the given properties, all at the same confidence.
func New(props map[string]any, confidence float64) Guess {
	g := Guess{
		values:     make(map[string]any, len(props)),
		confidence: make(map[string]float64, len(props)),
	}
	for k, v := range props {
		g.values[k] = v
		g.confidence[k] = confidence
	}
	return g
}

// Contains reports whether the guess holds the given property.
func (g Guess) Contains(prop string) bool {
	_, ok := g.values[prop]
	return ok
}

// Value returns the value stored for the property.
func (g Guess) Value(prop string) (any, bool) {
	v, ok := g.values[prop]
	return v, ok
}

// Confidence returns the confidence recorded for the property, or 0 if the
// property is absent.
func (g Guess) Confidence(prop string) float64 {
	return g.confidence[prop]
}

// Properties returns the property names in sorted order.
func (g Guess) Properties() []string {
	props := make([]string, 0, len(g.values))
	for k := range g.values {
		props = append(props, k)
	}
	sort.Strings(props)
	return props
}

// Len returns the number of properties held.
func (g Guess) Len() int {
	return len(g.values)
}

// Merge combines two guesses into a new one. Properties already present in g
// win; other only contributes properties g does not hold yet. Neither operand
// is modified.
func (g Guess) Merge(other Guess) Guess {
	merged := Guess{
		values:     make(map[string]any, len(g.values)+other.Len()),
		confidence: make(map[string]float64, len(g.confidence)+other.Len()),
	}
	for k, v := range other.values {
		merged.values[k] = v
		merged.confidence[k] = other.confidence[k]
	}
	for k, v := range g.values {
		merged.values[k] = v
		merged.confidence[k] = g.confidence[k]
	}
	return merged
}

// MarshalJSON renders each property alongside its confidence.
func (g Guess) MarshalJSON() ([]byte, error) {
	type property struct {
		Value      any     `json:"value"`
		Confidence float64 `json:"confidence"`
	}
	out := make(map[string]property, len(g.values))
	for k, v := range g.values {
		out[k] = property{Value: v, Confidence: g.confidence[k]}
	}
	return json.Marshal(out)
}

func (g Guess) String() string {
	parts := make([]string, 0, len(g.values))
	for _, p := range g.Properties() {
		parts = append(parts, fmt.Sprintf("%s=%v (%.2f)", p, g.values[p], g.confidence[p]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
