package main

import (
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// Sort method constants
const (
	SortNatural    = 0 // Natural sort order (e.g., file1, file2, file10)
	SortSimple     = 1 // Simple string sort (lexicographical)
	SortEntryOrder = 2 // Maintain original order (no sort)
)

// SortStrategy orders panel sources. Sort never modifies its input.
type SortStrategy interface {
	Sort(images []ImagePath) []ImagePath
	// Name returns the human-readable name of the strategy
	Name() string
	// ID returns the numeric identifier for config storage
	ID() int
}

// pathSort sorts by Path with a comparison function. A nil less keeps the
// input order.
type pathSort struct {
	id   int
	name string
	less func(a, b string) bool
}

func (s *pathSort) Sort(images []ImagePath) []ImagePath {
	result := make([]ImagePath, len(images))
	copy(result, images)
	if s.less != nil {
		sort.SliceStable(result, func(i, j int) bool {
			return s.less(result[i].Path, result[j].Path)
		})
	}
	return result
}

func (s *pathSort) Name() string { return s.name }

func (s *pathSort) ID() int { return s.id }

var sortStrategies = []SortStrategy{
	&pathSort{id: SortNatural, name: "Natural", less: natural.Less},
	&pathSort{id: SortSimple, name: "Simple", less: func(a, b string) bool { return a < b }},
	&pathSort{id: SortEntryOrder, name: "Entry Order"},
}

// GetSortStrategy returns the strategy for a sort method ID, falling back to
// natural order
func GetSortStrategy(sortMethod int) SortStrategy {
	for _, s := range sortStrategies {
		if s.ID() == sortMethod {
			return s
		}
	}
	return sortStrategies[0]
}

// GetAllSortStrategies returns all available sort strategies
func GetAllSortStrategies() []SortStrategy {
	return append([]SortStrategy(nil), sortStrategies...)
}

// ParseSortMethod maps a strategy name ("natural", "simple", "entry") to its ID
func ParseSortMethod(name string) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "natural":
		return SortNatural, true
	case "simple":
		return SortSimple, true
	case "entry", "entry order", "entry_order":
		return SortEntryOrder, true
	}
	return SortNatural, false
}
