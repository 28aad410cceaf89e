package carousel

import (
	"reflect"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		count    int
		expected int
	}{
		{"in range", 1, 3, 1},
		{"one past end", 3, 3, 0},
		{"far past end", 5, 3, 2},
		{"minus one", -1, 3, 2},
		{"far negative", -4, 3, 2},
		{"single panel", 7, 1, 0},
		{"empty set", 4, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Wrap(tt.index, tt.count); got != tt.expected {
				t.Errorf("Wrap(%d, %d) = %d, want %d", tt.index, tt.count, got, tt.expected)
			}
		})
	}
}

func TestUnchanged(t *testing.T) {
	img := func(srcs ...string) []Panel {
		var out []Panel
		for _, s := range srcs {
			out = append(out, Panel{Source: s})
		}
		return out
	}

	tests := []struct {
		name     string
		prev     []Panel
		next     []Panel
		expected bool
	}{
		{"same sources", img("a", "b"), img("a", "b"), true},
		{"both empty", nil, nil, true},
		{"different length", img("a", "b"), img("a"), false},
		{"reordered", img("a", "b"), img("b", "a"), false},
		{"source replaced", img("a", "b"), img("a", "c"), false},
		{"source vs content", img("a"), []Panel{{Key: "a"}}, false},
		{"same keys", []Panel{{Key: "x"}, {Key: "y"}}, []Panel{{Key: "x"}, {Key: "y"}}, true},
		{"different keys", []Panel{{Key: "x"}}, []Panel{{Key: "z"}}, false},
		{"content without identity", []Panel{{Content: 1}}, []Panel{{Content: 1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Unchanged(tt.prev, tt.next); got != tt.expected {
				t.Errorf("Unchanged() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSourcesOf(t *testing.T) {
	got := sourcesOf([]Panel{{Source: "a"}, {Key: "k"}, {Source: "b"}, {Source: "a"}})
	expected := map[string]struct{}{"a": {}, "b": {}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("sourcesOf() = %v, want %v", got, expected)
	}
}
