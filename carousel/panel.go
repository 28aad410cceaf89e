package carousel

// Panel is one item of the carousel's content. Source is the identity used for
// lazy loading and change detection; panels without a Source are treated as
// arbitrary content and identified by Key, if any.
type Panel struct {
	Source  string
	Key     string
	Content any
}

// Dimensions is the natural size of a loaded source. Auto is set when the load
// failed or the size is unknown and the renderer should size the slide itself.
type Dimensions struct {
	Width  int
	Height int
	Auto   bool
}

// Unchanged reports whether next is the same panel set as prev: same length and,
// position by position, the same source identity. Panels without a source only
// compare equal when both carry the same non-empty Key; otherwise the set is
// considered replaced.
func Unchanged(prev, next []Panel) bool {
	if len(prev) != len(next) {
		return false
	}
	for i := range prev {
		a, b := prev[i], next[i]
		switch {
		case a.Source != "" || b.Source != "":
			if a.Source != b.Source {
				return false
			}
		case a.Key == "" || a.Key != b.Key:
			return false
		}
	}
	return true
}

// sourcesOf returns the set of sources declared by panels.
func sourcesOf(panels []Panel) map[string]struct{} {
	set := make(map[string]struct{}, len(panels))
	for _, p := range panels {
		if p.Source != "" {
			set[p.Source] = struct{}{}
		}
	}
	return set
}
