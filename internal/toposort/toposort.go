// Package toposort orders named vertices so that every vertex follows the
// vertices it depends on.
//
// The sort is a depth-first post-order walk. Vertices are visited in input
// order and dependencies in listed order, so identical input always yields
// identical output. A vertex is marked visited before its dependencies are
// walked, which makes cycles terminate: the vertex that closes a cycle is
// emitted before the vertex it depends on, and the output is still a complete
// permutation of the input.
package toposort

// Vertex is a named node and the names it depends on.
type Vertex struct {
	Name string
	Deps []string
}

// Sort returns the vertex names in dependency order. Dependencies naming no
// input vertex are ignored. Duplicate input names keep their first entry.
func Sort(vertices []Vertex) []string {
	deps := make(map[string][]string, len(vertices))
	for _, v := range vertices {
		if _, ok := deps[v.Name]; !ok {
			deps[v.Name] = v.Deps
		}
	}

	sorted := make([]string, 0, len(deps))
	visited := make(map[string]bool, len(deps))
	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		for _, d := range deps[name] {
			if _, known := deps[d]; known {
				visit(d)
			}
		}
		sorted = append(sorted, name)
	}

	for _, v := range vertices {
		visit(v.Name)
	}
	return sorted
}

// Forward returns, for a sorted order, the vertices that depend on something
// emitted at or after their own position: the members of a cycle that must
// be referenced lazily.
func Forward(vertices []Vertex, order []string) map[string]bool {
	pos := make(map[string]int, len(order))
	for i, name := range order {
		pos[name] = i
	}
	forward := make(map[string]bool)
	for _, v := range vertices {
		at, ok := pos[v.Name]
		if !ok {
			continue
		}
		for _, d := range v.Deps {
			if dp, known := pos[d]; known && dp >= at {
				forward[v.Name] = true
			}
		}
	}
	return forward
}
