package placement

import "github.com/rapc-project/rapc/internal/topology"

// BuildOrder produces the breadth-first partial ordering of §4.2: a FIFO
// walk seeded with every source component, treating parent/child edges
// as undirected so cycles and loosely connected DAGs are still fully
// enumerated. Components at equal BFS distance appear in the order the
// source components were declared, which is what keeps the resulting
// placement deterministic.
func BuildOrder(td *topology.Details) ([]topology.Component, error) {
	sources := td.SourceComponents()
	if len(sources) == 0 {
		return nil, ErrNoSourceComponent
	}

	visited := make(map[string]bool)
	queue := make([]string, 0, len(sources))
	for _, c := range sources {
		if visited[c.ID] {
			continue
		}
		visited[c.ID] = true
		queue = append(queue, c.ID)
	}

	var order []topology.Component
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		c, ok := td.Component(id)
		if !ok {
			continue
		}
		order = append(order, c)

		for _, nb := range c.Neighbors() {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			queue = append(queue, nb)
		}
	}

	return order, nil
}
