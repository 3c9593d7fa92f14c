package indicator

import "barcore/internal/barerrors"

// Resolve computes the total execution order for requested indicator
// names: the transitive closure of their dependencies, topologically
// sorted. Ties among simultaneously-ready indicators are broken first by
// position in requested, then by registration order in reg.
func Resolve(reg *Registry, requested []string) ([]string, error) {
	requestedIndex := make(map[string]int, len(requested))
	for i, name := range requested {
		if _, dup := requestedIndex[name]; dup {
			continue
		}
		requestedIndex[name] = i
	}

	// Discover the full node set via BFS over Requires edges that point
	// at other indicators (core-column requires are not nodes).
	nodes := make(map[string]Spec)
	queue := append([]string(nil), requested...)
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if _, seen := nodes[name]; seen {
			continue
		}
		spec, err := reg.Lookup(name)
		if err != nil {
			return nil, err
		}
		nodes[name] = spec
		for _, req := range spec.Requires {
			if coreColumnSet[req] {
				continue
			}
			owner, ok := reg.owner(req)
			if !ok {
				return nil, &barerrors.UnknownIndicator{Name: req}
			}
			if _, seen := nodes[owner]; !seen {
				queue = append(queue, owner)
			}
		}
	}

	// Build edges (dependency -> dependent) and in-degrees.
	inDegree := make(map[string]int, len(nodes))
	dependents := make(map[string][]string, len(nodes))
	for name, spec := range nodes {
		for _, req := range spec.Requires {
			if coreColumnSet[req] {
				continue
			}
			owner, _ := reg.owner(req) // already validated above
			inDegree[name]++
			dependents[owner] = append(dependents[owner], name)
		}
		if _, ok := inDegree[name]; !ok {
			inDegree[name] = 0
		}
	}

	tieKey := func(name string) (int, int) {
		if idx, ok := requestedIndex[name]; ok {
			return 0, idx
		}
		return 1, reg.registrationIndex(name)
	}
	less := func(a, b string) bool {
		aGroup, aIdx := tieKey(a)
		bGroup, bIdx := tieKey(b)
		if aGroup != bGroup {
			return aGroup < bGroup
		}
		return aIdx < bIdx
	}

	var order []string
	remaining := make(map[string]bool, len(nodes))
	for name := range nodes {
		remaining[name] = true
	}

	for len(remaining) > 0 {
		var next string
		found := false
		for name := range remaining {
			if inDegree[name] != 0 {
				continue
			}
			if !found || less(name, next) {
				next = name
				found = true
			}
		}
		if !found {
			// No zero-in-degree node remains: a cycle exists among the
			// still-unresolved nodes.
			var cycle []string
			for name := range remaining {
				cycle = append(cycle, name)
			}
			return nil, &barerrors.CyclicDependency{Cycle: cycle}
		}
		order = append(order, next)
		delete(remaining, next)
		for _, dep := range dependents[next] {
			inDegree[dep]--
		}
	}

	return order, nil
}
