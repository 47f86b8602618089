package migration

import "sort"

// Order computes a dependency-correct apply order for a set of migration
// records.
//
// Every revision appears exactly once, strictly after all of its parents that
// are present in the set. Parents outside the set (migrations merged in an
// earlier batch) are treated as already satisfied. The order is deterministic
// for a given set of records regardless of map iteration: roots and the
// closure pass both walk revisions in lexical order.
//
// The walk is total: cyclic or otherwise broken history never causes an error
// or infinite loop. For a cycle, the visited guard still terminates the walk
// and each member is emitted once, in a locally consistent but not truly
// topological position. Detecting genuinely malformed history is left to
// alembic itself at apply time.
//
// Example usage:
//
//	for _, revision := range migration.Order(records) {
//		fmt.Println(revision)
//	}
func Order(records map[string]*Record) []string {
	if len(records) == 0 {
		return []string{}
	}

	// Roots: revisions with no parents inside this batch.
	roots := make([]string, 0, len(records))
	for revision, rec := range records {
		inSet := false
		for _, parent := range rec.Parents() {
			if _, ok := records[parent]; ok {
				inSet = true
				break
			}
		}
		if !inSet {
			roots = append(roots, revision)
		}
	}
	sort.Strings(roots)

	ordered := make([]string, 0, len(records))
	visited := make(map[string]bool, len(records))

	// Depth-first with an explicit stack; parents are pushed in declaration
	// order and a revision is emitted once all of its in-set parents are done.
	type frame struct {
		revision string
		parents  []string
		next     int
	}

	visit := func(revision string) {
		if visited[revision] {
			return
		}
		if _, ok := records[revision]; !ok {
			return
		}

		visited[revision] = true
		stack := []frame{{revision: revision, parents: records[revision].Parents()}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]

			if top.next < len(top.parents) {
				parent := top.parents[top.next]
				top.next++

				if visited[parent] {
					continue
				}
				if _, ok := records[parent]; !ok {
					continue
				}

				visited[parent] = true
				stack = append(stack, frame{revision: parent, parents: records[parent].Parents()})
				continue
			}

			ordered = append(ordered, top.revision)
			stack = stack[:len(stack)-1]
		}
	}

	for _, root := range roots {
		visit(root)
	}

	// Closure pass: anything a root walk missed (cycles, broken chains) still
	// gets visited, so the result always covers the whole set.
	for _, revision := range sortedRevisions(records) {
		visit(revision)
	}

	return ordered
}
