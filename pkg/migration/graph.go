package migration

import "sort"

// Graph builds a forward dependency graph (parent revision to direct children)
// from a set of migration records.
//
// Every revision in the set gets a node entry, even childless leaves. Parents
// referenced by a record also get node entries whether or not their own record
// is part of the set, so edges pointing outside the current batch remain
// representable.
//
// Revisions are folded in lexical order so the child lists come out identical
// for any two maps holding the same records.
//
// Example usage:
//
//	graph := migration.Graph(records)
//	for parent, children := range graph {
//		fmt.Printf("%s -> %v\n", parent, children)
//	}
func Graph(records map[string]*Record) map[string][]string {
	graph := make(map[string][]string, len(records))

	for _, revision := range sortedRevisions(records) {
		if _, ok := graph[revision]; !ok {
			graph[revision] = []string{}
		}

		for _, parent := range records[revision].Parents() {
			graph[parent] = append(graph[parent], revision)
		}
	}

	return graph
}

func sortedRevisions(records map[string]*Record) []string {
	revisions := make([]string, 0, len(records))
	for revision := range records {
		revisions = append(revisions, revision)
	}
	sort.Strings(revisions)

	return revisions
}
