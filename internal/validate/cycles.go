package validate

import "github.com/marmotdata/schemakit/internal/model"

// graph is an adjacency list over table IDs built from a set of
// relationships, used for reachability queries during cycle detection.
type graph map[string][]string

func buildGraph(relationships []*model.Relationship) graph {
	g := make(graph)
	for _, r := range relationships {
		g[r.From.TableID] = append(g[r.From.TableID], r.To.TableID)
	}
	return g
}

// reaches reports whether start can reach target via a breadth-first walk
// of g.
func (g graph) reaches(start, target string) bool {
	if start == target {
		return true
	}
	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, next := range g[n] {
			if next == target {
				return true
			}
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

// WouldCreateCycle reports whether adding a candidate edge (from -> to) to
// the existing relationship set would close a cycle: true iff "to" can
// already reach "from" through the existing graph.
func WouldCreateCycle(existing []*model.Relationship, from, to string) bool {
	g := buildGraph(existing)
	return g.reaches(to, from)
}

// FindCycles returns, for each relationship whose addition would have
// closed a cycle against the relationships before it in the given order,
// the offending relationship's ID. Relationships are processed in the
// order given, so the reported cycle roots depend on the caller's
// declaration order (spec.md §9 open question: cycle reporting chooses
// the first edge that closes the loop, not every edge in the loop).
func FindCycles(relationships []*model.Relationship) []string {
	var offending []string
	var accepted []*model.Relationship
	for _, r := range relationships {
		if WouldCreateCycle(accepted, r.From.TableID, r.To.TableID) {
			offending = append(offending, r.ID)
			continue
		}
		accepted = append(accepted, r)
	}
	return offending
}
