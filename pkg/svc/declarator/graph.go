package declarator

import (
	"fmt"
	"strings"
)

// Node is one declared resource or output.
type Node struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`
}

// Edge means "From depends on To": To must be materialized before From.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph is the dependency graph of a declaration together with its apply order.
type Graph struct {
	Nodes     []Node   `json:"nodes"`
	Edges     []Edge   `json:"edges"`
	TopoOrder []string `json:"topoOrder"`
}

// NewGraph validates nodes and edges and computes a topological order.
// Nodes without a mutual dependency keep their declaration order.
func NewGraph(nodes []Node, edges []Edge) (Graph, error) {
	index := make(map[string]int, len(nodes))

	for i, node := range nodes {
		if _, exists := index[node.ID]; exists {
			return Graph{}, fmt.Errorf("%w: %s", ErrDuplicateNode, node.ID)
		}

		index[node.ID] = i
	}

	for _, edge := range edges {
		for _, id := range []string{edge.From, edge.To} {
			if _, ok := index[id]; !ok {
				return Graph{}, fmt.Errorf("%w: %s", ErrUnknownNode, id)
			}
		}
	}

	order, err := topoSort(nodes, edges)
	if err != nil {
		return Graph{}, err
	}

	graph := Graph{
		Nodes:     make([]Node, len(nodes)),
		Edges:     make([]Edge, len(edges)),
		TopoOrder: order,
	}
	copy(graph.Nodes, nodes)
	copy(graph.Edges, edges)

	return graph, nil
}

// Node returns the node with the given ID.
func (g Graph) Node(id string) (Node, bool) {
	for _, node := range g.Nodes {
		if node.ID == id {
			return node, true
		}
	}

	return Node{}, false
}

// DependenciesOf returns the IDs the given node depends on, in edge order.
func (g Graph) DependenciesOf(id string) []string {
	var deps []string

	for _, edge := range g.Edges {
		if edge.From == id {
			deps = append(deps, edge.To)
		}
	}

	return deps
}

// DOT exports the graph as Graphviz DOT text. Arrows point from a node to its dependency.
func (g Graph) DOT() string {
	var builder strings.Builder

	builder.WriteString("digraph stack {\n")
	builder.WriteString("  rankdir=LR;\n")

	aliases := make(map[string]string, len(g.Nodes))

	for i, node := range g.Nodes {
		alias := fmt.Sprintf("n%d", i)
		aliases[node.ID] = alias
		fmt.Fprintf(&builder, "  %s [label=\"%s\\n(%s)\"];\n", alias, escapeDOT(node.ID), escapeDOT(string(node.Kind)))
	}

	for _, edge := range g.Edges {
		fmt.Fprintf(&builder, "  %s -> %s;\n", aliases[edge.From], aliases[edge.To])
	}

	builder.WriteString("}\n")

	return builder.String()
}

func escapeDOT(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// topoSort runs Kahn's algorithm, always picking the earliest declared ready node.
func topoSort(nodes []Node, edges []Edge) ([]string, error) {
	pending := make(map[string]int, len(nodes))
	dependents := make(map[string][]string, len(nodes))

	for _, node := range nodes {
		pending[node.ID] = 0
	}

	for _, edge := range edges {
		pending[edge.From]++
		dependents[edge.To] = append(dependents[edge.To], edge.From)
	}

	done := make(map[string]bool, len(nodes))
	order := make([]string, 0, len(nodes))

	for len(order) < len(nodes) {
		next := ""

		for _, node := range nodes {
			if !done[node.ID] && pending[node.ID] == 0 {
				next = node.ID

				break
			}
		}

		if next == "" {
			var stuck []string

			for _, node := range nodes {
				if !done[node.ID] {
					stuck = append(stuck, node.ID)
				}
			}

			return nil, fmt.Errorf("%w: %s", ErrDependencyCycle, strings.Join(stuck, ", "))
		}

		done[next] = true
		order = append(order, next)

		for _, dependent := range dependents[next] {
			pending[dependent]--
		}
	}

	return order, nil
}
