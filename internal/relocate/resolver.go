// Package relocate computes the effective package relocation rules of a module:
// its own rules plus those of every module it embeds, transitively.
package relocate

import (
	"errors"
	"fmt"

	oerrors "github.com/opmodel/shadeplan/internal/errors"
	"github.com/opmodel/shadeplan/internal/graph"
	"github.com/opmodel/shadeplan/internal/output"
)

// Rule is a relocation together with the module that declared it.
type Rule struct {
	From  string         `json:"from"`
	To    string         `json:"to"`
	Owner graph.ModuleID `json:"owner"`
}

type visitState uint8

const (
	unvisited visitState = iota
	visiting
	done
)

// Resolver walks embed edges only. Compile-only edges never contribute rules.
// Results are memoized, so a module shared by several embedders is walked once.
type Resolver struct {
	g     *graph.Graph
	memo  map[graph.ModuleID][]Rule
	state map[graph.ModuleID]visitState
	path  []graph.ModuleID

	// skip prunes embedded modules, together with everything below them.
	skip func(graph.ModuleID) bool
}

// NewResolver creates a Resolver over g.
func NewResolver(g *graph.Graph) *Resolver {
	return &Resolver{
		g:     g,
		memo:  make(map[graph.ModuleID][]Rule),
		state: make(map[graph.ModuleID]visitState),
	}
}

// Resolve returns the effective relocation rules of root: its own rules in
// declaration order, then the effective rules of each embedded module in edge
// order. Identical rules appear once.
func (r *Resolver) Resolve(root graph.ModuleID) ([]Rule, error) {
	if _, ok := r.g.Node(root); !ok {
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("module %q is not declared in the build graph", root), r.g.Source, "")
	}

	r.path = r.path[:0]
	rules, err := r.visit(root)
	if err != nil {
		return nil, err
	}

	out := make([]Rule, len(rules))
	copy(out, rules)
	return out, nil
}

// ResolveExcluding is Resolve with every embedded module for which skip
// reports true left out, together with the modules it embeds. The root is
// never skipped. Pruned results are not shared with the memo of r.
func (r *Resolver) ResolveExcluding(root graph.ModuleID, skip func(graph.ModuleID) bool) ([]Rule, error) {
	if skip == nil {
		return r.Resolve(root)
	}
	pruned := NewResolver(r.g)
	pruned.skip = skip
	return pruned.Resolve(root)
}

// ResolveAll resolves every module in graph order. The map holds results for
// the modules that resolved; the error joins every distinct failure.
func (r *Resolver) ResolveAll() (map[graph.ModuleID][]Rule, error) {
	results := make(map[graph.ModuleID][]Rule, r.g.Len())
	var errs []error
	seen := make(map[string]struct{})

	for _, id := range r.g.Modules() {
		rules, err := r.Resolve(id)
		if err != nil {
			if _, dup := seen[err.Error()]; !dup {
				seen[err.Error()] = struct{}{}
				errs = append(errs, err)
			}
			continue
		}
		results[id] = rules
	}

	return results, errors.Join(errs...)
}

func (r *Resolver) visit(id graph.ModuleID) ([]Rule, error) {
	switch r.state[id] {
	case done:
		return r.memo[id], nil
	case visiting:
		return nil, &CycleError{Cycle: r.cycleTo(id)}
	}

	node, ok := r.g.Node(id)
	if !ok {
		from := ""
		if len(r.path) > 0 {
			from = r.path[len(r.path)-1].String()
		}
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("module %q embeds undeclared module %q", from, id), r.g.Source, "")
	}

	r.state[id] = visiting
	r.path = append(r.path, id)

	rules, err := r.collect(node)

	r.path = r.path[:len(r.path)-1]
	if err != nil {
		delete(r.state, id)
		return nil, err
	}

	r.state[id] = done
	r.memo[id] = rules
	output.ModuleLogger(id.String()).Debug("relocations resolved", "rules", len(rules))
	return rules, nil
}

func (r *Resolver) collect(node *graph.Node) ([]Rule, error) {
	m := newMerger()
	for _, rel := range node.Relocations {
		if err := m.add(Rule{From: rel.From, To: rel.To, Owner: node.ID}); err != nil {
			return nil, err
		}
	}
	for _, dep := range node.Embeds {
		if r.skip != nil && r.skip(dep) {
			output.ModuleLogger(node.ID.String()).Debug("skipping provided module", "module", dep.String())
			continue
		}
		sub, err := r.visit(dep)
		if err != nil {
			return nil, err
		}
		for _, rule := range sub {
			if err := m.add(rule); err != nil {
				return nil, err
			}
		}
	}
	return m.rules, nil
}

// cycleTo returns the current path from the first occurrence of id, closed with id.
func (r *Resolver) cycleTo(id graph.ModuleID) []graph.ModuleID {
	start := 0
	for i, p := range r.path {
		if p == id {
			start = i
			break
		}
	}
	cycle := make([]graph.ModuleID, 0, len(r.path)-start+1)
	cycle = append(cycle, r.path[start:]...)
	return append(cycle, id)
}

// merger keeps rules keyed by From in first-seen order.
type merger struct {
	rules  []Rule
	byFrom map[string]Rule
}

func newMerger() *merger {
	return &merger{byFrom: make(map[string]Rule)}
}

func (m *merger) add(rule Rule) error {
	if prev, ok := m.byFrom[rule.From]; ok {
		if prev.To == rule.To {
			return nil
		}
		return &ConflictError{From: rule.From, First: prev, Second: rule}
	}
	m.byFrom[rule.From] = rule
	m.rules = append(m.rules, rule)
	return nil
}
