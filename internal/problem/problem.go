package problem

import (
	"fmt"

	"github.com/tmarden/sift/internal/rng"
	"github.com/tmarden/sift/internal/search"
)

// Mix is one candidate assignment, positionally aligned with
// Spec.Vars. Treated as an immutable value once generated.
type Mix struct {
	Values []int
}

// Problem adapts a validated Spec to the search core's capability
// surface. Safe for concurrent use: all fields are read-only after New.
type Problem struct {
	spec  *Spec
	index map[string]int // variable name -> position in spec.Vars
}

// New validates the spec and builds the variable index.
func New(spec *Spec) (*Problem, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid problem spec: %w", err)
	}

	index := make(map[string]int, len(spec.Vars))
	for i, v := range spec.Vars {
		index[v.Name] = i
	}

	return &Problem{spec: spec, index: index}, nil
}

// Spec returns the underlying problem definition.
func (p *Problem) Spec() *Spec {
	return p.spec
}

// NewCandidate draws each variable uniformly from its inclusive range.
// All randomness comes from the supplied stream; concurrent callers
// must each pass their own.
func (p *Problem) NewCandidate(s rng.Stream) Mix {
	values := make([]int, len(p.spec.Vars))
	for i, v := range p.spec.Vars {
		values[i] = v.Min + s.IntN(v.Max-v.Min+1)
	}
	return Mix{Values: values}
}

// Goal evaluates the linear objective for one candidate.
func (p *Problem) Goal(m Mix) float64 {
	return p.eval(p.spec.Objective.Terms, m)
}

// Direction returns the objective's optimization direction.
func (p *Problem) Direction() search.Direction {
	return p.spec.Objective.Direction
}

// Constraints builds the named predicates for the search core, in
// declaration order.
func (p *Problem) Constraints() []search.Constraint[Mix] {
	constraints := make([]search.Constraint[Mix], len(p.spec.Constraints))
	for i, c := range p.spec.Constraints {
		c := c
		constraints[i] = search.Constraint[Mix]{
			Name: c.Name,
			Test: func(m Mix) bool {
				lhs := p.eval(c.Terms, m)
				if c.Rel == RelationGE {
					return lhs >= c.Bound
				}
				return lhs <= c.Bound
			},
		}
	}
	return constraints
}

// Assignment maps variable names to their values in a candidate,
// for display and run ledgers.
func (p *Problem) Assignment(m Mix) map[string]int {
	out := make(map[string]int, len(p.spec.Vars))
	for i, v := range p.spec.Vars {
		out[v.Name] = m.Values[i]
	}
	return out
}

// eval computes the weighted sum of terms over one candidate.
func (p *Problem) eval(terms []Term, m Mix) float64 {
	var sum float64
	for _, t := range terms {
		sum += t.Coeff * float64(m.Values[p.index[t.Var]])
	}
	return sum
}
