package problem

import (
	"github.com/tmarden/sift/internal/search"
)

// VarSpec declares one integer decision variable with an inclusive range.
type VarSpec struct {
	Name string
	Min  int
	Max  int
}

// Term applies a coefficient to a named variable.
type Term struct {
	Var   string
	Coeff float64
}

// Relation is the comparison operator of a linear constraint.
type Relation string

const (
	// RelationLE requires the weighted sum to be at most the bound.
	RelationLE Relation = "<="
	// RelationGE requires the weighted sum to be at least the bound.
	RelationGE Relation = ">="
)

// LinearConstraint is one named constraint: sum(coeff_i * var_i) Rel Bound.
// Declaration order within a Spec is significant - verdict vectors and
// diagnostic output follow it.
type LinearConstraint struct {
	Name  string
	Terms []Term
	Rel   Relation
	Bound float64
}

// Objective is the linear goal: sum(coeff_i * var_i), maximized or
// minimized per Direction.
type Objective struct {
	Terms     []Term
	Direction search.Direction
}

// Spec is a complete problem definition, typically compiled from a CUE
// file (see internal/compiler).
type Spec struct {
	Name        string
	Description string
	Vars        []VarSpec
	Constraints []LinearConstraint
	Objective   Objective
}
