// Package problem implements the concrete search domain the sift CLI
// ships with: integer linear feasibility problems, e.g. product-mix
// optimization under linear resource constraints.
//
// A Spec declares integer decision variables with inclusive ranges,
// named linear constraints over them, and a linear objective. Problem
// adapts a validated Spec to the search core: candidates are uniform
// random assignments of the variables, constraints become named
// predicates, and the objective becomes the goal function.
//
// The package is a collaborator of the core, not part of it - the
// engine never sees variable names or coefficients, only the
// capability surface (NewCandidate, Goal) and the constraint
// predicates.
package problem
