// Package compiler turns CUE problem definitions into problem.Spec
// values. Uses the CUE SDK's Go API directly (not a CLI subprocess).
package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/tmarden/sift/internal/problem"
	"github.com/tmarden/sift/internal/search"
)

// CompileProblem parses a CUE value into a problem.Spec.
//
// The CUE value should be the problem struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`problem: product_mix: { ... }`)
//	spec, err := CompileProblem(v.LookupPath(cue.ParsePath("problem.product_mix")))
//
// Expected shape:
//
//	problem: <name>: {
//	    description: "..."
//	    vars: <var>: { min: int, max: int }
//	    constraints: [{ name: string, terms: { <var>: number }, op: "<=" | ">=", bound: number }]
//	    objective: { terms: { <var>: number }, direction: "maximize" | "minimize" }
//	}
//
// Compilation is structural; semantic checks (undeclared variables,
// empty ranges) are problem.Spec.Validate's job.
func CompileProblem(v cue.Value) (*problem.Spec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &problem.Spec{}

	// Problem name comes from the struct label (the path selector).
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		spec.Name = labels[len(labels)-1].String()
	}

	// description (optional)
	descVal := v.LookupPath(cue.ParsePath("description"))
	if descVal.Exists() {
		desc, err := descVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		spec.Description = desc
	}

	// vars (required, at least one)
	vars, err := parseVars(v)
	if err != nil {
		return nil, err
	}
	if len(vars) == 0 {
		return nil, &CompileError{
			Field:   "vars",
			Message: "at least one variable is required",
			Pos:     v.Pos(),
		}
	}
	spec.Vars = vars

	// constraints (optional; an unconstrained problem is legal)
	spec.Constraints, err = parseConstraints(v)
	if err != nil {
		return nil, err
	}

	// objective (required)
	objVal := v.LookupPath(cue.ParsePath("objective"))
	if !objVal.Exists() {
		return nil, &CompileError{
			Field:   "objective",
			Message: "objective is required",
			Pos:     v.Pos(),
		}
	}
	spec.Objective, err = parseObjective(objVal)
	if err != nil {
		return nil, err
	}

	return spec, nil
}

// parseVars extracts variable declarations in definition order.
func parseVars(v cue.Value) ([]problem.VarSpec, error) {
	varsVal := v.LookupPath(cue.ParsePath("vars"))
	if !varsVal.Exists() {
		return nil, nil
	}

	iter, err := varsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var vars []problem.VarSpec
	for iter.Next() {
		name := iter.Selector().Unquoted()
		vv := iter.Value()

		min, err := lookupInt(vv, "min")
		if err != nil {
			return nil, err
		}
		max, err := lookupInt(vv, "max")
		if err != nil {
			return nil, err
		}

		vars = append(vars, problem.VarSpec{Name: name, Min: min, Max: max})
	}

	return vars, nil
}

// parseConstraints extracts the constraint list, preserving list order.
func parseConstraints(v cue.Value) ([]problem.LinearConstraint, error) {
	consVal := v.LookupPath(cue.ParsePath("constraints"))
	if !consVal.Exists() {
		return nil, nil
	}

	iter, err := consVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var constraints []problem.LinearConstraint
	for iter.Next() {
		cv := iter.Value()

		nameVal := cv.LookupPath(cue.ParsePath("name"))
		if !nameVal.Exists() {
			return nil, &CompileError{
				Field:   "constraints",
				Message: "constraint name is required",
				Pos:     cv.Pos(),
			}
		}
		name, err := nameVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}

		opVal := cv.LookupPath(cue.ParsePath("op"))
		if !opVal.Exists() {
			return nil, &CompileError{
				Field:   "constraints",
				Message: fmt.Sprintf("constraint %q: op is required", name),
				Pos:     cv.Pos(),
			}
		}
		op, err := opVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		rel := problem.Relation(op)
		if rel != problem.RelationLE && rel != problem.RelationGE {
			return nil, &CompileError{
				Field:   "constraints",
				Message: fmt.Sprintf("constraint %q: unknown op %q (want \"<=\" or \">=\")", name, op),
				Pos:     opVal.Pos(),
			}
		}

		bound, err := lookupFloat(cv, "bound")
		if err != nil {
			return nil, err
		}

		terms, err := parseTerms(cv.LookupPath(cue.ParsePath("terms")))
		if err != nil {
			return nil, err
		}

		constraints = append(constraints, problem.LinearConstraint{
			Name:  name,
			Terms: terms,
			Rel:   rel,
			Bound: bound,
		})
	}

	return constraints, nil
}

// parseObjective extracts the goal terms and direction.
func parseObjective(v cue.Value) (problem.Objective, error) {
	var obj problem.Objective

	terms, err := parseTerms(v.LookupPath(cue.ParsePath("terms")))
	if err != nil {
		return obj, err
	}
	obj.Terms = terms

	// direction defaults to maximize
	obj.Direction = search.Maximize
	dirVal := v.LookupPath(cue.ParsePath("direction"))
	if dirVal.Exists() {
		dir, err := dirVal.String()
		if err != nil {
			return obj, formatCUEError(err)
		}
		switch dir {
		case "maximize":
			obj.Direction = search.Maximize
		case "minimize":
			obj.Direction = search.Minimize
		default:
			return obj, &CompileError{
				Field:   "objective.direction",
				Message: fmt.Sprintf("unknown direction %q (want \"maximize\" or \"minimize\")", dir),
				Pos:     dirVal.Pos(),
			}
		}
	}

	return obj, nil
}

// parseTerms extracts a { var: coefficient } struct as a term list.
func parseTerms(v cue.Value) ([]problem.Term, error) {
	if !v.Exists() {
		return nil, nil
	}

	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var terms []problem.Term
	for iter.Next() {
		coeff, err := iter.Value().Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		terms = append(terms, problem.Term{
			Var:   iter.Selector().Unquoted(),
			Coeff: coeff,
		})
	}

	return terms, nil
}

// lookupInt reads a required integer field.
func lookupInt(v cue.Value, field string) (int, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return 0, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("%s is required", field),
			Pos:     v.Pos(),
		}
	}
	i, err := fv.Int64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	return int(i), nil
}

// lookupFloat reads a required numeric field.
func lookupFloat(v cue.Value, field string) (float64, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return 0, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("%s is required", field),
			Pos:     v.Pos(),
		}
	}
	f, err := fv.Float64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	return f, nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
