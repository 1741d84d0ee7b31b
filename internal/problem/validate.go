package problem

import "fmt"

// Validate checks that a Spec is structurally sound: variables are
// declared with sane ranges, every term references a declared
// variable, and relations are known. Returns the first problem found.
func (s *Spec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if len(s.Vars) == 0 {
		return fmt.Errorf("at least one variable is required")
	}

	declared := make(map[string]bool, len(s.Vars))
	for i, v := range s.Vars {
		if v.Name == "" {
			return fmt.Errorf("vars[%d]: name is required", i)
		}
		if declared[v.Name] {
			return fmt.Errorf("vars[%d]: duplicate variable %q", i, v.Name)
		}
		declared[v.Name] = true
		if v.Min > v.Max {
			return fmt.Errorf("vars[%d] (%s): empty range [%d, %d]", i, v.Name, v.Min, v.Max)
		}
	}

	seen := make(map[string]bool, len(s.Constraints))
	for i, c := range s.Constraints {
		if c.Name == "" {
			return fmt.Errorf("constraints[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("constraints[%d]: duplicate constraint %q", i, c.Name)
		}
		seen[c.Name] = true
		if c.Rel != RelationLE && c.Rel != RelationGE {
			return fmt.Errorf("constraints[%d] (%s): unknown relation %q", i, c.Name, c.Rel)
		}
		if len(c.Terms) == 0 {
			return fmt.Errorf("constraints[%d] (%s): at least one term is required", i, c.Name)
		}
		for j, term := range c.Terms {
			if !declared[term.Var] {
				return fmt.Errorf("constraints[%d] (%s): terms[%d] references undeclared variable %q", i, c.Name, j, term.Var)
			}
		}
	}

	if len(s.Objective.Terms) == 0 {
		return fmt.Errorf("objective: at least one term is required")
	}
	for j, term := range s.Objective.Terms {
		if !declared[term.Var] {
			return fmt.Errorf("objective: terms[%d] references undeclared variable %q", j, term.Var)
		}
	}

	return nil
}
