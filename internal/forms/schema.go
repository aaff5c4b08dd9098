package forms

// Schema is an ordered list of rules for one form.
type Schema struct {
	Rules []Rule
}

// Fields returns the distinct field names in declaration order.
func (s Schema) Fields() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range s.Rules {
		if _, ok := seen[r.Field]; ok {
			continue
		}
		seen[r.Field] = struct{}{}
		out = append(out, r.Field)
	}
	return out
}

// Validate evaluates every rule and returns the first failing message of
// each field.
func (s Schema) Validate(v Values) Errors {
	return s.collect(v, func(Rule) bool { return true })
}

// ValidateField evaluates only the rules of field.
func (s Schema) ValidateField(field string, v Values) (string, bool) {
	errs := s.collect(v, func(r Rule) bool { return r.Field == field })
	msg, failed := errs[field]
	return msg, !failed
}

// ValidateStep evaluates the rules belonging to step.
func (s Schema) ValidateStep(step int, v Values) Errors {
	return s.collect(v, func(r Rule) bool { return r.Step == step })
}

// Has reports whether field has any rule.
func (s Schema) Has(field string) bool {
	for _, r := range s.Rules {
		if r.Field == field {
			return true
		}
	}
	return false
}

func (s Schema) collect(v Values, include func(Rule) bool) Errors {
	errs := Errors{}
	for _, r := range s.Rules {
		if !include(r) {
			continue
		}
		if _, failed := errs[r.Field]; failed {
			continue
		}
		if !r.Check(v) {
			errs[r.Field] = r.Message
		}
	}
	return errs
}
