package dsl

import "fmt"

// ValidateContract checks the structural completeness rules for a definition
// and returns every violation as a human-readable message. It never mutates
// the definition and never fails: callers decide whether defects block
// generation. Evaluation order is fixed (party count, condition count, role
// pair) and all violated checks are reported together.
func ValidateContract(def ContractDefinition) []string {
	errors := []string{}

	if len(def.Parties) < 2 {
		errors = append(errors, "Contract must have at least two parties")
	}
	if len(def.Conditions) == 0 {
		errors = append(errors, "Contract must have at least one condition")
	}

	if pair, ok := RequiredRoles(def.ContractType); ok {
		if !hasRoles(def, pair[0], pair[1]) {
			errors = append(errors, fmt.Sprintf("%s contract must have '%s' and '%s' roles",
				titleCase(def.ContractType), pair[0], pair[1]))
		}
	}

	return errors
}

func hasRoles(def ContractDefinition, first, second string) bool {
	var hasFirst, hasSecond bool
	for _, party := range def.Parties {
		switch party.Role {
		case first:
			hasFirst = true
		case second:
			hasSecond = true
		}
	}
	return hasFirst && hasSecond
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
