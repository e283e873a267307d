package dsl

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseFile reads a YAML contract definition from disk and parses it.
func ParseFile(path string) (ContractDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ContractDefinition{}, fmt.Errorf("dsl: read %s: %w", path, err)
	}
	def, err := ParseYAML(data)
	if err != nil {
		return ContractDefinition{}, fmt.Errorf("dsl: %s: %w", path, err)
	}
	return def, nil
}

// ParseYAML decodes a YAML payload and parses the contained contract definition.
func ParseYAML(data []byte) (ContractDefinition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return ContractDefinition{}, &SchemaError{Reason: "definition payload is empty"}
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return ContractDefinition{}, fmt.Errorf("dsl: decode definition: %w", err)
	}
	return ParseContent(raw)
}

// ParseContent parses a contract definition from raw decoded content. The
// content must carry a top-level `contract` key; type and jurisdiction are
// normalized to lowercase and checked against the supported enums. Optional
// party/condition fields receive their documented defaults.
func ParseContent(raw map[string]any) (ContractDefinition, error) {
	contractRaw, ok := raw["contract"]
	if !ok {
		return ContractDefinition{}, &SchemaError{Reason: "definition must contain 'contract' key"}
	}
	contract, ok := asMap(contractRaw)
	if !ok {
		return ContractDefinition{}, &SchemaError{Reason: "'contract' must be a mapping"}
	}

	contractType := strings.ToLower(strings.TrimSpace(stringAt(contract, "type")))
	if !IsSupportedType(contractType) {
		return ContractDefinition{}, &UnsupportedTypeError{ContractType: contractType}
	}
	jurisdiction := strings.ToLower(strings.TrimSpace(stringAt(contract, "jurisdiction")))
	if !IsSupportedJurisdiction(jurisdiction) {
		return ContractDefinition{}, &UnsupportedJurisdictionError{Jurisdiction: jurisdiction}
	}

	parties, err := parseParties(contract["parties"])
	if err != nil {
		return ContractDefinition{}, err
	}
	conditions, err := parseConditions(contract["conditions"])
	if err != nil {
		return ContractDefinition{}, err
	}

	def := ContractDefinition{
		ContractType:      contractType,
		Jurisdiction:      jurisdiction,
		Parties:           parties,
		Conditions:        conditions,
		LegalRequirements: stringSliceAt(contract, "legal_requirements"),
		Metadata:          mapAt(contract, "metadata"),
	}
	if def.LegalRequirements == nil {
		def.LegalRequirements = []string{}
	}
	if def.Metadata == nil {
		def.Metadata = map[string]any{}
	}
	return def, nil
}

func parseParties(value any) ([]Party, error) {
	entries := asSlice(value)
	parties := make([]Party, 0, len(entries))
	for idx, entry := range entries {
		m, ok := asMap(entry)
		if !ok {
			return nil, &SchemaError{Reason: fmt.Sprintf("parties[%d] must be a mapping", idx)}
		}
		name := stringAt(m, "name")
		if name == "" {
			return nil, &MissingFieldError{Section: "parties", Index: idx, Field: "name"}
		}
		role := stringAt(m, "role")
		if role == "" {
			return nil, &MissingFieldError{Section: "parties", Index: idx, Field: "role"}
		}
		party := Party{
			Name:                 name,
			Role:                 role,
			Address:              stringAt(m, "address"),
			VerificationRequired: true,
		}
		if v, ok := m["verification_required"]; ok {
			if b, ok := v.(bool); ok {
				party.VerificationRequired = b
			}
		}
		parties = append(parties, party)
	}
	return parties, nil
}

func parseConditions(value any) ([]Condition, error) {
	entries := asSlice(value)
	conditions := make([]Condition, 0, len(entries))
	for idx, entry := range entries {
		m, ok := asMap(entry)
		if !ok {
			return nil, &SchemaError{Reason: fmt.Sprintf("conditions[%d] must be a mapping", idx)}
		}
		trigger := stringAt(m, "trigger")
		if trigger == "" {
			return nil, &MissingFieldError{Section: "conditions", Index: idx, Field: "trigger"}
		}
		action := stringAt(m, "action")
		if action == "" {
			return nil, &MissingFieldError{Section: "conditions", Index: idx, Field: "action"}
		}
		cond := Condition{
			Trigger:    trigger,
			Action:     action,
			Parameters: mapAt(m, "parameters"),
		}
		if v, ok := m["time_limit"]; ok {
			if limit, ok := asInt(v); ok {
				if limit < 0 {
					return nil, &SchemaError{Reason: fmt.Sprintf("conditions[%d]: time_limit must be non-negative", idx)}
				}
				cond.TimeLimit = &limit
			}
		}
		conditions = append(conditions, cond)
	}
	return conditions, nil
}

func asMap(value any) (map[string]any, bool) {
	switch m := value.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		// yaml.v2 compatibility shape; normalize string keys.
		out := make(map[string]any, len(m))
		for k, v := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = v
		}
		return out, true
	default:
		return nil, false
	}
}

func asSlice(value any) []any {
	if s, ok := value.([]any); ok {
		return s
	}
	return nil
}

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func stringAt(m map[string]any, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func stringSliceAt(m map[string]any, key string) []string {
	entries := asSlice(m[key])
	if entries == nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if s, ok := entry.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func mapAt(m map[string]any, key string) map[string]any {
	if v, ok := m[key]; ok {
		if out, ok := asMap(v); ok {
			return out
		}
	}
	return nil
}
