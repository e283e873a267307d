package dsl

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ToSerializable produces the canonical mapping representation of a
// definition, rooted at the `contract` key so the result round-trips
// losslessly through ParseContent.
func ToSerializable(def ContractDefinition) map[string]any {
	parties := make([]any, len(def.Parties))
	for i, party := range def.Parties {
		entry := map[string]any{
			"name":                  party.Name,
			"role":                  party.Role,
			"verification_required": party.VerificationRequired,
		}
		if party.Address != "" {
			entry["address"] = party.Address
		}
		parties[i] = entry
	}

	conditions := make([]any, len(def.Conditions))
	for i, cond := range def.Conditions {
		entry := map[string]any{
			"trigger": cond.Trigger,
			"action":  cond.Action,
		}
		if cond.Parameters != nil {
			entry["parameters"] = cond.Parameters
		}
		if cond.TimeLimit != nil {
			entry["time_limit"] = *cond.TimeLimit
		}
		conditions[i] = entry
	}

	requirements := make([]any, len(def.LegalRequirements))
	for i, req := range def.LegalRequirements {
		requirements[i] = req
	}

	metadata := def.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	return map[string]any{
		"contract": map[string]any{
			"type":               def.ContractType,
			"jurisdiction":       def.Jurisdiction,
			"parties":            parties,
			"conditions":         conditions,
			"legal_requirements": requirements,
			"metadata":           metadata,
		},
	}
}

// EncodeYAML renders the canonical mapping as YAML.
func EncodeYAML(def ContractDefinition) ([]byte, error) {
	data, err := yaml.Marshal(ToSerializable(def))
	if err != nil {
		return nil, fmt.Errorf("dsl: encode definition: %w", err)
	}
	return data, nil
}

// EncodeJSON renders the canonical mapping as indented JSON.
func EncodeJSON(def ContractDefinition) ([]byte, error) {
	data, err := json.MarshalIndent(ToSerializable(def), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("dsl: encode definition: %w", err)
	}
	return data, nil
}
