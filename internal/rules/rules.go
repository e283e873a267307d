// Package rules is the read-only store of per-jurisdiction legal metadata:
// display name, regulatory bodies, and per-contract-type requirements,
// clauses, and time limits. The resource is embedded in the binary and
// parsed once into process-wide immutable state.
package rules

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed jurisdictions.yaml
var jurisdictionsYAML []byte

// ContractRules carries the legal metadata for one contract type within a
// jurisdiction.
type ContractRules struct {
	LegalRequirements []string       `yaml:"legal_requirements"`
	MandatoryClauses  []string       `yaml:"mandatory_clauses"`
	TimeLimits        map[string]int `yaml:"time_limits"`
}

// JurisdictionRules is the legal metadata for one jurisdiction.
type JurisdictionRules struct {
	ID               string                   `yaml:"-"`
	Name             string                   `yaml:"name"`
	RegulatoryBodies []string                 `yaml:"regulatory_bodies"`
	ContractTypes    map[string]ContractRules `yaml:"contract_types"`
}

// ForContractType returns the contract-type-specific entry, defaulting to an
// empty ContractRules when the type is absent from the store.
func (r JurisdictionRules) ForContractType(contractType string) ContractRules {
	if entry, ok := r.ContractTypes[contractType]; ok {
		return entry
	}
	return ContractRules{}
}

// UnknownJurisdictionError reports a rule store lookup miss.
type UnknownJurisdictionError struct {
	ID string
}

func (e *UnknownJurisdictionError) Error() string {
	return fmt.Sprintf("rules: jurisdiction %s not found in legal rules", e.ID)
}

type resource struct {
	Jurisdictions map[string]JurisdictionRules `yaml:"jurisdictions"`
}

var (
	loadOnce sync.Once
	loaded   map[string]JurisdictionRules
	loadErr  error
)

func load() (map[string]JurisdictionRules, error) {
	loadOnce.Do(func() {
		var parsed resource
		if err := yaml.Unmarshal(jurisdictionsYAML, &parsed); err != nil {
			loadErr = fmt.Errorf("rules: parse jurisdictions resource: %w", err)
			return
		}
		if len(parsed.Jurisdictions) == 0 {
			loadErr = fmt.Errorf("rules: jurisdictions resource is empty")
			return
		}
		for id, entry := range parsed.Jurisdictions {
			entry.ID = id
			parsed.Jurisdictions[id] = entry
		}
		loaded = parsed.Jurisdictions
	})
	return loaded, loadErr
}

// LoadLegalRules looks up the legal rules for a jurisdiction. The result is a
// pure function of the embedded resource and the id.
func LoadLegalRules(jurisdictionID string) (JurisdictionRules, error) {
	store, err := load()
	if err != nil {
		return JurisdictionRules{}, err
	}
	entry, ok := store[jurisdictionID]
	if !ok {
		return JurisdictionRules{}, &UnknownJurisdictionError{ID: jurisdictionID}
	}
	return entry, nil
}

// Catalog returns every jurisdiction id in the store, sorted.
func Catalog() ([]string, error) {
	store, err := load()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(store))
	for id := range store {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
