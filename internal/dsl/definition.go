// Package dsl defines the contract definition model and the parser/validator
// that turn raw YAML input into definitions the code assembly engine can
// consume. The struct fields mirror the on-disk schema under the top-level
// `contract` key so definitions round-trip losslessly.
package dsl

import "strings"

// Supported contract types and jurisdictions. Order is significant: it is
// the iteration order for multi-jurisdiction generation and for CLI listings.
const (
	TypeEscrow     = "escrow"
	TypeInsurance  = "insurance"
	TypeSettlement = "settlement"

	JurisdictionIndia = "india"
	JurisdictionEU    = "eu"
	JurisdictionUS    = "us"
)

var (
	supportedTypes         = []string{TypeEscrow, TypeInsurance, TypeSettlement}
	supportedJurisdictions = []string{JurisdictionIndia, JurisdictionEU, JurisdictionUS}

	// requiredRoles maps each contract type to the pair of party roles the
	// validator requires to be present.
	requiredRoles = map[string][2]string{
		TypeEscrow:     {"payer", "payee"},
		TypeInsurance:  {"insurer", "insured"},
		TypeSettlement: {"plaintiff", "defendant"},
	}
)

// SupportedTypes returns the contract types the parser accepts.
func SupportedTypes() []string {
	return append([]string{}, supportedTypes...)
}

// SupportedJurisdictions returns the jurisdictions the parser accepts.
func SupportedJurisdictions() []string {
	return append([]string{}, supportedJurisdictions...)
}

// RequiredRoles returns the role pair a contract type must carry, and whether
// the type is known at all.
func RequiredRoles(contractType string) ([2]string, bool) {
	roles, ok := requiredRoles[strings.ToLower(strings.TrimSpace(contractType))]
	return roles, ok
}

// IsSupportedType reports whether contractType is a member of the type enum.
func IsSupportedType(contractType string) bool {
	_, ok := requiredRoles[contractType]
	return ok
}

// IsSupportedJurisdiction reports whether id is a member of the jurisdiction enum.
func IsSupportedJurisdiction(id string) bool {
	for _, j := range supportedJurisdictions {
		if j == id {
			return true
		}
	}
	return false
}

// Party is one participant in a contract. Role is an enum scoped per contract
// type (escrow: payer/payee, insurance: insurer/insured, settlement:
// plaintiff/defendant). Address is an optional on-chain identifier.
type Party struct {
	Name                 string
	Role                 string
	Address              string
	VerificationRequired bool
}

// Condition binds a trigger event to an action, optionally parameterized and
// bounded by a time limit in days.
type Condition struct {
	Trigger    string
	Action     string
	Parameters map[string]any
	TimeLimit  *int
}

// ContractDefinition is the in-memory representation of a desired contractual
// arrangement. It is created by the parser (or constructed directly by a
// caller), optionally validated, and consumed by the code assembly engine.
// Validation never mutates it; generation works on clones.
type ContractDefinition struct {
	ContractType      string
	Jurisdiction      string
	Parties           []Party
	Conditions        []Condition
	LegalRequirements []string
	Metadata          map[string]any
}

// Clone returns a deep copy of the definition. Multi-jurisdiction generation
// substitutes the jurisdiction on a clone so the caller's value is never
// mutated.
func (def ContractDefinition) Clone() ContractDefinition {
	clone := ContractDefinition{
		ContractType: def.ContractType,
		Jurisdiction: def.Jurisdiction,
	}
	if def.Parties != nil {
		clone.Parties = append([]Party{}, def.Parties...)
	}
	if def.Conditions != nil {
		clone.Conditions = make([]Condition, len(def.Conditions))
		for i, cond := range def.Conditions {
			clone.Conditions[i] = cond.clone()
		}
	}
	if def.LegalRequirements != nil {
		clone.LegalRequirements = append([]string{}, def.LegalRequirements...)
	}
	if def.Metadata != nil {
		clone.Metadata = make(map[string]any, len(def.Metadata))
		for k, v := range def.Metadata {
			clone.Metadata[k] = v
		}
	}
	return clone
}

func (c Condition) clone() Condition {
	out := Condition{Trigger: c.Trigger, Action: c.Action}
	if c.Parameters != nil {
		out.Parameters = make(map[string]any, len(c.Parameters))
		for k, v := range c.Parameters {
			out.Parameters[k] = v
		}
	}
	if c.TimeLimit != nil {
		limit := *c.TimeLimit
		out.TimeLimit = &limit
	}
	return out
}

// Roles returns the roles of all parties in declaration order.
func (def ContractDefinition) Roles() []string {
	roles := make([]string, len(def.Parties))
	for i, p := range def.Parties {
		roles[i] = p.Role
	}
	return roles
}
