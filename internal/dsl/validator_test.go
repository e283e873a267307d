package dsl

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func validEscrow() ContractDefinition {
	return ContractDefinition{
		ContractType: TypeEscrow,
		Jurisdiction: JurisdictionIndia,
		Parties: []Party{
			{Name: "Buyer", Role: "payer", VerificationRequired: true},
			{Name: "Seller", Role: "payee", VerificationRequired: true},
		},
		Conditions: []Condition{
			{Trigger: "delivery_confirmed", Action: "release_funds"},
		},
		LegalRequirements: []string{},
		Metadata:          map[string]any{},
	}
}

func TestValidateContract(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(def *ContractDefinition)
		want   []string
	}{
		{
			name:   "valid escrow",
			mutate: func(def *ContractDefinition) {},
			want:   []string{},
		},
		{
			name: "single party",
			mutate: func(def *ContractDefinition) {
				def.Parties = def.Parties[:1]
			},
			want: []string{
				"Contract must have at least two parties",
				"Escrow contract must have 'payer' and 'payee' roles",
			},
		},
		{
			name: "no conditions",
			mutate: func(def *ContractDefinition) {
				def.Conditions = nil
			},
			want: []string{"Contract must have at least one condition"},
		},
		{
			name: "wrong roles",
			mutate: func(def *ContractDefinition) {
				def.Parties[1].Role = "witness"
			},
			want: []string{"Escrow contract must have 'payer' and 'payee' roles"},
		},
		{
			name: "everything wrong",
			mutate: func(def *ContractDefinition) {
				def.Parties = nil
				def.Conditions = nil
			},
			want: []string{
				"Contract must have at least two parties",
				"Contract must have at least one condition",
				"Escrow contract must have 'payer' and 'payee' roles",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := validEscrow()
			tt.mutate(&def)
			got := ValidateContract(def)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("defects mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateContractRolePairs(t *testing.T) {
	tests := []struct {
		contractType string
		roles        []string
		wantMessage  string
	}{
		{TypeInsurance, []string{"insurer", "insured"}, ""},
		{TypeInsurance, []string{"insurer", "beneficiary"}, "Insurance contract must have 'insurer' and 'insured' roles"},
		{TypeSettlement, []string{"plaintiff", "defendant"}, ""},
		{TypeSettlement, []string{"plaintiff", "mediator"}, "Settlement contract must have 'plaintiff' and 'defendant' roles"},
	}

	for _, tt := range tests {
		t.Run(tt.contractType+"/"+tt.roles[1], func(t *testing.T) {
			def := validEscrow()
			def.ContractType = tt.contractType
			for i, role := range tt.roles {
				def.Parties[i].Role = role
			}
			got := ValidateContract(def)
			if tt.wantMessage == "" {
				if len(got) != 0 {
					t.Errorf("defects = %v, want none", got)
				}
				return
			}
			if len(got) != 1 || got[0] != tt.wantMessage {
				t.Errorf("defects = %v, want [%q]", got, tt.wantMessage)
			}
		})
	}
}

func TestValidateContractDoesNotMutate(t *testing.T) {
	def := validEscrow()
	snapshot := def.Clone()
	ValidateContract(def)
	if diff := cmp.Diff(snapshot, def); diff != "" {
		t.Errorf("definition changed during validation (-before +after):\n%s", diff)
	}
}
