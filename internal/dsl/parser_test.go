package dsl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const escrowYAML = `
contract:
  type: escrow
  jurisdiction: india
  parties:
    - name: Acme Exports
      role: payer
      address: "0x1111111111111111111111111111111111111111"
    - name: Bharat Imports
      role: payee
      verification_required: false
  conditions:
    - trigger: delivery_confirmed
      action: release_funds
      parameters:
        carrier: bluedart
      time_limit: 30
  legal_requirements:
    - kyc_verification
  metadata:
    reference: PO-4417
`

func TestParseYAML(t *testing.T) {
	def, err := ParseYAML([]byte(escrowYAML))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}

	limit := 30
	want := ContractDefinition{
		ContractType: "escrow",
		Jurisdiction: "india",
		Parties: []Party{
			{Name: "Acme Exports", Role: "payer", Address: "0x1111111111111111111111111111111111111111", VerificationRequired: true},
			{Name: "Bharat Imports", Role: "payee", VerificationRequired: false},
		},
		Conditions: []Condition{
			{Trigger: "delivery_confirmed", Action: "release_funds", Parameters: map[string]any{"carrier": "bluedart"}, TimeLimit: &limit},
		},
		LegalRequirements: []string{"kyc_verification"},
		Metadata:          map[string]any{"reference": "PO-4417"},
	}
	if diff := cmp.Diff(want, def); diff != "" {
		t.Errorf("definition mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAMLNormalizesEnums(t *testing.T) {
	def, err := ParseYAML([]byte(`
contract:
  type: " Escrow "
  jurisdiction: INDIA
  parties:
    - {name: A, role: payer}
    - {name: B, role: payee}
  conditions:
    - {trigger: t, action: a}
`))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if def.ContractType != TypeEscrow {
		t.Errorf("ContractType = %q, want %q", def.ContractType, TypeEscrow)
	}
	if def.Jurisdiction != JurisdictionIndia {
		t.Errorf("Jurisdiction = %q, want %q", def.Jurisdiction, JurisdictionIndia)
	}
}

func TestParseYAMLDefaults(t *testing.T) {
	def, err := ParseYAML([]byte(`
contract:
  type: settlement
  jurisdiction: us
  parties:
    - {name: A, role: plaintiff}
    - {name: B, role: defendant}
  conditions:
    - {trigger: agreement_reached, action: execute_settlement}
`))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	for i, party := range def.Parties {
		if !party.VerificationRequired {
			t.Errorf("parties[%d].VerificationRequired = false, want default true", i)
		}
	}
	if def.LegalRequirements == nil || len(def.LegalRequirements) != 0 {
		t.Errorf("LegalRequirements = %v, want empty non-nil slice", def.LegalRequirements)
	}
	if def.Metadata == nil || len(def.Metadata) != 0 {
		t.Errorf("Metadata = %v, want empty non-nil map", def.Metadata)
	}
	if def.Conditions[0].TimeLimit != nil {
		t.Errorf("TimeLimit = %v, want nil when absent", *def.Conditions[0].TimeLimit)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, err error)
	}{
		{
			name:  "empty payload",
			input: "   \n",
			check: func(t *testing.T, err error) {
				var schemaErr *SchemaError
				if !errors.As(err, &schemaErr) {
					t.Fatalf("error = %v, want *SchemaError", err)
				}
			},
		},
		{
			name:  "missing contract key",
			input: "definition:\n  type: escrow\n",
			check: func(t *testing.T, err error) {
				var schemaErr *SchemaError
				if !errors.As(err, &schemaErr) {
					t.Fatalf("error = %v, want *SchemaError", err)
				}
			},
		},
		{
			name: "unsupported type",
			input: `
contract:
  type: lease
  jurisdiction: india
`,
			check: func(t *testing.T, err error) {
				var typeErr *UnsupportedTypeError
				if !errors.As(err, &typeErr) {
					t.Fatalf("error = %v, want *UnsupportedTypeError", err)
				}
				if typeErr.ContractType != "lease" {
					t.Errorf("ContractType = %q, want %q", typeErr.ContractType, "lease")
				}
			},
		},
		{
			name: "unsupported jurisdiction",
			input: `
contract:
  type: escrow
  jurisdiction: mars
`,
			check: func(t *testing.T, err error) {
				var jurisdictionErr *UnsupportedJurisdictionError
				if !errors.As(err, &jurisdictionErr) {
					t.Fatalf("error = %v, want *UnsupportedJurisdictionError", err)
				}
				if jurisdictionErr.Jurisdiction != "mars" {
					t.Errorf("Jurisdiction = %q, want %q", jurisdictionErr.Jurisdiction, "mars")
				}
			},
		},
		{
			name: "party missing role",
			input: `
contract:
  type: escrow
  jurisdiction: india
  parties:
    - name: Acme
`,
			check: func(t *testing.T, err error) {
				var missing *MissingFieldError
				if !errors.As(err, &missing) {
					t.Fatalf("error = %v, want *MissingFieldError", err)
				}
				want := MissingFieldError{Section: "parties", Index: 0, Field: "role"}
				if *missing != want {
					t.Errorf("error = %+v, want %+v", *missing, want)
				}
			},
		},
		{
			name: "condition missing action",
			input: `
contract:
  type: escrow
  jurisdiction: india
  parties:
    - {name: A, role: payer}
    - {name: B, role: payee}
  conditions:
    - {trigger: delivery_confirmed}
`,
			check: func(t *testing.T, err error) {
				var missing *MissingFieldError
				if !errors.As(err, &missing) {
					t.Fatalf("error = %v, want *MissingFieldError", err)
				}
				want := MissingFieldError{Section: "conditions", Index: 0, Field: "action"}
				if *missing != want {
					t.Errorf("error = %+v, want %+v", *missing, want)
				}
			},
		},
		{
			name: "negative time limit",
			input: `
contract:
  type: escrow
  jurisdiction: india
  parties:
    - {name: A, role: payer}
    - {name: B, role: payee}
  conditions:
    - {trigger: delivery_confirmed, action: release_funds, time_limit: -5}
`,
			check: func(t *testing.T, err error) {
				var schemaErr *SchemaError
				if !errors.As(err, &schemaErr) {
					t.Fatalf("error = %v, want *SchemaError", err)
				}
				if schemaErr.Reason != "conditions[0]: time_limit must be non-negative" {
					t.Errorf("Reason = %q", schemaErr.Reason)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			tt.check(t, err)
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "escrow.yaml")
	if err := os.WriteFile(path, []byte(escrowYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	def, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if def.ContractType != TypeEscrow || def.Jurisdiction != JurisdictionIndia {
		t.Errorf("got %s/%s, want escrow/india", def.ContractType, def.Jurisdiction)
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}
