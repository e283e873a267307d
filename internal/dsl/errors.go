package dsl

import "fmt"

// SchemaError reports input that is missing the required top-level structure.
// Malformed input is rejected immediately because nothing downstream can
// reason about it.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dsl: %s", e.Reason)
}

// UnsupportedTypeError reports a contract type outside the supported enum.
type UnsupportedTypeError struct {
	ContractType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("dsl: unsupported contract type: %s", e.ContractType)
}

// UnsupportedJurisdictionError reports a jurisdiction outside the supported enum.
type UnsupportedJurisdictionError struct {
	Jurisdiction string
}

func (e *UnsupportedJurisdictionError) Error() string {
	return fmt.Sprintf("dsl: unsupported jurisdiction: %s", e.Jurisdiction)
}

// MissingFieldError reports a required sub-field absent from a parties or
// conditions entry, naming the section, index, and field.
type MissingFieldError struct {
	Section string
	Index   int
	Field   string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("dsl: %s[%d]: %s is required", e.Section, e.Index, e.Field)
}
