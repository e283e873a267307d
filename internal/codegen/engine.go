// Package codegen is the code assembly engine: it selects a contract
// template by (contract type, jurisdiction), merges the definition, the
// jurisdiction's legal rules, and its fragment bundle into a rendering
// context, and renders contract source plus deployment and test scripts.
// Rendering is pure: identical inputs produce byte-identical output.
package codegen

import (
	"bytes"
	"fmt"
	"text/template"

	"go.uber.org/zap"

	"github.com/lexforge/lexforge/internal/dsl"
	"github.com/lexforge/lexforge/internal/fragments"
	"github.com/lexforge/lexforge/internal/rules"
)

// Context is the merged key space handed to contract templates. Definition
// fields, rule-store fields, and the fragment bundle live in distinct fields,
// so merging can never overwrite.
type Context struct {
	ContractType string
	Jurisdiction string
	ContractName string

	Parties           []dsl.Party
	Conditions        []dsl.Condition
	LegalRequirements []string
	Metadata          map[string]any

	JurisdictionName      string
	RegulatoryBodies      []string
	MandatoryClauses      []string
	TimeLimits            map[string]int
	LegalRequirementsList []string

	Fragments fragments.Bundle
}

type scriptContext struct {
	ContractType          string
	Jurisdiction          string
	ContractName          string
	ConstructorArgsQuoted []string
	TestCases             []fragments.TestCase
}

// Rendered is one generated contract source, tagged with the pair it was
// rendered for.
type Rendered struct {
	ContractType string
	Jurisdiction string
	Source       string
}

// Engine renders contracts and their companion scripts.
type Engine struct {
	templates *template.Template
	registry  *fragments.Registry
	logger    *zap.Logger
}

// Option customizes an Engine during construction.
type Option func(*Engine)

// WithLogger attaches a logger; the default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRegistry overrides the fragment bundle registry, e.g. one extended by
// runtime bundle plugins.
func WithRegistry(reg *fragments.Registry) Option {
	return func(e *Engine) {
		if reg != nil {
			e.registry = reg
		}
	}
}

// New builds an engine with the embedded template set and the built-in
// fragment bundles.
func New(opts ...Option) (*Engine, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	reg, err := fragments.Builtin()
	if err != nil {
		return nil, err
	}
	engine := &Engine{
		templates: tmpl,
		registry:  reg,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine, nil
}

// GenerateContract renders the contract source for the definition's
// (contract type, jurisdiction) pair. It does NOT validate the definition:
// callers that want a completeness gate run dsl.ValidateContract first; a
// caller that skips validation can render an incomplete contract with no
// warning.
func (e *Engine) GenerateContract(def dsl.ContractDefinition) (string, error) {
	ctx, err := e.buildContext(def)
	if err != nil {
		return "", err
	}
	name, err := contractTemplateName(e.templates, def.Jurisdiction, def.ContractType)
	if err != nil {
		return "", err
	}
	e.logger.Debug("rendering contract",
		zap.String("template", name),
		zap.String("type", def.ContractType),
		zap.String("jurisdiction", def.Jurisdiction))
	return e.render(name, ctx)
}

// GenerateAll renders the definition once per supported jurisdiction. Each
// render works on a deep copy with the jurisdiction substituted; the caller's
// definition is never mutated.
func (e *Engine) GenerateAll(def dsl.ContractDefinition) ([]Rendered, error) {
	out := make([]Rendered, 0, len(dsl.SupportedJurisdictions()))
	for _, jurisdiction := range dsl.SupportedJurisdictions() {
		snapshot := def.Clone()
		snapshot.Jurisdiction = jurisdiction
		source, err := e.GenerateContract(snapshot)
		if err != nil {
			return nil, fmt.Errorf("codegen: generate %s/%s: %w", def.ContractType, jurisdiction, err)
		}
		out = append(out, Rendered{
			ContractType: def.ContractType,
			Jurisdiction: jurisdiction,
			Source:       source,
		})
	}
	return out, nil
}

// CreateDeploymentScript renders the deployment script for the definition's
// pair, passing the jurisdiction's constructor argument tuple.
func (e *Engine) CreateDeploymentScript(def dsl.ContractDefinition) (string, error) {
	bundle, err := e.bundleFor(def.Jurisdiction)
	if err != nil {
		return "", err
	}
	return e.render(deploymentTemplate, scriptContext{
		ContractType:          def.ContractType,
		Jurisdiction:          def.Jurisdiction,
		ContractName:          contractName(def.ContractType),
		ConstructorArgsQuoted: quoteAll(bundle.ConstructorArgs),
	})
}

// CreateTestScript renders the test script: two contract-type-agnostic base
// cases plus the jurisdiction bundle's extra cases.
func (e *Engine) CreateTestScript(def dsl.ContractDefinition) (string, error) {
	bundle, err := e.bundleFor(def.Jurisdiction)
	if err != nil {
		return "", err
	}
	cases := append(baseTestCases(), bundle.TestCases...)
	return e.render(testTemplate, scriptContext{
		ContractType:          def.ContractType,
		Jurisdiction:          def.Jurisdiction,
		ContractName:          contractName(def.ContractType),
		ConstructorArgsQuoted: quoteAll(bundle.ConstructorArgs),
		TestCases:             cases,
	})
}

func (e *Engine) buildContext(def dsl.ContractDefinition) (Context, error) {
	legalRules, err := rules.LoadLegalRules(def.Jurisdiction)
	if err != nil {
		return Context{}, err
	}
	contractRules := legalRules.ForContractType(def.ContractType)
	bundle, err := e.bundleFor(def.Jurisdiction)
	if err != nil {
		return Context{}, err
	}
	return Context{
		ContractType:          def.ContractType,
		Jurisdiction:          def.Jurisdiction,
		ContractName:          contractName(def.ContractType),
		Parties:               def.Parties,
		Conditions:            def.Conditions,
		LegalRequirements:     def.LegalRequirements,
		Metadata:              def.Metadata,
		JurisdictionName:      legalRules.Name,
		RegulatoryBodies:      legalRules.RegulatoryBodies,
		MandatoryClauses:      contractRules.MandatoryClauses,
		TimeLimits:            contractRules.TimeLimits,
		LegalRequirementsList: contractRules.LegalRequirements,
		Fragments:             bundle,
	}, nil
}

func (e *Engine) bundleFor(jurisdiction string) (fragments.Bundle, error) {
	bundle, ok := e.registry.Lookup(jurisdiction)
	if !ok {
		return fragments.Bundle{}, fmt.Errorf("codegen: no fragment bundle for jurisdiction %s", jurisdiction)
	}
	return bundle, nil
}

func (e *Engine) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("codegen: render %s: %w", name, err)
	}
	return buf.String(), nil
}

func contractName(contractType string) string {
	return capitalize(contractType) + "Contract"
}

func baseTestCases() []fragments.TestCase {
	return []fragments.TestCase{
		{
			Name:        "Contract Creation",
			Description: "Test contract creation with valid parameters",
			Function:    "createContract",
			Args:        []string{"payee", "amount", "deadline"},
		},
		{
			Name:        "Legal Compliance",
			Description: "Test legal compliance verification",
			Function:    "verifyLegalCompliance",
			Args:        []string{"contractId"},
		},
	}
}

func quoteAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprintf("%q", v)
	}
	return out
}
