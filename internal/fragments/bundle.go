// Package fragments holds the per-jurisdiction bundles of boilerplate
// injected into contract templates. Each jurisdiction owns exactly one
// bundle of six named opaque text slots, plus the deployment constructor
// arguments and the extra test cases tied to its verifier functions.
//
// Built-in bundles load once from an embedded resource; additional bundles
// can be discovered at runtime from YAML files or interpreted Go plugins,
// so adding a jurisdiction is a data change, not a code change.
package fragments

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed bundles.yaml
var bundlesYAML []byte

// TestCase describes one generated test-script case.
type TestCase struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Function    string   `yaml:"function"`
	Args        []string `yaml:"args"`
}

// Bundle is the fixed set of jurisdiction-specific fragments. The six text
// slots are opaque to the engine; it only places them into template slots.
type Bundle struct {
	ID string `yaml:"-"`

	Variables                 string `yaml:"variables"`
	Initialization            string `yaml:"initialization"`
	ComplianceVerification    string `yaml:"compliance_verification"`
	LegalRequirementsAccessor string `yaml:"legal_requirements_accessor"`
	DisputeHandling           string `yaml:"dispute_handling"`
	JurisdictionFunctions     string `yaml:"jurisdiction_functions"`

	// DisputeSinkFunction names the internal function the dispute_handling
	// slot escalates into; templates emit a stub with this name.
	DisputeSinkFunction string `yaml:"dispute_sink_function"`

	ConstructorArgs []string   `yaml:"constructor_args"`
	TestCases       []TestCase `yaml:"test_cases"`
}

// Normalized returns a copy with whitespace-trimmed identity fields and the
// dispute sink default applied.
func (b Bundle) Normalized() Bundle {
	b.ID = strings.ToLower(strings.TrimSpace(b.ID))
	b.DisputeSinkFunction = strings.TrimSpace(b.DisputeSinkFunction)
	if b.DisputeSinkFunction == "" {
		b.DisputeSinkFunction = "_submitDisputeToRegulator"
	}
	return b
}

// Validate ensures every slot of the bundle is populated.
func (b Bundle) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("fragments: bundle id is required")
	}
	slots := map[string]string{
		"variables":                   b.Variables,
		"initialization":              b.Initialization,
		"compliance_verification":     b.ComplianceVerification,
		"legal_requirements_accessor": b.LegalRequirementsAccessor,
		"dispute_handling":            b.DisputeHandling,
		"jurisdiction_functions":      b.JurisdictionFunctions,
	}
	for name, text := range slots {
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("fragments: bundle %s: slot %s is empty", b.ID, name)
		}
	}
	if len(b.ConstructorArgs) != 3 {
		return fmt.Errorf("fragments: bundle %s: constructor_args must have exactly 3 entries, got %d", b.ID, len(b.ConstructorArgs))
	}
	for idx, tc := range b.TestCases {
		if strings.TrimSpace(tc.Name) == "" {
			return fmt.Errorf("fragments: bundle %s: test_cases[%d]: name is required", b.ID, idx)
		}
		if strings.TrimSpace(tc.Function) == "" {
			return fmt.Errorf("fragments: bundle %s: test_cases[%d]: function is required", b.ID, idx)
		}
	}
	return nil
}

// Registry is an immutable-after-init index of bundles by jurisdiction id.
type Registry struct {
	mu      sync.RWMutex
	bundles map[string]Bundle
}

type resource struct {
	Bundles map[string]Bundle `yaml:"bundles"`
}

var (
	builtinOnce sync.Once
	builtin     *Registry
	builtinErr  error
)

// Builtin returns the registry of embedded bundles, parsed once.
func Builtin() (*Registry, error) {
	builtinOnce.Do(func() {
		reg, err := parseResource(bundlesYAML)
		if err != nil {
			builtinErr = err
			return
		}
		builtin = reg
	})
	return builtin, builtinErr
}

func parseResource(data []byte) (*Registry, error) {
	var parsed resource
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("fragments: parse bundle resource: %w", err)
	}
	if len(parsed.Bundles) == 0 {
		return nil, fmt.Errorf("fragments: bundle resource is empty")
	}
	reg := &Registry{bundles: make(map[string]Bundle, len(parsed.Bundles))}
	for id, bundle := range parsed.Bundles {
		bundle.ID = id
		bundle = bundle.Normalized()
		if err := bundle.Validate(); err != nil {
			return nil, err
		}
		reg.bundles[bundle.ID] = bundle
	}
	return reg, nil
}

// Register adds a bundle to the registry. Registering an id twice replaces
// the earlier bundle, which is how runtime plugins override built-ins.
func (r *Registry) Register(bundle Bundle) error {
	bundle = bundle.Normalized()
	if err := bundle.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bundles[bundle.ID] = bundle
	return nil
}

// Lookup returns the bundle for a jurisdiction id.
func (r *Registry) Lookup(id string) (Bundle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bundle, ok := r.bundles[id]
	return bundle, ok
}

// IDs returns every registered jurisdiction id, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.bundles))
	for id := range r.bundles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
