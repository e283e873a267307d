package fragments

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

const goBundleFuncName = "FragmentBundles"

// LoadGoBundleDir evaluates every .go file in dir with yaegi and collects
// bundles declared via FragmentBundles() ([]map[string]any[, error]). Each
// returned map uses the same keys as a YAML bundle file, including `id`.
// The plugin may declare any package name; the function is resolved inside
// the package the file declares.
func LoadGoBundleDir(dir string) ([]BundleFile, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fragments: read %s: %w", trimmed, err)
	}
	var files []BundleFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != ".go" {
			continue
		}
		fileBundles, err := loadGoBundleFile(filepath.Join(trimmed, entry.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, fileBundles...)
	}
	if len(files) == 0 {
		return nil, nil
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func loadGoBundleFile(path string) ([]BundleFile, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fragments: read %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(code))) == 0 {
		return nil, fmt.Errorf("fragments: %s is empty", path)
	}
	pkg, err := pluginPackage(path, code)
	if err != nil {
		return nil, err
	}
	i := interp.New(interp.Options{})
	i.Use(stdlib.Symbols)
	if _, err := i.EvalPath(path); err != nil {
		return nil, fmt.Errorf("fragments: interpret %s: %w", path, err)
	}
	symbol := goBundleFuncName
	if pkg != "main" {
		symbol = pkg + "." + goBundleFuncName
	}
	fnValue, err := i.Eval(symbol)
	if err != nil {
		return nil, fmt.Errorf("fragments: %s must define %s() ([]map[string]any, error): %w", path, goBundleFuncName, err)
	}
	raws, callErr := invokeBundleFunc(fnValue)
	if callErr != nil {
		return nil, fmt.Errorf("fragments: %s: %w", path, callErr)
	}
	files := make([]BundleFile, 0, len(raws))
	for idx, raw := range raws {
		bundle, err := bundleFromMap(raw)
		if err != nil {
			return nil, fmt.Errorf("fragments: %s bundle[%d]: %w", path, idx, err)
		}
		files = append(files, BundleFile{Bundle: bundle, Path: fmt.Sprintf("%s#%d", path, idx+1)})
	}
	return files, nil
}

// pluginPackage reads the package clause so the bundle function can be
// resolved under its qualified name.
func pluginPackage(path string, code []byte) (string, error) {
	file, err := parser.ParseFile(token.NewFileSet(), path, code, parser.PackageClauseOnly)
	if err != nil {
		return "", fmt.Errorf("fragments: parse %s: %w", path, err)
	}
	return file.Name.Name, nil
}

// bundleFromMap decodes one plugin-returned map directly into a Bundle and
// validates it.
func bundleFromMap(raw map[string]any) (Bundle, error) {
	bundle := Bundle{
		ID:                        stringKey(raw, "id"),
		Variables:                 stringKey(raw, "variables"),
		Initialization:            stringKey(raw, "initialization"),
		ComplianceVerification:    stringKey(raw, "compliance_verification"),
		LegalRequirementsAccessor: stringKey(raw, "legal_requirements_accessor"),
		DisputeHandling:           stringKey(raw, "dispute_handling"),
		JurisdictionFunctions:     stringKey(raw, "jurisdiction_functions"),
		DisputeSinkFunction:       stringKey(raw, "dispute_sink_function"),
		ConstructorArgs:           stringsKey(raw, "constructor_args"),
		TestCases:                 testCasesKey(raw, "test_cases"),
	}
	bundle = bundle.Normalized()
	if err := bundle.Validate(); err != nil {
		return Bundle{}, err
	}
	return bundle, nil
}

func invokeBundleFunc(value reflect.Value) ([]map[string]any, error) {
	if !value.IsValid() {
		return nil, fmt.Errorf("missing %s function", goBundleFuncName)
	}
	if value.Kind() != reflect.Func {
		return nil, fmt.Errorf("%s is not a function", goBundleFuncName)
	}
	results := value.Call(nil)
	if len(results) == 0 || len(results) > 2 {
		return nil, fmt.Errorf("%s must return ([]map[string]any[, error])", goBundleFuncName)
	}
	if len(results) == 2 && !results[1].IsNil() {
		if e, ok := results[1].Interface().(error); ok && e != nil {
			return nil, e
		}
		return nil, fmt.Errorf("%s returned non-error second value", goBundleFuncName)
	}
	bundlesVal := results[0]
	if bundles, ok := bundlesVal.Interface().([]map[string]any); ok {
		return bundles, nil
	}
	if bundlesVal.Kind() == reflect.Slice {
		out := make([]map[string]any, bundlesVal.Len())
		for i := 0; i < bundlesVal.Len(); i++ {
			entry, ok := bundlesVal.Index(i).Interface().(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s[%d] is not map[string]any", goBundleFuncName, i)
			}
			out[i] = entry
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s must return []map[string]any", goBundleFuncName)
}

func stringKey(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func stringsKey(m map[string]any, key string) []string {
	switch v := m[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, entry := range v {
			if s, ok := entry.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func testCasesKey(m map[string]any, key string) []TestCase {
	decode := func(entry map[string]any) TestCase {
		return TestCase{
			Name:        stringKey(entry, "name"),
			Description: stringKey(entry, "description"),
			Function:    stringKey(entry, "function"),
			Args:        stringsKey(entry, "args"),
		}
	}
	var cases []TestCase
	switch v := m[key].(type) {
	case []map[string]any:
		for _, entry := range v {
			cases = append(cases, decode(entry))
		}
	case []any:
		for _, raw := range v {
			if entry, ok := raw.(map[string]any); ok {
				cases = append(cases, decode(entry))
			}
		}
	}
	return cases
}
