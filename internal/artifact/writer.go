// Package artifact persists generated contract text under deterministic
// filenames derived from the (contract type, jurisdiction) pair. Writes
// silently overwrite earlier artifacts of the same name; callers that need
// collision protection serialize writes themselves.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer writes artifacts into a single output directory, creating it on
// first use.
type Writer struct {
	dir string
}

// NewWriter builds a writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// ContractFilename is the deterministic name for a contract source artifact.
func ContractFilename(contractType, jurisdiction string) string {
	return fmt.Sprintf("%s_%s.sol", contractType, jurisdiction)
}

// DeployFilename is the deterministic name for a deployment script artifact.
func DeployFilename(contractType, jurisdiction string) string {
	return fmt.Sprintf("deploy_%s_%s.js", contractType, jurisdiction)
}

// TestFilename is the deterministic name for a test script artifact.
func TestFilename(contractType, jurisdiction string) string {
	return fmt.Sprintf("test_%s_%s.js", contractType, jurisdiction)
}

// WriteContract persists contract source text and returns the written path.
func (w *Writer) WriteContract(contractType, jurisdiction, source string) (string, error) {
	return w.write(ContractFilename(contractType, jurisdiction), source)
}

// WriteDeployScript persists a deployment script and returns the written path.
func (w *Writer) WriteDeployScript(contractType, jurisdiction, script string) (string, error) {
	return w.write(DeployFilename(contractType, jurisdiction), script)
}

// WriteTestScript persists a test script and returns the written path.
func (w *Writer) WriteTestScript(contractType, jurisdiction, script string) (string, error) {
	return w.write(TestFilename(contractType, jurisdiction), script)
}

func (w *Writer) write(filename, content string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("artifact: ensure output dir %s: %w", w.dir, err)
	}
	path := filepath.Join(w.dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("artifact: write %s: %w", path, err)
	}
	return path, nil
}
