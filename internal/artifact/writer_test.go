package artifact

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilenames(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{ContractFilename("escrow", "india"), "escrow_india.sol"},
		{ContractFilename("settlement", "eu"), "settlement_eu.sol"},
		{DeployFilename("escrow", "india"), "deploy_escrow_india.js"},
		{TestFilename("insurance", "us"), "test_insurance_us.js"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("filename = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestWriterCreatesDirAndWrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "contracts")
	w := NewWriter(dir)

	path, err := w.WriteContract("escrow", "india", "contract EscrowContract {}")
	if err != nil {
		t.Fatalf("WriteContract: %v", err)
	}
	if path != filepath.Join(dir, "escrow_india.sol") {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(data) != "contract EscrowContract {}" {
		t.Errorf("content = %q", data)
	}
}

func TestWriterOverwrites(t *testing.T) {
	w := NewWriter(t.TempDir())
	if _, err := w.WriteDeployScript("escrow", "india", "first"); err != nil {
		t.Fatalf("WriteDeployScript: %v", err)
	}
	path, err := w.WriteDeployScript("escrow", "india", "second")
	if err != nil {
		t.Fatalf("WriteDeployScript: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want overwrite to win", data)
	}
}

func TestWriterCompanionScripts(t *testing.T) {
	w := NewWriter(t.TempDir())
	deployPath, err := w.WriteDeployScript("insurance", "eu", "// deploy")
	if err != nil {
		t.Fatalf("WriteDeployScript: %v", err)
	}
	testPath, err := w.WriteTestScript("insurance", "eu", "// test")
	if err != nil {
		t.Fatalf("WriteTestScript: %v", err)
	}
	if filepath.Base(deployPath) != "deploy_insurance_eu.js" {
		t.Errorf("deploy path = %q", deployPath)
	}
	if filepath.Base(testPath) != "test_insurance_eu.js" {
		t.Errorf("test path = %q", testPath)
	}
}
