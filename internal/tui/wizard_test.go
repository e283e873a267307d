package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lexforge/lexforge/internal/dsl"
)

func keyEnter() tea.Msg { return tea.KeyMsg{Type: tea.KeyEnter} }

func keyRunes(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func advance(t *testing.T, w Wizard, msgs ...tea.Msg) Wizard {
	t.Helper()
	for _, msg := range msgs {
		model, _ := w.Update(msg)
		next, ok := model.(Wizard)
		if !ok {
			t.Fatalf("Update returned %T, want Wizard", model)
		}
		w = next
	}
	return w
}

func submit(t *testing.T, w Wizard, value string) Wizard {
	t.Helper()
	if value != "" {
		w = advance(t, w, keyRunes(value))
	}
	return advance(t, w, keyEnter())
}

func TestWizardFullWalkthrough(t *testing.T) {
	w := NewWizard()

	// Contract type: first menu entry (escrow).
	w = advance(t, w, keyEnter())
	if w.step != stepJurisdiction {
		t.Fatalf("step = %d, want jurisdiction menu", w.step)
	}

	// Jurisdiction: first menu entry (india).
	w = advance(t, w, keyEnter())
	if w.step != stepPartyName {
		t.Fatalf("step = %d, want party name input", w.step)
	}

	// Two required roles: payer then payee, address optional.
	w = submit(t, w, "Acme Exports")
	w = submit(t, w, "0x1111")
	w = submit(t, w, "Bharat Imports")
	w = submit(t, w, "")
	if w.step != stepConditionTrigger {
		t.Fatalf("step = %d, want condition trigger input", w.step)
	}

	// One condition with a time limit, then stop the loop.
	w = submit(t, w, "delivery_confirmed")
	w = submit(t, w, "release_funds")
	w = submit(t, w, "30")
	if w.step != stepConditionMore {
		t.Fatalf("step = %d, want condition-more prompt", w.step)
	}
	w = advance(t, w, keyRunes("n"))
	if w.step != stepRequirements {
		t.Fatalf("step = %d, want requirements picker", w.step)
	}

	// Toggle the first catalog requirement, then confirm.
	w = advance(t, w, keyRunes(" "), keyEnter())

	def, ok := w.Definition()
	if !ok {
		t.Fatal("Definition: wizard did not finish")
	}
	if def.ContractType != dsl.TypeEscrow {
		t.Errorf("ContractType = %q, want escrow", def.ContractType)
	}
	if def.Jurisdiction != dsl.JurisdictionIndia {
		t.Errorf("Jurisdiction = %q, want india", def.Jurisdiction)
	}
	if len(def.Parties) != 2 || def.Parties[0].Role != "payer" || def.Parties[1].Role != "payee" {
		t.Errorf("Parties = %+v, want payer and payee", def.Parties)
	}
	if def.Parties[0].Address != "0x1111" {
		t.Errorf("payer address = %q", def.Parties[0].Address)
	}
	if len(def.Conditions) != 1 {
		t.Fatalf("Conditions = %+v, want one", def.Conditions)
	}
	if def.Conditions[0].TimeLimit == nil || *def.Conditions[0].TimeLimit != 30 {
		t.Errorf("TimeLimit = %v, want 30", def.Conditions[0].TimeLimit)
	}
	if len(def.LegalRequirements) != 1 {
		t.Errorf("LegalRequirements = %v, want one toggled entry", def.LegalRequirements)
	}
	if defects := dsl.ValidateContract(def); len(defects) != 0 {
		t.Errorf("assembled definition has defects: %v", defects)
	}
}

func TestWizardRejectsEmptyRequiredInput(t *testing.T) {
	w := NewWizard()
	w = advance(t, w, keyEnter(), keyEnter()) // type + jurisdiction

	w = advance(t, w, keyEnter()) // empty party name
	if w.step != stepPartyName {
		t.Errorf("step = %d, want to stay on party name", w.step)
	}
	if w.errMsg == "" {
		t.Error("expected an error message for empty name")
	}
}

func TestWizardAbort(t *testing.T) {
	w := NewWizard()
	w = advance(t, w, tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := w.Definition(); ok {
		t.Error("Definition must report not-ok after abort")
	}
}
