// Package tui implements the interactive contract-definition wizard.
// It follows The Elm Architecture: the model holds the wizard state, Update
// advances it on key messages, and View renders the current step. The wizard
// walks contract type, jurisdiction, the required-role parties, a condition
// loop, and a legal-requirement picker fed from the rule store catalog.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lexforge/lexforge/internal/dsl"
	"github.com/lexforge/lexforge/internal/rules"
)

type wizardStep int

const (
	stepContractType wizardStep = iota
	stepJurisdiction
	stepPartyName
	stepPartyAddress
	stepConditionTrigger
	stepConditionAction
	stepConditionTimeLimit
	stepConditionMore
	stepRequirements
	stepDone
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	pickedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
)

type choiceItem struct {
	id    string
	label string
}

func (c choiceItem) Title() string       { return c.label }
func (c choiceItem) Description() string { return "" }
func (c choiceItem) FilterValue() string { return c.label }

// Wizard is the bubbletea model for the definition builder.
type Wizard struct {
	step wizardStep

	typeMenu         list.Model
	jurisdictionMenu list.Model
	requirementMenu  list.Model
	input            textinput.Model

	contractType string
	jurisdiction string
	roles        [2]string
	roleIndex    int
	partyName    string
	parties      []dsl.Party
	conditions   []dsl.Condition
	trigger      string
	action       string
	requirements []string
	catalog      []string

	errMsg   string
	aborted  bool
	finished bool
}

// NewWizard builds the wizard model.
func NewWizard() Wizard {
	typeItems := make([]list.Item, 0, len(dsl.SupportedTypes()))
	for _, t := range dsl.SupportedTypes() {
		typeItems = append(typeItems, choiceItem{id: t, label: t})
	}
	jurisdictionItems := make([]list.Item, 0, len(dsl.SupportedJurisdictions()))
	for _, j := range dsl.SupportedJurisdictions() {
		jurisdictionItems = append(jurisdictionItems, choiceItem{id: j, label: j})
	}

	input := textinput.New()
	input.CharLimit = 120
	input.Width = 48

	return Wizard{
		step:             stepContractType,
		typeMenu:         newMenu("Select contract type", typeItems),
		jurisdictionMenu: newMenu("Select jurisdiction", jurisdictionItems),
		input:            input,
	}
}

func newMenu(title string, items []list.Item) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	menu := list.New(items, delegate, 40, 12)
	menu.Title = title
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	menu.SetShowHelp(false)
	return menu
}

// Init is part of the tea.Model contract.
func (w Wizard) Init() tea.Cmd {
	return nil
}

// Update advances the wizard on key messages.
func (w Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return w, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		w.aborted = true
		return w, tea.Quit
	}

	switch w.step {
	case stepContractType:
		return w.updateTypeMenu(keyMsg)
	case stepJurisdiction:
		return w.updateJurisdictionMenu(keyMsg)
	case stepPartyName, stepPartyAddress, stepConditionTrigger,
		stepConditionAction, stepConditionTimeLimit:
		return w.updateInput(keyMsg)
	case stepConditionMore:
		return w.updateConditionMore(keyMsg)
	case stepRequirements:
		return w.updateRequirementMenu(keyMsg)
	default:
		return w, nil
	}
}

func (w Wizard) updateTypeMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		item, ok := w.typeMenu.SelectedItem().(choiceItem)
		if !ok {
			return w, nil
		}
		w.contractType = item.id
		roles, _ := dsl.RequiredRoles(item.id)
		w.roles = roles
		w.roleIndex = 0
		w.step = stepJurisdiction
		return w, nil
	}
	var cmd tea.Cmd
	w.typeMenu, cmd = w.typeMenu.Update(msg)
	return w, cmd
}

func (w Wizard) updateJurisdictionMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		item, ok := w.jurisdictionMenu.SelectedItem().(choiceItem)
		if !ok {
			return w, nil
		}
		w.jurisdiction = item.id
		w.step = stepPartyName
		w.input.Placeholder = fmt.Sprintf("%s name", w.roles[w.roleIndex])
		w.input.SetValue("")
		w.input.Focus()
		return w, textinput.Blink
	}
	var cmd tea.Cmd
	w.jurisdictionMenu, cmd = w.jurisdictionMenu.Update(msg)
	return w, cmd
}

func (w Wizard) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		value := strings.TrimSpace(w.input.Value())
		return w.acceptInput(value)
	}
	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return w, cmd
}

func (w Wizard) acceptInput(value string) (tea.Model, tea.Cmd) {
	w.errMsg = ""
	switch w.step {
	case stepPartyName:
		if value == "" {
			w.errMsg = "name is required"
			return w, nil
		}
		w.partyName = value
		w.step = stepPartyAddress
		w.input.Placeholder = fmt.Sprintf("%s address (optional)", w.roles[w.roleIndex])
		w.input.SetValue("")
	case stepPartyAddress:
		w.parties = append(w.parties, dsl.Party{
			Name:                 w.partyName,
			Role:                 w.roles[w.roleIndex],
			Address:              value,
			VerificationRequired: true,
		})
		w.roleIndex++
		if w.roleIndex < len(w.roles) {
			w.step = stepPartyName
			w.input.Placeholder = fmt.Sprintf("%s name", w.roles[w.roleIndex])
			w.input.SetValue("")
			return w, nil
		}
		w.step = stepConditionTrigger
		w.input.Placeholder = "trigger event (e.g. delivery_confirmed)"
		w.input.SetValue("")
	case stepConditionTrigger:
		if value == "" {
			w.errMsg = "trigger is required"
			return w, nil
		}
		w.trigger = value
		w.step = stepConditionAction
		w.input.Placeholder = "action (e.g. release_funds)"
		w.input.SetValue("")
	case stepConditionAction:
		if value == "" {
			w.errMsg = "action is required"
			return w, nil
		}
		w.action = value
		w.step = stepConditionTimeLimit
		w.input.Placeholder = "time limit in days (optional)"
		w.input.SetValue("")
	case stepConditionTimeLimit:
		cond := dsl.Condition{Trigger: w.trigger, Action: w.action}
		if value != "" {
			limit, err := strconv.Atoi(value)
			if err != nil || limit < 0 {
				w.errMsg = "time limit must be a non-negative number of days"
				return w, nil
			}
			cond.TimeLimit = &limit
		}
		w.conditions = append(w.conditions, cond)
		w.step = stepConditionMore
	}
	return w, nil
}

func (w Wizard) updateConditionMore(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		w.step = stepConditionTrigger
		w.input.Placeholder = "trigger event"
		w.input.SetValue("")
		return w, nil
	case "n", "N", "enter":
		return w.enterRequirements()
	}
	return w, nil
}

func (w Wizard) enterRequirements() (tea.Model, tea.Cmd) {
	legalRules, err := rules.LoadLegalRules(w.jurisdiction)
	if err != nil {
		// No catalog to offer; requirements stay empty.
		w.step = stepDone
		w.finished = true
		return w, tea.Quit
	}
	w.catalog = legalRules.ForContractType(w.contractType).LegalRequirements
	if len(w.catalog) == 0 {
		w.step = stepDone
		w.finished = true
		return w, tea.Quit
	}
	items := make([]list.Item, 0, len(w.catalog))
	for _, req := range w.catalog {
		items = append(items, choiceItem{id: req, label: req})
	}
	w.requirementMenu = newMenu("Toggle legal requirements (space), confirm (enter)", items)
	w.step = stepRequirements
	return w, nil
}

func (w Wizard) updateRequirementMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		item, ok := w.requirementMenu.SelectedItem().(choiceItem)
		if !ok {
			return w, nil
		}
		w.toggleRequirement(item.id)
		return w, nil
	case "enter":
		w.step = stepDone
		w.finished = true
		return w, tea.Quit
	}
	var cmd tea.Cmd
	w.requirementMenu, cmd = w.requirementMenu.Update(msg)
	return w, cmd
}

func (w *Wizard) toggleRequirement(id string) {
	for i, req := range w.requirements {
		if req == id {
			w.requirements = append(w.requirements[:i], w.requirements[i+1:]...)
			return
		}
	}
	w.requirements = append(w.requirements, id)
}

// View renders the current step.
func (w Wizard) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("LexForge — interactive contract definition"))
	b.WriteString("\n\n")
	if w.contractType != "" {
		b.WriteString(pickedStyle.Render(fmt.Sprintf("type: %s", w.contractType)))
		b.WriteString("\n")
	}
	if w.jurisdiction != "" {
		b.WriteString(pickedStyle.Render(fmt.Sprintf("jurisdiction: %s", w.jurisdiction)))
		b.WriteString("\n")
	}
	for _, party := range w.parties {
		b.WriteString(pickedStyle.Render(fmt.Sprintf("%s: %s", party.Role, party.Name)))
		b.WriteString("\n")
	}
	for _, cond := range w.conditions {
		b.WriteString(pickedStyle.Render(fmt.Sprintf("condition: %s -> %s", cond.Trigger, cond.Action)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch w.step {
	case stepContractType:
		b.WriteString(w.typeMenu.View())
	case stepJurisdiction:
		b.WriteString(w.jurisdictionMenu.View())
	case stepPartyName, stepPartyAddress, stepConditionTrigger,
		stepConditionAction, stepConditionTimeLimit:
		b.WriteString(promptStyle.Render(w.input.Placeholder))
		b.WriteString("\n")
		b.WriteString(w.input.View())
	case stepConditionMore:
		b.WriteString(promptStyle.Render("Add another condition? (y/n)"))
	case stepRequirements:
		b.WriteString(w.requirementMenu.View())
	case stepDone:
		b.WriteString(pickedStyle.Render("Definition complete."))
	}
	if w.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(w.errMsg))
	}
	b.WriteString("\n\n")
	b.WriteString(promptStyle.Render("esc to abort"))
	b.WriteString("\n")
	return b.String()
}

// Definition returns the assembled contract definition once the wizard has
// finished.
func (w Wizard) Definition() (dsl.ContractDefinition, bool) {
	if !w.finished || w.aborted {
		return dsl.ContractDefinition{}, false
	}
	requirements := w.requirements
	if requirements == nil {
		requirements = []string{}
	}
	return dsl.ContractDefinition{
		ContractType:      w.contractType,
		Jurisdiction:      w.jurisdiction,
		Parties:           w.parties,
		Conditions:        w.conditions,
		LegalRequirements: requirements,
		Metadata:          map[string]any{},
	}, true
}

// Run launches the wizard and returns the definition the user assembled.
// The second return is false when the user aborted.
func Run() (dsl.ContractDefinition, bool, error) {
	program := tea.NewProgram(NewWizard())
	final, err := program.Run()
	if err != nil {
		return dsl.ContractDefinition{}, false, fmt.Errorf("tui: run wizard: %w", err)
	}
	wizard, ok := final.(Wizard)
	if !ok {
		return dsl.ContractDefinition{}, false, fmt.Errorf("tui: unexpected final model %T", final)
	}
	def, ok := wizard.Definition()
	return def, ok, nil
}
