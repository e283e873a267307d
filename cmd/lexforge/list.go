package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/lexforge/lexforge/internal/dsl"
	"github.com/lexforge/lexforge/internal/rules"
)

var (
	listHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	listItemStyle   = lipgloss.NewStyle().PaddingLeft(2)
	listNoteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var listTypesCmd = &cobra.Command{
	Use:   "list-types",
	Short: "List supported contract types",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(listHeaderStyle.Render("Supported contract types:"))
		for _, contractType := range dsl.SupportedTypes() {
			roles, _ := dsl.RequiredRoles(contractType)
			fmt.Println(listItemStyle.Render(fmt.Sprintf("%s %s", contractType,
				listNoteStyle.Render(fmt.Sprintf("(requires '%s' and '%s')", roles[0], roles[1])))))
		}
		return nil
	},
}

var listJurisdictionsCmd = &cobra.Command{
	Use:   "list-jurisdictions",
	Short: "List supported jurisdictions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := rules.Catalog()
		if err != nil {
			return err
		}
		fmt.Println(listHeaderStyle.Render("Supported jurisdictions:"))
		for _, id := range ids {
			legalRules, err := rules.LoadLegalRules(id)
			if err != nil {
				return err
			}
			fmt.Println(listItemStyle.Render(fmt.Sprintf("%s %s", id,
				listNoteStyle.Render(fmt.Sprintf("(%s)", legalRules.Name)))))
		}
		return nil
	},
}
