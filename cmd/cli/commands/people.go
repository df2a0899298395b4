package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shift-planner/pkg/core/services"
)

// AddPersonCmd creates the addPerson command
func AddPersonCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "addPerson <name> <role> <M|T|B|JF>",
		Short: "Add a person to the roster",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			person, err := services.AddPerson(app.Ctx, app.Database, app.Logger, services.NewPerson{
				Name:  args[0],
				Role:  args[1],
				Shift: args[2],
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n%s Added %s (%s)\n\n", checkMark, person.Name, person.ID)
			return nil
		},
	}
}

// RemovePersonCmd creates the removePerson command
func RemovePersonCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "removePerson <person_id>",
		Short: "Remove a person and all of their overrides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removal, err := services.RemovePerson(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("\n%s Removed %s (%d overrides dropped)\n\n", checkMark, removal.Person.Name, removal.Overrides)
			return nil
		},
	}
}

// ListPeopleCmd creates the listPeople command
func ListPeopleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listPeople",
		Short: "List the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := services.ListPeople(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d people:\n\n", len(people))
			fmt.Println(renderPeople(people))
			return nil
		},
	}
}

// ImportRosterCmd creates the importRoster command
func ImportRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "importRoster <roster.yaml>",
		Short: "Add everyone in a YAML roster file who isn't on the roster yet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.ImportRoster(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n%s Imported %d people\n", checkMark, len(result.Added))
			for _, p := range result.Added {
				fmt.Printf("  + %s (%s, %s)\n", p.Name, p.Role, p.DefaultShift)
			}
			if len(result.Skipped) > 0 {
				fmt.Printf("Skipped %d already on the roster:\n", len(result.Skipped))
				for _, name := range result.Skipped {
					fmt.Printf("  - %s\n", name)
				}
			}
			fmt.Println()
			return nil
		},
	}
}
