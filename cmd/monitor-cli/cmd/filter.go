package cmd

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/services/filters"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(filterCmd)
	filterCmd.AddCommand(filterListCmd)
	filterCmd.AddCommand(filterAddCmd)
	filterCmd.AddCommand(filterRmCmd)
	filterCmd.AddCommand(filterToggleCmd)
}

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Manages the fare price filters deals are matched against.",
}

var filterListCmd = &cobra.Command{
	Use:   "list",
	Short: "Prints every filter.",
	Run: func(cmd *cobra.Command, args []string) {
		svc := filters.NewService(openDB())
		all, err := svc.All(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"ID", "Target", "Active", "Description", "Updated"})
		for _, f := range all {
			t.AppendRow(table.Row{
				f.ID,
				fmt.Sprintf("%dk", f.TargetMiles/1000),
				checkbox(f.Active),
				f.Description,
				f.UpdatedAt.Format(time.ANSIC),
			})
		}
		t.Render()
	},
}

var filterAddCmd = &cobra.Command{
	Use:   "add <miles> [description...]",
	Short: "Adds a filter watching for fares at exactly the given miles price.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		miles, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			log.Fatalf("invalid miles %q: %s", args[0], err)
		}

		svc := filters.NewService(openDB())
		created, err := svc.Create(cmd.Context(), miles, strings.Join(args[1:], " "))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("created filter %d watching %dk\n", created.ID, created.TargetMiles/1000)
	},
}

var filterRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Deletes a filter.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			log.Fatalf("invalid id %q: %s", args[0], err)
		}

		svc := filters.NewService(openDB())
		if err := svc.Delete(cmd.Context(), id); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("deleted filter %d\n", id)
	},
}

var filterToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flips a filter between active and inactive.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			log.Fatalf("invalid id %q: %s", args[0], err)
		}

		svc := filters.NewService(openDB())
		active, err := svc.Toggle(cmd.Context(), id)
		if err != nil {
			log.Fatal(err)
		}
		if active {
			fmt.Printf("filter %d is now active\n", id)
		} else {
			fmt.Printf("filter %d is now inactive\n", id)
		}
	},
}
