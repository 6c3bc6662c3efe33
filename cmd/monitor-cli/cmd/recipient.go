package cmd

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/services/recipients"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(recipientCmd)
	recipientCmd.AddCommand(recipientListCmd)
	recipientCmd.AddCommand(recipientAddCmd)
	recipientCmd.AddCommand(recipientRmCmd)
	recipientCmd.AddCommand(recipientToggleCmd)
}

var recipientCmd = &cobra.Command{
	Use:   "recipient",
	Short: "Manages who receives deal notification emails.",
}

var recipientListCmd = &cobra.Command{
	Use:   "list",
	Short: "Prints every recipient.",
	Run: func(cmd *cobra.Command, args []string) {
		svc := recipients.NewService(openDB())
		all, err := svc.All(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"ID", "Email", "Name", "Active", "Added"})
		for _, r := range all {
			t.AppendRow(table.Row{
				r.ID,
				r.Email,
				r.Name,
				checkbox(r.Active),
				r.CreatedAt.Format(time.ANSIC),
			})
		}
		t.Render()
	},
}

var recipientAddCmd = &cobra.Command{
	Use:   "add <email> [name...]",
	Short: "Registers a notification recipient.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := recipients.NewService(openDB())
		added, err := svc.Add(cmd.Context(), args[0], strings.Join(args[1:], " "))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("added recipient %d (%s)\n", added.ID, added.Email)
	},
}

var recipientRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Removes a recipient.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			log.Fatalf("invalid id %q: %s", args[0], err)
		}

		svc := recipients.NewService(openDB())
		if err := svc.Remove(cmd.Context(), id); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("removed recipient %d\n", id)
	},
}

var recipientToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flips a recipient between active and inactive.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			log.Fatalf("invalid id %q: %s", args[0], err)
		}

		svc := recipients.NewService(openDB())
		active, err := svc.Toggle(cmd.Context(), id)
		if err != nil {
			log.Fatal(err)
		}
		if active {
			fmt.Printf("recipient %d is now active\n", id)
		} else {
			fmt.Printf("recipient %d is now inactive\n", id)
		}
	},
}
