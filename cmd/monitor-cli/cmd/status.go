package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/services/monitor"

	"github.com/go-resty/resty/v2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(checkCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Prints the scheduler state reported by the daemon.",
	Run: func(cmd *cobra.Command, args []string) {
		var state monitor.SchedulerState
		res, err := resty.New().R().
			SetContext(cmd.Context()).
			SetResult(&state).
			Get(BaseUrl + "/healthz")
		if err != nil {
			log.Fatal(err)
		}
		if res.IsError() {
			log.Fatalf("daemon returned %s", res.Status())
		}

		t := newTable()
		t.AppendRow(table.Row{"Running", checkbox(state.Running)})
		t.AppendRow(table.Row{"Last execution", state.LastExecution.Format(time.ANSIC)})
		t.AppendRow(table.Row{"Executions", state.ExecutionCount})
		t.AppendRow(table.Row{"Watchdog restarts", state.RestartCount})
		t.Render()
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Triggers a monitoring cycle on the daemon and prints the outcome.",
	Run: func(cmd *cobra.Command, args []string) {
		var result monitor.CheckResult
		res, err := resty.New().R().
			SetContext(cmd.Context()).
			SetResult(&result).
			SetError(&result).
			Post(BaseUrl + "/check")
		if err != nil {
			log.Fatal(err)
		}
		if !result.Success {
			log.Fatalf("check failed (%s): %s", res.Status(), result.Error)
		}

		fmt.Printf("checked %d dates, found %d deals\n", result.DatesChecked, result.DealsFound)
		for _, date := range result.DealDates {
			fmt.Printf("  • %s\n", date)
		}
	},
}
