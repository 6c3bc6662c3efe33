package cmd

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/services/monitor"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pricesCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(statsCmd)
}

func parseLimit(args []string, fallback int64) int64 {
	if len(args) == 0 {
		return fallback
	}
	limit, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || limit <= 0 {
		log.Fatalf("invalid limit %q", args[0])
	}
	return limit
}

func reportService() monitor.Service {
	return monitor.NewService(openDB(), monitor.Options{})
}

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Prints the latest recorded fare for every flight date.",
	Run: func(cmd *cobra.Command, args []string) {
		prices, err := reportService().LatestPrices(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Date", "Miles", "Fees", "Recorded"})
		for _, p := range prices {
			t.AppendRow(table.Row{
				p.Date,
				p.Miles,
				"$" + strconv.FormatInt(p.Fees, 10),
				p.RecordedAt.Format(time.ANSIC),
			})
		}
		t.Render()
	},
}

var logsCmd = &cobra.Command{
	Use:   "logs [limit]",
	Short: "Prints the most recent monitoring cycle outcomes.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logs, err := reportService().RecentLogs(cmd.Context(), parseLimit(args, 20))
		if err != nil {
			log.Fatal(err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Checked", "Status", "Dates", "Deals", "Error"})
		for _, l := range logs {
			t.AppendRow(table.Row{
				l.CheckedAt.Format(time.ANSIC),
				l.Status,
				l.DatesChecked,
				l.DealsFound,
				l.ErrorMessage,
			})
		}
		t.Render()
	},
}

var notificationsCmd = &cobra.Command{
	Use:   "notifications [limit]",
	Short: "Prints the most recent deal notifications.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		notifications, err := reportService().RecentNotifications(cmd.Context(), parseLimit(args, 20))
		if err != nil {
			log.Fatal(err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Sent at", "Delivered", "Title", "Dates"})
		for _, n := range notifications {
			t.AppendRow(table.Row{
				n.SentAt.Format(time.ANSIC),
				checkbox(n.Sent),
				n.Title,
				strings.Join(n.Dates, ", "),
			})
		}
		t.Render()
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints aggregate monitoring statistics.",
	Run: func(cmd *cobra.Command, args []string) {
		stats, err := reportService().MonitorStats(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}

		t := newTable()
		t.AppendRow(table.Row{"Total checks", stats.TotalChecks})
		t.AppendRow(table.Row{"Successful checks", stats.SuccessfulChecks})
		t.AppendRow(table.Row{"Deals found", stats.TotalDealsFound})
		if stats.LastCheck != nil {
			t.AppendRow(table.Row{"Last check", stats.LastCheck.CheckedAt.Format(time.ANSIC)})
			t.AppendRow(table.Row{"Last status", stats.LastCheck.Status})
		}
		t.Render()
	},
}
