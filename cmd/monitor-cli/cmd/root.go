package cmd

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/lib/configutil"
	configsqlite "github.com/henrychenn0702-cmd/alaska-flight-monitor/lib/configutil/sqlite"
	filtersdb "github.com/henrychenn0702-cmd/alaska-flight-monitor/services/filters/db"
	monitordb "github.com/henrychenn0702-cmd/alaska-flight-monitor/services/monitor/db"
	recipientsdb "github.com/henrychenn0702-cmd/alaska-flight-monitor/services/recipients/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// BaseUrl is where the monitoring daemon is listening. Commands that
// inspect or trigger the live scheduler go through it; everything else
// works on the shared database directly.
var BaseUrl string

var rootCmd = &cobra.Command{
	Use:   "monitor-cli",
	Short: "monitor-cli is a CLI interface for the award fare monitoring daemon.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type cliConfig struct {
	Database configsqlite.Struct `json:"database"`
}

func openDB() *sql.DB {
	config, err := configutil.ReadConfig[cliConfig]("config.json5")
	if err != nil {
		log.Fatal(err)
	}
	db, err := config.Database.OpenDB(
		monitordb.Schema,
		filtersdb.Schema,
		recipientsdb.Schema,
	)
	if err != nil {
		log.Fatal(err)
	}
	return db
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func checkbox(on bool) string {
	if on {
		return "✓"
	}
	return "✗"
}
