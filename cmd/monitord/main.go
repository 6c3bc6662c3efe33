package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/lib/configutil"
	configsqlite "github.com/henrychenn0702-cmd/alaska-flight-monitor/lib/configutil/sqlite"
	"github.com/henrychenn0702-cmd/alaska-flight-monitor/lib/serviceutil"
	"github.com/henrychenn0702-cmd/alaska-flight-monitor/lib/telemetry"
	"github.com/henrychenn0702-cmd/alaska-flight-monitor/services/filters"
	filtersdb "github.com/henrychenn0702-cmd/alaska-flight-monitor/services/filters/db"
	"github.com/henrychenn0702-cmd/alaska-flight-monitor/services/mailer"
	"github.com/henrychenn0702-cmd/alaska-flight-monitor/services/monitor"
	monitordb "github.com/henrychenn0702-cmd/alaska-flight-monitor/services/monitor/db"
	"github.com/henrychenn0702-cmd/alaska-flight-monitor/services/recipients"
	recipientsdb "github.com/henrychenn0702-cmd/alaska-flight-monitor/services/recipients/db"
)

type ScheduleConfig struct {
	IntervalMinutes         int `json:"interval_minutes"`
	WatchdogIntervalMinutes int `json:"watchdog_interval_minutes"`
	StaleAfterMinutes       int `json:"stale_after_minutes"`
}

type Config struct {
	Database    configsqlite.Struct `json:"database"`
	CalendarUrl string              `json:"calendar_url"`
	Smtp        mailer.SmtpConfig   `json:"smtp"`
	Booking     monitor.BookingInfo `json:"booking"`
	Schedule    ScheduleConfig      `json:"schedule"`
	Port        int                 `json:"port"`
	Debug       bool                `json:"debug"`
}

func writeJson(w http.ResponseWriter, status int, body any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func main() {
	ctx := serviceutil.SignalContext()

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.CalendarUrl == "" {
		serviceutil.Fatal("failed to read config", fmt.Errorf("calendar_url is required"))
	}
	if config.Port == 0 {
		config.Port = 8111
	}

	telemetry.InitSlog(config.Debug)
	err = telemetry.SetupFromEnv(ctx, "monitord")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer telemetry.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	db, err := config.Database.OpenDB(
		monitordb.Schema,
		filtersdb.Schema,
		recipientsdb.Schema,
	)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	filterSvc := filters.NewService(db)
	recipientSvc := recipients.NewService(db)
	monitorSvc := monitor.NewService(db, monitor.Options{
		Fetcher:    monitor.NewCalendarFetcher(config.CalendarUrl),
		Filters:    monitor.NewFilterStore(filterSvc),
		Recipients: monitor.NewRecipientStore(recipientSvc),
		Mailer:     mailer.NewClient(config.Smtp),
		Booking:    config.Booking,
	})

	scheduler := monitor.NewScheduler(monitorSvc, monitor.SchedulerOptions{
		Interval:         time.Duration(config.Schedule.IntervalMinutes) * time.Minute,
		WatchdogInterval: time.Duration(config.Schedule.WatchdogIntervalMinutes) * time.Minute,
		StaleAfter:       time.Duration(config.Schedule.StaleAfterMinutes) * time.Minute,
	})
	scheduler.Start()
	defer scheduler.Stop()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJson(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}
		writeJson(w, http.StatusOK, scheduler.State())
	})
	mux.HandleFunc("/check", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJson(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}
		result := monitorSvc.RunCheck(r.Context())
		status := http.StatusOK
		if !result.Success {
			status = http.StatusBadGateway
		}
		writeJson(w, status, result)
	})

	serviceutil.StartHttpServer(config.Port, mux)
}
