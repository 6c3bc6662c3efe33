package main

import (
	"os"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/cmd/monitor-cli/cmd"
)

func main() {
	baseUrl, ok := os.LookupEnv("MONITORD_BASE_URL")
	if !ok {
		baseUrl = "http://localhost:8111"
	}
	cmd.BaseUrl = baseUrl

	cmd.Execute()
}
