package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

// Fetcher retrieves the raw award calendar markup. Any failure here
// fails the whole monitoring cycle.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

type CalendarFetcher struct {
	http *resty.Client
	url  string
}

// NewCalendarFetcher builds an http client shaped like a desktop
// browser. The fetch timeout must stay well under the scheduler's
// stale threshold or the watchdog could fire mid-cycle.
func NewCalendarFetcher(url string) CalendarFetcher {
	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	client.SetHeader("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	client.SetHeader("accept-language", "en-US,en;q=0.5")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "monitor/http")

	return CalendarFetcher{
		http: client,
		url:  url,
	}
}

func (f CalendarFetcher) Fetch(ctx context.Context) (string, error) {
	res, err := f.http.R().
		SetContext(ctx).
		Get(f.url)
	if err != nil {
		return "", err
	}
	if res.IsError() {
		return "", fmt.Errorf("calendar fetch returned %s", res.Status())
	}
	return res.String(), nil
}
