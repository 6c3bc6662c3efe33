package monitor

import (
	"context"
	"fmt"
	"html"
	"strings"
)

// Mailer is the outbound notification transport. Delivery failure is
// a notification concern, not a monitoring one: the cycle records
// delivered=false and moves on.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, text, html string) (delivered bool, err error)
}

// BookingInfo is static context included in every notification so the
// reader can jump straight to the booking page.
type BookingInfo struct {
	URL   string `json:"url"`
	Route string `json:"route"`
	Cabin string `json:"cabin"`
	Month string `json:"month"`
}

// Message is the one aggregated notification a cycle produces when any
// filter matched, combining every filter's matches.
type Message struct {
	Subject string
	Text    string
	HTML    string
	Dates   []string
}

func groupHeader(g MatchGroup) string {
	if g.Filter.Description != "" {
		return g.Filter.Description
	}
	return fmt.Sprintf("%dk", g.Filter.TargetMiles/1000)
}

// BuildDealMessage renders the aggregated deal notification for one
// cycle. Content is grouped per filter, with the deduplicated date
// count in the subject.
func BuildDealMessage(result MatchResult, booking BookingInfo) Message {
	subject := fmt.Sprintf("🎉 發現 %d 個特價里程票!", len(result.DealDates))

	var text strings.Builder
	text.WriteString("阿拉斯加航空里程票監控系統通知\n\n您好!\n\n")
	fmt.Fprintf(&text, "系統發現了 %d 個符合篩選器的特價里程票:\n", len(result.DealDates))
	for _, group := range result.Groups {
		fmt.Fprintf(&text, "\n【%s】\n", groupHeader(group))
		for _, date := range group.Dates {
			fmt.Fprintf(&text, "  • %s\n", date)
		}
	}
	text.WriteString("\n")
	if booking.Route != "" {
		fmt.Fprintf(&text, "航線: %s\n", booking.Route)
	}
	if booking.Cabin != "" {
		fmt.Fprintf(&text, "艙等: %s\n", booking.Cabin)
	}
	if booking.Month != "" {
		fmt.Fprintf(&text, "月份: %s\n", booking.Month)
	}
	if booking.URL != "" {
		fmt.Fprintf(&text, "\n請盡快前往阿拉斯加航空官網預訂:\n%s\n", booking.URL)
	}
	text.WriteString("\n---\n此郵件由里程票監控系統自動發送\n")

	return Message{
		Subject: subject,
		Text:    text.String(),
		HTML:    buildDealHTML(result, booking),
		Dates:   result.DealDates,
	}
}

func buildDealHTML(result MatchResult, booking BookingInfo) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #333;">`)
	fmt.Fprintf(
		&b,
		`<div style="background: #1e40af; color: white; padding: 24px; border-radius: 8px 8px 0 0;"><h1 style="margin: 0; font-size: 22px;">🎉 發現 %d 個特價里程票!</h1></div>`,
		len(result.DealDates),
	)
	b.WriteString(`<div style="background: #f9fafb; padding: 24px; border-radius: 0 0 8px 8px;">`)

	for _, group := range result.Groups {
		fmt.Fprintf(
			&b,
			`<h3 style="margin-bottom: 4px;">%s</h3><div style="background: white; padding: 12px; border-radius: 6px;">`,
			html.EscapeString(groupHeader(group)),
		)
		for _, date := range group.Dates {
			fmt.Fprintf(&b, `<div style="padding: 4px 0;">📅 %s</div>`, date)
		}
		b.WriteString(`</div>`)
	}

	b.WriteString(`<p>`)
	if booking.Route != "" {
		fmt.Fprintf(&b, `<strong>航線:</strong> %s<br>`, html.EscapeString(booking.Route))
	}
	if booking.Cabin != "" {
		fmt.Fprintf(&b, `<strong>艙等:</strong> %s<br>`, html.EscapeString(booking.Cabin))
	}
	if booking.Month != "" {
		fmt.Fprintf(&b, `<strong>月份:</strong> %s`, html.EscapeString(booking.Month))
	}
	b.WriteString(`</p>`)

	if booking.URL != "" {
		fmt.Fprintf(
			&b,
			`<a href="%s" style="display: inline-block; background: #3b82f6; color: white; padding: 10px 20px; text-decoration: none; border-radius: 6px;">前往預訂</a>`,
			booking.URL,
		)
	}

	b.WriteString(`<p style="color: #6b7280; font-size: 12px; margin-top: 20px;">此郵件由里程票監控系統自動發送</p>`)
	b.WriteString(`</div></div>`)
	return b.String()
}
