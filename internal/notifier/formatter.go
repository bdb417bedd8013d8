package notifier

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"DataRizzer/internal/model"
)

var verdictIcon = map[model.Verdict]string{
	model.VerdictBuy:  "🟢",
	model.VerdictHold: "⚪",
	model.VerdictSell: "🔴",
}

// FormatReport formats one ticker report into a Telegram message.
func FormatReport(r *model.Report) string {
	var b strings.Builder
	a := r.Analysis
	s := a.Summary

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %dY | %s\n\n",
		html.EscapeString(r.Query.Ticker), r.Query.LookbackYears, r.GeneratedAt.Format("2006-01-02")))
	if s.InsufficientData {
		b.WriteString(fmt.Sprintf("⚠️ only %d price point(s), indicators undefined\n\n", s.Points))
	}

	b.WriteString(fmt.Sprintf("Close: %s\n", model.FormatPrice(s.LatestClose)))
	b.WriteString(fmt.Sprintf("Support: %s | Resistance: %s\n", model.FormatPrice(s.Support), model.FormatPrice(s.Resistance)))
	b.WriteString(fmt.Sprintf("Range position: %s\n", model.FormatPercent(s.RangePosition)))
	b.WriteString(fmt.Sprintf("Short MAVG: %s | Long MAVG: %s\n", model.FormatPrice(s.LatestShortMA), model.FormatPrice(s.LatestLongMA)))
	b.WriteString(fmt.Sprintf("RSI: %s\n\n", model.FormatRSI(s.LatestRSI)))

	rec := a.Recommendation
	b.WriteString(fmt.Sprintf("%s <b>%s</b>\n%s", verdictIcon[rec.Verdict], rec.Verdict, html.EscapeString(rec.Reason)))
	return b.String()
}

// FormatDigest formats the watchlist digest: one line per report, then
// the tickers that could not be computed.
func FormatDigest(reports []*model.Report, failures map[string]error, at time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 <b>Watchlist digest</b> | %s\n\n", at.Format("2006-01-02")))

	for _, r := range reports {
		s := r.Analysis.Summary
		v := r.Analysis.Recommendation.Verdict
		b.WriteString(fmt.Sprintf("%s <b>%s</b> %s | RSI %s | %s\n",
			verdictIcon[v], html.EscapeString(r.Query.Ticker), model.FormatPrice(s.LatestClose), model.FormatRSI(s.LatestRSI), v))
	}
	if len(reports) == 0 {
		b.WriteString("no reports\n")
	}

	if len(failures) > 0 {
		tickers := make([]string, 0, len(failures))
		for t := range failures {
			tickers = append(tickers, t)
		}
		sort.Strings(tickers)
		b.WriteString("\n❌ <b>Failed:</b>\n")
		for _, t := range tickers {
			b.WriteString(fmt.Sprintf("  %s: %s\n", html.EscapeString(t), html.EscapeString(failures[t].Error())))
		}
	}
	return b.String()
}
