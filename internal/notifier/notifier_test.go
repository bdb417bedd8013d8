package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"DataRizzer/internal/logger"
	"DataRizzer/internal/model"
)

func newTestNotifier(srv *httptest.Server) *TelegramNotifier {
	n := NewTelegramNotifier("TOKEN", "42", srv.URL, "", logger.Nop())
	n.RetryBase = time.Millisecond
	n.PollTimeout = 0
	n.PollBackoff = time.Millisecond
	return n
}

func TestSend(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/botTOKEN/sendMessage" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	if err := newTestNotifier(srv).Send(context.Background(), "<b>hi</b>"); err != nil {
		t.Fatal(err)
	}
	if got["chat_id"] != "42" || got["text"] != "<b>hi</b>" || got["parse_mode"] != "HTML" {
		t.Errorf("unexpected payload %v", got)
	}
}

func TestSend_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	err := newTestNotifier(srv).Send(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("expected API error, got %v", err)
	}
}

func TestSendWithRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	if err := newTestNotifier(srv).SendWithRetry(context.Background(), "x", 3); err != nil {
		t.Fatal(err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestSendWithRetry_Exhausted(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := newTestNotifier(srv).SendWithRetry(context.Background(), "x", 2)
	if err == nil || !strings.Contains(err.Error(), "all 3 attempts failed") {
		t.Errorf("unexpected error %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestSendWithRetry_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := newTestNotifier(srv)
	n.RetryBase = time.Hour
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := n.SendWithRetry(ctx, "x", 5); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestStartPolling(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu      sync.Mutex
		replies []string
		offsets []string
		polls   int
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/botTOKEN/getUpdates":
			mu.Lock()
			polls++
			first := polls == 1
			offsets = append(offsets, r.URL.Query().Get("offset"))
			mu.Unlock()
			if first {
				w.Write([]byte(`{"ok":true,"result":[
					{"update_id":5,"message":{"text":" /watchlist ","chat":{"id":42}}},
					{"update_id":6,"message":{"text":"/report SPY","chat":{"id":99}}}
				]}`))
				return
			}
			time.Sleep(5 * time.Millisecond)
			w.Write([]byte(`{"ok":true,"result":[]}`))
		case "/botTOKEN/sendMessage":
			var p map[string]interface{}
			_ = json.NewDecoder(r.Body).Decode(&p)
			mu.Lock()
			replies = append(replies, p["text"].(string))
			mu.Unlock()
			w.Write([]byte(`{"ok":true}`))
			cancel()
		}
	}))
	defer srv.Close()

	var commands []string
	done := make(chan struct{})
	go func() {
		newTestNotifier(srv).StartPolling(ctx, func(_ context.Context, cmd string) string {
			commands = append(commands, cmd)
			return "reply to " + cmd
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop")
	}

	if len(commands) != 1 || commands[0] != "/watchlist" {
		t.Errorf("expected only the trusted chat command, got %v", commands)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(replies) != 1 || replies[0] != "reply to /watchlist" {
		t.Errorf("unexpected replies %v", replies)
	}
	if offsets[0] != "0" || (len(offsets) > 1 && offsets[1] != "7") {
		t.Errorf("unexpected offsets %v", offsets)
	}
}

func sampleReport(ticker string, verdict model.Verdict, rsi float64) *model.Report {
	return &model.Report{
		Query:       model.Query{Ticker: ticker, LookbackYears: 1},
		GeneratedAt: time.Date(2024, 6, 3, 22, 30, 0, 0, time.UTC),
		Analysis: &model.Analysis{
			Summary: model.Summary{
				Support: 10, Resistance: 100, RangePosition: 1, LatestClose: 100,
				LatestShortMA: 75.5, LatestLongMA: 55, LatestRSI: rsi, Points: 91,
			},
			Recommendation: model.Recommendation{Verdict: verdict, Reason: "The RSI is above 70, indicating the stock may be overbought."},
		},
	}
}

func TestFormatReport(t *testing.T) {
	msg := FormatReport(sampleReport("SPY", model.VerdictSell, 100))
	for _, want := range []string{
		"<b>SPY</b> | 1Y | 2024-06-03",
		"Close: $100.00",
		"Support: $10.00 | Resistance: $100.00",
		"Range position: 100%",
		"Short MAVG: $75.50 | Long MAVG: $55.00",
		"RSI: 100.00",
		"<b>Sell</b>",
		"indicating the stock may be overbought.",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in:\n%s", want, msg)
		}
	}
}

func TestFormatReport_Undefined(t *testing.T) {
	r := sampleReport("X", model.VerdictHold, math.NaN())
	r.Analysis.Summary.InsufficientData = true
	r.Analysis.Summary.Points = 1
	msg := FormatReport(r)
	if !strings.Contains(msg, "RSI: n/a") || !strings.Contains(msg, "only 1 price point(s)") {
		t.Errorf("unexpected message:\n%s", msg)
	}
}

func TestFormatDigest(t *testing.T) {
	at := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	msg := FormatDigest(
		[]*model.Report{sampleReport("SPY", model.VerdictSell, 100), sampleReport("QQQ", model.VerdictHold, 55)},
		map[string]error{"ZZZ": errors.New("boom"), "AAA": errors.New("a<b")},
		at,
	)
	if !strings.Contains(msg, "Watchlist digest</b> | 2024-06-03") {
		t.Error("missing header")
	}
	if !strings.Contains(msg, "<b>SPY</b> $100.00 | RSI 100.00 | Sell") || !strings.Contains(msg, "<b>QQQ</b> $100.00 | RSI 55.00 | Hold") {
		t.Errorf("missing report lines:\n%s", msg)
	}
	if !strings.Contains(msg, "AAA: a&lt;b") || strings.Index(msg, "AAA:") > strings.Index(msg, "ZZZ: boom") {
		t.Errorf("failures must be sorted and escaped:\n%s", msg)
	}
}
