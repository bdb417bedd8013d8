package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"DataRizzer/internal/logger"
	"DataRizzer/internal/model"
	"DataRizzer/internal/notifier"

	"github.com/robfig/cron/v3"
)

const sendRetries = 3

// Computer produces a report for a query. dashboard.Service implements it.
type Computer interface {
	Compute(ctx context.Context, q model.Query) (*model.Report, error)
}

// Sender delivers a formatted message. notifier.TelegramNotifier implements it.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the watchlist digest on a cron schedule and answers chat
// commands.
type Scheduler struct {
	Cron          *cron.Cron
	Service       Computer
	Notifier      Sender
	Watchlist     []string
	LookbackYears int
	Ctx           context.Context

	log *logger.Logger
	now func() time.Time
}

// NewScheduler creates a new Scheduler. Cron specs carry a seconds field.
func NewScheduler(ctx context.Context, svc Computer, sender Sender, watchlist []string, lookbackYears int, l *logger.Logger) *Scheduler {
	l = l.With(logger.String("component", "scheduler"))
	cl := cronLogger{l}
	return &Scheduler{
		Cron:          cron.New(cron.WithSeconds(), cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		Service:       svc,
		Notifier:      sender,
		Watchlist:     watchlist,
		LookbackYears: lookbackYears,
		Ctx:           ctx,
		log:           l,
		now:           time.Now,
	}
}

// RegisterDigest schedules the watchlist digest.
func (s *Scheduler) RegisterDigest(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.RunDigestNow); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	s.log.Info("digest registered", logger.String("cron", spec), logger.Strings("watchlist", s.Watchlist))
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// RunDigestNow builds the digest and pushes it to the chat.
func (s *Scheduler) RunDigestNow() {
	s.log.Info("running watchlist digest")
	s.trySend(s.Digest(s.Ctx))
}

// Digest computes a report per watchlist ticker, sequentially, and
// formats them into one message. Failed tickers are listed, not fatal.
func (s *Scheduler) Digest(ctx context.Context) string {
	var reports []*model.Report
	failures := make(map[string]error)
	for _, ticker := range s.Watchlist {
		if ctx.Err() != nil {
			failures[ticker] = ctx.Err()
			continue
		}
		r, err := s.Service.Compute(ctx, s.query(ticker, s.LookbackYears))
		if err != nil {
			s.log.Error("digest report failed", logger.String("ticker", ticker), logger.Error(err))
			failures[ticker] = err
			continue
		}
		reports = append(reports, r)
	}
	s.log.Info("digest computed", logger.Int("reports", len(reports)), logger.Int("failures", len(failures)))
	return notifier.FormatDigest(reports, failures, s.now())
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	// "/report@MyBot" in group chats
	name := strings.ToLower(strings.SplitN(fields[0], "@", 2)[0])

	switch name {
	case "/report":
		if len(fields) < 2 {
			return "usage: /report TICKER [years]"
		}
		years := s.LookbackYears
		if len(fields) > 2 {
			y, err := strconv.Atoi(fields[2])
			if err != nil {
				return fmt.Sprintf("❌ invalid years %q", fields[2])
			}
			years = y
		}
		r, err := s.Service.Compute(ctx, s.query(fields[1], years))
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return notifier.FormatReport(r)
	case "/watchlist", "/digest":
		return s.Digest(ctx)
	default:
		return helpText
	}
}

const helpText = "Available commands:\n" +
	"• /report TICKER [years] - indicators and recommendation\n" +
	"• /watchlist - digest of the watchlist"

func (s *Scheduler) query(ticker string, years int) model.Query {
	return model.Query{
		Ticker:        ticker,
		Overlays:      append([]model.Overlay(nil), model.DefaultOverlays...),
		LookbackYears: years,
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		s.log.Error("send notification", logger.Error(err))
	}
}

// cronLogger adapts Logger to cron.Logger.
type cronLogger struct {
	l *logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug("cron: "+msg, kvFields(keysAndValues)...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error("cron: "+msg, append(kvFields(keysAndValues), logger.Error(err))...)
}

func kvFields(kv []interface{}) []logger.Field {
	fields := make([]logger.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields = append(fields, logger.String(fmt.Sprint(kv[i]), fmt.Sprint(kv[i+1])))
	}
	return fields
}
