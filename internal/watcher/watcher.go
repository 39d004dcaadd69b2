// Fetch the listing, extract jobs, drop the ones already seen,
// notify the rest one by one and persist them new-first.

package watcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go-upwork-watcher/internal/dedup"
	"go-upwork-watcher/internal/scraper"
	"go-upwork-watcher/internal/telegram"

	"golang.org/x/time/rate"
)

type Notifier interface {
	Notify(ctx context.Context, job scraper.Job) telegram.DeliveryResult
}

type Alerter interface {
	SendError(err error) error
}

type Store interface {
	Load() []scraper.Job
	Save(jobs []scraper.Job) error
	Prepend(newJobs, prior []scraper.Job) error
}

// Filter narrows extracted jobs before dedup
type Filter interface {
	Filter(jobs []scraper.Job) []scraper.Job
}

type Options struct {
	PollInterval       time.Duration
	MessageDelay       time.Duration
	EmptyLinks         dedup.EmptyLinkPolicy
	AlertAfterFailures int
}

type CycleResult struct {
	Extracted int
	New       int
	Sent      int
	Failed    int
}

type Watcher struct {
	fetcher   scraper.Fetcher
	extractor scraper.Extractor
	filter    Filter
	store     Store
	notifier  Notifier
	alerter   Alerter
	limiter   *rate.Limiter
	opts      Options

	failures int
	sleep    func(ctx context.Context, d time.Duration) error
}

func New(fetcher scraper.Fetcher, extractor scraper.Extractor, store Store, notifier Notifier, opts Options) *Watcher {
	limit := rate.Inf
	if opts.MessageDelay > 0 {
		limit = rate.Every(opts.MessageDelay)
	}
	return &Watcher{
		fetcher:   fetcher,
		extractor: extractor,
		store:     store,
		notifier:  notifier,
		limiter:   rate.NewLimiter(limit, 1),
		opts:      opts,
		sleep:     sleepCtx,
	}
}

// WithFilter applies f to every extracted snapshot
func (w *Watcher) WithFilter(f Filter) *Watcher {
	w.filter = f
	return w
}

// WithAlerter reports sustained failures after Options.AlertAfterFailures failed cycles in a row
func (w *Watcher) WithAlerter(a Alerter) *Watcher {
	w.alerter = a
	return w
}

// RunCycle performs one incremental cycle. Nothing is persisted unless new jobs were found.
func (w *Watcher) RunCycle(ctx context.Context) (CycleResult, error) {
	var res CycleResult

	prior := w.store.Load()
	seen := dedup.SeenLinks(prior)

	jobs, err := w.snapshot(ctx)
	if err != nil {
		return res, err
	}
	res.Extracted = len(jobs)

	fresh := dedup.NewJobs(jobs, seen, w.opts.EmptyLinks)
	res.New = len(fresh)
	log.Printf("🆕 Found %d new jobs (%d extracted, %d already seen)", len(fresh), len(jobs), len(seen))
	if len(fresh) == 0 {
		return res, nil
	}

	attempted, notifyErr := w.notifyAll(ctx, fresh, &res)

	//persist whatever was attempted, even if the cycle was interrupted mid-way
	if attempted > 0 {
		if err := w.store.Prepend(fresh[:attempted], prior); err != nil {
			return res, fmt.Errorf("persist seen jobs: %w", err)
		}
	}
	return res, notifyErr
}

// RunFull scrapes once, overwrites the store with the whole snapshot and notifies every job
func (w *Watcher) RunFull(ctx context.Context) (CycleResult, error) {
	var res CycleResult

	jobs, err := w.snapshot(ctx)
	if err != nil {
		return res, err
	}
	res.Extracted = len(jobs)
	res.New = len(jobs)

	if err := w.store.Save(jobs); err != nil {
		return res, fmt.Errorf("save snapshot: %w", err)
	}
	log.Printf("✅ Parsed and saved %d jobs.", len(jobs))

	_, err = w.notifyAll(ctx, jobs, &res)
	return res, err
}

// Run repeats RunCycle every PollInterval until ctx is cancelled.
// A failing or panicking cycle is logged and the loop carries on.
func (w *Watcher) Run(ctx context.Context) error {
	log.Printf("🚀 Watching every %s", w.opts.PollInterval)
	for {
		res, err := w.safeCycle(ctx)
		if ctx.Err() != nil {
			log.Println("🛑 Stopping watcher.")
			return ctx.Err()
		}
		w.recordOutcome(res, err)

		log.Printf("⏳ Waiting %s...", w.opts.PollInterval)
		if err := w.sleep(ctx, w.opts.PollInterval); err != nil {
			log.Println("🛑 Stopping watcher.")
			return err
		}
	}
}

func (w *Watcher) snapshot(ctx context.Context) ([]scraper.Job, error) {
	html, err := w.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}

	jobs := w.extractor.Extract(html)
	if w.filter != nil {
		jobs = w.filter.Filter(jobs)
	}
	return jobs, nil
}

// notifyAll sends jobs in order, paced by the limiter. The gap is counted from the end of the previous send.
// Delivery failures are logged and skipped over. It returns how many jobs were attempted before ctx ended.
func (w *Watcher) notifyAll(ctx context.Context, jobs []scraper.Job, res *CycleResult) (int, error) {
	for i, job := range jobs {
		if err := w.limiter.Wait(ctx); err != nil {
			return i, err
		}

		result := w.notifier.Notify(ctx, job)
		w.restartPacing()
		if errors.Is(result.Err, context.Canceled) || errors.Is(result.Err, context.DeadlineExceeded) {
			return i, result.Err
		}

		if result.OK() {
			res.Sent++
			log.Printf("📤 Sent: %d - %s", result.StatusCode, truncate(job.Title, 50))
		} else {
			res.Failed++
			log.Printf("⚠️ Failed to send job %q: status %d: %v", truncate(job.Title, 50), result.StatusCode, result.Err)
		}
	}
	return len(jobs), nil
}

// restartPacing drains a fresh limiter so the next Wait blocks a full MessageDelay from now
func (w *Watcher) restartPacing() {
	if w.opts.MessageDelay <= 0 {
		return
	}
	w.limiter = rate.NewLimiter(rate.Every(w.opts.MessageDelay), 1)
	w.limiter.Allow()
}

func (w *Watcher) safeCycle(ctx context.Context) (res CycleResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cycle panicked: %v", r)
		}
	}()
	return w.RunCycle(ctx)
}

func (w *Watcher) recordOutcome(res CycleResult, err error) {
	if err == nil {
		w.failures = 0
		log.Printf("🏁 Cycle finished: %d new, %d sent, %d failed", res.New, res.Sent, res.Failed)
		return
	}

	w.failures++
	log.Printf("❌ Error: %v", err)

	if w.alerter != nil && w.opts.AlertAfterFailures > 0 && w.failures == w.opts.AlertAfterFailures {
		alert := fmt.Errorf("%d cycles failed in a row, last error: %w", w.failures, err)
		if sendErr := w.alerter.SendError(alert); sendErr != nil {
			log.Printf("⚠️ Failed to send alert to Telegram: %v", sendErr)
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
