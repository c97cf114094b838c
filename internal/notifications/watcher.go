package notifications

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"go-recruitart-client/internal/api"
	"go-recruitart-client/internal/dedup"
	"go-recruitart-client/internal/filter"
	"go-recruitart-client/internal/models"
)

// Reporter receives what the watcher found. Satisfied by reporter.Telegram.
type Reporter interface {
	SendJob(job models.Job, score int) error
	SendNotification(n models.Notification) error
	SendError(err error) error
}

// Watcher polls the platform for unread notifications and fresh matching
// jobs and forwards the ones not seen before. Poll failures do not kill the
// loop; the next poll is delayed with exponential backoff until a poll
// succeeds again.
type Watcher struct {
	client   *api.Client
	matcher  *filter.Matcher
	seen     *dedup.SeenCache
	reporter Reporter
	interval time.Duration
}

func NewWatcher(client *api.Client, matcher *filter.Matcher, seen *dedup.SeenCache, rep Reporter, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Watcher{
		client:   client,
		matcher:  matcher,
		seen:     seen,
		reporter: rep,
		interval: interval,
	}
}

// Run polls until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = w.interval
	bo.MaxInterval = 30 * time.Minute
	bo.MaxElapsedTime = 0 // keep retrying forever

	for {
		wait := w.interval
		if err := w.Poll(ctx); err != nil {
			wait = bo.NextBackOff()
			log.Warn().Err(err).Dur("next_poll", wait).Msg("⚠️ Poll failed, backing off")
			if w.reporter != nil {
				_ = w.reporter.SendError(err)
			}
		} else {
			bo.Reset()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// Poll runs one round: unread notifications first, then the job board.
func (w *Watcher) Poll(ctx context.Context) error {
	if err := w.pollNotifications(ctx); err != nil {
		return fmt.Errorf("notifications poll: %w", err)
	}
	if err := w.pollJobs(ctx); err != nil {
		return fmt.Errorf("jobs poll: %w", err)
	}
	return nil
}

func (w *Watcher) pollNotifications(ctx context.Context) error {
	unread, err := w.client.UnreadNotifications(ctx)
	if err != nil {
		return err
	}

	var delivered []int
	for _, n := range unread {
		key := "notification:" + strconv.Itoa(n.ID)
		if w.seen.IsSeen(key) {
			continue
		}
		if w.reporter != nil {
			if err := w.reporter.SendNotification(n); err != nil {
				log.Warn().Err(err).Int("id", n.ID).Msg("⚠️ Failed to deliver notification")
				continue
			}
		}
		w.seen.Add(key)
		delivered = append(delivered, n.ID)
	}

	// delivered ones are read from the platform's point of view
	if len(delivered) > 0 {
		if err := w.client.MarkNotificationsRead(ctx, delivered); err != nil {
			log.Warn().Err(err).Msg("⚠️ Failed to mark notifications read")
		}
		log.Info().Int("count", len(delivered)).Msg("🔔 Delivered notifications")
	}
	return nil
}

func (w *Watcher) pollJobs(ctx context.Context) error {
	page, err := w.client.ListJobs(ctx, api.JobFilters{})
	if err != nil {
		return err
	}

	fresh := 0
	for _, job := range page.Results {
		if !w.matcher.ShouldInclude(job) {
			continue
		}
		key := "job:" + strconv.Itoa(job.ID)
		if w.seen.IsSeen(key) {
			continue
		}
		score := w.matcher.Score(job)
		if w.reporter != nil {
			if err := w.reporter.SendJob(job, score); err != nil {
				log.Warn().Err(err).Int("id", job.ID).Msg("⚠️ Failed to report job")
				continue
			}
		}
		w.seen.Add(key)
		fresh++
	}
	if fresh > 0 {
		log.Info().Int("count", fresh).Msg("🔥 Reported fresh matching jobs")
	}
	return nil
}
