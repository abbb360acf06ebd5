package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/finbuddy/finbuddy/internal/common"
)

// Scheduler runs periodic background jobs.
type Scheduler struct {
	app    *App
	cron   *cron.Cron
	logger *common.Logger
}

// NewScheduler creates the background job scheduler.
func NewScheduler(a *App, logger *common.Logger) *Scheduler {
	return &Scheduler{
		app:    a,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers and starts the background jobs. The news refresh job
// is skipped when no news client is configured.
func (s *Scheduler) Start() error {
	if s.app.News != nil {
		spec := s.app.Config.Scheduler.NewsRefreshSpec
		if _, err := s.cron.AddFunc(spec, s.refreshNews); err != nil {
			return err
		}
		s.logger.Info().Str("spec", spec).Msg("News refresh job scheduled")

		// Prime the archive so the first requests have data
		go s.refreshNews()
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(10 * time.Second):
		s.logger.Warn().Msg("Timed out waiting for background jobs to finish")
	}
}

// refreshNews pulls fresh articles into the news archive.
func (s *Scheduler) refreshNews() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	articles, err := s.app.News.GetRecentNews(ctx, s.app.Config.Scheduler.NewsFetchLimit)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Scheduled news refresh failed")
		return
	}

	added, err := s.app.Store.SaveArticles(articles)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to store scheduled news refresh")
		return
	}

	s.logger.Info().Int("fetched", len(articles)).Int("added", added).Msg("News archive refreshed")
}
