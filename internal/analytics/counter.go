// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/scms-go/internal/cache"
	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/store"
)

const (
	statsCacheKey = "visits:stats"
	statsCacheTTL = 30 * time.Second

	// OnlineWindow is how recent a session must be to count as online.
	OnlineWindow = 5 * time.Minute

	// RawVisitRetention is how many days of raw visits survive a rollup.
	RawVisitRetention = 2
)

// Counter computes visit counters. Results are cached for 30 seconds.
type Counter struct {
	queries *store.Queries
	cache   *cache.TypedCache[model.VisitStats]
	logger  *slog.Logger
	now     func() time.Time
}

// NewCounter creates a counter caching its results in c.
func NewCounter(db *sql.DB, c cache.Cache, logger *slog.Logger) *Counter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Counter{
		queries: store.New(db),
		cache:   cache.NewTypedCache[model.VisitStats](c, statsCacheTTL),
		logger:  logger,
		now:     time.Now,
	}
}

// Stats returns the visit counters. On a database error the zero value
// is returned and the error logged.
func (c *Counter) Stats(ctx context.Context) model.VisitStats {
	stats, err := c.cache.GetOrSet(ctx, statsCacheKey, func() (model.VisitStats, error) {
		return c.compute(ctx)
	})
	if err != nil {
		c.logger.Warn("failed to compute visit stats", "error", err)
		return model.VisitStats{}
	}
	return stats
}

func (c *Counter) compute(ctx context.Context) (model.VisitStats, error) {
	now := c.now().UTC()
	today := now.Format(store.VisitDayLayout)
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Format(store.VisitDayLayout)

	var (
		s   model.VisitStats
		err error
	)
	if s.Online, err = c.queries.CountActiveSessions(ctx, now.Add(-OnlineWindow).Format(store.VisitTimeLayout)); err != nil {
		return s, fmt.Errorf("counting online sessions: %w", err)
	}
	if s.Today, err = c.queries.CountVisitsFromDay(ctx, today); err != nil {
		return s, fmt.Errorf("counting today's visits: %w", err)
	}
	if s.ThisMonth, err = c.queries.CountVisitsFromDay(ctx, month); err != nil {
		return s, fmt.Errorf("counting this month's visits: %w", err)
	}
	if s.Total, err = c.queries.CountVisitsFromDay(ctx, ""); err != nil {
		return s, fmt.Errorf("counting all visits: %w", err)
	}
	return s, nil
}

// Rollup folds raw visits of finished days into daily totals and deletes
// raw visits older than RawVisitRetention days. It returns the number of
// rolled up days and purged rows.
func Rollup(ctx context.Context, db *sql.DB, now time.Time) (days, purged int64, err error) {
	now = now.UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	purgeBefore := todayStart.AddDate(0, 0, -RawVisitRetention)

	err = store.InTx(ctx, db, func(q *store.Queries) error {
		var txErr error
		if days, txErr = q.RollupVisits(ctx, todayStart.Format(store.VisitTimeLayout)); txErr != nil {
			return fmt.Errorf("rolling up visits: %w", txErr)
		}
		if purged, txErr = q.DeleteVisitsBefore(ctx, purgeBefore.Format(store.VisitTimeLayout)); txErr != nil {
			return fmt.Errorf("purging visits: %w", txErr)
		}
		return nil
	})
	return days, purged, err
}

// Daily returns the rolled-up days of the last n days, oldest first.
func (c *Counter) Daily(ctx context.Context, n int) ([]model.VisitDay, error) {
	from := c.now().UTC().AddDate(0, 0, -n).Format(store.VisitDayLayout)
	rows, err := c.queries.ListVisitDaily(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("listing daily visits: %w", err)
	}
	days := make([]model.VisitDay, 0, len(rows))
	for _, r := range rows {
		days = append(days, model.VisitDay{Day: r.Day, Visits: r.Visits, Visitors: r.Visitors})
	}
	return days, nil
}
