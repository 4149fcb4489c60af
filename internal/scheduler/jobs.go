package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/olegiv/scms-go/internal/analytics"
	"github.com/olegiv/scms-go/internal/geoip"
	"github.com/olegiv/scms-go/internal/service"
)

// Job names.
const (
	JobVisitRollup  = "visit-rollup"
	JobEventCleanup = "event-cleanup"
	JobGeoIPReload  = "geoip-reload"
)

// RegisterMaintenance adds the built-in maintenance jobs. geo may be nil.
func RegisterMaintenance(s *Scheduler, db *sql.DB, events *service.EventService, geo *geoip.Resolver) error {
	logger := s.logger

	if err := s.Add(JobVisitRollup, "Tổng hợp lượt truy cập theo ngày", "15 0 * * *", func(ctx context.Context) error {
		days, purged, err := analytics.Rollup(ctx, db, time.Now())
		if err != nil {
			return err
		}
		logger.Info("visits rolled up", "days", days, "purged", purged)
		return nil
	}); err != nil {
		return err
	}

	if err := s.Add(JobEventCleanup, "Xóa nhật ký sự kiện cũ", "30 3 * * 0", func(ctx context.Context) error {
		n, err := events.DeleteOldEvents(ctx, service.EventRetention)
		if err != nil {
			return fmt.Errorf("deleting old events: %w", err)
		}
		logger.Info("old events deleted", "count", n)
		return nil
	}); err != nil {
		return err
	}

	if geo.Enabled() {
		if err := s.Add(JobGeoIPReload, "Nạp lại cơ sở dữ liệu GeoIP", "0 4 * * *", func(context.Context) error {
			return geo.Reload()
		}); err != nil {
			return err
		}
	}
	return nil
}
