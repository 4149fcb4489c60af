// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/store"
	"github.com/olegiv/scms-go/internal/util"
)

// EventRetention is how long audit events are kept.
const EventRetention = 90 * 24 * time.Hour

// EventService records and lists audit events.
type EventService struct {
	queries *store.Queries
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{
		queries: store.New(db),
	}
}

// EventEntry is an event joined with the name of the acting user.
type EventEntry struct {
	model.Event
	UserName string
}

// LogEvent creates a new event log entry.
func (s *EventService) LogEvent(ctx context.Context, level, category, message string, userID int64, metadata map[string]any) error {
	metadataJSON := "{}"
	if len(metadata) > 0 {
		if b, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(b)
		}
	}

	_, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     level,
		Category:  category,
		Message:   message,
		UserID:    util.NullInt64FromID(userID),
		Metadata:  metadataJSON,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		slog.Error("failed to log event", "error", err, "message", message)
		return err
	}
	return nil
}

// LogAuthEvent logs an authentication-related event.
func (s *EventService) LogAuthEvent(ctx context.Context, level, message string, userID int64, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryAuth, message, userID, metadata)
}

// LogContentEvent logs a change to site content.
func (s *EventService) LogContentEvent(ctx context.Context, message string, userID int64, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelInfo, model.EventCategoryContent, message, userID, metadata)
}

// LogUserEvent logs a change to a console account.
func (s *EventService) LogUserEvent(ctx context.Context, message string, userID int64, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelInfo, model.EventCategoryUser, message, userID, metadata)
}

// LogConfigEvent logs a change to site settings or navigation.
func (s *EventService) LogConfigEvent(ctx context.Context, message string, userID int64, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelInfo, model.EventCategoryConfig, message, userID, metadata)
}

// ListEvents returns a page of events, newest first, and the total count.
// An empty level lists every level.
func (s *EventService) ListEvents(ctx context.Context, level string, limit, offset int) ([]EventEntry, int64, error) {
	rows, err := s.queries.ListEvents(ctx, store.ListEventsParams{
		Level:  level,
		Limit:  int64(limit),
		Offset: int64(offset),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("listing events: %w", err)
	}
	total, err := s.queries.CountEvents(ctx, level)
	if err != nil {
		return nil, 0, fmt.Errorf("counting events: %w", err)
	}

	entries := make([]EventEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, EventEntry{
			Event: model.Event{
				ID:        row.ID,
				Level:     row.Level,
				Category:  row.Category,
				Message:   row.Message,
				UserID:    row.UserID,
				Metadata:  row.Metadata,
				CreatedAt: row.CreatedAt,
			},
			UserName: row.UserName,
		})
	}
	return entries, total, nil
}

// DeleteOldEvents removes events older than the specified duration and
// returns how many were deleted.
func (s *EventService) DeleteOldEvents(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	n, err := s.queries.DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting old events: %w", err)
	}
	return n, nil
}
