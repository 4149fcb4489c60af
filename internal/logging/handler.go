// Package logging provides a slog handler that also records WARN and ERROR
// logs in the events table so administrators can review them.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/store"
)

// Attribute keys with special meaning for the event log.
const (
	CategoryKey = "category"
	UserIDKey   = "user_id"
)

// EventLogHandler wraps another handler and writes records at or above its
// level to the events table.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
	attrs   []groupedAttr
	group   string
}

// groupedAttr remembers the group that was open when an attribute was added.
type groupedAttr struct {
	group string
	attr  slog.Attr
}

// NewEventLogHandler forwards WARN and above to the event log.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return NewEventLogHandlerWithLevel(inner, db, slog.LevelWarn)
}

// NewEventLogHandlerWithLevel creates a handler with a custom minimum level.
func NewEventLogHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.writeEvent(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.inner = h.inner.WithAttrs(attrs)
	clone.attrs = append([]groupedAttr(nil), h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, groupedAttr{group: h.group, attr: a})
	}
	return &clone
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.inner = h.inner.WithGroup(name)
	if clone.group != "" {
		clone.group += "." + name
	} else {
		clone.group = name
	}
	return &clone
}

// writeEvent uses a background context so the event survives a cancelled
// request.
func (h *EventLogHandler) writeEvent(r slog.Record) {
	all := make([]groupedAttr, 0, len(h.attrs)+r.NumAttrs())
	all = append(all, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		all = append(all, groupedAttr{group: h.group, attr: a})
		return true
	})

	createdAt := r.Time
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _ = h.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     eventLevel(r.Level),
		Category:  category(r.Message, all),
		Message:   r.Message,
		UserID:    userID(all),
		Metadata:  metadata(all),
		CreatedAt: createdAt.UTC(),
	})
}

func eventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

// category returns the category attribute or infers one from the message.
func category(msg string, attrs []groupedAttr) string {
	for _, ga := range attrs {
		if ga.group == "" && ga.attr.Key == CategoryKey {
			if c := ga.attr.Value.String(); c != "" {
				return c
			}
		}
	}

	msg = strings.ToLower(msg)
	switch {
	case containsAny(msg, "auth", "login", "logout", "lockout", "csrf"):
		return model.EventCategoryAuth
	case containsAny(msg, "post", "document", "block", "gallery", "album", "video",
		"staff", "introduction", "content", "collection", "fetch"):
		return model.EventCategoryContent
	case containsAny(msg, "user"):
		return model.EventCategoryUser
	case containsAny(msg, "config", "setting", "menu"):
		return model.EventCategoryConfig
	case containsAny(msg, "cache", "redis"):
		return model.EventCategoryCache
	default:
		return model.EventCategorySystem
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func userID(attrs []groupedAttr) sql.NullInt64 {
	for _, ga := range attrs {
		if ga.attr.Key != UserIDKey {
			continue
		}
		v := ga.attr.Value.Resolve()
		switch v.Kind() {
		case slog.KindInt64:
			return sql.NullInt64{Int64: v.Int64(), Valid: true}
		case slog.KindUint64:
			return sql.NullInt64{Int64: int64(v.Uint64()), Valid: true}
		}
	}
	return sql.NullInt64{}
}

// metadata encodes the attributes, except the category, as a flat JSON
// object of strings. Group members are flattened to dotted keys.
func metadata(attrs []groupedAttr) string {
	m := make(map[string]string, len(attrs))
	var add func(prefix string, a slog.Attr)
	add = func(prefix string, a slog.Attr) {
		if a.Key == CategoryKey && prefix == "" {
			return
		}
		key := a.Key
		if prefix != "" {
			key = prefix + "." + key
		}
		v := a.Value.Resolve()
		if v.Kind() == slog.KindGroup {
			for _, ga := range v.Group() {
				add(key, ga)
			}
			return
		}
		m[key] = v.String()
	}
	for _, ga := range attrs {
		add(ga.group, ga.attr)
	}
	if len(m) == 0 {
		return "{}"
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(data)
}
