package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/store"
)

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp("", "scms-logging-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	})
	return db
}

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func listEvents(t *testing.T, db *sql.DB) []store.ListEventsRow {
	t.Helper()
	events, err := store.New(db).ListEvents(context.Background(), store.ListEventsParams{Limit: 50})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	return events
}

func TestEventLogHandler_Levels(t *testing.T) {
	tests := []struct {
		name      string
		log       func(*slog.Logger)
		wantLevel string
		wantCount int
	}{
		{"error captured", func(l *slog.Logger) { l.Error("database connection failed", "host", "localhost") }, model.EventLevelError, 1},
		{"warn captured", func(l *slog.Logger) { l.Warn("slow query detected", "duration_ms", 5000) }, model.EventLevelWarning, 1},
		{"info ignored", func(l *slog.Logger) { l.Info("server started", "port", 8080) }, "", 0},
		{"debug ignored", func(l *slog.Logger) { l.Debug("processing request") }, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testDB(t)
			tt.log(slog.New(NewEventLogHandler(discardHandler{}, db)))

			events := listEvents(t, db)
			if len(events) != tt.wantCount {
				t.Fatalf("events = %d, want %d", len(events), tt.wantCount)
			}
			if tt.wantCount > 0 && events[0].Level != tt.wantLevel {
				t.Errorf("Level = %q, want %q", events[0].Level, tt.wantLevel)
			}
		})
	}
}

func TestEventLogHandler_CustomLevel(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewEventLogHandlerWithLevel(discardHandler{}, db, slog.LevelInfo))
	logger.Info("server started", "port", 8080)

	if n := len(listEvents(t, db)); n != 1 {
		t.Errorf("events = %d, want 1", n)
	}
}

func TestEventLogHandler_Category(t *testing.T) {
	tests := []struct {
		msg  string
		args []any
		want string
	}{
		{"failed login attempt", nil, model.EventCategoryAuth},
		{"fetching posts failed", nil, model.EventCategoryContent},
		{"document category in use", nil, model.EventCategoryContent},
		{"user deleted", nil, model.EventCategoryUser},
		{"site config missing", nil, model.EventCategoryConfig},
		{"redis unavailable", nil, model.EventCategoryCache},
		{"disk almost full", nil, model.EventCategorySystem},
		{"anything", []any{"category", model.EventCategoryAuth}, model.EventCategoryAuth},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			db := testDB(t)
			slog.New(NewEventLogHandler(discardHandler{}, db)).Warn(tt.msg, tt.args...)

			events := listEvents(t, db)
			if len(events) != 1 {
				t.Fatalf("events = %d, want 1", len(events))
			}
			if events[0].Category != tt.want {
				t.Errorf("Category = %q, want %q", events[0].Category, tt.want)
			}
		})
	}
}

func TestEventLogHandler_WithAttrsAndMetadata(t *testing.T) {
	db := testDB(t)

	params := store.CreateUserParams{Email: "a@example.com", Name: "A", PasswordHash: "x", Role: model.RoleAdmin}
	user, err := store.New(db).CreateUser(context.Background(), params)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	logger := slog.New(NewEventLogHandler(discardHandler{}, db)).
		With("category", model.EventCategoryContent).
		WithGroup("req")
	logger.Warn("something odd", "path", `/a"b`, "user_id", user.ID)

	events := listEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	ev := events[0]
	if ev.Category != model.EventCategoryContent {
		t.Errorf("Category = %q, preset attrs must be honored", ev.Category)
	}
	if !ev.UserID.Valid || ev.UserID.Int64 != user.ID {
		t.Errorf("UserID = %+v, want %d", ev.UserID, user.ID)
	}
	if ev.UserName != "A" {
		t.Errorf("UserName = %q", ev.UserName)
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(ev.Metadata), &meta); err != nil {
		t.Fatalf("metadata is not JSON: %v (%s)", err, ev.Metadata)
	}
	if meta["req.path"] != `/a"b` {
		t.Errorf("metadata = %v", meta)
	}
	if _, ok := meta["category"]; ok {
		t.Error("category must not be repeated in metadata")
	}
	if _, ok := meta["req.category"]; ok {
		t.Error("attrs added before WithGroup must not take the group prefix")
	}
}

func TestEventLogHandler_EmptyMetadata(t *testing.T) {
	db := testDB(t)
	slog.New(NewEventLogHandler(discardHandler{}, db)).Error("boom")

	events := listEvents(t, db)
	if len(events) != 1 || events[0].Metadata != "{}" {
		t.Errorf("events = %+v", events)
	}
}
