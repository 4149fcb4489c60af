// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/render"
	"github.com/olegiv/scms-go/internal/router"
	"github.com/olegiv/scms-go/internal/util"
)

// EventsPerPage is the number of events to display per page.
const EventsPerPage = 25

// detailsLengthThreshold is the max chars before details are collapsible
const detailsLengthThreshold = 80

// EventLevels lists the level filter choices.
var EventLevels = []string{model.EventLevelInfo, model.EventLevelWarning, model.EventLevelError}

// EventRow is an event prepared for display.
type EventRow struct {
	model.Event
	UserName    string
	Details     string
	DetailsLong bool
}

// EventsListData holds data for the events list template.
type EventsListData struct {
	Events     []EventRow
	Level      string
	Levels     []string
	Pagination render.Pagination
}

// EventsHandler handles event log viewing routes.
type EventsHandler struct {
	base
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(d Deps) *EventsHandler {
	return &EventsHandler{base: newBase(d)}
}

// List handles GET /admin/events - displays a paginated list of events.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	level := q.Get("level")
	if !slices.Contains(EventLevels, level) {
		level = ""
	}
	current := max(util.ParseIntDefault(q.Get("p"), 1), 1)

	entries, total, err := h.Events.ListEvents(r.Context(), level, EventsPerPage, (current-1)*EventsPerPage)
	if err != nil {
		logAndInternalError(w, "failed to list events", "error", err)
		return
	}

	data := EventsListData{
		Level:      level,
		Levels:     EventLevels,
		Pagination: render.BuildPagination(current, total, EventsPerPage, RouteAdmin+RouteEvents, q),
	}
	for _, e := range entries {
		details := formatMetadata(e.Metadata)
		data.Events = append(data.Events, EventRow{
			Event:       e.Event,
			UserName:    e.UserName,
			Details:     details,
			DetailsLong: len(details) > detailsLengthThreshold,
		})
	}

	h.render(w, r, http.StatusOK, "admin/events", h.adminData(r, router.PageAdminEvents, "Nhật ký hệ thống", data))
}

// formatMetadata converts JSON metadata to readable text format.
// Example: {"path":"/admin/news","error":"not found"} -> "error: not found, path: /admin/news"
func formatMetadata(metadata string) string {
	if metadata == "" || metadata == "{}" {
		return ""
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(metadata), &data); err != nil {
		return metadata
	}
	if len(data) == 0 {
		return ""
	}

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		var strValue string
		switch v := data[key].(type) {
		case string:
			strValue = v
		case float64:
			strValue = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			strValue = strconv.FormatBool(v)
		default:
			if b, err := json.Marshal(v); err == nil {
				strValue = string(b)
			}
		}
		parts = append(parts, key+": "+strValue)
	}
	return strings.Join(parts, ", ")
}
