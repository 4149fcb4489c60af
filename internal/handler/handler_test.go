// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/olegiv/scms-go/internal/cache"
	"github.com/olegiv/scms-go/internal/content"
	"github.com/olegiv/scms-go/internal/middleware"
	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/render"
	"github.com/olegiv/scms-go/internal/service"
	"github.com/olegiv/scms-go/internal/session"
	"github.com/olegiv/scms-go/internal/testutil"
)

const testPassword = "matkhau-truong-2024"

// pageStub prints the layout fields the tests assert on.
const pageStub = `{{define "content"}}page={{.Page}} title={{.Title}} flash={{.Flash}}{{end}}`

var (
	publicPages = []string{"home", "intro", "news", "news-detail", "documents", "staff", "gallery", "resources", "contact", "not-found"}
	adminPages  = []string{
		"dashboard", "news", "news-form", "categories", "documents", "document-form", "document-categories",
		"intro", "blocks", "block-form", "gallery", "gallery-album", "staff", "videos", "users", "user-form",
		"menu", "settings", "events", "scheduler",
	}
)

func testTemplates() fstest.MapFS {
	fsys := fstest.MapFS{
		"layouts/base.html":   {Data: []byte(`{{define "base"}}[{{template "content" .}}]{{end}}`)},
		"layouts/public.html": {Data: []byte(`{{define "chrome"}}public{{end}}`)},
		"layouts/admin.html":  {Data: []byte(`{{define "chrome"}}admin{{end}}`)},
		"auth/login.html":     {Data: []byte(pageStub)},
	}
	for _, name := range publicPages {
		fsys["public/"+name+".html"] = &fstest.MapFile{Data: []byte(pageStub)}
	}
	for _, name := range adminPages {
		fsys["admin/"+name+".html"] = &fstest.MapFile{Data: []byte(pageStub)}
	}
	fsys["public/news-detail.html"] = &fstest.MapFile{
		Data: []byte(`{{define "content"}}detail={{.Data.Post.Title}} body={{.Data.Post.Content}}{{end}}`),
	}
	fsys["admin/news-form.html"] = &fstest.MapFile{
		Data: []byte(`{{define "content"}}form={{.Title}} flash={{.Flash}} title_err={{index .Errors "title"}}{{end}}`),
	}
	return fsys
}

type testEnv struct {
	db       *sql.DB
	repo     *service.Repository
	events   *service.EventService
	sessions *session.Manager
	content  *content.Orchestrator
	deps     Deps
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.TestMemoryDB(t)
	sessions := session.New(db, false)
	t.Cleanup(sessions.Close)

	renderer, err := render.New(render.Config{TemplatesFS: testTemplates(), Sessions: sessions})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	logger := testutil.TestLoggerSilent()
	repo := service.NewRepository(db, 50)
	events := service.NewEventService(db)
	orch := content.NewOrchestrator(repo, logger)

	return &testEnv{
		db:       db,
		repo:     repo,
		events:   events,
		sessions: sessions,
		content:  orch,
		deps: Deps{
			Repo:     repo,
			Events:   events,
			Renderer: renderer,
			Sessions: sessions,
			Content:  orch,
			Logger:   logger,
		},
	}
}

func (e *testEnv) detailLoader() *content.DetailLoader {
	return content.NewDetailLoader(e.repo, cache.NewMemoryCache(cache.MemoryCacheOptions{}), testutil.TestLoggerSilent())
}

// serve runs h inside the session middleware.
func (e *testEnv) serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.sessions.LoadAndSave(h).ServeHTTP(rec, req)
	return rec
}

// flash returns the flash message stored in the session of a previous
// response.
func (e *testEnv) flash(t *testing.T, prev *httptest.ResponseRecorder) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range prev.Result().Cookies() {
		req.AddCookie(c)
	}
	var msg string
	e.serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f, ok := e.sessions.PopFlash(r.Context()); ok {
			msg = f.Message
		}
	}), req)
	return msg
}

func (e *testEnv) createUser(t *testing.T, role string) model.User {
	t.Helper()

	user, err := e.repo.CreateUser(context.Background(), service.UserInput{
		Email:    strings.ToLower(role) + "@thcs.edu.vn",
		Name:     "Người dùng " + role,
		Role:     role,
		Password: testPassword,
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", role, err)
	}
	return user
}

func postForm(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func postJSON(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func asUser(req *http.Request, user model.User) *http.Request {
	return middleware.WithUser(req, user)
}
