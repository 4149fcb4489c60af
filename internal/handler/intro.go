// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/router"
	"github.com/olegiv/scms-go/internal/util"
)

// IntroHandler handles the introduction sections.
type IntroHandler struct {
	listScreen[model.Introduction]
}

// NewIntroHandler creates a new IntroHandler.
func NewIntroHandler(d Deps) *IntroHandler {
	b := newBase(d)
	return &IntroHandler{listScreen[model.Introduction]{
		base:      &b,
		page:      router.PageAdminIntro,
		title:     "Giới thiệu",
		template:  "admin/intro",
		redirect:  redirectAdminIntro,
		what:      "mục giới thiệu",
		event:     "introductions",
		listFn:    b.Repo.ListIntroductions,
		getFn:     b.Repo.GetIntroduction,
		createFn:  b.Repo.CreateIntroduction,
		updateFn:  b.Repo.UpdateIntroduction,
		deleteFn:  b.Repo.DeleteIntroduction,
		reorderFn: b.Repo.ReorderIntroductions,
		fromForm:  introductionFromForm,
		blank:     func(*http.Request) model.Introduction { return model.Introduction{IsVisible: true} },
	}}
}

func introductionFromForm(r *http.Request) model.Introduction {
	return model.Introduction{
		ID:        util.ParseInt64(r.FormValue("id")),
		Title:     r.FormValue("title"),
		Slug:      strings.TrimSpace(r.FormValue("slug")),
		Content:   r.FormValue("content"),
		ImageURL:  strings.TrimSpace(r.FormValue("image_url")),
		IsVisible: util.ParseCheckbox(r.FormValue("is_visible")),
	}
}
