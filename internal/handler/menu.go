// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/router"
	"github.com/olegiv/scms-go/internal/util"
)

// MenuTargets lists the public pages a menu item can point to.
var MenuTargets = []router.Page{
	router.PageHome,
	router.PageIntro,
	router.PageNews,
	router.PageDocuments,
	router.PageStaff,
	router.PageGallery,
	router.PageResources,
	router.PageContact,
}

// MenuHandler handles the main navigation menu.
type MenuHandler struct {
	listScreen[model.MenuItem]
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(d Deps) *MenuHandler {
	b := newBase(d)
	return &MenuHandler{listScreen[model.MenuItem]{
		base:      &b,
		page:      router.PageAdminMenu,
		title:     "Menu",
		template:  "admin/menu",
		redirect:  redirectAdminMenu,
		what:      "mục menu",
		event:     "menu items",
		listFn:    b.Repo.ListMenuItems,
		getFn:     b.Repo.GetMenuItem,
		createFn:  b.Repo.CreateMenuItem,
		updateFn:  b.Repo.UpdateMenuItem,
		deleteFn:  b.Repo.DeleteMenuItem,
		reorderFn: b.Repo.ReorderMenuItems,
		fromForm:  menuItemFromForm,
		extra:     func(context.Context) any { return MenuTargets },
	}}
}

func menuItemFromForm(r *http.Request) model.MenuItem {
	return model.MenuItem{
		ID:    util.ParseInt64(r.FormValue("id")),
		Label: r.FormValue("label"),
		Path:  r.FormValue("path"),
	}
}
