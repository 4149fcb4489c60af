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

// StaffHandler handles the staff directory.
type StaffHandler struct {
	listScreen[model.StaffMember]
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(d Deps) *StaffHandler {
	b := newBase(d)
	return &StaffHandler{listScreen[model.StaffMember]{
		base:      &b,
		page:      router.PageAdminStaff,
		title:     "Đội ngũ cán bộ",
		template:  "admin/staff",
		redirect:  redirectAdminStaff,
		what:      "cán bộ",
		event:     "staff",
		listFn:    b.Repo.ListStaff,
		getFn:     b.Repo.GetStaffMember,
		createFn:  b.Repo.CreateStaffMember,
		updateFn:  b.Repo.UpdateStaffMember,
		deleteFn:  b.Repo.DeleteStaffMember,
		reorderFn: b.Repo.ReorderStaff,
		fromForm:  staffFromForm,
	}}
}

func staffFromForm(r *http.Request) model.StaffMember {
	return model.StaffMember{
		ID:        util.ParseInt64(r.FormValue("id")),
		FullName:  r.FormValue("full_name"),
		Position:  r.FormValue("position"),
		PartyDate: strings.TrimSpace(r.FormValue("party_date")),
		Email:     r.FormValue("email"),
		AvatarURL: strings.TrimSpace(r.FormValue("avatar_url")),
	}
}
