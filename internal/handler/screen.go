// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/router"
)

// ListData is the data of a console screen that shows a collection next to
// a create or edit form.
type ListData[T any] struct {
	Items  []T
	Form   T
	IsEdit bool
	Extra  any
}

// listScreen wires an ordered collection to the console: list with inline
// form, create, edit, update, delete and reorder.
type listScreen[T any] struct {
	*base
	page     router.Page
	title    string
	template string
	redirect string
	what     string
	event    string

	listFn    func(ctx context.Context) ([]T, error)
	getFn     func(ctx context.Context, id int64) (T, error)
	createFn  func(ctx context.Context, in T) (T, error)
	updateFn  func(ctx context.Context, id int64, in T) (T, error)
	deleteFn  func(ctx context.Context, id int64) error
	reorderFn func(ctx context.Context, updates []model.OrderUpdate) error
	fromForm  func(r *http.Request) T
	blank     func(r *http.Request) T
	extra     func(ctx context.Context) any
}

func (s *listScreen[T]) List(w http.ResponseWriter, r *http.Request) {
	var form T
	if s.blank != nil {
		form = s.blank(r)
	}
	s.renderList(w, r, form, false, nil)
}

func (s *listScreen[T]) EditForm(w http.ResponseWriter, r *http.Request) {
	item, ok := requireEntityWithRedirect(w, r, s.Sessions, s.redirect, s.what, parseIDParam(r, "id"),
		func(id int64) (T, error) { return s.getFn(r.Context(), id) })
	if !ok {
		return
	}
	s.renderList(w, r, item, true, nil)
}

func (s *listScreen[T]) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, s.Sessions, s.redirect) {
		return
	}
	in := s.fromForm(r)
	if _, err := s.createFn(r.Context(), in); err != nil {
		s.renderList(w, r, in, false, err)
		return
	}
	s.changed(r, model.EventCategoryContent, s.event+" created", nil)
	flashSuccess(w, r, s.Sessions, s.redirect, msgSaved)
}

func (s *listScreen[T]) Update(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if !parseFormOrRedirect(w, r, s.Sessions, s.redirect) {
		return
	}
	in := s.fromForm(r)
	if _, err := s.updateFn(r.Context(), id, in); err != nil {
		s.renderList(w, r, in, true, err)
		return
	}
	s.changed(r, model.EventCategoryContent, s.event+" updated", map[string]any{"id": id})
	flashSuccess(w, r, s.Sessions, s.redirect, msgSaved)
}

func (s *listScreen[T]) Delete(w http.ResponseWriter, r *http.Request) {
	s.remove(w, r, s.what, s.redirect, s.deleteFn)
}

func (s *listScreen[T]) Reorder(w http.ResponseWriter, r *http.Request) {
	s.reorder(w, r, s.event, s.redirect, s.reorderFn)
}

func (s *listScreen[T]) renderList(w http.ResponseWriter, r *http.Request, form T, isEdit bool, err error) {
	items, lerr := s.listFn(r.Context())
	if lerr != nil {
		logAndInternalError(w, "failed to list "+s.event, "error", lerr)
		return
	}
	data := ListData[T]{Items: items, Form: form, IsEdit: isEdit}
	if s.extra != nil {
		data.Extra = s.extra(r.Context())
	}
	td := s.adminData(r, s.page, s.title, data)
	if err != nil {
		s.renderForm(w, r, s.template, td, err)
		return
	}
	s.render(w, r, http.StatusOK, s.template, td)
}
