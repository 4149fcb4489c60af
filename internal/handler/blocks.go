// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/router"
	"github.com/olegiv/scms-go/internal/service"
	"github.com/olegiv/scms-go/internal/util"
)

// Default item count of a new feed block.
const defaultBlockItemCount = 6

// BlockListData is the data of the block list, split by position.
type BlockListData struct {
	Main    []model.DisplayBlock
	Sidebar []model.DisplayBlock
}

// SourceOption is a choice of the block source select.
type SourceOption struct {
	Value string
	Label string
}

// BlockFormData is the data of the block form. Markup, Source and
// ItemCount flatten the block content for the form fields.
type BlockFormData struct {
	Block     model.DisplayBlock
	Markup    string
	Source    string
	ItemCount int
	IsEdit    bool
	Types     []model.BlockTypeOption
	Positions []string
	Targets   []string
	Sources   []SourceOption
}

// BlocksHandler handles display block configuration.
type BlocksHandler struct {
	base
}

// NewBlocksHandler creates a new BlocksHandler.
func NewBlocksHandler(d Deps) *BlocksHandler {
	return &BlocksHandler{base: newBase(d)}
}

// List renders the blocks of both positions in display order.
func (h *BlocksHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.Repo.ListDisplayBlocks(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list display blocks", "error", err)
		return
	}
	var data BlockListData
	for _, b := range all {
		if b.Position == model.BlockPositionSidebar {
			data.Sidebar = append(data.Sidebar, b)
		} else {
			data.Main = append(data.Main, b)
		}
	}
	h.render(w, r, http.StatusOK, "admin/blocks", h.adminData(r, router.PageAdminBlocks, "Khối hiển thị", data))
}

// NewForm renders an empty block form.
func (h *BlocksHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	position := r.URL.Query().Get("position")
	if position != model.BlockPositionSidebar {
		position = model.BlockPositionMain
	}
	block := model.DisplayBlock{
		Position:   position,
		Type:       model.BlockTypeGrid,
		TargetPage: model.BlockTargetAll,
		IsVisible:  true,
		Content:    model.FeedContent{Source: model.BlockSourceAll, ItemCount: defaultBlockItemCount},
	}
	h.renderBlockForm(w, r, block, false, nil)
}

// Create saves a new block at the end of its position.
func (h *BlocksHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.Sessions, redirectAdminBlocks) {
		return
	}
	in := blockFromForm(r)
	block, err := h.Repo.CreateDisplayBlock(r.Context(), in)
	if err != nil {
		h.renderBlockForm(w, r, in, false, err)
		return
	}
	h.changed(r, model.EventCategoryContent, "Display block created", map[string]any{"block_id": block.ID, "type": block.Type})
	flashSuccess(w, r, h.Sessions, redirectAdminBlocks, msgSaved)
}

// EditForm renders the form of an existing block.
func (h *BlocksHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	block, ok := requireEntityWithRedirect(w, r, h.Sessions, redirectAdminBlocks, "khối", parseIDParam(r, "id"),
		func(id int64) (model.DisplayBlock, error) { return h.Repo.GetDisplayBlock(r.Context(), id) })
	if !ok {
		return
	}
	h.renderBlockForm(w, r, block, true, nil)
}

// Update saves an existing block.
func (h *BlocksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if !parseFormOrRedirect(w, r, h.Sessions, redirectAdminBlocks) {
		return
	}
	in := blockFromForm(r)
	in.ID = id
	block, err := h.Repo.UpdateDisplayBlock(r.Context(), id, in)
	if err != nil {
		h.renderBlockForm(w, r, in, true, err)
		return
	}
	h.changed(r, model.EventCategoryContent, "Display block updated", map[string]any{"block_id": block.ID, "type": block.Type})
	flashSuccess(w, r, h.Sessions, redirectAdminBlocks, msgSaved)
}

// Delete removes a block.
func (h *BlocksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, "khối", redirectAdminBlocks, h.Repo.DeleteDisplayBlock)
}

// Move shifts a block one place up or down within its position.
// POST /admin/blocks/{id}/move
func (h *BlocksHandler) Move(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	direction := service.MoveDown
	if r.FormValue("direction") == "up" {
		direction = service.MoveUp
	}

	if err := h.Repo.MoveBlock(r.Context(), id, direction); err != nil {
		if wantsJSON(r) {
			writeJSONError(w, http.StatusBadRequest, errorMessage(err))
			return
		}
		flashError(w, r, h.Sessions, redirectAdminBlocks, errorMessage(err))
		return
	}

	h.changed(r, model.EventCategoryContent, "Display block moved", map[string]any{"block_id": id, "direction": direction})
	if wantsJSON(r) {
		writeJSONSuccess(w, map[string]any{"id": id})
		return
	}
	http.Redirect(w, r, redirectAdminBlocks, http.StatusSeeOther)
}

// Reorder applies a new block order.
func (h *BlocksHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	h.reorder(w, r, "display blocks", redirectAdminBlocks, h.Repo.ReorderDisplayBlocks)
}

func (h *BlocksHandler) renderBlockForm(w http.ResponseWriter, r *http.Request, block model.DisplayBlock, isEdit bool, err error) {
	data := BlockFormData{
		Block:     block,
		Source:    block.Source(),
		ItemCount: block.ItemCount(),
		IsEdit:    isEdit,
		Types:     model.BlockTypes,
		Positions: model.ValidBlockPositions,
		Targets:   model.ValidBlockTargets,
		Sources:   h.sourceOptions(),
	}
	if hc, ok := block.HTML(); ok {
		data.Markup = hc.Markup
	}

	title := "Thêm khối"
	if isEdit {
		title = "Sửa khối"
	}
	td := h.adminData(r, router.PageAdminBlocks, title, data)
	if err != nil {
		h.renderForm(w, r, "admin/block-form", td, err)
		return
	}
	h.render(w, r, http.StatusOK, "admin/block-form", td)
}

// sourceOptions lists the feed sources: every post, featured posts and one
// entry per post category.
func (h *BlocksHandler) sourceOptions() []SourceOption {
	opts := []SourceOption{
		{Value: model.BlockSourceAll, Label: "Tất cả tin"},
		{Value: model.BlockSourceFeatured, Label: "Tin nổi bật"},
	}
	for _, c := range h.Content.Snapshot().PostCategories {
		opts = append(opts, SourceOption{Value: c.Slug, Label: c.Name})
	}
	return opts
}

// blockFromForm reads a block. Only the content fields matching the chosen
// type are kept.
func blockFromForm(r *http.Request) model.DisplayBlock {
	blockType := r.FormValue("type")
	return model.DisplayBlock{
		Name:       r.FormValue("name"),
		Position:   r.FormValue("position"),
		Type:       blockType,
		TargetPage: r.FormValue("target_page"),
		IsVisible:  util.ParseCheckbox(r.FormValue("is_visible")),
		Content: model.NewBlockContent(
			blockType,
			r.FormValue("html_content"),
			strings.TrimSpace(r.FormValue("source")),
			util.ParseIntDefault(r.FormValue("item_count"), 0),
		),
	}
}
