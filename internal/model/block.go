// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
)

// Block regions of a page.
const (
	BlockPositionMain    = "main"
	BlockPositionSidebar = "sidebar"
)

// Block types.
const (
	BlockTypeGrid         = "grid"
	BlockTypeList         = "list"
	BlockTypeHighlight    = "highlight"
	BlockTypeHero         = "hero"
	BlockTypeStats        = "stats"
	BlockTypeDocs         = "docs"
	BlockTypeHTML         = "html"
	BlockTypeCategoryList = "category-list"
	BlockTypeStaffList    = "staff-list"
)

// Target page filters.
const (
	BlockTargetAll    = "all"
	BlockTargetHome   = "home"
	BlockTargetDetail = "detail"
)

// Data source selectors for feed blocks. Any other value is a category slug.
const (
	BlockSourceAll      = "all"
	BlockSourceFeatured = "featured"
)

// BlockTypeOption describes a block type for the admin form.
type BlockTypeOption struct {
	Value string
	Label string
}

// BlockTypes lists every block type in admin display order.
var BlockTypes = []BlockTypeOption{
	{BlockTypeGrid, "Lưới tin tức"},
	{BlockTypeList, "Danh sách tin"},
	{BlockTypeHighlight, "Tin nổi bật"},
	{BlockTypeHero, "Banner tin chính"},
	{BlockTypeStats, "Thống kê truy cập"},
	{BlockTypeDocs, "Văn bản mới"},
	{BlockTypeHTML, "Mã HTML tùy chỉnh"},
	{BlockTypeCategoryList, "Danh mục tin"},
	{BlockTypeStaffList, "Danh sách cán bộ"},
}

// ValidBlockPositions and ValidBlockTargets list accepted values.
var (
	ValidBlockPositions = []string{BlockPositionMain, BlockPositionSidebar}
	ValidBlockTargets   = []string{BlockTargetAll, BlockTargetHome, BlockTargetDetail}
)

// ErrBlockContentMismatch is returned when a block's content variant does not
// match its type.
var ErrBlockContentMismatch = errors.New("block content does not match block type")

// BlockContent is the type-specific configuration of a display block.
// It is either HTMLContent or FeedContent.
type BlockContent interface {
	blockContent()
}

// HTMLContent configures an html block.
type HTMLContent struct {
	Markup string
}

// FeedContent configures every block that draws from a collection.
type FeedContent struct {
	Source    string
	ItemCount int
}

func (HTMLContent) blockContent() {}
func (FeedContent) blockContent() {}

// DisplayBlock is an admin-configured unit of page content.
type DisplayBlock struct {
	ID         int64
	Name       string
	Position   string
	Type       string
	OrderIndex int
	IsVisible  bool
	TargetPage string
	Content    BlockContent
}

// IsHTMLType reports whether blocks of this type carry raw markup.
func IsHTMLType(blockType string) bool {
	return blockType == BlockTypeHTML
}

// IsValidBlockType reports whether blockType is known.
func IsValidBlockType(blockType string) bool {
	for _, t := range BlockTypes {
		if t.Value == blockType {
			return true
		}
	}
	return false
}

// NewBlockContent builds the content variant matching blockType.
func NewBlockContent(blockType, markup, source string, itemCount int) BlockContent {
	if IsHTMLType(blockType) {
		return HTMLContent{Markup: markup}
	}
	if source == "" {
		source = BlockSourceAll
	}
	return FeedContent{Source: source, ItemCount: itemCount}
}

// Feed returns the feed configuration of a non-html block.
func (b DisplayBlock) Feed() (FeedContent, bool) {
	fc, ok := b.Content.(FeedContent)
	return fc, ok
}

// HTML returns the markup configuration of an html block.
func (b DisplayBlock) HTML() (HTMLContent, bool) {
	hc, ok := b.Content.(HTMLContent)
	return hc, ok
}

// ItemCount returns the configured item limit, or 0 for html blocks.
func (b DisplayBlock) ItemCount() int {
	if fc, ok := b.Feed(); ok {
		return fc.ItemCount
	}
	return 0
}

// Source returns the data source selector, or "" for html blocks.
func (b DisplayBlock) Source() string {
	if fc, ok := b.Feed(); ok {
		return fc.Source
	}
	return ""
}

// Validate checks the block's enumerations and that its content variant
// matches its type.
func (b DisplayBlock) Validate() error {
	if !IsValidBlockType(b.Type) {
		return fmt.Errorf("unknown block type %q", b.Type)
	}
	if !contains(ValidBlockPositions, b.Position) {
		return fmt.Errorf("unknown block position %q", b.Position)
	}
	if !contains(ValidBlockTargets, b.TargetPage) {
		return fmt.Errorf("unknown block target page %q", b.TargetPage)
	}
	switch b.Content.(type) {
	case HTMLContent:
		if !IsHTMLType(b.Type) {
			return ErrBlockContentMismatch
		}
	case FeedContent:
		if IsHTMLType(b.Type) {
			return ErrBlockContentMismatch
		}
	default:
		return ErrBlockContentMismatch
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
