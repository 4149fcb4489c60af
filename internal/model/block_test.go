package model

import (
	"errors"
	"testing"
)

func TestNewBlockContent(t *testing.T) {
	tests := []struct {
		name      string
		blockType string
		want      BlockContent
	}{
		{"html keeps markup", BlockTypeHTML, HTMLContent{Markup: "<p>hi</p>"}},
		{"grid keeps source", BlockTypeGrid, FeedContent{Source: "news", ItemCount: 4}},
		{"stats is a feed", BlockTypeStats, FeedContent{Source: "news", ItemCount: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBlockContent(tt.blockType, "<p>hi</p>", "news", 4)
			if got != tt.want {
				t.Errorf("NewBlockContent() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestNewBlockContent_EmptySourceMeansAll(t *testing.T) {
	got := NewBlockContent(BlockTypeList, "", "", 3)
	fc, ok := got.(FeedContent)
	if !ok {
		t.Fatalf("content = %T, want FeedContent", got)
	}
	if fc.Source != BlockSourceAll {
		t.Errorf("Source = %q, want %q", fc.Source, BlockSourceAll)
	}
}

func TestDisplayBlock_Validate(t *testing.T) {
	base := DisplayBlock{
		Name:       "Tin mới",
		Position:   BlockPositionMain,
		Type:       BlockTypeGrid,
		TargetPage: BlockTargetAll,
		Content:    FeedContent{Source: BlockSourceAll, ItemCount: 6},
	}

	if err := base.Validate(); err != nil {
		t.Fatalf("Validate() on valid block: %v", err)
	}

	htmlWithFeed := base
	htmlWithFeed.Type = BlockTypeHTML
	if err := htmlWithFeed.Validate(); !errors.Is(err, ErrBlockContentMismatch) {
		t.Errorf("html block with feed content: err = %v, want ErrBlockContentMismatch", err)
	}

	gridWithHTML := base
	gridWithHTML.Content = HTMLContent{Markup: "<b>x</b>"}
	if err := gridWithHTML.Validate(); !errors.Is(err, ErrBlockContentMismatch) {
		t.Errorf("grid block with html content: err = %v, want ErrBlockContentMismatch", err)
	}

	noContent := base
	noContent.Content = nil
	if err := noContent.Validate(); !errors.Is(err, ErrBlockContentMismatch) {
		t.Errorf("block without content: err = %v, want ErrBlockContentMismatch", err)
	}

	badPosition := base
	badPosition.Position = "footer"
	if err := badPosition.Validate(); err == nil {
		t.Error("expected error for unknown position")
	}
}

func TestDisplayBlock_Accessors(t *testing.T) {
	feed := DisplayBlock{Type: BlockTypeList, Content: FeedContent{Source: "featured", ItemCount: 5}}
	if feed.ItemCount() != 5 || feed.Source() != "featured" {
		t.Errorf("feed accessors = (%d, %q)", feed.ItemCount(), feed.Source())
	}
	if _, ok := feed.HTML(); ok {
		t.Error("feed block should not expose HTML content")
	}

	html := DisplayBlock{Type: BlockTypeHTML, Content: HTMLContent{Markup: "<i>x</i>"}}
	if html.ItemCount() != 0 || html.Source() != "" {
		t.Errorf("html accessors = (%d, %q)", html.ItemCount(), html.Source())
	}
	if hc, ok := html.HTML(); !ok || hc.Markup != "<i>x</i>" {
		t.Errorf("HTML() = %#v, %v", hc, ok)
	}
}
