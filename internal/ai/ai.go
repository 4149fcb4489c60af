// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ai drafts news articles and announcements with an
// OpenAI-compatible chat completion endpoint.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Defaults point at Gemini's OpenAI-compatible endpoint.
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 60 * time.Second
)

// Messages returned in place of a draft.
const (
	MsgMissingKey = "Vui lòng cấu hình API Key để sử dụng tính năng này."
	MsgFailed     = "Đã xảy ra lỗi khi kết nối với AI."
	MsgEmpty      = "Không thể tạo nội dung."
)

// Kind selects the tone and length of a draft.
type Kind string

// Draft kinds.
const (
	KindNews         Kind = "news"
	KindAnnouncement Kind = "announcement"
)

// ParseKind returns the kind named s, defaulting to news.
func ParseKind(s string) Kind {
	if Kind(s) == KindAnnouncement {
		return KindAnnouncement
	}
	return KindNews
}

// Drafter writes a markdown draft about topic. It never fails: problems
// are reported as a human-readable message in place of the draft.
type Drafter interface {
	Draft(ctx context.Context, topic string, kind Kind) string
}

// Config configures the OpenAI-compatible client.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// OpenAIDrafter implements Drafter with openai-go.
type OpenAIDrafter struct {
	client  openai.Client
	model   string
	timeout time.Duration
	enabled bool
	logger  *slog.Logger
}

// NewOpenAIDrafter creates a drafter. Without an API key every draft
// returns MsgMissingKey.
func NewOpenAIDrafter(cfg Config, logger *slog.Logger) *OpenAIDrafter {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	d := &OpenAIDrafter{
		model:   cfg.Model,
		timeout: cfg.Timeout,
		enabled: cfg.APIKey != "",
		logger:  logger,
	}
	if d.enabled {
		d.client = openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(cfg.BaseURL),
			option.WithMaxRetries(cfg.MaxRetries),
		)
	}
	return d
}

// Enabled reports whether an API key is configured.
func (d *OpenAIDrafter) Enabled() bool {
	return d.enabled
}

// Draft implements Drafter.
func (d *OpenAIDrafter) Draft(ctx context.Context, topic string, kind Kind) string {
	if !d.enabled {
		d.logger.Warn("ai draft requested without an API key", "category", "config")
		return MsgMissingKey
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	resp, err := d.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(d.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(Prompt(topic, kind)),
		},
	})
	if err != nil {
		d.logger.Error("ai draft failed", "model", d.model, "kind", kind, "error", err)
		return MsgFailed
	}
	if len(resp.Choices) == 0 {
		return MsgEmpty
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return MsgEmpty
	}
	return text
}

// Prompt builds the instruction sent for topic.
func Prompt(topic string, kind Kind) string {
	topic = strings.TrimSpace(topic)
	if kind == KindAnnouncement {
		return fmt.Sprintf("Viết một thông báo chính thức (khoảng 150 từ) từ Ban giám hiệu về việc: %q. "+
			"Văn phong hành chính, rõ ràng, ngắn gọn. Định dạng Markdown.", topic)
	}
	return fmt.Sprintf("Viết một bài báo ngắn (khoảng 200 từ) cho website trường học về chủ đề: %q. "+
		"Văn phong trang trọng, tích cực, phù hợp môi trường giáo dục Việt Nam. Định dạng Markdown.", topic)
}
