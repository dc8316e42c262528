package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/identity-merge/internal/logger"
	"github.com/dtroode/identity-merge/internal/model"
)

var (
	_ model.MergeHook = NoopHook{}
	_ model.MergeHook = HookChain(nil)
	_ model.MergeHook = (*ArchiveHook)(nil)
)

// NoopHook ignores merge events.
type NoopHook struct{}

func (NoopHook) Merged(context.Context, model.MergeEvent) error {
	return nil
}

// HookChain calls every hook in order and joins their errors.
type HookChain []model.MergeHook

func (c HookChain) Merged(ctx context.Context, event model.MergeEvent) error {
	var errs []error
	for _, h := range c {
		if err := h.Merged(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// MergeReceipt is the archived record of a completed merge.
type MergeReceipt struct {
	ID       uuid.UUID      `json:"id"`
	TargetID uuid.UUID      `json:"target_id"`
	SourceID uuid.UUID      `json:"source_id"`
	Source   receiptAccount `json:"source"`
	Roles    []string       `json:"roles,omitempty"`
	Logins   []receiptLogin `json:"logins,omitempty"`
	Emails   []string       `json:"emails,omitempty"`
	Claims   []receiptClaim `json:"claims,omitempty"`
	MergedAt time.Time      `json:"merged_at"`
}

type receiptAccount struct {
	UserName       string `json:"user_name"`
	Email          string `json:"email,omitempty"`
	EmailConfirmed bool   `json:"email_confirmed"`
}

type receiptLogin struct {
	Provider    string `json:"provider"`
	ProviderKey string `json:"provider_key"`
}

type receiptClaim struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func newReceipt(event model.MergeEvent) MergeReceipt {
	r := MergeReceipt{
		ID:       event.ID,
		TargetID: event.Target.ID,
		SourceID: event.Source.ID,
		Source: receiptAccount{
			UserName:       event.Source.UserName,
			Email:          event.Source.Email,
			EmailConfirmed: event.Source.EmailConfirmed,
		},
		Roles:    event.Roles,
		Emails:   event.Emails,
		MergedAt: event.MergedAt.UTC(),
	}
	for _, l := range event.Logins {
		r.Logins = append(r.Logins, receiptLogin{Provider: l.Provider, ProviderKey: l.ProviderKey})
	}
	for _, c := range event.Claims {
		r.Claims = append(r.Claims, receiptClaim{Type: c.Type, Value: c.Value})
	}
	return r
}

// ArchiveHook uploads a JSON receipt of every merge to object storage.
type ArchiveHook struct {
	storage model.Storage
	prefix  string
	logger  *logger.Logger
}

func NewArchiveHook(storage model.Storage, prefix string, logger *logger.Logger) *ArchiveHook {
	return &ArchiveHook{storage: storage, prefix: prefix, logger: logger}
}

// ReceiptKey is the object key of a merge receipt.
func (h *ArchiveHook) ReceiptKey(event model.MergeEvent) string {
	return fmt.Sprintf("%s%s/%s.json", h.prefix, event.MergedAt.UTC().Format("2006/01/02"), event.ID)
}

func (h *ArchiveHook) Merged(ctx context.Context, event model.MergeEvent) error {
	data, err := json.Marshal(newReceipt(event))
	if err != nil {
		return fmt.Errorf("failed to marshal merge receipt: %w", err)
	}

	key := h.ReceiptKey(event)
	if err := h.storage.Upload(ctx, key, bytes.NewReader(data)); err != nil {
		h.logger.Error("Archive hook: failed to upload merge receipt",
			"key", key,
			"error", err.Error())
		return fmt.Errorf("failed to upload merge receipt: %w", err)
	}

	h.logger.Debug("Archive hook: merge receipt uploaded",
		"key", key,
		"target_id", event.Target.ID,
		"source_id", event.Source.ID)
	return nil
}

// LoadReceipt downloads and decodes a previously archived receipt.
func (h *ArchiveHook) LoadReceipt(ctx context.Context, key string) (MergeReceipt, error) {
	rc, err := h.storage.Download(ctx, key)
	if err != nil {
		return MergeReceipt{}, fmt.Errorf("failed to download merge receipt: %w", err)
	}
	defer rc.Close()

	var r MergeReceipt
	if err := json.NewDecoder(rc).Decode(&r); err != nil {
		return MergeReceipt{}, fmt.Errorf("failed to decode merge receipt: %w", err)
	}
	return r, nil
}
