package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/identity-merge/internal/mocks"
	"github.com/dtroode/identity-merge/internal/model"
	"github.com/dtroode/identity-merge/internal/repository/memory"
	"github.com/dtroode/identity-merge/internal/testutil"
)

func testEvent() model.MergeEvent {
	return model.MergeEvent{
		ID:       uuid.MustParse("4b1d1c3e-5f59-4b8e-9d58-0d1a3c2f7e11"),
		Target:   model.Account{ID: uuid.New(), UserName: "a"},
		Source:   model.Account{ID: uuid.New(), UserName: "b", Email: "b@x.com", EmailConfirmed: true},
		Roles:    []string{"user"},
		Logins:   []model.LoginInfo{{Provider: "github", ProviderKey: "1", DisplayName: "GitHub"}},
		Emails:   []string{"other@x.com"},
		Claims:   []model.Claim{{Type: "team", Value: "core"}},
		MergedAt: time.Date(2024, 3, 9, 17, 4, 0, 0, time.UTC),
	}
}

func TestArchiveHook_Merged(t *testing.T) {
	ctx := context.Background()
	event := testEvent()
	storage := mocks.NewStorage(t)
	hook := NewArchiveHook(storage, "receipts/", testutil.MakeNoopLogger())

	key := "receipts/2024/03/09/4b1d1c3e-5f59-4b8e-9d58-0d1a3c2f7e11.json"
	assert.Equal(t, key, hook.ReceiptKey(event))

	var uploaded []byte
	storage.On("Upload", ctx, key, mock.Anything).
		Run(func(args mock.Arguments) {
			data, err := io.ReadAll(args.Get(2).(io.Reader))
			require.NoError(t, err)
			uploaded = data
		}).
		Return(nil)

	require.NoError(t, hook.Merged(ctx, event))

	var receipt MergeReceipt
	require.NoError(t, json.Unmarshal(uploaded, &receipt))
	assert.Equal(t, event.Target.ID, receipt.TargetID)
	assert.Equal(t, event.Source.ID, receipt.SourceID)
	assert.Equal(t, "b", receipt.Source.UserName)
	assert.True(t, receipt.Source.EmailConfirmed)
	assert.Equal(t, []string{"user"}, receipt.Roles)
	assert.Equal(t, []receiptLogin{{Provider: "github", ProviderKey: "1"}}, receipt.Logins)
	assert.Equal(t, []string{"other@x.com"}, receipt.Emails)
	assert.Equal(t, []receiptClaim{{Type: "team", Value: "core"}}, receipt.Claims)
	assert.True(t, event.MergedAt.Equal(receipt.MergedAt))

	storage.On("Download", ctx, key).Return(io.NopCloser(bytes.NewReader(uploaded)), nil)
	loaded, err := hook.LoadReceipt(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, receipt, loaded)
}

func TestArchiveHook_UploadFailure(t *testing.T) {
	ctx := context.Background()
	storage := mocks.NewStorage(t)
	storage.On("Upload", ctx, mock.AnythingOfType("string"), mock.Anything).Return(errors.New("bucket gone"))

	err := NewArchiveHook(storage, "", testutil.MakeNoopLogger()).Merged(ctx, testEvent())
	assert.EqualError(t, err, "failed to upload merge receipt: bucket gone")
}

func TestHookChain(t *testing.T) {
	ctx := context.Background()
	event := testEvent()
	first := errors.New("first")
	third := errors.New("third")

	var calls []string
	chain := HookChain{
		hookFunc(func(context.Context, model.MergeEvent) error {
			calls = append(calls, "1")
			return first
		}),
		NoopHook{},
		hookFunc(func(context.Context, model.MergeEvent) error {
			calls = append(calls, "3")
			return third
		}),
	}

	err := chain.Merged(ctx, event)
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, third)
	assert.Equal(t, []string{"1", "3"}, calls)

	assert.NoError(t, HookChain(nil).Merged(ctx, event))
}

func TestMerger_ArchivesReceipt(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	a := seedAccount(t, store, accountSeed{name: "a"})
	b := seedAccount(t, store, accountSeed{name: "b", roles: []string{"user"}})
	storage := mocks.NewStorage(t)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return len(key) > len("receipts/")
	}), mock.Anything).Return(nil).Once()

	hook := NewArchiveHook(storage, "receipts/", testutil.MakeNoopLogger())
	result, err := newTestMerger(t, store, hook, MergeOptions{HookFailureFatal: true}).Merge(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MergeStatusMerged, result.Status)
}
