package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/placementcell/placement_service/internal/domain"
	"github.com/placementcell/placement_service/internal/dto"
	"github.com/placementcell/placement_service/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotifierFixture() (*fakeNotificationRepo, *fakeProducer, *worker.Pool, NotificationService) {
	repo := newFakeNotificationRepo()
	producer := &fakeProducer{}
	pool := worker.NewPool(1)
	pool.Start(context.Background())
	svc := NewNotificationService(repo, producer, pool, "placements@college.edu", "college.edu")
	return repo, producer, pool, svc
}

func TestDispatchPersistsAndPublishes(t *testing.T) {
	repo, producer, pool, svc := newNotifierFixture()

	err := svc.Dispatch("22BD1A0501", "Placement Verified", "Congratulations!", domain.NotificationSuccess)
	require.NoError(t, err)

	require.Len(t, repo.notifications, 1)
	assert.Equal(t, "22bd1a0501", repo.notifications[0].Recipient)
	assert.Equal(t, domain.NotificationSuccess, repo.notifications[0].Type)
	assert.False(t, repo.notifications[0].Read)

	pool.Stop()
	require.Equal(t, 1, producer.count())

	var event dto.NotificationEvent
	require.NoError(t, json.Unmarshal(producer.published[0], &event))
	assert.Equal(t, "22bd1a0501@college.edu", event.Email)
	assert.Equal(t, "Placement Verified", event.Title)
}

func TestDispatchAdminChannelUsesAdminEmail(t *testing.T) {
	_, producer, pool, svc := newNotifierFixture()

	require.NoError(t, svc.Dispatch("Admin", "New placement submission", "details", domain.NotificationInfo))

	pool.Stop()
	require.Equal(t, 1, producer.count())

	var event dto.NotificationEvent
	require.NoError(t, json.Unmarshal(producer.published[0], &event))
	assert.Equal(t, domain.RecipientAdmin, event.Recipient)
	assert.Equal(t, "placements@college.edu", event.Email)
}

func TestDispatchSurvivesPublishFailure(t *testing.T) {
	repo, producer, pool, svc := newNotifierFixture()
	producer.err = errors.New("broker down")

	err := svc.Dispatch("22BD1A0501", "Placement Verified", "msg", domain.NotificationSuccess)
	require.NoError(t, err)

	// The persisted row is the source of truth even when email delivery
	// can never happen.
	require.Len(t, repo.notifications, 1)
	pool.Stop()
}

func TestDispatchDefaultsUnknownType(t *testing.T) {
	repo, _, pool, svc := newNotifierFixture()
	defer pool.Stop()

	require.NoError(t, svc.Dispatch("22BD1A0501", "Hello", "msg", "shiny"))
	require.Len(t, repo.notifications, 1)
	assert.Equal(t, domain.NotificationInfo, repo.notifications[0].Type)
}

func TestDispatchRejectsEmptyRecipientOrTitle(t *testing.T) {
	_, _, pool, svc := newNotifierFixture()
	defer pool.Stop()

	assert.Error(t, svc.Dispatch("", "Hello", "msg", domain.NotificationInfo))
	assert.Error(t, svc.Dispatch("22BD1A0501", "  ", "msg", domain.NotificationInfo))
}

func TestFeedCapsAtTwentyAndCountsUnread(t *testing.T) {
	_, _, pool, svc := newNotifierFixture()
	defer pool.Stop()

	for i := 0; i < 25; i++ {
		require.NoError(t, svc.Dispatch("22BD1A0501", fmt.Sprintf("title %d", i), "msg", domain.NotificationInfo))
	}
	require.NoError(t, svc.Dispatch("22bd1a0999", "someone else", "msg", domain.NotificationInfo))

	feed, err := svc.Feed("22bd1a0501")
	require.NoError(t, err)

	assert.Len(t, feed.Notifications, 20)
	assert.Equal(t, int64(25), feed.Unread)
	// newest first
	assert.Equal(t, "title 24", feed.Notifications[0].Title)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	repo, _, pool, svc := newNotifierFixture()
	defer pool.Stop()

	require.NoError(t, svc.Dispatch("22BD1A0501", "title", "msg", domain.NotificationInfo))
	id := repo.notifications[0].ID

	require.NoError(t, svc.MarkRead("22bd1a0501", &id))
	require.NoError(t, svc.MarkRead("22bd1a0501", &id))
	assert.True(t, repo.notifications[0].Read)

	missing := id + 100
	assert.ErrorIs(t, svc.MarkRead("22bd1a0501", &missing), ErrNotFound)
}

func TestMarkReadNilIDMarksEverything(t *testing.T) {
	_, _, pool, svc := newNotifierFixture()
	defer pool.Stop()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Dispatch("22BD1A0501", "title", "msg", domain.NotificationInfo))
	}

	require.NoError(t, svc.MarkRead("22BD1A0501", nil))

	feed, err := svc.Feed("22bd1a0501")
	require.NoError(t, err)
	assert.Equal(t, int64(0), feed.Unread)
}

func TestNormalizeRecipient(t *testing.T) {
	assert.Equal(t, domain.RecipientAdmin, NormalizeRecipient("ADMIN"))
	assert.Equal(t, domain.RecipientAdmin, NormalizeRecipient(" admin "))
	assert.Equal(t, "22bd1a0501", NormalizeRecipient("22BD1A0501"))
}
