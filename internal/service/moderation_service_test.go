package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bragboard/internal/domain"
	apperrors "github.com/spec-kit/bragboard/pkg/util/errorutil"
)

func TestReportMarksCleanShoutout(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Sales")
	posted := f.post(t, "u-alice", "questionable joke", "u-bob")

	status, err := f.moderation.Report(context.Background(), posted.ID, "u-bob")
	require.NoError(t, err)
	assert.Equal(t, domain.ModerationStatusReported, status)

	got, err := f.shoutouts.Get(context.Background(), posted.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ModerationStatusReported, got.ModerationStatus)
}

func TestReportIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Sales")
	f.addUser(t, "u-cara", "Cara", "Support")
	posted := f.post(t, "u-alice", "questionable joke", "u-bob")

	ctx := context.Background()
	_, err := f.moderation.Report(ctx, posted.ID, "u-bob")
	require.NoError(t, err)

	// a second reporter gets the current status back, not an error
	status, err := f.moderation.Report(ctx, posted.ID, "u-cara")
	require.NoError(t, err)
	assert.Equal(t, domain.ModerationStatusReported, status)
}

func TestReportAfterDismissKeepsDismissed(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Sales")
	posted := f.post(t, "u-alice", "questionable joke", "u-bob")

	ctx := context.Background()
	_, err := f.moderation.Report(ctx, posted.ID, "u-bob")
	require.NoError(t, err)
	_, err = f.moderation.Dismiss(ctx, "u-admin", posted.ID)
	require.NoError(t, err)

	status, err := f.moderation.Report(ctx, posted.ID, "u-bob")
	require.NoError(t, err)
	assert.Equal(t, domain.ModerationStatusDismissed, status)
}

func TestReportMissingShoutout(t *testing.T) {
	f := newFixture(t)

	_, err := f.moderation.Report(context.Background(), "missing-id", "u-bob")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestDismissRequiresReportedState(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Sales")
	posted := f.post(t, "u-alice", "all fine here", "u-bob")

	_, err := f.moderation.Dismiss(context.Background(), "u-admin", posted.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "INVALID_TRANSITION"))

	_, err = f.moderation.Dismiss(context.Background(), "u-admin", "missing-id")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestDismissResolvesReport(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Sales")
	posted := f.post(t, "u-alice", "questionable joke", "u-bob")

	ctx := context.Background()
	_, err := f.moderation.Report(ctx, posted.ID, "u-bob")
	require.NoError(t, err)

	dismissed, err := f.moderation.Dismiss(ctx, "u-admin", posted.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ModerationStatusDismissed, dismissed.ModerationStatus)

	// dismissing twice fails: the post is no longer reported
	_, err = f.moderation.Dismiss(ctx, "u-admin", posted.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "INVALID_TRANSITION"))
}

func TestDeleteRemovesShoutoutFromAnyState(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Sales")

	ctx := context.Background()

	clean := f.post(t, "u-alice", "clean post", "u-bob")
	require.NoError(t, f.moderation.Delete(ctx, "u-admin", clean.ID))

	reported := f.post(t, "u-alice", "reported post", "u-bob")
	_, err := f.moderation.Report(ctx, reported.ID, "u-bob")
	require.NoError(t, err)
	require.NoError(t, f.moderation.Delete(ctx, "u-admin", reported.ID))

	_, err = f.shoutouts.Get(ctx, clean.ID)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
	_, err = f.shoutouts.Get(ctx, reported.ID)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	err = f.moderation.Delete(ctx, "u-admin", "missing-id")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestModerationWritesAuditTrail(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "u-alice", "Alice", "Engineering")
	f.addUser(t, "u-bob", "Bob", "Sales")
	posted := f.post(t, "u-alice", "questionable joke", "u-bob")

	ctx := context.Background()
	_, err := f.moderation.Report(ctx, posted.ID, "u-bob")
	require.NoError(t, err)
	_, err = f.moderation.Dismiss(ctx, "u-admin", posted.ID)
	require.NoError(t, err)
	require.NoError(t, f.moderation.Delete(ctx, "u-admin", posted.ID))

	entries, err := f.audit.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// newest first
	assert.Equal(t, domain.AuditActionShoutoutDeleted, entries[0].Action)
	assert.Equal(t, domain.AuditActionReportDismissed, entries[1].Action)
	assert.Equal(t, posted.ID, entries[0].TargetID)
	assert.Equal(t, "u-admin", entries[0].AdminID)
}
