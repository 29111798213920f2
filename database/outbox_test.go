package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxLifecycle(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)
	ctx := context.Background()

	first, err := EnqueueEmail(ctx, db, "ENROLLMENT", "a@example.com", "hello", "<p>hi</p>", errors.New("smtp down"))
	require.NoError(t, err)
	assert.Equal(t, 1, first.Attempts)
	assert.Equal(t, "smtp down", first.LastError)

	second, err := EnqueueEmail(ctx, db, "ENROLLMENT", "b@example.com", "hello", "<p>hi</p>", nil)
	require.NoError(t, err)

	pending, err := FetchPendingEmails(ctx, db, 5, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.ID, pending[0].ID, "oldest row comes first")

	require.NoError(t, MarkEmailSent(ctx, db, first.ID))
	require.NoError(t, MarkEmailFailed(ctx, db, second.ID, errors.New("mailbox full")))

	pending, err = FetchPendingEmails(ctx, db, 5, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)
	assert.Equal(t, 2, pending[0].Attempts)
	assert.Equal(t, "mailbox full", pending[0].LastError)

	// Exhausted rows are no longer returned.
	pending, err = FetchPendingEmails(ctx, db, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("oracle", "whatever")
	assert.Error(t, err)
}
