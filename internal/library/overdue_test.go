package library

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_ScanOverdue(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestService(t)
	seedBook(t, svc, "111", "Dune", "Frank Herbert", 1)
	seedBook(t, svc, "222", "Emma", "Jane Austen", 1)
	seedMember(t, svc, "M1", "Ann")

	_, err := svc.Borrow(ctx, "M1", "111")
	require.NoError(t, err)

	result, err := svc.ScanOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, ScanResult{}, result)

	clock.advanceDays(8)
	_, err = svc.Borrow(ctx, "M1", "222")
	require.NoError(t, err)

	result, err = svc.ScanOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, ScanResult{Overdue: 1, Recorded: 1}, result)

	result, err = svc.ScanOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, ScanResult{Overdue: 1, Recorded: 0}, result, "second scan is idempotent")

	notices, err := svc.ListMemberNotices(ctx, "M1")
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, "111", notices[0].ISBN)

	_, err = svc.ListMemberNotices(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
