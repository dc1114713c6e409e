package notices

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/smartlibrary/internal/database/dbtest"
	"github.com/mrlokans/smartlibrary/internal/entities"
)

func TestRepository_RecordIsIdempotent(t *testing.T) {
	repo := NewRepository(dbtest.New(t).DB)
	due := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)

	created, err := repo.Record(&entities.OverdueNotice{LoanID: 7, MemberID: "M1", ISBN: "111", DueDate: due})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Record(&entities.OverdueNotice{LoanID: 7, MemberID: "M1", ISBN: "111", DueDate: due})
	require.NoError(t, err)
	assert.False(t, created)

	list, err := repo.ListForMember("M1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, uint(7), list[0].LoanID)
}
