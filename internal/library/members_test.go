package library

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/smartlibrary/internal/entities"
)

func TestService_AddMember(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	member, err := svc.AddMember(ctx, NewMember{MemberID: "M1", Name: "Ann", Email: ptr("ann@example.com")})
	require.NoError(t, err)
	assert.Equal(t, entities.MemberRoleMember, member.Role)

	_, err = svc.AddMember(ctx, NewMember{MemberID: "M1", Name: "Somebody"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, StatusMemberExists, StatusOf(err))

	_, err = svc.AddMember(ctx, NewMember{MemberID: "", Name: "Nobody"})
	assert.ErrorIs(t, err, ErrValidation)

	blank, err := svc.AddMember(ctx, NewMember{MemberID: "M2", Name: "Bob", Email: ptr(" ")})
	require.NoError(t, err)
	assert.Nil(t, blank.Email)
}

func TestService_ListAndGetMembers(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	seedMember(t, svc, "M2", "Zoe")
	seedMember(t, svc, "M1", "Ann")

	list, err := svc.ListMembers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ann", list[0].Name)
	assert.Equal(t, entities.MemberRoleMember, list[0].Role)

	member, err := svc.GetMember(ctx, "M2")
	require.NoError(t, err)
	assert.Equal(t, "Zoe", member.Name)

	_, err = svc.GetMember(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, StatusMemberNotFound, StatusOf(err))
}
