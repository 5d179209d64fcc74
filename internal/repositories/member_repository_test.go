package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberRepository_FindPagedSearch(t *testing.T) {
	db := setupDB(t)
	repo := NewMemberRepository()

	biz := seedBusiness(t, db, "gym")
	other := seedBusiness(t, db, "pool")
	seedMember(t, db, biz.ID, "Alice", "Zeta")
	seedMember(t, db, biz.ID, "Bob", "Alpha")
	seedMember(t, db, biz.ID, "Carol", "Alvarez")
	seedMember(t, db, other.ID, "Alan", "Alpha")

	members, total, err := repo.FindPaged(db, biz.ID, MemberCriteria{Search: "AL"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, members, 3)
	assert.Equal(t, "Alpha", members[0].LastName)
	assert.Equal(t, "Alvarez", members[1].LastName)

	members, total, err = repo.FindPaged(db, biz.ID, MemberCriteria{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, members, 1)
	assert.Equal(t, "Zeta", members[0].LastName)
}

func TestMemberRepository_DeactivateKeepsRow(t *testing.T) {
	db := setupDB(t)
	repo := NewMemberRepository()

	biz := seedBusiness(t, db, "gym")
	other := seedBusiness(t, db, "pool")
	member := seedMember(t, db, biz.ID, "Alice", "Zeta")

	assert.ErrorIs(t, repo.Deactivate(db, other.ID, member.ID), ErrMemberNotFound)
	require.NoError(t, repo.Deactivate(db, biz.ID, member.ID))

	found, err := repo.FindByIDForUpdate(db, biz.ID, member.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)

	count, err := repo.CountByBusiness(db, biz.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
