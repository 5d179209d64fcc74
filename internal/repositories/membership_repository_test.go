package repositories

import (
	"testing"
	"time"

	"memberhub_backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembershipRepository_HasOverlapping(t *testing.T) {
	db := setupDB(t)
	repo := NewMembershipRepository()

	biz := seedBusiness(t, db, "gym")
	member := seedMember(t, db, biz.ID, "Ann", "Lee")
	plan := seedPlan(t, db, biz.ID, "29.99", 30)
	existing := seedMembership(t, db, member, plan, baseTime, models.MembershipStatusActive)

	jan15 := baseTime.AddDate(0, 0, 14)
	overlap, err := repo.HasOverlapping(db, member.ID, jan15, jan15.AddDate(0, 0, 30), "")
	require.NoError(t, err)
	assert.True(t, overlap, "range starting inside the existing one overlaps")

	overlap, err = repo.HasOverlapping(db, member.ID, existing.ExpiryDate, existing.ExpiryDate.AddDate(0, 0, 30), "")
	require.NoError(t, err)
	assert.True(t, overlap, "touching boundaries count as overlap")

	after := existing.ExpiryDate.Add(time.Second)
	overlap, err = repo.HasOverlapping(db, member.ID, after, after.AddDate(0, 0, 30), "")
	require.NoError(t, err)
	assert.False(t, overlap)

	overlap, err = repo.HasOverlapping(db, member.ID, jan15, jan15.AddDate(0, 0, 30), existing.ID)
	require.NoError(t, err)
	assert.False(t, overlap, "excluded membership is ignored")
}

func TestMembershipRepository_HasOverlapping_MatchesModel(t *testing.T) {
	db := setupDB(t)
	repo := NewMembershipRepository()

	biz := seedBusiness(t, db, "gym")
	member := seedMember(t, db, biz.ID, "Ann", "Lee")
	plan := seedPlan(t, db, biz.ID, "10", 30)
	existing := seedMembership(t, db, member, plan, baseTime, models.MembershipStatusActive)

	start, expiry := existing.StartDate, existing.ExpiryDate
	ranges := []struct {
		name       string
		start, end time.Time
	}{
		{"starts inside", start.AddDate(0, 0, 10), expiry.AddDate(0, 0, 10)},
		{"ends inside", start.AddDate(0, 0, -10), start.AddDate(0, 0, 5)},
		{"contains existing", start.AddDate(0, 0, -1), expiry.AddDate(0, 0, 1)},
		{"inside existing", start.AddDate(0, 0, 5), expiry.AddDate(0, 0, -5)},
		{"touches expiry", expiry, expiry.AddDate(0, 0, 30)},
		{"touches start", start.AddDate(0, 0, -30), start},
		{"entirely after", expiry.Add(time.Second), expiry.AddDate(0, 0, 30)},
		{"entirely before", start.AddDate(0, 0, -30), start.Add(-time.Second)},
	}

	for _, r := range ranges {
		t.Run(r.name, func(t *testing.T) {
			overlap, err := repo.HasOverlapping(db, member.ID, r.start, r.end, "")
			require.NoError(t, err)
			assert.Equal(t, existing.Overlaps(r.start, r.end), overlap)
		})
	}
}

func TestMembershipRepository_FindByIDForUpdate(t *testing.T) {
	db := setupDB(t)
	repo := NewMembershipRepository()

	biz := seedBusiness(t, db, "gym")
	other := seedBusiness(t, db, "pool")
	member := seedMember(t, db, biz.ID, "Ann", "Lee")
	plan := seedPlan(t, db, biz.ID, "10", 30)
	m := seedMembership(t, db, member, plan, baseTime, models.MembershipStatusActive)

	tx := db.Begin()
	defer tx.Rollback()

	found, err := repo.FindByIDForUpdate(tx, biz.ID, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, found.ID)

	_, err = repo.FindByIDForUpdate(tx, other.ID, m.ID)
	assert.ErrorIs(t, err, ErrMembershipNotFound)
}

func TestMembershipRepository_HasOverlapping_IgnoresInactive(t *testing.T) {
	db := setupDB(t)
	repo := NewMembershipRepository()

	biz := seedBusiness(t, db, "gym")
	member := seedMember(t, db, biz.ID, "Ann", "Lee")
	plan := seedPlan(t, db, biz.ID, "10", 30)
	seedMembership(t, db, member, plan, baseTime, models.MembershipStatusExpired)
	seedMembership(t, db, member, plan, baseTime, models.MembershipStatusCancelled)
	deleted := seedMembership(t, db, member, plan, baseTime, models.MembershipStatusActive)
	require.NoError(t, db.Model(deleted).Update("is_deleted", true).Error)

	overlap, err := repo.HasOverlapping(db, member.ID, baseTime, baseTime.AddDate(0, 0, 30), "")
	require.NoError(t, err)
	assert.False(t, overlap)
}

func TestMembershipRepository_TimeWindows(t *testing.T) {
	db := setupDB(t)
	repo := NewMembershipRepository()

	biz := seedBusiness(t, db, "gym")
	other := seedBusiness(t, db, "pool")
	plan := seedPlan(t, db, biz.ID, "10", 30)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	a := seedMember(t, db, biz.ID, "A", "A")
	b := seedMember(t, db, biz.ID, "B", "B")
	c := seedMember(t, db, biz.ID, "C", "C")
	d := seedMember(t, db, biz.ID, "D", "D")
	x := seedMember(t, db, other.ID, "X", "X")

	// expires in 2 days
	soon := seedMembership(t, db, a, plan, now.AddDate(0, 0, -28), models.MembershipStatusActive)
	// expires in 20 days
	later := seedMembership(t, db, b, plan, now.AddDate(0, 0, -10), models.MembershipStatusActive)
	// past expiry but still flagged active
	stale := seedMembership(t, db, c, plan, now.AddDate(0, 0, -40), models.MembershipStatusActive)
	// already expired
	expired := seedMembership(t, db, d, plan, now.AddDate(0, 0, -90), models.MembershipStatusExpired)
	// another tenant
	seedMembership(t, db, x, plan, now.AddDate(0, 0, -28), models.MembershipStatusActive)

	active, err := repo.FindActive(db, biz.ID, now)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{soon.ID, later.ID}, ids(active))

	exp, err := repo.FindExpired(db, biz.ID, now)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{stale.ID, expired.ID}, ids(exp))

	week, err := repo.FindExpiringWithin(db, biz.ID, now, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{soon.ID}, ids(week))

	month, err := repo.FindExpiringWithin(db, biz.ID, now, 30)
	require.NoError(t, err)
	assert.Equal(t, []string{soon.ID, later.ID}, ids(month), "ordered soonest first")

	count, err := repo.CountExpiringWithin(db, biz.ID, now, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	activeMembers, err := repo.CountDistinctActiveMembers(db, biz.ID, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), activeMembers)

	expiredMembers, err := repo.CountDistinctExpiredMembers(db, biz.ID, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), expiredMembers)
}

func TestMembershipRepository_SumOutstanding(t *testing.T) {
	db := setupDB(t)
	repo := NewMembershipRepository()

	biz := seedBusiness(t, db, "gym")
	plan := seedPlan(t, db, biz.ID, "29.99", 30)
	m1 := seedMembership(t, db, seedMember(t, db, biz.ID, "A", "A"), plan, baseTime, models.MembershipStatusActive)
	seedMembership(t, db, seedMember(t, db, biz.ID, "B", "B"), plan, baseTime, models.MembershipStatusActive)

	require.NoError(t, repo.UpdatePaidAmount(db, m1.ID, decimal.RequireFromString("15.00"), baseTime))

	total, err := repo.SumOutstanding(db, biz.ID, baseTime.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "44.98", total.StringFixed(2))
}

func TestMembershipRepository_MarkExpiredIsGuarded(t *testing.T) {
	db := setupDB(t)
	repo := NewMembershipRepository()

	biz := seedBusiness(t, db, "gym")
	plan := seedPlan(t, db, biz.ID, "10", 30)
	m := seedMembership(t, db, seedMember(t, db, biz.ID, "A", "A"), plan, baseTime, models.MembershipStatusActive)
	cancelled := seedMembership(t, db, seedMember(t, db, biz.ID, "B", "B"), plan, baseTime, models.MembershipStatusCancelled)

	now := baseTime.AddDate(0, 2, 0)

	changed, err := repo.MarkExpired(db, m.ID, now)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.MarkExpired(db, m.ID, now)
	require.NoError(t, err)
	assert.False(t, changed, "second call is a no-op")

	changed, err = repo.MarkExpired(db, cancelled.ID, now)
	require.NoError(t, err)
	assert.False(t, changed, "cancelled rows are not touched")

	due, err := repo.FindDueForExpiry(db, now, 0)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestMembershipRepository_FindByID_TenantScoped(t *testing.T) {
	db := setupDB(t)
	repo := NewMembershipRepository()

	biz := seedBusiness(t, db, "gym")
	other := seedBusiness(t, db, "pool")
	plan := seedPlan(t, db, biz.ID, "10", 30)
	m := seedMembership(t, db, seedMember(t, db, biz.ID, "A", "A"), plan, baseTime, models.MembershipStatusActive)

	_, err := repo.FindByID(db, other.ID, m.ID)
	assert.ErrorIs(t, err, ErrMembershipNotFound)

	found, err := repo.FindByID(db, biz.ID, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "10.00", found.TotalAmount.StringFixed(2))
}

func ids(ms []models.Membership) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ID)
	}
	return out
}
