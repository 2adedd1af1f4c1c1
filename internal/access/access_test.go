package access

import (
	"path/filepath"
	"testing"

	"github.com/averix/kanvas/internal/db"
	"github.com/averix/kanvas/internal/errs"
	"github.com/averix/kanvas/internal/model"
	"github.com/averix/kanvas/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	s := store.New(database)
	return NewService(s), s
}

var (
	owner    = model.User{ID: "owner1", Name: "Olga", Email: "olga@x.com"}
	member   = model.User{ID: "member1", Name: "Alice", Email: "ALICE@X.COM"}
	stranger = model.User{ID: "stranger1", Name: "Eve", Email: "eve@x.com"}
)

func TestGrantAndCanView(t *testing.T) {
	svc, _ := newTestService(t)

	m, err := svc.Grant(owner, "Alice", "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", m.Email)

	// Match is case-insensitive on both sides.
	ok, err := svc.CanView(member, owner.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanView(stranger, owner.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// Owners always see their own boards.
	ok, err = svc.CanView(owner, owner.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGrantStoresLowercasedEmail(t *testing.T) {
	svc, st := newTestService(t)
	_, err := svc.Grant(owner, "Alice", "Alice@X.com")
	require.NoError(t, err)

	members, err := st.MembersOf(owner.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "alice@x.com", members[0].Email)
}

func TestGrantReducesDisplayNameForm(t *testing.T) {
	svc, st := newTestService(t)

	// RFC 5322 display-name input stores only the bare address, so
	// the grant matches the person's login email.
	_, err := svc.Grant(owner, "", "Alice Smith <alice@x.com>")
	require.NoError(t, err)

	members, err := st.MembersOf(owner.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "alice@x.com", members[0].Email)
	assert.Equal(t, "alice", members[0].Name)

	ok, err := svc.CanView(member, owner.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// The bare form of the same address is now a duplicate.
	_, err = svc.Grant(owner, "Alice", "alice@x.com")
	assert.ErrorIs(t, err, errs.ErrDuplicateGrant)

	// A display-name wrapper around the owner's own address is still
	// a self grant.
	_, err = svc.Grant(owner, "", "Me <OLGA@x.com>")
	assert.ErrorIs(t, err, errs.ErrSelfGrant)
}

func TestAuthorize(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Grant(owner, "Alice", "alice@x.com")
	require.NoError(t, err)

	require.NoError(t, svc.Authorize(owner, owner.ID))
	require.NoError(t, svc.Authorize(member, owner.ID))
	assert.ErrorIs(t, svc.Authorize(stranger, owner.ID), errs.ErrUnauthorized)
}

func TestGrantValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Grant(owner, "X", "not-an-address")
	assert.ErrorIs(t, err, errs.ErrInvalidEmail)

	_, err = svc.Grant(owner, "Me", "OLGA@x.com")
	assert.ErrorIs(t, err, errs.ErrSelfGrant)

	_, err = svc.Grant(owner, "Alice", "alice@x.com")
	require.NoError(t, err)
	_, err = svc.Grant(owner, "Alice again", "ALICE@x.com")
	assert.ErrorIs(t, err, errs.ErrDuplicateGrant)
}

func TestRevoke(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Grant(owner, "Alice", "alice@x.com")
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(owner.ID, "ALICE@X.COM"))
	ok, err := svc.CanView(member, owner.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// Revoking an absent grant is silent.
	require.NoError(t, svc.Revoke(owner.ID, "ghost@x.com"))
}

func TestOwnerSet(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Grant(owner, "Alice", "alice@x.com")
	require.NoError(t, err)

	owners, err := svc.OwnerSet(member)
	require.NoError(t, err)
	assert.True(t, owners[member.ID])
	assert.True(t, owners[owner.ID])
	assert.Len(t, owners, 2)

	owners, err = svc.OwnerSet(stranger)
	require.NoError(t, err)
	assert.Len(t, owners, 1)
}

func TestIsMember(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Grant(owner, "Alice", "alice@x.com")
	require.NoError(t, err)

	got, err := svc.IsMember(member)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = svc.IsMember(stranger)
	require.NoError(t, err)
	assert.False(t, got)

	// Appearing in your own list does not make you a member elsewhere.
	got, err = svc.IsMember(owner)
	require.NoError(t, err)
	assert.False(t, got)
}
