package store

import (
	"encoding/json"
	"testing"

	"github.com/averix/kanvas/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrantsAcceptLegacyShape(t *testing.T) {
	s := newTestStore(t)
	// Old installs stored plain email strings; current ones store
	// {name,email} records. Both coexist in the same value.
	legacy := `{"owner1":["alice@x.com",{"name":"Bob","email":"bob@x.com"}]}`
	require.NoError(t, s.kv.Put("authorizedEmails", legacy))

	members, err := s.MembersOf("owner1")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, model.Member{Name: "alice", Email: "alice@x.com"}, members[0])
	assert.Equal(t, model.Member{Name: "Bob", Email: "bob@x.com"}, members[1])

	// Reading alone must not rewrite the stored legacy value.
	raw, ok, err := s.kv.Get("authorizedEmails")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, legacy, raw)
}

func TestMutationUpgradesLegacyShape(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.kv.Put("authorizedEmails", `{"owner1":["alice@x.com"]}`))

	require.NoError(t, s.AddMember("owner1", model.Member{Name: "Carol", Email: "carol@x.com"}))

	raw, ok, err := s.kv.Get("authorizedEmails")
	require.NoError(t, err)
	require.True(t, ok)

	var grants map[string][]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &grants))
	for _, entry := range grants["owner1"] {
		assert.Equal(t, byte('{'), entry[0], "every persisted entry is canonical after a mutation")
	}
}

func TestRemoveMemberIsCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddMember("owner1", model.Member{Name: "Alice", Email: "alice@x.com"}))

	require.NoError(t, s.RemoveMember("owner1", "ALICE@X.COM"))
	members, err := s.MembersOf("owner1")
	require.NoError(t, err)
	assert.Empty(t, members)

	// Absent grants remove silently.
	require.NoError(t, s.RemoveMember("owner1", "ghost@x.com"))
}
