package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberDecodesLegacyString(t *testing.T) {
	var m Member
	require.NoError(t, json.Unmarshal([]byte(`"alice@x.com"`), &m))
	assert.Equal(t, Member{Name: "alice", Email: "alice@x.com"}, m)
}

func TestMemberDecodesCanonicalObject(t *testing.T) {
	var m Member
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Bob","email":"bob@x.com"}`), &m))
	assert.Equal(t, Member{Name: "Bob", Email: "bob@x.com"}, m)
}

func TestMemberLegacyNameWithoutAt(t *testing.T) {
	var m Member
	require.NoError(t, json.Unmarshal([]byte(`"nodomain"`), &m))
	assert.Equal(t, "nodomain", m.Name)
	assert.Equal(t, "nodomain", m.Email)
}

func TestMemberMatches(t *testing.T) {
	m := Member{Name: "Alice", Email: "alice@x.com"}
	assert.True(t, m.Matches("ALICE@X.COM"))
	assert.False(t, m.Matches("bob@x.com"))
}
