package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSession_CloneIsDeep(t *testing.T) {
	t.Parallel()

	id := int64(7)
	name, tok := "bob", "t"
	s := Session{ProfileID: &id, Username: &name, Token: &tok, Roles: []string{"ALUMNI"}, IsAuthenticated: true}

	c := s.Clone()
	require.Equal(t, s, c)

	*c.ProfileID = 8
	*c.Username = "eve"
	c.Roles[0] = "ADMIN"
	require.Equal(t, int64(7), *s.ProfileID)
	require.Equal(t, "bob", *s.Username)
	require.Equal(t, "ALUMNI", s.Roles[0])
}

func TestSession_CloneKeepsNilRoles(t *testing.T) {
	t.Parallel()

	require.Nil(t, Session{}.Clone().Roles)
	require.NotNil(t, Session{Roles: []string{}}.Clone().Roles)
}

func TestSession_BearerToken(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", Session{}.BearerToken())
	tok := "abc"
	require.Equal(t, "abc", Session{Token: &tok}.BearerToken())
}
