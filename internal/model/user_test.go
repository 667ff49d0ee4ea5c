package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMergesOnlyProvidedFields(t *testing.T) {
	u := &User{
		Name:   "Zhang Wei",
		Bio:    "old bio",
		Skills: []string{"Go"},
	}

	bio := "new bio"
	u.Apply(UserUpdate{
		Bio:    &bio,
		Skills: []string{"Go", "MySQL"},
	})

	assert.Equal(t, "Zhang Wei", u.Name) // 未提供的字段保持不变
	assert.Equal(t, "new bio", u.Bio)
	assert.Equal(t, []string{"Go", "MySQL"}, u.Skills)
}

func TestApplyNilSliceLeavesExisting(t *testing.T) {
	u := &User{Skills: []string{"Go"}}

	name := "Li Lei"
	u.Apply(UserUpdate{Name: &name})

	assert.Equal(t, []string{"Go"}, u.Skills)
}

func TestCloneIsDeep(t *testing.T) {
	var nilUser *User
	assert.Nil(t, nilUser.Clone())

	u := &User{
		ID:     "u1",
		Skills: []string{"Go"},
	}
	c := u.Clone()
	require.NotNil(t, c)

	c.Skills[0] = "Rust"
	c.Name = "changed"

	assert.Equal(t, "Go", u.Skills[0])
	assert.Empty(t, u.Name)
}

func TestNewFriendIsAcceptedCopy(t *testing.T) {
	u := CreatorProfile()
	f := NewFriend(u)

	assert.Equal(t, CreatorID, f.ID)
	assert.Equal(t, FriendStatusAccepted, f.Status)
	assert.False(t, f.FriendshipDate.IsZero())

	// 好友记录持有副本
	f.User.Skills[0] = "changed"
	assert.NotEqual(t, "changed", u.Skills[0])
}
