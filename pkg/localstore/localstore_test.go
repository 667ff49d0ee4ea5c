package localstore

import (
	"testing"
	"time"

	"skill-exchange/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGetDelete(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put("k", "v1"))
	require.NoError(t, s.Put("k", "v2")) // 后写覆盖先写

	v, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)

	require.NoError(t, s.Delete("k"))
	require.NoError(t, s.Delete("k")) // 删除不存在的键不算错误

	_, ok, err = s.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserRoundTrip(t *testing.T) {
	s := openTestStore(t)

	assert.Nil(t, s.LoadUser())

	u := &model.User{
		ID:               model.NewRemoteID(),
		Name:             "Zhang Wei",
		Skills:           []string{"Go", "MySQL"},
		ProfileCompleted: true,
	}
	require.NoError(t, s.SaveUser(u))

	loaded := s.LoadUser()
	require.NotNil(t, loaded)
	assert.Equal(t, u.ID, loaded.ID)
	assert.Equal(t, u.Skills, loaded.Skills)
	assert.True(t, loaded.ProfileCompleted)

	require.NoError(t, s.DeleteUser())
	assert.Nil(t, s.LoadUser())
}

func TestCorruptUserRecordDiscarded(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put(KeyUser, "{not valid json"))

	assert.Nil(t, s.LoadUser())

	// 损坏条目已被丢弃
	_, ok, err := s.Get(KeyUser)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddFriendIfAbsentIsIdempotent(t *testing.T) {
	s := openTestStore(t)

	assert.Empty(t, s.LoadFriends())

	f := model.NewFriend(model.CreatorProfile())

	added, err := s.AddFriendIfAbsent(f)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.AddFriendIfAbsent(f)
	require.NoError(t, err)
	assert.False(t, added)

	friends := s.LoadFriends()
	require.Len(t, friends, 1)
	assert.Equal(t, model.CreatorID, friends[0].ID)
	assert.Equal(t, model.FriendStatusAccepted, friends[0].Status)
}

func TestCorruptFriendsListDiscarded(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put(KeyFriends, "[broken"))

	assert.Empty(t, s.LoadFriends())

	added, err := s.AddFriendIfAbsent(model.NewFriend(model.CreatorProfile()))
	require.NoError(t, err)
	assert.True(t, added)
}

func TestConnectionCounterResetsOnNewDay(t *testing.T) {
	s := openTestStore(t)

	day1 := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	assert.Equal(t, 0, s.ConnectionsToday(day1))

	n, err := s.IncrementConnections(day1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.IncrementConnections(day1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, s.ConnectionsToday(day1))

	// 隔天计数归零
	assert.Equal(t, 0, s.ConnectionsToday(day2))

	n, err = s.IncrementConnections(day2)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCorruptConnectionCounterResets(t *testing.T) {
	s := openTestStore(t)

	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Put(KeyLastConnectionDate, now.Format("2006-01-02")))
	require.NoError(t, s.Put(KeyConnectionsToday, "not-a-number"))

	assert.Equal(t, 0, s.ConnectionsToday(now))
}
