package appstate

import (
	"errors"
	"sync"
	"testing"

	"skill-exchange/config"
	"skill-exchange/internal/model"
	"skill-exchange/pkg/localstore"
	"skill-exchange/pkg/sessionstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRemote 记录全部远端调用，可注入错误
type fakeRemote struct {
	mu sync.Mutex

	err error

	upserts       []*model.User
	updates       []string
	requests      []*model.FriendRequest
	statusChanges map[string]string
	signOuts      []string
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{statusChanges: make(map[string]string)}
}

func (f *fakeRemote) UpsertUser(u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts = append(f.upserts, u)
	return f.err
}

func (f *fakeRemote) UpdateUser(id string, upd model.UserUpdate, profileCompleted *bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, id)
	return f.err
}

func (f *fakeRemote) InsertFriendRequest(req *model.FriendRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.err
}

func (f *fakeRemote) UpdateFriendRequestStatus(id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusChanges[id] = status
	return f.err
}

func (f *fakeRemote) SignOut(userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signOuts = append(f.signOuts, userID)
	return f.err
}

func (f *fakeRemote) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.upserts) + len(f.updates) + len(f.requests) + len(f.statusChanges) + len(f.signOuts)
}

// fakeExporter 记录导出调用，可注入错误
type fakeExporter struct {
	err      error
	exported [][]model.ChatMessage
}

func (f *fakeExporter) Export(user *model.User, messages []model.ChatMessage) error {
	f.exported = append(f.exported, messages)
	return f.err
}

func testConfig() config.SessionConfig {
	return config.SessionConfig{
		DailyConnectionLimit: 3,
	}
}

func newTestController(t *testing.T, remote Remote, exporter Exporter) (*Controller, *localstore.Store) {
	t.Helper()
	local, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { local.Close() })

	c := New(testConfig(), local, sessionstore.NewMemoryStore(), remote, exporter,
		WithSynchronousMirror())
	return c, local
}

func remoteUser() *model.User {
	return &model.User{
		ID:    model.NewRemoteID(),
		Name:  "Zhang Wei",
		Email: "zhangwei@example.com",
	}
}

func demoUser() *model.User {
	return &model.User{
		ID:    "local-zhangwei-at-example.com",
		Email: "zhangwei@example.com",
	}
}

func TestLoginIncompleteProfileRoutesToProfileSetup(t *testing.T) {
	remote := newFakeRemote()
	c, local := newTestController(t, remote, nil)

	c.Login(remoteUser())

	assert.True(t, c.IsAuthenticated())
	assert.Equal(t, model.PageProfileSetup, c.CurrentPage())

	// 用户记录已落盘
	saved := local.LoadUser()
	require.NotNil(t, saved)
	assert.False(t, saved.ProfileCompleted)

	// 远端用户镜像了一次upsert
	assert.Len(t, remote.upserts, 1)
}

func TestLoginCompletedProfileRoutesToDashboard(t *testing.T) {
	remote := newFakeRemote()
	c, local := newTestController(t, remote, nil)

	u := remoteUser()
	u.ProfileCompleted = true
	c.Login(u)

	assert.Equal(t, model.PageDashboard, c.CurrentPage())

	// 已完善用户登录时同样保证平台创建者好友存在
	friends := local.LoadFriends()
	require.Len(t, friends, 1)
	assert.Equal(t, model.CreatorID, friends[0].ID)
}

func TestSubscriberSeesConsistentSnapshot(t *testing.T) {
	c, _ := newTestController(t, newFakeRemote(), nil)

	var snaps []Snapshot
	c.Subscribe(func(s Snapshot) { snaps = append(snaps, s) })

	c.Login(remoteUser())

	require.Len(t, snaps, 1)
	assert.True(t, snaps[0].Authenticated)
	assert.Equal(t, model.PageProfileSetup, snaps[0].Page)
	require.NotNil(t, snaps[0].User)
}

func TestCompleteProfileRoutesToDashboardAndAddsCreatorFriendOnce(t *testing.T) {
	remote := newFakeRemote()
	c, local := newTestController(t, remote, nil)

	c.Login(remoteUser())

	name := "Zhang Wei"
	upd := model.UserUpdate{
		Name:   &name,
		Skills: []string{"Go", "Cooking"},
	}
	c.CompleteProfile(upd)

	assert.Equal(t, model.PageDashboard, c.CurrentPage())

	user := c.CurrentUser()
	require.NotNil(t, user)
	assert.True(t, user.ProfileCompleted)
	assert.Equal(t, []string{"Go", "Cooking"}, user.Skills)

	// 平台创建者好友幂等插入：重复完善资料不会产生第二条
	c.CompleteProfile(upd)
	friends := local.LoadFriends()
	require.Len(t, friends, 1)
	assert.Equal(t, model.CreatorID, friends[0].ID)
}

func TestCompleteProfileWhileAnonymousIsNoop(t *testing.T) {
	remote := newFakeRemote()
	c, local := newTestController(t, remote, nil)

	name := "Nobody"
	c.CompleteProfile(model.UserUpdate{Name: &name})

	assert.False(t, c.IsAuthenticated())
	assert.Equal(t, model.PageLanding, c.CurrentPage())
	assert.Nil(t, local.LoadUser())
	assert.Zero(t, remote.callCount())
}

func TestUpdateUserWhileAnonymousWritesNothing(t *testing.T) {
	remote := newFakeRemote()
	c, local := newTestController(t, remote, nil)

	name := "Nobody"
	c.UpdateUser(model.UserUpdate{Name: &name})

	assert.Nil(t, local.LoadUser())
	assert.Zero(t, remote.callCount())
}

func TestUpdateUserMergesAndPersists(t *testing.T) {
	c, local := newTestController(t, newFakeRemote(), nil)

	c.Login(remoteUser())

	bio := "Backend engineer"
	c.UpdateUser(model.UserUpdate{Bio: &bio})

	user := c.CurrentUser()
	assert.Equal(t, "Backend engineer", user.Bio)
	assert.Equal(t, "Zhang Wei", user.Name) // 未更新字段保持不变

	saved := local.LoadUser()
	require.NotNil(t, saved)
	assert.Equal(t, "Backend engineer", saved.Bio)
}

func TestSessionRestoredAfterRestart(t *testing.T) {
	local, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	defer local.Close()

	u := remoteUser()
	u.ProfileCompleted = true
	require.NoError(t, local.SaveUser(u))

	// 相当于页面刷新：同一本地存储上重建控制器
	c := New(testConfig(), local, sessionstore.NewMemoryStore(), newFakeRemote(), nil,
		WithSynchronousMirror())

	assert.True(t, c.IsAuthenticated())
	assert.Equal(t, model.PageDashboard, c.CurrentPage())
	require.NotNil(t, c.CurrentUser())
	assert.Equal(t, u.ID, c.CurrentUser().ID)
}

func TestLogoutExportsPurgesAndClearsEverything(t *testing.T) {
	remote := newFakeRemote()
	exporter := &fakeExporter{}
	c, local := newTestController(t, remote, exporter)

	c.Login(remoteUser())
	c.SendMessage("peer-1", "hello")
	c.SendMessage("peer-1", "are you there?")

	c.Logout()

	assert.False(t, c.IsAuthenticated())
	assert.Equal(t, model.PageLanding, c.CurrentPage())
	assert.Nil(t, local.LoadUser())
	assert.Empty(t, c.Messages())

	// 聊天记录先导出再清除
	require.Len(t, exporter.exported, 1)
	assert.Len(t, exporter.exported[0], 2)

	assert.Len(t, remote.signOuts, 1)
}

func TestLogoutSucceedsDespiteFailingRemoteAndExporter(t *testing.T) {
	remote := newFakeRemote()
	remote.err = errors.New("backend unavailable")
	exporter := &fakeExporter{err: errors.New("disk full")}
	c, local := newTestController(t, remote, exporter)

	c.Login(remoteUser())
	c.SendMessage("peer-1", "hello")

	c.Logout()

	// 登出无条件生效：任何协作方失败都不阻止清理
	assert.False(t, c.IsAuthenticated())
	assert.Equal(t, model.PageLanding, c.CurrentPage())
	assert.Nil(t, local.LoadUser())
	assert.Empty(t, c.Messages())
}

func TestLogoutWithoutMessagesSkipsExport(t *testing.T) {
	exporter := &fakeExporter{}
	c, _ := newTestController(t, newFakeRemote(), exporter)

	c.Login(remoteUser())
	c.Logout()

	assert.Empty(t, exporter.exported)
}

func TestDemoModeNeverTouchesRemote(t *testing.T) {
	remote := newFakeRemote()
	c, _ := newTestController(t, remote, nil)

	c.Login(demoUser())
	assert.True(t, c.IsAuthenticated())

	name := "Demo"
	c.CompleteProfile(model.UserUpdate{Name: &name})
	c.UpdateUser(model.UserUpdate{Name: &name})

	// 对端也是本地演示实体
	require.NoError(t, c.SendFriendRequest("demo-ui-ling", "hi"))
	require.NoError(t, c.AcceptFriendRequest("not-a-uuid", nil))
	require.NoError(t, c.RejectFriendRequest("not-a-uuid"))
	c.Logout()

	assert.Zero(t, remote.callCount())
}

func TestSendFriendRequestMirrorsForRemotePeers(t *testing.T) {
	remote := newFakeRemote()
	c, _ := newTestController(t, remote, nil)

	c.Login(remoteUser())

	peerID := model.NewRemoteID()
	require.NoError(t, c.SendFriendRequest(peerID, "let's trade skills"))

	require.Len(t, remote.requests, 1)
	req := remote.requests[0]
	assert.Equal(t, peerID, req.ReceiverID)
	assert.Equal(t, model.FriendStatusPending, req.Status)
	assert.NotEmpty(t, req.ID)
}

func TestSendFriendRequestDailyLimit(t *testing.T) {
	c, _ := newTestController(t, newFakeRemote(), nil)

	c.Login(remoteUser())

	for i := 0; i < 3; i++ {
		require.NoError(t, c.SendFriendRequest(model.NewRemoteID(), ""))
	}

	err := c.SendFriendRequest(model.NewRemoteID(), "")
	assert.ErrorIs(t, err, ErrDailyLimitReached)

	used, limit := c.ConnectionsToday()
	assert.Equal(t, 3, used)
	assert.Equal(t, 3, limit)
}

func TestAcceptFriendRequestAddsPeerLocallyOnce(t *testing.T) {
	remote := newFakeRemote()
	c, local := newTestController(t, remote, nil)

	c.Login(remoteUser())

	peer := &model.User{ID: model.NewRemoteID(), Name: "Ling Wei"}
	requestID := model.NewRemoteID()

	require.NoError(t, c.AcceptFriendRequest(requestID, peer))
	require.NoError(t, c.AcceptFriendRequest(requestID, peer))

	assert.Equal(t, model.FriendStatusAccepted, remote.statusChanges[requestID])

	friends := local.LoadFriends()
	require.Len(t, friends, 1)
	assert.Equal(t, peer.ID, friends[0].ID)
	assert.Equal(t, model.FriendStatusAccepted, friends[0].Status)
}

func TestRejectFriendRequestMirrorsStatus(t *testing.T) {
	remote := newFakeRemote()
	c, _ := newTestController(t, remote, nil)

	c.Login(remoteUser())

	requestID := model.NewRemoteID()
	require.NoError(t, c.RejectFriendRequest(requestID))

	assert.Equal(t, model.FriendStatusRejected, remote.statusChanges[requestID])
}

func TestSendMessageStoredInSessionOnly(t *testing.T) {
	c, _ := newTestController(t, newFakeRemote(), nil)

	c.Login(remoteUser())

	msg := c.SendMessage("peer-1", "hello there")
	require.NotNil(t, msg)
	assert.Equal(t, "hello there", msg.Content)
	assert.Equal(t, "Zhang Wei", msg.SenderName)

	messages := c.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, msg.Content, messages[0].Content)
}

func TestSendMessageWhileAnonymousReturnsNil(t *testing.T) {
	c, _ := newTestController(t, newFakeRemote(), nil)

	assert.Nil(t, c.SendMessage("peer-1", "hello"))
}

func TestRemoteFailuresNeverSurfaceToCaller(t *testing.T) {
	remote := newFakeRemote()
	remote.err = errors.New("backend unavailable")
	c, local := newTestController(t, remote, nil)

	c.Login(remoteUser())
	assert.True(t, c.IsAuthenticated())
	assert.NotNil(t, local.LoadUser())

	name := "Zhang Wei"
	c.CompleteProfile(model.UserUpdate{Name: &name})
	assert.Equal(t, model.PageDashboard, c.CurrentPage())

	require.NoError(t, c.SendFriendRequest(model.NewRemoteID(), ""))
	require.NoError(t, c.AcceptFriendRequest(model.NewRemoteID(), nil))
}
