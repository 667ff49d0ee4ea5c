package service

import (
	"testing"

	"skill-exchange/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExploreFallsBackToDemoPool(t *testing.T) {
	s := NewDirectoryService(nil)

	users := s.Explore("", 20)
	require.NotEmpty(t, users)

	// 演示池里包含平台创建者
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	assert.Contains(t, ids, model.CreatorID)
}

func TestExploreExcludesSelf(t *testing.T) {
	s := NewDirectoryService(nil)

	users := s.Explore(model.CreatorID, 20)
	for _, u := range users {
		assert.NotEqual(t, model.CreatorID, u.ID)
	}
}

func TestExploreRespectsLimit(t *testing.T) {
	s := NewDirectoryService(nil)

	users := s.Explore("", 2)
	assert.Len(t, users, 2)
}

func TestSearchMatchesSkillCaseInsensitive(t *testing.T) {
	s := NewDirectoryService(nil)

	users := s.Search("", "go", 20)
	require.NotEmpty(t, users)
	for _, u := range users {
		assert.True(t, matchUser(u, "go"))
	}
}

func TestSearchMatchesName(t *testing.T) {
	s := NewDirectoryService(nil)

	users := s.Search("", "ling", 20)
	require.Len(t, users, 1)
	assert.Equal(t, "demo-ui-ling", users[0].ID)
}

func TestSearchEmptyKeywordBehavesLikeExplore(t *testing.T) {
	s := NewDirectoryService(nil)

	assert.Equal(t, len(s.Explore("", 20)), len(s.Search("", "  ", 20)))
}
