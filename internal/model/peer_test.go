package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPeerRefClassification(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		remote bool
	}{
		{"UUID标识为远端实体", "5f2d1c3e-8a4b-4f6d-9e1a-7b3c5d8e2f4a", true},
		{"生成的远端标识", NewRemoteID(), true},
		{"平台创建者为本地实体", CreatorID, false},
		{"demo前缀标识为本地实体", "demo-ui-ling", false},
		{"降级登录标识为本地实体", "local-zhangwei-at-example.com", false},
		{"空标识为本地实体", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := NewPeerRef(tt.id)
			assert.Equal(t, tt.id, ref.ID)
			assert.Equal(t, tt.remote, ref.IsRemote())
		})
	}
}
