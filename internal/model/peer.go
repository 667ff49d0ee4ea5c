package model

import (
	"github.com/google/uuid"
)

// PeerKind 对端实体的来源标签
type PeerKind int

const (
	// PeerLocalOnly 本地演示实体：不存在于托管后端，所有远端操作降级为本地no-op
	PeerLocalOnly PeerKind = iota
	// PeerRemoteBacked 远端真实实体：标识为UUID，允许镜像到托管后端
	PeerRemoteBacked
)

// PeerRef 带来源标签的对端引用
// 标识进入系统时判定一次来源，之后全部依据标签分流，
// 不再在各调用点重复做标识格式猜测
type PeerRef struct {
	ID   string
	Kind PeerKind
}

// NewPeerRef 根据标识格式判定来源并打标签
// UUID格式 => 远端实体；其余 => 本地演示实体
func NewPeerRef(id string) PeerRef {
	if _, err := uuid.Parse(id); err == nil {
		return PeerRef{ID: id, Kind: PeerRemoteBacked}
	}
	return PeerRef{ID: id, Kind: PeerLocalOnly}
}

// IsRemote 是否为远端真实实体
func (p PeerRef) IsRemote() bool { return p.Kind == PeerRemoteBacked }

// NewRemoteID 生成一个远端实体标识
func NewRemoteID() string { return uuid.NewString() }
