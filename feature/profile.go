package feature

import (
	"context"
	"errors"

	"github.com/rushteam/actireco/artifact"
	"github.com/rushteam/actireco/core"
)

// ErrProfileNotFound 用户画像未找到。
var ErrProfileNotFound = errors.New("feature: profile not found")

// ProfileService 提供请求时的用户画像查询。
// 采用策略模式：快照、KV 存储、远程服务都可以实现此接口。
type ProfileService interface {
	// Name 返回实现名称（用于日志/监控）
	Name() string

	// GetProfile 获取用户画像；未知用户返回空画像（冷启动），
	// 数据源不可用时返回 ErrProfileNotFound
	GetProfile(ctx context.Context, userID string) (*core.UserProfile, error)

	// Close 释放资源
	Close() error
}

// SnapshotProfiles 从工件快照中读取用户画像。
// 画像来自 users.csv（兴趣文本 + 城市）与 interactions.csv（已看集合），
// 随每次重训/快照替换一起更新。
type SnapshotProfiles struct {
	store *artifact.Store
}

func NewSnapshotProfiles(store *artifact.Store) *SnapshotProfiles {
	return &SnapshotProfiles{store: store}
}

func (p *SnapshotProfiles) Name() string { return "feature.snapshot" }

func (p *SnapshotProfiles) GetProfile(_ context.Context, userID string) (*core.UserProfile, error) {
	snap := p.store.Snapshot()
	if snap == nil || snap.Dataset == nil {
		return nil, ErrProfileNotFound
	}
	return snap.Dataset.Profile(userID), nil
}

func (p *SnapshotProfiles) Close() error { return nil }
