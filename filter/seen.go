package filter

import (
	"context"

	"github.com/rushteam/actireco/core"
	"github.com/rushteam/actireco/recall"
)

// ParamIncludeSeen 为 true 时跳过已看过滤（调试/回放场景）。
const ParamIncludeSeen = "include_seen"

// SeenStore 提供请求时的实时交互历史，弥补快照与最新写入之间的窗口。
type SeenStore interface {
	GetSeenItems(ctx context.Context, userID string) ([]string, error)
}

// SeenFilter 剔除用户交互过的活动。
// 已看集合以工件快照为准，可叠加一个实时存储来源。
type SeenFilter struct {
	// Live 是可选的实时交互来源（如 Redis zset），nil 时只看快照。
	Live SeenStore
}

func NewSeenFilter(live SeenStore) *SeenFilter {
	return &SeenFilter{Live: live}
}

func (f *SeenFilter) Name() string {
	return "filter.seen"
}

func (f *SeenFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || rctx == nil || rctx.UserID == "" {
		return false, nil
	}
	if v, ok := rctx.Param(ParamIncludeSeen); ok {
		if include, ok := v.(bool); ok && include {
			return false, nil
		}
	}

	if snap := recall.SnapshotFromContext(rctx); snap != nil {
		if _, seen := snap.Seen(rctx.UserID)[item.ID]; seen {
			return true, nil
		}
	}

	if f.Live != nil {
		ids, err := f.Live.GetSeenItems(ctx, rctx.UserID)
		if err != nil {
			// 实时来源失败不阻断请求，退回快照结果
			return false, nil
		}
		for _, id := range ids {
			if id == item.ID {
				return true, nil
			}
		}
	}

	return false, nil
}
