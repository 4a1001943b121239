package recall

import (
	"context"

	"github.com/rushteam/actireco/artifact"
	"github.com/rushteam/actireco/core"
)

// Source 表示一个可复用的打分来源（内容/CF/...）。
// 你可以把它理解为“可并发 fan-out 的策略单元”：每个来源产出候选 Item
// 并把自己的原始分写进 Item.Features，合并与归一化由 rank.blend 统一处理。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// Feature keys：各来源写入的原始分。未写入 == 该来源对此候选不贡献分数。
const (
	FeatureContentRaw = "content_raw"
	FeatureCFRaw      = "cf_raw"
)

// SnapshotFromContext 读取请求级工件快照（由 Recommender 在请求开始时写入）。
func SnapshotFromContext(rctx *core.RecommendContext) *artifact.Snapshot {
	if rctx == nil {
		return nil
	}
	if v, ok := rctx.Param(artifact.SnapshotParamKey); ok {
		if snap, ok := v.(*artifact.Snapshot); ok {
			return snap
		}
	}
	return nil
}
