package recall

import (
	"context"

	"github.com/rushteam/actireco/core"
	"github.com/rushteam/actireco/pkg/utils"
)

// MFRecall 使用矩阵分解因子计算协同过滤分数 cf_raw。
// 分数为用户隐向量与物品隐向量的点积，未出现在物品索引中的活动不贡献分数。
// 模型未加载或用户未出现在训练数据中时返回 UNAVAILABLE，
// 上游据此降级为 content-only，而不是把缺失当作 0 分。
type MFRecall struct {
	name string
}

func NewMFRecall() *MFRecall {
	return &MFRecall{name: "mf"}
}

func (r *MFRecall) Name() string { return r.name }

func (r *MFRecall) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	snap := SnapshotFromContext(rctx)
	if snap == nil || !snap.HasCF() {
		return nil, core.NewDomainError(core.ModuleRecall, core.ErrorCodeUnavailable, "recall: cf model not loaded")
	}
	userVec, ok := snap.CF.UserVector(rctx.UserID)
	if !ok {
		return nil, core.NewDomainError(core.ModuleRecall, core.ErrorCodeUnavailable, "recall: user not in cf model: "+rctx.UserID)
	}

	items := make([]*core.Item, 0, len(snap.CF.ItemIndex))
	for _, act := range snap.Dataset.Activities {
		itemVec, ok := snap.CF.ItemVector(act.ID)
		if !ok {
			continue
		}
		item := core.NewItem(act.ID)
		item.PutFeature(FeatureCFRaw, dotDense(userVec, itemVec))
		item.PutLabel("recall_source", utils.Label{Value: r.name, Source: "recall"})
		items = append(items, item)
	}
	return items, nil
}

func dotDense(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
