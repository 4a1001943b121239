package recall

import (
	"context"
	"strings"

	"github.com/rushteam/actireco/core"
	"github.com/rushteam/actireco/pkg/utils"
)

// ContentRecall 枚举全部活动作为候选，并计算内容相似度 content_raw。
// 相似度为 TF-IDF 向量的余弦，由于训练期已做 L2 归一化，等价于点积。
// 用户兴趣为空（冷启动）时查询向量为空，所有候选 content_raw=0。
type ContentRecall struct {
	name string
}

func NewContentRecall() *ContentRecall {
	return &ContentRecall{name: "content"}
}

func (r *ContentRecall) Name() string { return r.name }

// ParamInterestsOverride 允许单次请求覆盖画像兴趣文本（调参/实验用）。
const ParamInterestsOverride = "interests_override"

func (r *ContentRecall) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	snap := SnapshotFromContext(rctx)
	if snap == nil || snap.Content == nil {
		return nil, core.NewDomainError(core.ModuleRecall, core.ErrorCodeUnavailable, "recall: content model not loaded")
	}

	interests := r.interests(rctx)
	query := snap.Content.Vectorizer.Transform(interests)

	items := make([]*core.Item, 0, len(snap.Dataset.Activities))
	for _, act := range snap.Dataset.Activities {
		item := core.NewItem(act.ID)
		item.Meta["title"] = act.Title
		item.Meta["city"] = act.City
		item.Meta["tags"] = act.Tags
		item.PutFeature(FeatureContentRaw, dot(query, snap.Content.Vectors[act.ID]))
		item.PutLabel("recall_source", utils.Label{Value: r.name, Source: "recall"})
		items = append(items, item)
	}
	return items, nil
}

func (r *ContentRecall) interests(rctx *core.RecommendContext) string {
	if v, ok := rctx.Param(ParamInterestsOverride); ok {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	if p := rctx.GetUserProfile(); p != nil {
		return p.Interests
	}
	return ""
}

func dot(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	// 遍历较小的一侧
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for k, v := range a {
		if w, ok := b[k]; ok {
			sum += v * w
		}
	}
	return sum
}
