package rank

import (
	"context"
	"sort"

	"github.com/rushteam/actireco/core"
	"github.com/rushteam/actireco/pipeline"
	"github.com/rushteam/actireco/pkg/utils"
	"github.com/rushteam/actireco/recall"
)

// 归一化后的分数特征，供重排与 explain 使用。
const (
	FeatureContentNorm = "content_norm"
	FeatureCFNorm      = "cf_norm"
)

// ParamAlpha 允许单次请求覆盖内容权重（0..1）。
const ParamAlpha = "alpha"

// BlendNode 把各来源的原始分做 min-max 归一化后加权合并为最终分。
//
// 归一化只在“携带该特征的存活候选”上进行：过滤后的候选集决定区间，
// 区间内不足两个不同取值时该来源整体归一化为 0。某个候选缺失某来源
// 特征时，该来源对它不贡献任何分量，而不是按 0 分参加。
// CF 整体缺席（无任何候选携带 cf_raw）时退化为 content-only：
// 最终分即是归一化后的内容分。
type BlendNode struct {
	// ContentWeight 是内容相似度的合并权重 w，CF 权重为 1-w。
	ContentWeight float64
}

func NewBlendNode(contentWeight float64) *BlendNode {
	return &BlendNode{ContentWeight: contentWeight}
}

func (n *BlendNode) Name() string        { return "rank.blend" }
func (n *BlendNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *BlendNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	w := n.contentWeight(rctx)

	contentNorm := normalize(items, recall.FeatureContentRaw)
	cfNorm := normalize(items, recall.FeatureCFRaw)
	hasCF := len(cfNorm) > 0

	for _, item := range items {
		if item == nil {
			continue
		}
		var score float64
		if c, ok := contentNorm[item.ID]; ok {
			item.PutFeature(FeatureContentNorm, c)
			if hasCF {
				score += w * c
			} else {
				score += c
			}
		}
		if cf, ok := cfNorm[item.ID]; ok {
			item.PutFeature(FeatureCFNorm, cf)
			score += (1 - w) * cf
		}
		item.Score = score
		item.PutLabel("rank_model", utils.Label{Value: "blend", Source: "rank"})
	}

	// 分数降序，同分按 ID 升序，保证结果可复现
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].ID < items[j].ID
	})

	return items, nil
}

func (n *BlendNode) contentWeight(rctx *core.RecommendContext) float64 {
	w := n.ContentWeight
	if rctx != nil {
		if v, ok := rctx.Param(ParamAlpha); ok {
			if a, ok := v.(float64); ok {
				w = a
			}
		}
	}
	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}

// normalize 对携带 key 特征的候选做 min-max 归一化，返回 ID -> [0,1] 分数。
// 不同取值少于两个时全部映射为 0。
func normalize(items []*core.Item, key string) map[string]float64 {
	var (
		minV, maxV float64
		found      bool
	)
	for _, item := range items {
		if item == nil {
			continue
		}
		v, ok := item.GetFeature(key)
		if !ok {
			continue
		}
		if !found {
			minV, maxV = v, v
			found = true
			continue
		}
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	if !found {
		return nil
	}

	out := make(map[string]float64, len(items))
	span := maxV - minV
	for _, item := range items {
		if item == nil {
			continue
		}
		v, ok := item.GetFeature(key)
		if !ok {
			continue
		}
		if span <= 0 {
			out[item.ID] = 0
			continue
		}
		out[item.ID] = (v - minV) / span
	}
	return out
}
