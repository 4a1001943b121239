package rerank

import (
	"context"
	"sort"

	"github.com/rushteam/actireco/core"
	"github.com/rushteam/actireco/pipeline"
)

// TopNNode 在重排的最后重新排序并截取前 N 个候选。
// 情感加权可能改变分数，所以这里再排一次：分数降序，同分按 ID 升序。
// N <= 0 表示请求零个结果，直接返回空列表。
type TopNNode struct {
	// N 要保留的候选数量
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 {
		return []*core.Item{}, nil
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].ID < items[j].ID
	})

	if len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
