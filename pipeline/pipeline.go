package pipeline

import (
	"context"

	"github.com/rushteam/actireco/core"
)

// Pipeline 是 actireco 的核心抽象：把推荐逻辑拆成可组合的 Node 链。
// 一次混合推荐就是一条链：recall -> filter -> rank.blend -> rerank.moodboost -> rerank.topn。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
