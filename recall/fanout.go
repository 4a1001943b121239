package recall

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/actireco/core"
	"github.com/rushteam/actireco/pipeline"
	"github.com/rushteam/actireco/pkg/utils"
)

// Fanout 是一个 Recall Node：并发执行多个打分来源，并按 Item.ID 合并特征。
// 来源返回 UNAVAILABLE 时整体降级（跳过该来源并打上 label），其他错误中断请求。
type Fanout struct {
	Sources []Source
	Timeout time.Duration // 每个来源的超时时间（0 表示不限制）
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

// LabelSourceUnavailable 记录本次请求中降级跳过的来源，便于 explain 与观测。
const LabelSourceUnavailable = "recall_unavailable"

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	var (
		mu      sync.Mutex
		batches = make([][]*core.Item, len(n.Sources))
		skipped []string
		eg, _   = errgroup.WithContext(ctx)
	)

	for i, src := range n.Sources {
		i, s := i, src
		eg.Go(func() error {
			recallCtx := ctx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(ctx, n.Timeout)
				defer cancel()
			}

			items, err := s.Recall(recallCtx, rctx)
			if err != nil {
				if core.IsUnavailable(err) {
					mu.Lock()
					skipped = append(skipped, s.Name())
					mu.Unlock()
					return nil
				}
				return err
			}
			batches[i] = items
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for _, name := range skipped {
		rctx.PutLabel(LabelSourceUnavailable, utils.Label{Value: name, Source: "recall"})
	}

	// 按 Sources 顺序合并，保证候选顺序可复现
	return mergeByID(batches), nil
}

// mergeByID 以 ID 为键做并集合并：同一候选来自多个来源时，
// Features / Labels / Meta 取并集，首个出现的 Item 作为底座。
func mergeByID(batches [][]*core.Item) []*core.Item {
	var total int
	for _, b := range batches {
		total += len(b)
	}
	seen := make(map[string]*core.Item, total)
	out := make([]*core.Item, 0, total)
	for _, batch := range batches {
		for _, it := range batch {
			if it == nil {
				continue
			}
			old, ok := seen[it.ID]
			if !ok {
				seen[it.ID] = it
				out = append(out, it)
				continue
			}
			for k, v := range it.Features {
				old.PutFeature(k, v)
			}
			for k, v := range it.Labels {
				old.PutLabel(k, v)
			}
			for k, v := range it.Meta {
				if _, exists := old.Meta[k]; !exists {
					old.Meta[k] = v
				}
			}
		}
	}
	return out
}
