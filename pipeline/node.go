package pipeline

import (
	"context"

	"github.com/rushteam/actireco/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindRecall      Kind = "recall"      // 召回阶段：生成候选集并写入各来源原始分
	KindFilter      Kind = "filter"      // 过滤阶段：剔除已看/不满足 facet 约束的候选
	KindRank        Kind = "rank"        // 排序阶段：归一化、加权合并并排序
	KindReRank      Kind = "rerank"      // 重排阶段：情感加权/截断等结果调优
	KindPostProcess Kind = "postprocess" // 后处理阶段：补充元信息或最终结果修饰
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态，方便 Recall 生成、Filter 截断、ReRank 重排等操作。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}

// NodeBuilder 根据配置构建 Node；各组件在 config 包注册自己的 builder 即可被配置驱动。
type NodeBuilder func(config map[string]any) (Node, error)
