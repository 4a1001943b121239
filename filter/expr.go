package filter

import (
	"context"

	"github.com/rushteam/actireco/core"
	"github.com/rushteam/actireco/pkg/dsl"
)

// ExprFilter 基于 CEL 表达式的过滤器，用于配置驱动的候选剔除。
// 表达式结果为 true 时剔除该候选，例如：
//
//	item.meta.city == "" || item.features.content_raw < 0.01
type ExprFilter struct {
	// Expr 是 CEL 表达式，空表达式不过滤任何候选。
	Expr string
}

func NewExprFilter(expr string) *ExprFilter {
	return &ExprFilter{Expr: expr}
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Expr == "" || item == nil {
		return false, nil
	}
	ok, err := dsl.NewEval(item, rctx).Evaluate(f.Expr)
	if err != nil {
		return false, err
	}
	return ok, nil
}
