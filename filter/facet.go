package filter

import (
	"context"
	"strings"

	"github.com/rushteam/actireco/core"
)

// Facet 请求参数 key。
const (
	ParamCity = "city"
	ParamTags = "tags"
)

// FacetFilter 按请求携带的 facet 约束剔除候选：
//   - city：与活动 city 做大小写不敏感的全等匹配
//   - tags：活动 tags 与请求 tags 有任意交集即保留
//
// 未携带的 facet 不参与过滤。
type FacetFilter struct{}

func NewFacetFilter() *FacetFilter {
	return &FacetFilter{}
}

func (f *FacetFilter) Name() string {
	return "filter.facet"
}

func (f *FacetFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || rctx == nil {
		return false, nil
	}

	if city := paramString(rctx, ParamCity); city != "" {
		if !strings.EqualFold(city, item.MetaString("city")) {
			return true, nil
		}
	}

	if want := paramStrings(rctx, ParamTags); len(want) > 0 {
		if !anyTagMatch(want, item.MetaStrings("tags")) {
			return true, nil
		}
	}

	return false, nil
}

func paramString(rctx *core.RecommendContext, key string) string {
	if v, ok := rctx.Param(key); ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func paramStrings(rctx *core.RecommendContext, key string) []string {
	v, ok := rctx.Param(key)
	if !ok {
		return nil
	}
	switch vv := v.(type) {
	case []string:
		return vv
	case string:
		if strings.TrimSpace(vv) == "" {
			return nil
		}
		parts := strings.Split(vv, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return nil
}

func anyTagMatch(want, have []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(w, h) {
				return true
			}
		}
	}
	return false
}
