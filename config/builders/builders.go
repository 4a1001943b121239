package builders

import (
	"fmt"
	"time"

	"github.com/rushteam/actireco/config"
	"github.com/rushteam/actireco/filter"
	"github.com/rushteam/actireco/pipeline"
	"github.com/rushteam/actireco/pkg/conv"
	"github.com/rushteam/actireco/rank"
	"github.com/rushteam/actireco/recall"
	"github.com/rushteam/actireco/rerank"
)

func init() {
	config.Register("recall.fanout", BuildFanoutNode)
	config.Register("filter", BuildFilterNode)
	config.Register("rank.blend", BuildBlendNode)
	config.Register("rerank.moodboost", BuildMoodBoostNode)
	config.Register("rerank.topn", BuildTopNNode)
}

func BuildFanoutNode(cfg map[string]any) (pipeline.Node, error) {
	sourcesConfig, ok := cfg["sources"].([]any)
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}
	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceType, _ := conv.ToString(sc)
		switch sourceType {
		case "content":
			sources = append(sources, recall.NewContentRecall())
		case "mf":
			sources = append(sources, recall.NewMFRecall())
		default:
			return nil, fmt.Errorf("unknown source type: %v", sc)
		}
	}
	fanout := &recall.Fanout{Sources: sources}
	if sec := conv.ConfigGetInt(cfg, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	return fanout, nil
}

func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	filtersConfig, _ := cfg["filters"].([]any)
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		switch v := fc.(type) {
		case string:
			switch v {
			case "seen":
				// 无实时存储的配置驱动场景只看快照
				filters = append(filters, filter.NewSeenFilter(nil))
			case "facet":
				filters = append(filters, filter.NewFacetFilter())
			default:
				return nil, fmt.Errorf("unknown filter: %s", v)
			}
		case map[string]any:
			if expr := conv.ConfigGet(v, "expr", ""); expr != "" {
				filters = append(filters, filter.NewExprFilter(expr))
				continue
			}
			return nil, fmt.Errorf("invalid filter config: %v", v)
		default:
			return nil, fmt.Errorf("invalid filter config: %v", fc)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func BuildBlendNode(cfg map[string]any) (pipeline.Node, error) {
	w := conv.ConfigGetFloat64(cfg, "content_weight", 0.6)
	if w < 0 || w > 1 {
		return nil, fmt.Errorf("content_weight must be in [0, 1], got %v", w)
	}
	return rank.NewBlendNode(w), nil
}

func BuildMoodBoostNode(cfg map[string]any) (pipeline.Node, error) {
	boost := rerank.DefaultBoostConfig()
	boost.Threshold = conv.ConfigGetFloat64(cfg, "threshold", boost.Threshold)
	boost.Boost = conv.ConfigGetFloat64(cfg, "boost", boost.Boost)
	if kw, ok := cfg["tag_keywords"].(map[string]any); ok {
		keywords := make(map[string][]string, len(kw))
		for label, words := range kw {
			keywords[label] = conv.SliceAnyToString(words)
		}
		boost.TagKeywords = keywords
	}
	return rerank.NewMoodBoostNode(boost), nil
}

func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	n := conv.ConfigGetInt(cfg, "n", 10)
	return &rerank.TopNNode{N: n}, nil
}
