package rerank

import (
	"context"
	"strconv"
	"strings"

	"github.com/rushteam/actireco/core"
	"github.com/rushteam/actireco/pipeline"
	"github.com/rushteam/actireco/pkg/utils"
)

// BoostConfig 描述情感加权策略：
//   - Threshold：情感置信度达到该值才生效
//   - Boost：命中标签的候选在最终分上追加的固定加分
//   - TagKeywords：情感标签 -> 匹配的活动 tag 关键词（大小写不敏感）
type BoostConfig struct {
	Threshold   float64             `yaml:"threshold" json:"threshold"`
	Boost       float64             `yaml:"boost" json:"boost"`
	TagKeywords map[string][]string `yaml:"tag_keywords" json:"tag_keywords"`
}

// DefaultBoostConfig 返回内置的情感-标签映射。
// positive 情绪偏向高能量活动，negative 情绪偏向舒缓恢复类活动。
func DefaultBoostConfig() BoostConfig {
	return BoostConfig{
		Threshold: 0.5,
		Boost:     0.15,
		TagKeywords: map[string][]string{
			string(core.MoodPositive): {
				"hiking", "sports", "dance", "football", "gaming",
				"running", "cycling", "active", "adventure",
			},
			string(core.MoodNegative): {
				"yoga", "meditation", "journaling", "relax",
				"calm", "mindfulness", "therapy", "spa",
			},
		},
	}
}

// MoodBoostNode 在合并打分之后按情感信号做加性调整。
// 只加分不减分也不剔除：非命中候选的相对顺序不受影响。
// neutral 或低置信度的情感信号不触发任何调整。
type MoodBoostNode struct {
	Config BoostConfig
}

func NewMoodBoostNode(cfg BoostConfig) *MoodBoostNode {
	if cfg.TagKeywords == nil {
		cfg = DefaultBoostConfig()
	}
	return &MoodBoostNode{Config: cfg}
}

func (n *MoodBoostNode) Name() string        { return "rerank.moodboost" }
func (n *MoodBoostNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *MoodBoostNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if rctx == nil || rctx.Mood == nil || len(items) == 0 {
		return items, nil
	}
	mood := *rctx.Mood
	if !mood.IsActionable(n.Config.Threshold) {
		return items, nil
	}
	keywords := n.Config.TagKeywords[string(mood.Label)]
	if len(keywords) == 0 {
		return items, nil
	}

	for _, item := range items {
		if item == nil {
			continue
		}
		if !tagsMatch(item.MetaStrings("tags"), keywords) {
			continue
		}
		item.Score += n.Config.Boost
		item.PutLabel("mood_boost", utils.Label{
			Value:  string(mood.Label) + ":" + strconv.FormatFloat(n.Config.Boost, 'f', -1, 64),
			Source: "rerank",
		})
	}

	return items, nil
}

// tagsMatch 判断任一 tag 是否命中关键词。
// 按子串匹配：关键词 "relax" 命中 tag "relaxation"。
func tagsMatch(tags, keywords []string) bool {
	for _, t := range tags {
		lt := strings.ToLower(t)
		for _, k := range keywords {
			if k != "" && strings.Contains(lt, strings.ToLower(k)) {
				return true
			}
		}
	}
	return false
}
