package core

import "github.com/rushteam/actireco/pkg/utils"

// Item 是推荐链路中的统一承载结构：特征、分数、元信息、标签。
// ID 使用 string 类型，与 activities 数据集的 activity_id 保持一致。
// Features 承载各打分来源的原始分与归一化分；Labels 用于解释与策略驱动；Score 用于最终排序决策。
type Item struct {
	ID       string
	Score    float64
	Features map[string]float64
	Meta     map[string]any
	Labels   map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:       id,
		Score:    0,
		Features: make(map[string]float64),
		Meta:     make(map[string]any),
		Labels:   make(map[string]utils.Label),
	}
}

// PutFeature 写入一个打分特征（如 content_raw / cf_raw）。
func (it *Item) PutFeature(key string, value float64) {
	if it.Features == nil {
		it.Features = make(map[string]float64)
	}
	it.Features[key] = value
}

// GetFeature 读取打分特征；第二个返回值表示该来源是否对此 Item 贡献过分数。
// “未贡献”与“贡献了 0 分”是两种不同的事实，合并与归一化时必须区分。
func (it *Item) GetFeature(key string) (float64, bool) {
	if it.Features == nil {
		return 0, false
	}
	v, ok := it.Features[key]
	return v, ok
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// MetaString 读取 string 类型的元信息字段（title / city / tags 等）。
func (it *Item) MetaString(key string) string {
	if it.Meta == nil {
		return ""
	}
	if s, ok := it.Meta[key].(string); ok {
		return s
	}
	return ""
}

// MetaStrings 读取 []string 类型的元信息字段（tags）。
func (it *Item) MetaStrings(key string) []string {
	if it.Meta == nil {
		return nil
	}
	if s, ok := it.Meta[key].([]string); ok {
		return s
	}
	return nil
}
