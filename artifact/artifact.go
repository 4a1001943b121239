// Package artifact 定义训练产物（模型工件）的形状与存取。
//
// 工件分两类：
//   - 内容工件：向量器（词表 + IDF）与每个 activity 的内容向量，缺失可由训练器重建
//   - CF 工件：用户/物品隐向量矩阵 + 两张 id->下标映射，缺失不是错误（降级为纯内容推荐）
//
// 所有工件以 JSON 落盘，key 空间与 activities/interactions 数据集一致。
package artifact

import (
	"math"
	"strings"
	"unicode"

	"github.com/rushteam/actireco/dataset"
)

// Vectorizer 是内容向量空间的可持久化定义：uni+bigram 词表与 IDF 权重。
// Version 标识一次训练产出的空间；不同 Version 的向量不可比。
type Vectorizer struct {
	Version string             `json:"version"`
	IDF     map[string]float64 `json:"idf"`
	NGram   int                `json:"ngram"` // 最大 n-gram 长度，默认 2
}

// Tokenize 把文本切为 uni+bigram 词元：小写、按非字母数字切分。
func (v *Vectorizer) Tokenize(text string) []string {
	ngram := v.NGram
	if ngram <= 0 {
		ngram = 2
	}

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(words)*ngram)
	tokens = append(tokens, words...)
	if ngram >= 2 {
		for i := 0; i+1 < len(words); i++ {
			tokens = append(tokens, words[i]+" "+words[i+1])
		}
	}
	return tokens
}

// Transform 把文本映射为 L2 归一化的稀疏 TF-IDF 向量。
// 词表外的词元被忽略；空文本返回空向量（冷启动的中性查询向量）。
func (v *Vectorizer) Transform(text string) map[string]float64 {
	vec := make(map[string]float64)
	for _, tok := range v.Tokenize(text) {
		idf, ok := v.IDF[tok]
		if !ok {
			continue
		}
		vec[tok] += idf
	}
	return Normalize(vec)
}

// Normalize 对稀疏向量做 L2 归一化；零向量原样返回。
func Normalize(vec map[string]float64) map[string]float64 {
	var sum float64
	for _, w := range vec {
		sum += w * w
	}
	if sum == 0 {
		return vec
	}
	norm := math.Sqrt(sum)
	for k, w := range vec {
		vec[k] = w / norm
	}
	return vec
}

// ContentModel 是内容打分所需的全部工件：向量器 + 每个 activity 的内容向量。
// 不变量：每个 activity 恰好对应一个向量，且与向量器属于同一 Version。
type ContentModel struct {
	Vectorizer *Vectorizer
	Vectors    map[string]map[string]float64 // activityID -> 稀疏向量（已 L2 归一化）
}

// CFModel 是协同过滤的隐因子模型。
// 不变量：不在映射里的用户/物品没有 CF 预测，这是预期内的降级而不是错误。
type CFModel struct {
	UserIndex   map[string]int `json:"user_index"`
	ItemIndex   map[string]int `json:"item_index"`
	UserFactors [][]float64    `json:"user_factors"`
	ItemFactors [][]float64    `json:"item_factors"`
}

// UserVector 返回用户的隐向量；用户不在映射里返回 (nil, false)。
func (m *CFModel) UserVector(userID string) ([]float64, bool) {
	if m == nil {
		return nil, false
	}
	idx, ok := m.UserIndex[userID]
	if !ok || idx < 0 || idx >= len(m.UserFactors) {
		return nil, false
	}
	return m.UserFactors[idx], true
}

// ItemVector 返回物品的隐向量；物品不在映射里返回 (nil, false)。
func (m *CFModel) ItemVector(activityID string) ([]float64, bool) {
	if m == nil {
		return nil, false
	}
	idx, ok := m.ItemIndex[activityID]
	if !ok || idx < 0 || idx >= len(m.ItemFactors) {
		return nil, false
	}
	return m.ItemFactors[idx], true
}

// Snapshot 是一次请求可见的完整工件集：数据集 + 内容工件 + 可选 CF 工件。
// Snapshot 一经发布完全只读；替换通过 Store 整体换引用完成，读者看到的
// 要么是整套旧的、要么是整套新的，绝不会新旧混用。
type Snapshot struct {
	Version int64 // 单调递增，replace 一次加一

	Dataset *dataset.Dataset
	Content *ContentModel
	CF      *CFModel // nil 表示 CF 不可用（纯内容降级）

	// seen 按用户预聚合，避免每个请求扫一遍 interactions
	seen map[string]map[string]struct{}
}

// NewSnapshot 组装一个快照并预聚合 seen 集合。
func NewSnapshot(version int64, ds *dataset.Dataset, content *ContentModel, cf *CFModel) *Snapshot {
	return &Snapshot{
		Version: version,
		Dataset: ds,
		Content: content,
		CF:      cf,
		seen:    ds.SeenSets(),
	}
}

// HasCF 报告 CF 工件是否可用。
func (s *Snapshot) HasCF() bool {
	return s != nil && s.CF != nil
}

// Seen 返回用户交互过的 activity 集合；没有历史返回 nil。
func (s *Snapshot) Seen(userID string) map[string]struct{} {
	if s == nil {
		return nil
	}
	return s.seen[userID]
}

// SnapshotParamKey 是 RecommendContext.Params 中工件快照的约定 key。
// Recommender 在请求开始时取一次快照写入 Params，所有 Node 统一从这里读，
// 保证一次请求内容/CF 打分看到的是同一套工件。
const SnapshotParamKey = "artifact_snapshot"
