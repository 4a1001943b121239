package sentiment

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/rushteam/actireco/core"
)

// LexiconModel 实现了基于情感词表的本地分类器。
//
// 预测原理：
// 1. 分词后对命中词的权重求和: z = sum(Weight_w)，正向词权重为正，负向词为负
// 2. Sigmoid 变换得到置信度: P = 1 / (1 + exp(-|z|))
// 3. z > 0 -> positive，z < 0 -> negative，z = 0 -> neutral
//
// 词表为 JSON 文件 {"weights": {"happy": 1.2, "tired": -0.8, ...}}。
// 模型懒加载：首次 Classify 时读盘，失败则后续请求都报 UNAVAILABLE，
// 由 Fallback 包装器把它降级为 neutral。
type LexiconModel struct {
	Path string

	once    sync.Once
	weights map[string]float64
	loadErr error
}

func NewLexiconModel(path string) *LexiconModel {
	return &LexiconModel{Path: path}
}

func (m *LexiconModel) Name() string { return "sentiment.lexicon" }

func (m *LexiconModel) Classify(_ context.Context, text string) (core.Mood, error) {
	if strings.TrimSpace(text) == "" {
		return core.NeutralMood(), nil
	}

	m.once.Do(m.load)
	if m.loadErr != nil {
		return core.NeutralMood(), core.NewDomainError(
			core.ModuleSentiment, core.ErrorCodeUnavailable, "sentiment: lexicon not loaded: "+m.loadErr.Error())
	}

	var z float64
	for _, tok := range tokenize(text) {
		if w, ok := m.weights[tok]; ok {
			z += w
		}
	}

	if z == 0 {
		return core.NeutralMood(), nil
	}
	mood := core.Mood{Confidence: 1 / (1 + math.Exp(-math.Abs(z)))}
	if z > 0 {
		mood.Label = core.MoodPositive
	} else {
		mood.Label = core.MoodNegative
	}
	return mood, nil
}

func (m *LexiconModel) load() {
	data, err := os.ReadFile(m.Path)
	if err != nil {
		m.loadErr = err
		return
	}
	var raw struct {
		Weights map[string]float64 `json:"weights"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		m.loadErr = err
		return
	}
	m.weights = raw.Weights
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
