package core

import "context"

// MoodLabel 是情感分类的离散标签。
type MoodLabel string

const (
	MoodPositive MoodLabel = "positive"
	MoodNegative MoodLabel = "negative"
	MoodNeutral  MoodLabel = "neutral"
)

// Mood 是一次请求内的情感信号：标签 + 置信度（0..1）。
// 只在请求生命周期内存在，不落盘、不参与训练。
type Mood struct {
	Label      MoodLabel `json:"label"`
	Confidence float64   `json:"confidence"`
}

// NeutralMood 返回中性信号（置信度 0）。
// 情感分析永远是可选增强：空文本、模型加载失败、推理失败一律降级到这里。
func NeutralMood() Mood {
	return Mood{Label: MoodNeutral, Confidence: 0}
}

// IsActionable 判断该信号是否足以驱动加权：非中性且置信度达到阈值。
func (m Mood) IsActionable(threshold float64) bool {
	return m.Label != MoodNeutral && m.Confidence >= threshold
}

// SentimentService 是情感分析的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（sentiment）实现
//   - 外部预训练模型是黑盒：本接口是核心对它的全部依赖面
//   - 实现必须把失败（空文本、模型不可用）降级为 neutral/0，而不是向上传播
//
// 实现：
//   - sentiment.LexiconModel（本地词表模型，懒加载）
//   - sentiment.HTTPClassifier（远程推理服务）
//   - sentiment.Fallback（降级包装器）
type SentimentService interface {
	// Name 返回实现名称（用于日志/监控）
	Name() string

	// Classify 将自由文本映射为 Mood
	Classify(ctx context.Context, text string) (Mood, error)
}
