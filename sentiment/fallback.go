package sentiment

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/rushteam/actireco/core"
)

// Fallback 把任意 SentimentService 包装为永不失败的实现。
// 情感分析是可选增强：底层分类失败时降级为 neutral 并记日志，
// 推荐请求本身继续执行。
type Fallback struct {
	Inner core.SentimentService
}

func NewFallback(inner core.SentimentService) *Fallback {
	return &Fallback{Inner: inner}
}

func (f *Fallback) Name() string {
	if f.Inner == nil {
		return "sentiment.fallback"
	}
	return f.Inner.Name() + ".fallback"
}

func (f *Fallback) Classify(ctx context.Context, text string) (core.Mood, error) {
	if f.Inner == nil {
		return core.NeutralMood(), nil
	}
	mood, err := f.Inner.Classify(ctx, text)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"classifier": f.Inner.Name(),
			"error":      err,
		}).Warn("sentiment classify failed, falling back to neutral")
		return core.NeutralMood(), nil
	}
	return mood, nil
}
