package recommender

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/rushteam/actireco/artifact"
	"github.com/rushteam/actireco/core"
	"github.com/rushteam/actireco/dataset"
	"github.com/rushteam/actireco/trainer"
)

// 合法交互事件类型。
var validEvents = map[string]struct{}{
	"view": {}, "click": {}, "like": {}, "join": {}, "rate": {},
}

// LogInteraction 记录一条用户交互：
//   - 追加到 CSV 流水（下一次重训生效）
//   - 写入实时已看集合（当前请求立即生效）
//   - 失效该用户的画像缓存
func (r *Recommender) LogInteraction(ctx context.Context, it dataset.Interaction) error {
	it.Event = strings.ToLower(strings.TrimSpace(it.Event))
	if it.UserID == "" || it.ActivityID == "" {
		return core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
			"interaction: user_id and activity_id are required")
	}
	if _, ok := validEvents[it.Event]; !ok {
		return core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
			"interaction: unknown event: "+it.Event)
	}
	if it.Event == "rate" && it.Rating == nil {
		return core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
			"interaction: rating is required for rate events")
	}
	if it.Rating != nil && (*it.Rating < 0 || *it.Rating > 5) {
		return core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
			"interaction: rating must be in [0, 5]")
	}

	if err := r.interactions.Append(ctx, it); err != nil {
		return err
	}
	r.profiles.Invalidate()
	return nil
}

// RetrainStats 是一次 CF 重训的结果摘要。
type RetrainStats struct {
	Users   int   `json:"users"`
	Items   int   `json:"items"`
	Factors int   `json:"factors"`
	Version int64 `json:"artifact_version"`
}

// RetrainCF 用全量交互流水重训矩阵分解并原子换版：
//  1. 重新读盘（吸收 LogInteraction 追加的流水）
//  2. 截断 SVD 分解
//  3. 工件落盘，然后替换进程内快照
//
// 任一步失败时在线快照保持不变，失败不产生半成品。
func (r *Recommender) RetrainCF(ctx context.Context, nFactors int) (*RetrainStats, error) {
	ds, err := dataset.Load(r.opts.DataDir)
	if err != nil {
		return nil, err
	}

	cf, err := trainer.TrainCF(ds, nFactors)
	if err != nil {
		return nil, err
	}

	if err := artifact.SaveCF(r.opts.ModelsDir, cf); err != nil {
		return nil, err
	}

	r.artifacts.ReplaceCF(cf, ds)
	r.profiles.Invalidate()

	snap := r.artifacts.Snapshot()
	stats := &RetrainStats{
		Users:   len(cf.UserIndex),
		Items:   len(cf.ItemIndex),
		Factors: nFactors,
		Version: snap.Version,
	}

	logrus.WithFields(logrus.Fields{
		"users":   stats.Users,
		"items":   stats.Items,
		"factors": stats.Factors,
		"version": stats.Version,
	}).Info("cf retrained")

	return stats, nil
}

// ClassifySentiment 暴露情感分类（/sentiment 端点使用）。
func (r *Recommender) ClassifySentiment(ctx context.Context, text string) (core.Mood, error) {
	return r.sentiment.Classify(ctx, text)
}
