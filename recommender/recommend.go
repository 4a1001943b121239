package recommender

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/rushteam/actireco/artifact"
	"github.com/rushteam/actireco/core"
	"github.com/rushteam/actireco/filter"
	"github.com/rushteam/actireco/rank"
	"github.com/rushteam/actireco/recall"
)

// Request 是一次推荐请求的全部输入。
type Request struct {
	UserID string
	TopK   int

	// MoodText 是可选的自由文本情感信号（如 "feeling stressed after work"）
	MoodText string

	// City / Tags 是 facet 约束，空值不参与过滤
	City string
	Tags []string

	// Alpha 单次覆盖内容权重（0..1），nil 使用服务默认值
	Alpha *float64

	// IncludeSeen 为 true 时不过滤已交互活动
	IncludeSeen bool

	// InterestsOverride 单次覆盖画像兴趣文本
	InterestsOverride string
}

// RankedItem 是返回给调用方的单个推荐结果。
type RankedItem struct {
	ActivityID   string   `json:"activity_id"`
	Title        string   `json:"title"`
	City         string   `json:"city"`
	Tags         []string `json:"tags"`
	Score        float64  `json:"score"`
	ContentScore *float64 `json:"content_score,omitempty"`
	CFScore      *float64 `json:"cf_score,omitempty"`
}

// Response 是一次推荐的输出。
type Response struct {
	UserID string       `json:"user_id"`
	Mood   *core.Mood   `json:"mood,omitempty"`
	CFUsed bool         `json:"cf_used"`
	Items  []RankedItem `json:"recommendations"`
}

// Recommend 执行一次混合推荐。
// TopK <= 0 直接返回空结果；携带 MoodText 时先做情感分类再进入 Pipeline。
func (r *Recommender) Recommend(ctx context.Context, req Request) (*Response, error) {
	if req.UserID == "" {
		return nil, core.NewDomainError(core.ModuleRecall, core.ErrorCodeInvalidInput,
			"recommend: user_id is required")
	}

	resp := &Response{UserID: req.UserID, Items: []RankedItem{}}
	if req.TopK <= 0 {
		return resp, nil
	}

	rctx, err := r.buildContext(ctx, req)
	if err != nil {
		return nil, err
	}
	resp.Mood = rctx.Mood

	items, err := r.buildPipeline(req.TopK).Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	_, cfSkipped := rctx.GetLabel(recall.LabelSourceUnavailable)
	resp.CFUsed = !cfSkipped

	for _, item := range items {
		out := RankedItem{
			ActivityID: item.ID,
			Title:      item.MetaString("title"),
			City:       item.MetaString("city"),
			Tags:       item.MetaStrings("tags"),
			Score:      item.Score,
		}
		if v, ok := item.GetFeature(rank.FeatureContentNorm); ok {
			out.ContentScore = &v
		}
		if v, ok := item.GetFeature(rank.FeatureCFNorm); ok {
			out.CFScore = &v
		}
		resp.Items = append(resp.Items, out)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": req.UserID,
		"top_k":   req.TopK,
		"cf_used": resp.CFUsed,
		"results": len(resp.Items),
	}).Debug("recommend done")

	return resp, nil
}

// buildContext 把请求展开为 Pipeline 透传的 RecommendContext：
// 解析画像、分类情感、固定一份工件快照。
func (r *Recommender) buildContext(ctx context.Context, req Request) (*core.RecommendContext, error) {
	snap := r.artifacts.Snapshot()
	if snap == nil {
		return nil, core.NewDomainError(core.ModuleArtifact, core.ErrorCodeUnavailable,
			"recommend: no artifact snapshot")
	}

	profile, err := r.profiles.GetProfile(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	rctx := &core.RecommendContext{
		UserID: req.UserID,
		Scene:  "activities",
		User:   profile,
	}
	// 同一请求内所有 Node 共用这一份快照，重训换版不会撕裂读
	rctx.PutParam(artifact.SnapshotParamKey, snap)

	if req.MoodText != "" {
		mood, err := r.sentiment.Classify(ctx, req.MoodText)
		if err != nil {
			// 情感是可选增强，失败降级为 neutral
			logrus.WithError(err).Warn("sentiment classify failed")
			mood = core.NeutralMood()
		}
		rctx.Mood = &mood
	}

	if req.City != "" {
		rctx.PutParam(filter.ParamCity, req.City)
	}
	if len(req.Tags) > 0 {
		rctx.PutParam(filter.ParamTags, req.Tags)
	}
	if req.Alpha != nil {
		rctx.PutParam(rank.ParamAlpha, *req.Alpha)
	}
	if req.IncludeSeen {
		rctx.PutParam(filter.ParamIncludeSeen, true)
	}
	if req.InterestsOverride != "" {
		rctx.PutParam(recall.ParamInterestsOverride, req.InterestsOverride)
	}

	return rctx, nil
}
