package core

import "github.com/rushteam/actireco/pkg/utils"

// RecommendContext 承载用户/场景/实时信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID string
	Scene  string

	// Mood 是本次请求的情感信号（可选）。nil 表示请求未携带 mood_text。
	Mood *Mood

	// User 是强类型用户画像
	User *UserProfile

	// UserProfile 是 map 形式，用于快速原型或动态属性
	// 如果 User 不为空，优先使用 User；否则使用 UserProfile
	UserProfile map[string]any

	// Labels 是用户级标签，可驱动整个 Pipeline 行为
	// 例如：新用户、冷启动、重度用户等
	Labels map[string]utils.Label

	// Params 请求级上下文参数，包含：
	// - 请求参数：top_k, city, tags, alpha, include_seen, interests_override 等
	// - 请求级快照：artifact snapshot（见 artifact.SnapshotParamKey）
	Params map[string]any
}

// GetUserProfile 获取用户画像。
// 优先返回强类型 UserProfile，如果为空则从 UserProfile map 构建。
func (rctx *RecommendContext) GetUserProfile() *UserProfile {
	if rctx.User != nil {
		return rctx.User
	}
	if rctx.UserProfile != nil {
		user := NewUserProfile(rctx.UserID)
		if interests, ok := rctx.UserProfile["interests"].(string); ok {
			user.Interests = interests
		}
		if city, ok := rctx.UserProfile["city"].(string); ok {
			user.City = city
		}
		return user
	}
	return nil
}

// Param 读取请求级参数。
func (rctx *RecommendContext) Param(key string) (any, bool) {
	if rctx.Params == nil {
		return nil, false
	}
	v, ok := rctx.Params[key]
	return v, ok
}

// PutParam 写入请求级参数。
func (rctx *RecommendContext) PutParam(key string, v any) {
	if rctx.Params == nil {
		rctx.Params = make(map[string]any)
	}
	rctx.Params[key] = v
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
