package core

import "time"

// UserProfile 是用户画像的核心抽象。
//
// 它不是某一个 Node，而是：
//   - 被所有 Node 共享
//   - 驱动内容打分（兴趣文本）与过滤（已看集合）
//   - 可以被 Label 打标、回写
//
// 维度说明：
//   静态属性（City）       冷启动 / 基础过滤
//   兴趣文本（Interests）  内容打分的查询向量来源
//   已看集合（SeenItems）  seen 过滤
type UserProfile struct {
	UserID string

	// Interests 是用户兴趣的自由文本（users 数据集的 interests 列，';' 分隔）。
	// 内容打分会把它向量化为查询向量；为空表示冷启动用户。
	Interests string

	// City 用户所在城市（可选）
	City string

	// SeenItems 用户交互过的 activity 集合，用于 seen 过滤与 CF 查表
	SeenItems map[string]struct{}

	// 元数据
	UpdateTime time.Time
}

func NewUserProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:    userID,
		SeenItems: make(map[string]struct{}),
	}
}

// HasSeen 判断用户是否交互过该 activity。
func (u *UserProfile) HasSeen(activityID string) bool {
	if u == nil || u.SeenItems == nil {
		return false
	}
	_, ok := u.SeenItems[activityID]
	return ok
}
