// Package dataset 负责加载 activities / interactions / users 三个 CSV 数据集。
// 数据集在服务启动（或管理端重训）时整体加载，服务期间只读。
package dataset

import (
	"strconv"
	"strings"

	"github.com/rushteam/actireco/core"
)

// Activity 是一个可推荐的活动条目。
type Activity struct {
	ID    string
	Title string
	Tags  []string
	City  string
}

// Text 返回用于内容向量化的文本：title + tags（';' 统一替换为空格，小写）。
func (a Activity) Text() string {
	tags := strings.Join(a.Tags, " ")
	return strings.ToLower(strings.TrimSpace(a.Title + " " + tags))
}

// Interaction 是一条用户-活动交互记录，是协同过滤的训练信号。
type Interaction struct {
	UserID     string
	ActivityID string
	Event      string // view / click / like / rate
	Rating     *float64
}

// Strength 返回交互强度：有评分用评分，否则视为隐式反馈 1.0。
func (i Interaction) Strength() float64 {
	if i.Rating != nil {
		return *i.Rating
	}
	return 1.0
}

// User 是 users 数据集的一行。
type User struct {
	ID        string
	Interests string // ';' 分隔的兴趣词
}

// InterestsText 返回用于向量化的兴趣文本。
func (u User) InterestsText() string {
	return strings.ToLower(strings.ReplaceAll(u.Interests, ";", " "))
}

// Dataset 是三个数据集的只读聚合。
type Dataset struct {
	Activities   []Activity
	Interactions []Interaction
	Users        map[string]User
}

// SeenSets 按用户聚合交互过的 activity 集合，用于 seen 过滤与 CF 查表。
func (d *Dataset) SeenSets() map[string]map[string]struct{} {
	seen := make(map[string]map[string]struct{})
	for _, it := range d.Interactions {
		s, ok := seen[it.UserID]
		if !ok {
			s = make(map[string]struct{})
			seen[it.UserID] = s
		}
		s[it.ActivityID] = struct{}{}
	}
	return seen
}

// Profile 为用户构建画像（兴趣文本 + 已看集合）；未知用户返回空画像（冷启动）。
func (d *Dataset) Profile(userID string) *core.UserProfile {
	p := core.NewUserProfile(userID)
	if u, ok := d.Users[userID]; ok {
		p.Interests = u.InterestsText()
	}
	for _, it := range d.Interactions {
		if it.UserID == userID {
			p.SeenItems[it.ActivityID] = struct{}{}
		}
	}
	return p
}

func parseTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

func parseRating(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
