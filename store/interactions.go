package store

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/rushteam/actireco/core"
	"github.com/rushteam/actireco/dataset"
)

// InteractionLog 把用户交互写入两个地方：
//   - CSV 流水（追加写，重启后参与下一次重训）
//   - 可选的 KeyValueStore zset（实时已看集合，供 filter.SeenFilter 查询）
//
// zset key 为 seen:{userID}，score 为写入时间戳，member 为 activity ID。
type InteractionLog struct {
	mu   sync.Mutex
	path string
	kv   core.KeyValueStore
}

// NewInteractionLog 创建交互日志。kv 为 nil 时只写 CSV。
func NewInteractionLog(dataDir string, kv core.KeyValueStore) *InteractionLog {
	return &InteractionLog{
		path: filepath.Join(dataDir, dataset.InteractionsFile),
		kv:   kv,
	}
}

func seenKey(userID string) string { return "seen:" + userID }

// Append 记录一条交互。CSV 写失败时返回错误；zset 写失败只降级不阻断。
func (l *InteractionLog) Append(ctx context.Context, it dataset.Interaction) error {
	l.mu.Lock()
	err := dataset.AppendInteraction(l.path, it)
	l.mu.Unlock()
	if err != nil {
		return err
	}

	if l.kv != nil {
		_ = l.kv.ZAdd(ctx, seenKey(it.UserID), float64(time.Now().Unix()), it.ActivityID)
	}
	return nil
}

// GetSeenItems 返回实时已看集合，实现 filter.SeenStore。
func (l *InteractionLog) GetSeenItems(ctx context.Context, userID string) ([]string, error) {
	if l.kv == nil {
		return nil, nil
	}
	return l.kv.ZRange(ctx, seenKey(userID), 0, -1)
}
