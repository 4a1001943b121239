package artifact

import (
	"sync"

	"github.com/rushteam/actireco/dataset"
)

// Store 是全局工件状态的唯一入口：一个带版本、可整体替换的快照句柄。
//
// 并发模型：
//   - 读路径（每个请求）：Snapshot() 取一次引用，之后全程只读该引用
//   - 写路径（管理端重训）：Replace / ReplaceCF 在锁内换引用，绝不原地改字段
//
// 因此正在处理的请求要么看到整套旧工件、要么看到整套新工件。
type Store struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewStore 用初始快照创建 Store；snap 不可为 nil。
func NewStore(snap *Snapshot) *Store {
	return &Store{snap: snap}
}

// Snapshot 返回当前活跃快照。返回值只读，调用方不得修改。
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Replace 原子地替换整个快照（数据集 + 内容 + CF）。
func (s *Store) Replace(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap.Version = s.snap.Version + 1
	s.snap = snap
}

// ReplaceCF 原子地替换 CF 工件：基于当前快照构造新快照，只换 CF（与其配套的数据集）。
// ds 是重训时使用的交互数据集（seen 集合需要与 CF 保持一致），为 nil 时沿用旧数据集。
func (s *Store) ReplaceCF(cf *CFModel, ds *dataset.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.snap
	if ds == nil {
		ds = old.Dataset
	}
	s.snap = NewSnapshot(old.Version+1, ds, old.Content, cf)
}
