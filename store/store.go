package store

import "github.com/rushteam/actireco/core"

// 错误别名，方便包内与调用方使用。
var (
	ErrNotFound     = core.ErrStoreNotFound
	ErrNotSupported = core.ErrStoreNotSupported
)
