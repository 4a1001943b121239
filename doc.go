// Package actireco 是一个活动混合推荐服务（Activity Recommender）。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall -> Filter -> Rank -> ReRank）
// - 双通道打分: TF-IDF 内容相似度 + 矩阵分解协同过滤，归一化后加权合并
// - 快照换版: 训练工件原子替换，请求期间读到的永远是一致的一版
// - 情感增强: 可选的 mood 信号对标签契合的活动做加性 boost
package actireco

import "github.com/rushteam/actireco/pipeline"

// 轻量 facade：便于直接 import "actireco" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
