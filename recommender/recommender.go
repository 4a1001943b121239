package recommender

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rushteam/actireco/artifact"
	"github.com/rushteam/actireco/config"
	"github.com/rushteam/actireco/core"
	"github.com/rushteam/actireco/dataset"
	"github.com/rushteam/actireco/feature"
	"github.com/rushteam/actireco/filter"
	"github.com/rushteam/actireco/pipeline"
	"github.com/rushteam/actireco/rank"
	"github.com/rushteam/actireco/recall"
	"github.com/rushteam/actireco/rerank"
	"github.com/rushteam/actireco/store"
	"github.com/rushteam/actireco/trainer"
)

// Options 是推荐器的装配参数。
type Options struct {
	// DataDir 存放 activities/interactions/users CSV
	DataDir string
	// ModelsDir 存放训练工件（TF-IDF 向量、CF 因子）
	ModelsDir string
	// ContentWeight 是合并打分的内容权重 w（默认 0.6）
	ContentWeight float64
	// Boost 情感加权配置，零值时使用内置映射
	Boost rerank.BoostConfig
	// KV 可选的实时存储（Redis / Memory），承载交互 zset
	KV core.KeyValueStore
	// Sentiment 情感分类实现，nil 时使用内置降级（恒 neutral）
	Sentiment core.SentimentService
	// ProfileCacheTTL 画像缓存时长（默认 30s）
	ProfileCacheTTL time.Duration
	// PipelineConfig 可选的配置驱动节点链（来自 pipeline YAML/JSON），
	// nil 时使用内置节点链。节点类型需已通过 config.Register 注册。
	PipelineConfig *pipeline.Config
}

// Recommender 是领域门面：装配工件、画像、情感与推荐 Pipeline，
// 对外提供 Recommend / LogInteraction / RetrainCF 三个操作。
type Recommender struct {
	opts Options

	artifacts    *artifact.Store
	profiles     *feature.CachedProfiles
	sentiment    core.SentimentService
	interactions *store.InteractionLog

	// nodes 是配置驱动装配出的节点链，nil 时走内置链
	nodes []pipeline.Node
}

// New 装配推荐器：
//  1. 读数据集（activities 必须存在，interactions/users 可缺省）
//  2. 内容工件 load-or-fit（首次启动自动训练 TF-IDF）
//  3. CF 工件尽力加载，缺失时以 content-only 模式启动
func New(opts Options) (*Recommender, error) {
	if opts.ContentWeight <= 0 {
		opts.ContentWeight = 0.6
	}
	if opts.Boost.TagKeywords == nil {
		opts.Boost = rerank.DefaultBoostConfig()
	}
	if opts.ProfileCacheTTL <= 0 {
		opts.ProfileCacheTTL = 30 * time.Second
	}

	ds, err := dataset.Load(opts.DataDir)
	if err != nil {
		return nil, err
	}

	content, err := trainer.EnsureContent(opts.ModelsDir, ds)
	if err != nil {
		return nil, err
	}

	cf, err := artifact.LoadCF(opts.ModelsDir)
	if err != nil {
		if !core.IsUnavailable(err) {
			return nil, err
		}
		logrus.Info("cf artifacts missing, starting content-only")
		cf = nil
	}

	artifacts := artifact.NewStore(artifact.NewSnapshot(1, ds, content, cf))

	sentiment := opts.Sentiment
	if sentiment == nil {
		sentiment = &neutralSentiment{}
	}

	r := &Recommender{
		opts:         opts,
		artifacts:    artifacts,
		sentiment:    sentiment,
		interactions: store.NewInteractionLog(opts.DataDir, opts.KV),
	}
	r.profiles = feature.NewCachedProfiles(
		feature.NewSnapshotProfiles(artifacts), 4096, opts.ProfileCacheTTL)

	if opts.PipelineConfig != nil {
		if err := config.ValidatePipelineConfig(opts.PipelineConfig); err != nil {
			return nil, err
		}
		p, err := opts.PipelineConfig.BuildPipeline(config.DefaultFactory())
		if err != nil {
			return nil, err
		}
		r.nodes = p.Nodes
		r.bindSeenStore()
	}

	logrus.WithFields(logrus.Fields{
		"activities":   len(ds.Activities),
		"interactions": len(ds.Interactions),
		"users":        len(ds.Users),
		"has_cf":       cf != nil,
	}).Info("recommender ready")

	return r, nil
}

// Artifacts 暴露工件仓库（健康检查与测试用）。
func (r *Recommender) Artifacts() *artifact.Store { return r.artifacts }

// Close 释放资源。
func (r *Recommender) Close() error {
	return r.profiles.Close()
}

// neutralSentiment 是缺省情感实现：任何文本都视为 neutral。
type neutralSentiment struct{}

func (neutralSentiment) Name() string { return "sentiment.neutral" }
func (neutralSentiment) Classify(context.Context, string) (core.Mood, error) {
	return core.NeutralMood(), nil
}

// bindSeenStore 把实时交互日志注入配置驱动链里的已看过滤器。
// YAML 里的 "seen" 构建时拿不到运行期依赖，这里补齐。
func (r *Recommender) bindSeenStore() {
	for _, node := range r.nodes {
		fn, ok := node.(*filter.FilterNode)
		if !ok {
			continue
		}
		for _, f := range fn.Filters {
			if sf, ok := f.(*filter.SeenFilter); ok && sf.Live == nil {
				sf.Live = r.interactions
			}
		}
	}
}

// buildPipeline 按本次请求装配节点链。
// 配置驱动时复用装配好的链，末尾追加请求级 TopN（链内 topn 视为全局上限）；
// 否则使用内置链：recall -> filter -> rank -> rerank。
func (r *Recommender) buildPipeline(topK int) *pipeline.Pipeline {
	if r.nodes != nil {
		nodes := make([]pipeline.Node, 0, len(r.nodes)+1)
		nodes = append(nodes, r.nodes...)
		nodes = append(nodes, &rerank.TopNNode{N: topK})
		return &pipeline.Pipeline{Nodes: nodes}
	}
	return &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.Fanout{
				Sources: []recall.Source{
					recall.NewContentRecall(),
					recall.NewMFRecall(),
				},
			},
			&filter.FilterNode{
				Filters: []filter.Filter{
					filter.NewSeenFilter(r.interactions),
					filter.NewFacetFilter(),
				},
			},
			rank.NewBlendNode(r.opts.ContentWeight),
			rerank.NewMoodBoostNode(r.opts.Boost),
			&rerank.TopNNode{N: topK},
		},
	}
}
