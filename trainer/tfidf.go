// Package trainer 实现离线训练：内容向量空间的 TF-IDF 拟合与协同过滤的截断 SVD 分解。
// 训练整体产出新工件，绝不原地修改线上快照；写盘与上线由调用方（recommender）编排。
package trainer

import (
	"math"
	"time"

	"github.com/rushteam/actireco/artifact"
	"github.com/rushteam/actireco/core"
	"github.com/rushteam/actireco/dataset"
)

// FitContent 在 activities 数据集上拟合内容向量空间：
// uni+bigram 词表、平滑 IDF、每个 activity 一个 L2 归一化 TF-IDF 向量。
func FitContent(ds *dataset.Dataset) (*artifact.ContentModel, error) {
	return FitContentVersion(ds, time.Now().UTC().Format("20060102T150405Z"))
}

// FitContentVersion 与 FitContent 相同，但指定向量空间 Version（测试用）。
func FitContentVersion(ds *dataset.Dataset, version string) (*artifact.ContentModel, error) {
	if ds == nil || len(ds.Activities) == 0 {
		return nil, core.NewDomainError(core.ModuleTrainer, core.ErrorCodeInvalidInput,
			"trainer: no activities to fit content model")
	}

	vec := &artifact.Vectorizer{Version: version, NGram: 2, IDF: make(map[string]float64)}

	// 文档频次：每个词元在多少个 activity 文本里出现
	df := make(map[string]int)
	docs := make([][]string, len(ds.Activities))
	for i, a := range ds.Activities {
		tokens := vec.Tokenize(a.Text())
		docs[i] = tokens
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	// 平滑 IDF：ln((1+n)/(1+df)) + 1
	n := float64(len(ds.Activities))
	for tok, c := range df {
		vec.IDF[tok] = math.Log((1+n)/(1+float64(c))) + 1
	}

	vectors := make(map[string]map[string]float64, len(ds.Activities))
	for i, a := range ds.Activities {
		v := make(map[string]float64)
		for _, tok := range docs[i] {
			v[tok] += vec.IDF[tok]
		}
		vectors[a.ID] = artifact.Normalize(v)
	}

	return &artifact.ContentModel{Vectorizer: vec, Vectors: vectors}, nil
}

// EnsureContent 加载 dir 下的内容工件；缺失时从数据集拟合并落盘（启动自举）。
func EnsureContent(dir string, ds *dataset.Dataset) (*artifact.ContentModel, error) {
	m, err := artifact.LoadContent(dir)
	if err == nil {
		return m, nil
	}
	if !core.IsUnavailable(err) {
		return nil, err
	}

	m, err = FitContent(ds)
	if err != nil {
		return nil, err
	}
	if err := artifact.SaveContent(dir, m); err != nil {
		return nil, err
	}
	return m, nil
}
