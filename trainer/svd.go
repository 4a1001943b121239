package trainer

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/rushteam/actireco/artifact"
	"github.com/rushteam/actireco/core"
	"github.com/rushteam/actireco/dataset"
)

// TrainCF 在交互数据上做截断 SVD 分解，产出 CF 工件。
//
//   - 物品下标顺序以 activities 数据集为准（与内容工件共享同一 id 空间）
//   - 用户下标顺序按交互中首次出现
//   - 交互强度：评分优先，否则隐式反馈 1.0；同一 (user, item) 取最后一条
//   - userFactors = U_k * Σ_k，itemFactors = V_k（预测分数 = 两向量内积）
//
// nFactors 必须满足 1 ≤ nFactors ≤ min(#users, #items)，否则返回 INVALID_INPUT；
// 任何失败都不产生副作用，线上工件由调用方决定是否替换。
func TrainCF(ds *dataset.Dataset, nFactors int) (*artifact.CFModel, error) {
	if ds == nil || len(ds.Interactions) == 0 {
		return nil, core.NewDomainError(core.ModuleTrainer, core.ErrorCodeInvalidInput,
			"trainer: no interaction data to factorize")
	}

	itemIndex := make(map[string]int, len(ds.Activities))
	for i, a := range ds.Activities {
		itemIndex[a.ID] = i
	}

	userIndex := make(map[string]int)
	for _, it := range ds.Interactions {
		if _, ok := itemIndex[it.ActivityID]; !ok {
			continue // 交互指向未知 activity，跳过
		}
		if _, ok := userIndex[it.UserID]; !ok {
			userIndex[it.UserID] = len(userIndex)
		}
	}

	nUsers, nItems := len(userIndex), len(itemIndex)
	if nUsers == 0 {
		return nil, core.NewDomainError(core.ModuleTrainer, core.ErrorCodeInvalidInput,
			"trainer: no interactions match the activity set")
	}

	maxFactors := nUsers
	if nItems < maxFactors {
		maxFactors = nItems
	}
	if nFactors < 1 || nFactors > maxFactors {
		return nil, core.NewDomainError(core.ModuleTrainer, core.ErrorCodeInvalidInput,
			fmt.Sprintf("trainer: n_factors must be in [1, %d], got %d", maxFactors, nFactors))
	}

	// 交互矩阵（稠密即可：数据集按单机服务规模设计）
	r := mat.NewDense(nUsers, nItems, nil)
	for _, it := range ds.Interactions {
		iidx, ok := itemIndex[it.ActivityID]
		if !ok {
			continue
		}
		uidx := userIndex[it.UserID]
		r.Set(uidx, iidx, it.Strength())
	}

	var svd mat.SVD
	if ok := svd.Factorize(r, mat.SVDThin); !ok {
		return nil, core.NewDomainError(core.ModuleTrainer, core.ErrorCodeInternalError,
			"trainer: svd factorization failed to converge")
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	sigma := svd.Values(nil)

	k := nFactors
	if len(sigma) < k {
		k = len(sigma)
	}

	userFactors := make([][]float64, nUsers)
	for i := 0; i < nUsers; i++ {
		row := make([]float64, k)
		for f := 0; f < k; f++ {
			row[f] = u.At(i, f) * sigma[f]
		}
		userFactors[i] = row
	}

	itemFactors := make([][]float64, nItems)
	for j := 0; j < nItems; j++ {
		row := make([]float64, k)
		for f := 0; f < k; f++ {
			row[f] = v.At(j, f)
		}
		itemFactors[j] = row
	}

	return &artifact.CFModel{
		UserIndex:   userIndex,
		ItemIndex:   itemIndex,
		UserFactors: userFactors,
		ItemFactors: itemFactors,
	}, nil
}
