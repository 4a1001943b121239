package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rushteam/actireco/core"
)

// 工件文件名约定，与离线训练脚本共享。
const (
	VectorizerFile      = "vectorizer.json"
	ActivityVectorsFile = "activity_vectors.json"
	CFUserMapFile       = "cf_user_map.json"
	CFItemMapFile       = "cf_item_map.json"
	CFUserFactorsFile   = "cf_user_factors.json"
	CFItemFactorsFile   = "cf_item_factors.json"
)

// ErrContentUnavailable 表示内容工件缺失（可触发自动训练，训练也失败才是致命错误）。
var ErrContentUnavailable = core.NewDomainError(core.ModuleArtifact, core.ErrorCodeUnavailable,
	"artifact: content artifacts missing")

// ErrCFUnavailable 表示 CF 工件缺失或不完整（预期内降级，不是错误）。
var ErrCFUnavailable = core.NewDomainError(core.ModuleArtifact, core.ErrorCodeUnavailable,
	"artifact: cf artifacts missing")

type activityVectorsFile struct {
	Version string                        `json:"version"`
	Vectors map[string]map[string]float64 `json:"vectors"`
}

// LoadContent 从 dir 加载内容工件；任一文件缺失返回 ErrContentUnavailable。
// 向量器与活动向量的 Version 不一致视为损坏（不同空间的向量不可比）。
func LoadContent(dir string) (*ContentModel, error) {
	var vec Vectorizer
	if err := readJSON(filepath.Join(dir, VectorizerFile), &vec); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrContentUnavailable
		}
		return nil, fmt.Errorf("artifact: load vectorizer: %w", err)
	}

	var av activityVectorsFile
	if err := readJSON(filepath.Join(dir, ActivityVectorsFile), &av); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrContentUnavailable
		}
		return nil, fmt.Errorf("artifact: load activity vectors: %w", err)
	}

	if av.Version != vec.Version {
		return nil, core.NewDomainError(core.ModuleArtifact, core.ErrorCodeInternalError,
			fmt.Sprintf("artifact: vector space version mismatch: vectorizer=%q vectors=%q", vec.Version, av.Version))
	}

	return &ContentModel{Vectorizer: &vec, Vectors: av.Vectors}, nil
}

// SaveContent 持久化内容工件。
func SaveContent(dir string, m *ContentModel) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, VectorizerFile), m.Vectorizer); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, ActivityVectorsFile), activityVectorsFile{
		Version: m.Vectorizer.Version,
		Vectors: m.Vectors,
	})
}

// LoadCF 从 dir 加载 CF 工件；四个文件缺任何一个都返回 ErrCFUnavailable。
func LoadCF(dir string) (*CFModel, error) {
	m := &CFModel{}

	parts := []struct {
		file string
		dst  any
	}{
		{CFUserMapFile, &m.UserIndex},
		{CFItemMapFile, &m.ItemIndex},
		{CFUserFactorsFile, &m.UserFactors},
		{CFItemFactorsFile, &m.ItemFactors},
	}
	for _, p := range parts {
		if err := readJSON(filepath.Join(dir, p.file), p.dst); err != nil {
			if os.IsNotExist(err) {
				return nil, ErrCFUnavailable
			}
			return nil, fmt.Errorf("artifact: load %s: %w", p.file, err)
		}
	}

	if len(m.UserFactors) != len(m.UserIndex) || len(m.ItemFactors) != len(m.ItemIndex) {
		return nil, core.NewDomainError(core.ModuleArtifact, core.ErrorCodeInternalError,
			"artifact: cf factor/index size mismatch")
	}
	return m, nil
}

// SaveCF 持久化 CF 工件。四个文件先写临时文件再 rename，避免半写状态被加载。
func SaveCF(dir string, m *CFModel) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	parts := []struct {
		file string
		src  any
	}{
		{CFUserMapFile, m.UserIndex},
		{CFItemMapFile, m.ItemIndex},
		{CFUserFactorsFile, m.UserFactors},
		{CFItemFactorsFile, m.ItemFactors},
	}
	for _, p := range parts {
		if err := writeJSON(filepath.Join(dir, p.file), p.src); err != nil {
			return err
		}
	}
	return nil
}

func readJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

func writeJSON(path string, src any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
