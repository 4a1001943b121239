package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/actireco/rerank"
)

// LoadBoost 从 YAML 文件加载情感加权配置，path 为空时返回内置映射。
//
// 文件格式：
//
//	threshold: 0.5
//	boost: 0.15
//	tag_keywords:
//	  positive: [hiking, sports, dance]
//	  negative: [yoga, meditation, spa]
func LoadBoost(path string) (rerank.BoostConfig, error) {
	if path == "" {
		return rerank.DefaultBoostConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return rerank.BoostConfig{}, fmt.Errorf("read boost config: %w", err)
	}

	cfg := rerank.DefaultBoostConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return rerank.BoostConfig{}, fmt.Errorf("parse boost config: %w", err)
	}
	if cfg.Threshold < 0 || cfg.Threshold > 1 {
		return rerank.BoostConfig{}, fmt.Errorf("boost threshold must be in [0, 1], got %v", cfg.Threshold)
	}
	return cfg, nil
}
