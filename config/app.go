package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// App 是服务级配置，来源为环境变量（支持 .env 文件）。
type App struct {
	Host  string
	Port  int
	Debug bool

	// AdminAPIKey 保护 /admin 端点；为空时管理端点整体关闭
	AdminAPIKey string

	DataDir   string
	ModelsDir string

	// RedisAddr 为空时使用进程内存储
	RedisAddr string

	// ContentWeight 是合并打分的内容权重 w
	ContentWeight float64

	// PipelinePath 节点链 YAML，空值用内置节点链
	PipelinePath string

	// BoostPath 情感加权 YAML，空值用内置映射
	BoostPath string

	// SentimentLexiconPath 本地情感词表 JSON
	SentimentLexiconPath string

	// SentimentEndpoint 远程情感推理服务；与词表同时配置时优先远程
	SentimentEndpoint string
}

// LoadApp 读取环境变量装配配置。.env 文件可选，缺失不报错。
func LoadApp() App {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("load .env failed")
	}

	return App{
		Host:                 envStr("HOST", "0.0.0.0"),
		Port:                 envInt("PORT", 8000),
		Debug:                envBool("DEBUG", false),
		AdminAPIKey:          envStr("ADMIN_API_KEY", ""),
		DataDir:              envStr("DATA_DIR", "data"),
		ModelsDir:            envStr("MODELS_DIR", "models"),
		RedisAddr:            envStr("REDIS_ADDR", ""),
		ContentWeight:        envFloat("CONTENT_WEIGHT", 0.6),
		PipelinePath:         envStr("PIPELINE_CONFIG", ""),
		BoostPath:            envStr("BOOST_CONFIG", ""),
		SentimentLexiconPath: envStr("SENTIMENT_LEXICON", ""),
		SentimentEndpoint:    envStr("SENTIMENT_ENDPOINT", ""),
	}
}

// Addr 返回监听地址 host:port。
func (a App) Addr() string {
	return a.Host + ":" + strconv.Itoa(a.Port)
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
