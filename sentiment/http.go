package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rushteam/actireco/core"
)

// HTTPClassifier 是远程情感推理服务的客户端（HTTP/JSON）。
//
// 请求格式：
//
//	POST {Endpoint}
//	{"text": "feeling great today"}
//
// 响应格式：
//
//	{"label": "positive", "confidence": 0.92}
//
// 使用场景：把本地词表模型换成独立部署的预训练模型服务时，
// 只需替换 SentimentService 实现，推荐链路不感知。
type HTTPClassifier struct {
	// Endpoint 服务端点，如 "http://localhost:8501/sentiment"
	Endpoint string

	// Timeout 超时时间（默认 3s）
	Timeout time.Duration

	httpClient *http.Client
}

// HTTPClassifierOption 配置选项。
type HTTPClassifierOption func(*HTTPClassifier)

func WithTimeout(d time.Duration) HTTPClassifierOption {
	return func(c *HTTPClassifier) { c.Timeout = d }
}

func WithHTTPClient(client *http.Client) HTTPClassifierOption {
	return func(c *HTTPClassifier) { c.httpClient = client }
}

func NewHTTPClassifier(endpoint string, opts ...HTTPClassifierOption) *HTTPClassifier {
	c := &HTTPClassifier{
		Endpoint: endpoint,
		Timeout:  3 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.Timeout}
	}
	return c
}

func (c *HTTPClassifier) Name() string { return "sentiment.http" }

type classifyReq struct {
	Text string `json:"text"`
}

type classifyResp struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

func (c *HTTPClassifier) Classify(ctx context.Context, text string) (core.Mood, error) {
	if strings.TrimSpace(text) == "" {
		return core.NeutralMood(), nil
	}

	body, err := json.Marshal(classifyReq{Text: text})
	if err != nil {
		return core.NeutralMood(), err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return core.NeutralMood(), err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return core.NeutralMood(), core.NewDomainError(
			core.ModuleSentiment, core.ErrorCodeUnavailable, "sentiment: inference request failed: "+err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return core.NeutralMood(), core.NewDomainError(
			core.ModuleSentiment, core.ErrorCodeUnavailable,
			fmt.Sprintf("sentiment: inference status %d: %s", resp.StatusCode, string(data)))
	}

	var out classifyResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return core.NeutralMood(), err
	}

	mood := core.Mood{Confidence: out.Confidence}
	switch core.MoodLabel(out.Label) {
	case core.MoodPositive:
		mood.Label = core.MoodPositive
	case core.MoodNegative:
		mood.Label = core.MoodNegative
	default:
		return core.NeutralMood(), nil
	}
	if mood.Confidence < 0 {
		mood.Confidence = 0
	}
	if mood.Confidence > 1 {
		mood.Confidence = 1
	}
	return mood, nil
}
