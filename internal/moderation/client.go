// Package moderation はコメント本文の毒性スクリーニングを提供する。
// Perspective APIに問い合わせ、毒性スコアのしきい値判定で受理/拒否を返す。
package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

const (
	// defaultEndpoint はPerspective APIの分析エンドポイント。
	defaultEndpoint = "https://commentanalyzer.googleapis.com/v1alpha1/comments:analyze"
	// toxicityThreshold はこの値を超えるスコアで拒否するしきい値。
	toxicityThreshold = 0.7
)

// ErrNotConfigured はAPIキーが未設定のときに返すエラー。
// 呼び出し側がフェイルオープン（受理扱い）を判断する。
var ErrNotConfigured = errors.New("perspective API key is not configured")

// Decision はスクリーニングの判定結果。
type Decision string

const (
	// DecisionAccepted はコメントを受理する判定。
	DecisionAccepted Decision = "accepted"
	// DecisionRejected はコメントを拒否する判定。
	DecisionRejected Decision = "rejected"
)

// Client はPerspective APIのクライアント。
// スクリーニングの失敗をどう扱うか（フェイルオープン等）は呼び出し側の
// 責務とし、ここでは判定とエラーをそのまま返す。
type Client struct {
	httpClient *http.Client
	apiKey     string
	logger     *slog.Logger
	endpoint   string // テスト用にエンドポイントを差し替え可能
}

// NewClient はClientの新しいインスタンスを生成する。
func NewClient(httpClient *http.Client, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		logger:     logger,
		endpoint:   defaultEndpoint,
	}
}

// analyzeRequest はPerspective APIへのリクエストボディ。
type analyzeRequest struct {
	Comment             analyzeComment            `json:"comment"`
	Languages           []string                  `json:"languages"`
	RequestedAttributes map[string]map[string]any `json:"requestedAttributes"`
}

type analyzeComment struct {
	Text string `json:"text"`
}

// analyzeResponse はPerspective APIのレスポンスのうち必要な部分。
type analyzeResponse struct {
	AttributeScores map[string]struct {
		SummaryScore struct {
			Value float64 `json:"value"`
		} `json:"summaryScore"`
	} `json:"attributeScores"`
}

// Screen はテキストの毒性を判定する。ポルトガル語と英語の両方で評価し、
// スコアがしきい値（0.7）を超えた場合に拒否を返す。
// キー未設定時はErrNotConfigured、プロバイダ到達不能・非200・パース失敗は
// それぞれエラーを返す。
func (c *Client) Screen(ctx context.Context, text string) (Decision, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(analyzeRequest{
		Comment:   analyzeComment{Text: text},
		Languages: []string{"pt", "en"},
		RequestedAttributes: map[string]map[string]any{
			"TOXICITY": {},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?key="+c.apiKey, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("perspective API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read analyze response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("perspective API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result analyzeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse analyze response: %w", err)
	}

	toxicity, ok := result.AttributeScores["TOXICITY"]
	if !ok {
		return "", fmt.Errorf("missing TOXICITY score in analyze response")
	}

	score := toxicity.SummaryScore.Value
	c.logger.Debug("toxicity score evaluated", slog.Float64("score", score))

	if score > toxicityThreshold {
		return DecisionRejected, nil
	}
	return DecisionAccepted, nil
}
