package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rgResume/internal/resume"
)

// fetchSessionDocument 从内部打印接口拉取会话文档。
// 只允许 Worker 通过 Header 携带 API_INTERNAL_SECRET 访问。
func fetchSessionDocument(ctx context.Context, apiBaseURL, sessionID, secret string) (resume.Document, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return resume.Document{}, fmt.Errorf("internal api secret missing")
	}

	apiBaseURL = strings.TrimRight(strings.TrimSpace(apiBaseURL), "/")
	if apiBaseURL == "" {
		return resume.Document{}, fmt.Errorf("internal api base url missing")
	}

	targetURL := fmt.Sprintf("%s/v1/sessions/%s/print", apiBaseURL, sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return resume.Document{}, fmt.Errorf("build internal request: %w", err)
	}
	req.Header.Set("X-Internal-Secret", secret)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return resume.Document{}, fmt.Errorf("request session document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return resume.Document{}, errSessionGone
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8*1024))
		return resume.Document{}, fmt.Errorf("session document status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var envelope struct {
		Document resume.Document `json:"document"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return resume.Document{}, fmt.Errorf("decode session document: %w", err)
	}
	return envelope.Document, nil
}
