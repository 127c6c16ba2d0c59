package catalog

import (
	"context"
	"fmt"
	"time"

	"canteen-finder/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// RemoteSource 透過 HTTP 取得 JSON 目錄
type RemoteSource struct {
	client *resty.Client
	url    string
}

// NewRemoteSource 創建遠端來源
func NewRemoteSource(url string, timeout time.Duration) *RemoteSource {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetHeader("Accept", "application/json")

	return &RemoteSource{
		client: client,
		url:    url,
	}
}

// Load 下載並解析目錄
func (s *RemoteSource) Load(ctx context.Context) (*Snapshot, error) {
	start := time.Now()

	resp, err := s.client.R().
		SetContext(ctx).
		Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("catalog endpoint returned %d", resp.StatusCode())
	}

	doc, err := ParseJSON(resp.Body())
	if err != nil {
		return nil, err
	}
	snap, err := doc.Snapshot()
	if err != nil {
		return nil, err
	}

	common.LogInfo("遠端目錄已載入",
		zap.String("url", s.url),
		zap.Int("canteens", len(snap.Canteens)),
		zap.Duration("耗時", time.Since(start)),
	)
	return snap, nil
}
