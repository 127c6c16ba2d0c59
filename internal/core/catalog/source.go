package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"canteen-finder/internal/pkg/common"

	"go.uber.org/zap"
)

//go:embed seed/campus.yaml
var campusSeed []byte

// Source 目錄資料來源，每次呼叫回傳一份新的唯讀快照
type Source interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// SourceFunc 讓一般函式實作 Source
type SourceFunc func(ctx context.Context) (*Snapshot, error)

// Load 實作 Source
func (f SourceFunc) Load(ctx context.Context) (*Snapshot, error) {
	return f(ctx)
}

// Static 固定回傳同一份快照
func Static(s *Snapshot) Source {
	return SourceFunc(func(context.Context) (*Snapshot, error) {
		return s, nil
	})
}

// FileSource 從 YAML / JSON 檔讀取目錄，path 為空時使用內建的校園種子資料
type FileSource struct {
	path string
}

// NewFileSource 創建檔案來源
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load 讀取並解析檔案
func (s *FileSource) Load(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.path == "" {
		return DefaultSnapshot()
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var doc *Document
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".json":
		doc, err = ParseJSON(data)
	case ".yaml", ".yml":
		doc, err = ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported catalog file extension %q", filepath.Ext(s.path))
	}
	if err != nil {
		return nil, err
	}

	snap, err := doc.Snapshot()
	if err != nil {
		return nil, err
	}

	common.LogDebug("目錄檔已載入",
		zap.String("path", s.path),
		zap.Int("canteens", len(snap.Canteens)),
		zap.Int("tenants", len(snap.Tenants)),
		zap.Int("foods", len(snap.Foods)),
	)
	return snap, nil
}

// DefaultSnapshot 內建校園種子資料
func DefaultSnapshot() (*Snapshot, error) {
	doc, err := ParseYAML(campusSeed)
	if err != nil {
		return nil, err
	}
	return doc.Snapshot()
}
