package common

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// StableID 依名稱路徑產生穩定的 UUID（同樣的名稱永遠得到同樣的 ID）
func StableID(parts ...string) string {
	name := "canteen-finder:" + strings.Join(parts, "/")
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}
