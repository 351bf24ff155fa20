// Package storage 提供投稿文件的存储抽象，支持本地磁盘与 MinIO 两种后端。
package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileStore 接口定义了上传文件的持久化操作。
// 存储名由 Save 生成，调用方只持有该名字作为软引用。
type FileStore interface {
	// Save 持久化一个上传文件并返回生成的存储名。
	Save(ctx context.Context, file multipart.File, originalName string) (string, error)
	// Exists 判断存储名对应的文件是否存在。
	Exists(ctx context.Context, storedName string) bool
	// Delete 删除存储名对应的文件，文件不存在时静默返回 nil（幂等）。
	Delete(ctx context.Context, storedName string) error
	// URL 返回存储文件的访问地址。
	URL(storedName string) (string, error)
}

// 扩展名白名单：点号加 1-10 个字母数字，其余一律丢弃。
var extPattern = regexp.MustCompile(`^\.[A-Za-z0-9]{1,10}$`)

// NewStoredName 生成存储名：毫秒时间戳-UUID[.扩展名]。
// 客户端提供的文件名不可信，除通过白名单校验的扩展名外不嵌入任何部分。
func NewStoredName(originalName string) string {
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString())
	ext := strings.ToLower(filepath.Ext(originalName))
	if extPattern.MatchString(ext) {
		name += ext
	}
	return name
}
