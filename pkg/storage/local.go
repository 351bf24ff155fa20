package storage

import (
	"context"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"artigos-go/pkg/log"
)

// LocalStore 是 FileStore 的本地磁盘实现，文件存放在一个上传目录下。
type LocalStore struct {
	dir string
}

// NewLocalStore 创建一个本地磁盘存储，目录不存在时自动创建。
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

// Dir 返回上传目录路径，供 HTTP 层挂载静态文件服务。
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save 将上传文件写入上传目录并返回生成的存储名。
func (s *LocalStore) Save(_ context.Context, file multipart.File, originalName string) (string, error) {
	storedName := NewStoredName(originalName)

	dst, err := os.Create(filepath.Join(s.dir, storedName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		// 写入中断时清理半成品文件
		_ = os.Remove(filepath.Join(s.dir, storedName))
		return "", err
	}

	log.Infof("文件已保存: %s (原名: %s)", storedName, originalName)
	return storedName, nil
}

// Exists 判断存储名对应的文件是否存在于上传目录中。
func (s *LocalStore) Exists(_ context.Context, storedName string) bool {
	_, err := os.Stat(filepath.Join(s.dir, storedName))
	return err == nil
}

// Delete 删除存储名对应的文件，文件不存在时静默返回 nil。
func (s *LocalStore) Delete(_ context.Context, storedName string) error {
	path := filepath.Join(s.dir, storedName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(path)
}

// URL 返回文件的公开访问路径，由 HTTP 层的 /uploads 静态路由提供服务。
func (s *LocalStore) URL(storedName string) (string, error) {
	return "/uploads/" + storedName, nil
}
