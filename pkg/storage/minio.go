package storage

import (
	"context"
	"mime/multipart"
	"time"

	"artigos-go/internal/config"
	"artigos-go/pkg/log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOStore 是 FileStore 的对象存储实现，文件以对象形式存入指定存储桶。
type MinIOStore struct {
	client *minio.Client
	bucket string
}

// NewMinIOStore 初始化 MinIO 客户端并确保指定的存储桶存在。
func NewMinIOStore(cfg config.MinIOConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	// 检查存储桶是否存在，如果不存在则创建
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, err
	}
	if !exists {
		log.Infof("存储桶 '%s' 不存在，正在创建...", cfg.BucketName)
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	return &MinIOStore{client: client, bucket: cfg.BucketName}, nil
}

// Save 将上传文件写入存储桶并返回生成的存储名。
func (s *MinIOStore) Save(ctx context.Context, file multipart.File, originalName string) (string, error) {
	storedName := NewStoredName(originalName)

	// 大小未知，传 -1 让客户端走分片上传
	_, err := s.client.PutObject(ctx, s.bucket, storedName, file, -1, minio.PutObjectOptions{})
	if err != nil {
		return "", err
	}

	log.Infof("文件已保存: %s (原名: %s)", storedName, originalName)
	return storedName, nil
}

// Exists 判断存储名对应的对象是否存在。
func (s *MinIOStore) Exists(ctx context.Context, storedName string) bool {
	_, err := s.client.StatObject(ctx, s.bucket, storedName, minio.StatObjectOptions{})
	return err == nil
}

// Delete 删除存储名对应的对象。对不存在的对象 RemoveObject 本身即为无操作。
func (s *MinIOStore) Delete(ctx context.Context, storedName string) error {
	return s.client.RemoveObject(ctx, s.bucket, storedName, minio.RemoveObjectOptions{})
}

// URL 生成对象的预签名下载链接。
func (s *MinIOStore) URL(storedName string) (string, error) {
	presignedURL, err := s.client.PresignedGetObject(context.Background(), s.bucket, storedName, time.Hour, nil)
	if err != nil {
		log.Errorf("生成预签名链接失败: %s", err)
		return "", err
	}
	return presignedURL.String(), nil
}
