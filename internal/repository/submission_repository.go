// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"errors"

	"artigos-go/internal/model"

	"gorm.io/gorm"
)

// ErrSubmissionNotFound 表示按 ID 查询不到投稿记录。
// 调用方据此区分"记录不存在"（404）与其它持久化故障（500）。
var ErrSubmissionNotFound = errors.New("submission not found")

// SubmissionRepository 接口定义了投稿记录相关的数据持久化操作。
type SubmissionRepository interface {
	Create(submission *model.Submission) error
	FindAll() ([]model.Submission, error)
	FindFileRefs(id uint) (articleFile string, consentFile string, err error)
	DeleteByID(id uint) error
}

// submissionRepository 是 SubmissionRepository 接口的 GORM 实现。
type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository 创建一个新的 SubmissionRepository 实例。
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

// Create 在数据库中插入一条新的投稿记录，ID 由数据库自增生成。
func (r *submissionRepository) Create(submission *model.Submission) error {
	return r.db.Create(submission).Error
}

// FindAll 返回全部投稿记录，不过滤、不分页，顺序为存储默认顺序。
func (r *submissionRepository) FindAll() ([]model.Submission, error) {
	var submissions []model.Submission
	if err := r.db.Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

// FindFileRefs 按 ID 查询投稿的两个文件引用。
// 记录不存在时返回 ErrSubmissionNotFound。
func (r *submissionRepository) FindFileRefs(id uint) (string, string, error) {
	var submission model.Submission
	err := r.db.Select("article_file", "consent_file").First(&submission, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrSubmissionNotFound
		}
		return "", "", err
	}
	return submission.ArticleFile, submission.ConsentFile, nil
}

// DeleteByID 在事务中按 ID 删除投稿记录。
// 删除已不存在的记录不报错（影响零行），并发删除竞态由上游的查询步骤兜底。
func (r *submissionRepository) DeleteByID(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&model.Submission{}, id).Error
	})
}
