// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"mime/multipart"

	"artigos-go/internal/model"
	"artigos-go/internal/repository"
	"artigos-go/pkg/log"
	"artigos-go/pkg/storage"
)

// SubmitInput 定义了一次投稿携带的元数据字段。
// 字段内容不做校验，空字符串也被接受。
type SubmitInput struct {
	Name     string
	Email    string
	Title    string
	Category string
}

// SubmissionView 是列表页使用的视图结构，带上两个文件的访问地址。
type SubmissionView struct {
	model.Submission
	ArticleURL string
	ConsentURL string
}

// SubmissionService 接口定义了投稿相关的业务操作。
type SubmissionService interface {
	// Submit 保存两个上传文件并插入一条投稿记录。
	Submit(ctx context.Context, input SubmitInput, article, consent *multipart.FileHeader) (*model.Submission, error)
	// List 返回全部投稿及其文件访问地址。
	List() ([]SubmissionView, error)
	// Delete 删除投稿：先删两个引用文件（尽力而为），再删记录。
	// 记录不存在时返回 repository.ErrSubmissionNotFound。
	Delete(ctx context.Context, id uint) error
}

type submissionService struct {
	repo  repository.SubmissionRepository
	store storage.FileStore
}

// NewSubmissionService 创建一个新的 SubmissionService 实例。
func NewSubmissionService(repo repository.SubmissionRepository, store storage.FileStore) SubmissionService {
	return &submissionService{repo: repo, store: store}
}

// Submit 依次保存文章文件与授权书文件，再插入投稿记录。
// 两次文件写入相互独立，互不回滚；插入失败时已写入的文件也不清理
// （孤儿文件风险在本系统范围内可接受）。
func (s *submissionService) Submit(ctx context.Context, input SubmitInput, article, consent *multipart.FileHeader) (*model.Submission, error) {
	articleRef, err := s.saveUpload(ctx, article)
	if err != nil {
		return nil, err
	}
	consentRef, err := s.saveUpload(ctx, consent)
	if err != nil {
		return nil, err
	}

	submission := &model.Submission{
		Name:        input.Name,
		Email:       input.Email,
		Title:       input.Title,
		Category:    input.Category,
		ArticleFile: articleRef,
		ConsentFile: consentRef,
	}
	if err := s.repo.Create(submission); err != nil {
		log.Error("Submit: 插入投稿记录失败", err)
		return nil, err
	}

	log.Infof("[Submit] 投稿已保存, ID: %d, 标题: %s", submission.ID, submission.Title)
	return submission, nil
}

// saveUpload 打开一个 multipart 文件并交给存储后端。
func (s *submissionService) saveUpload(ctx context.Context, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()
	return s.store.Save(ctx, file, header.Filename)
}

// List 返回全部投稿记录，并为每个文件引用解析访问地址。
// 单个地址解析失败不终止整页渲染，留空即可。
func (s *submissionService) List() ([]SubmissionView, error) {
	submissions, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}

	views := make([]SubmissionView, 0, len(submissions))
	for _, sub := range submissions {
		view := SubmissionView{Submission: sub}
		if u, err := s.store.URL(sub.ArticleFile); err == nil {
			view.ArticleURL = u
		}
		if u, err := s.store.URL(sub.ConsentFile); err == nil {
			view.ConsentURL = u
		}
		views = append(views, view)
	}
	return views, nil
}

// Delete 按 ID 删除投稿。
// 步骤：查文件引用 → 逐个删除文件 → 删除记录。
// 文件删除是幂等的，单个文件删除失败只记日志不中断；
// 记录删除在仓库层的事务中执行。整个序列不是原子的，
// 中途崩溃可能留下无文件的记录，重跑同一删除即可收敛。
func (s *submissionService) Delete(ctx context.Context, id uint) error {
	articleRef, consentRef, err := s.repo.FindFileRefs(id)
	if err != nil {
		return err
	}

	for _, ref := range []string{articleRef, consentRef} {
		if ref == "" {
			continue
		}
		if err := s.store.Delete(ctx, ref); err != nil {
			log.Warnf("[Delete] 删除文件失败: %s, err: %v", ref, err)
		}
	}

	if err := s.repo.DeleteByID(id); err != nil {
		log.Error("Delete: 删除投稿记录失败", err)
		return err
	}

	log.Infof("[Delete] 投稿已删除, ID: %d", id)
	return nil
}
