package handler

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"artigos-go/internal/model"
	"artigos-go/internal/repository"
	"artigos-go/internal/service"
	"artigos-go/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSubmissionRepo 是 SubmissionRepository 的内存实现，用于隔离数据库。
type fakeSubmissionRepo struct {
	nextID  uint
	rows    map[uint]model.Submission
	failAll bool
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{rows: make(map[uint]model.Submission)}
}

func (r *fakeSubmissionRepo) Create(submission *model.Submission) error {
	if r.failAll {
		return assert.AnError
	}
	r.nextID++
	submission.ID = r.nextID
	r.rows[submission.ID] = *submission
	return nil
}

func (r *fakeSubmissionRepo) FindAll() ([]model.Submission, error) {
	if r.failAll {
		return nil, assert.AnError
	}
	submissions := make([]model.Submission, 0, len(r.rows))
	for id := uint(1); id <= r.nextID; id++ {
		if sub, ok := r.rows[id]; ok {
			submissions = append(submissions, sub)
		}
	}
	return submissions, nil
}

func (r *fakeSubmissionRepo) FindFileRefs(id uint) (string, string, error) {
	if r.failAll {
		return "", "", assert.AnError
	}
	sub, ok := r.rows[id]
	if !ok {
		return "", "", repository.ErrSubmissionNotFound
	}
	return sub.ArticleFile, sub.ConsentFile, nil
}

func (r *fakeSubmissionRepo) DeleteByID(id uint) error {
	if r.failAll {
		return assert.AnError
	}
	delete(r.rows, id)
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeSubmissionRepo, *storage.LocalStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newFakeSubmissionRepo()
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	h := NewSubmissionHandler(service.NewSubmissionService(repo, store))

	r := gin.New()
	r.LoadHTMLGlob("../../web/templates/*.html")
	r.Static("/uploads", store.Dir())
	r.POST("/enviar", h.Submit)
	r.GET("/documentos", h.List)
	r.POST("/deletar/:id", h.Delete)
	return r, repo, store
}

// multipartRequest 构造一个携带文本字段与文件的投稿请求。
func multipartRequest(t *testing.T, fields map[string]string, files map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for name, value := range fields {
		require.NoError(t, w.WriteField(name, value))
	}
	for part, filename := range files {
		fw, err := w.CreateFormFile(part, filename)
		require.NoError(t, err)
		_, err = io.WriteString(fw, "conteudo de "+filename)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/enviar", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

var submissionFields = map[string]string{
	"name":     "Ana",
	"email":    "a@x.com",
	"title":    "Paper",
	"category": "CS",
}

func TestSubmit(t *testing.T) {
	r, repo, store := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, multipartRequest(t, submissionFields, map[string]string{
		"article":      "draft.pdf",
		"consent_form": "consent.pdf",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Artigo enviado com sucesso!")

	require.Len(t, repo.rows, 1)
	row := repo.rows[1]
	assert.Equal(t, "Ana", row.Name)
	assert.Equal(t, "a@x.com", row.Email)
	assert.Equal(t, "Paper", row.Title)
	assert.Equal(t, "CS", row.Category)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSubmitMissingFiles(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{"MissingArticle", map[string]string{"consent_form": "consent.pdf"}},
		{"MissingConsent", map[string]string{"article": "draft.pdf"}},
		{"MissingBoth", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, repo, store := newTestRouter(t)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, multipartRequest(t, submissionFields, tt.files))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "obrigatórios")

			// 不做任何持久化
			assert.Empty(t, repo.rows)
			entries, err := os.ReadDir(store.Dir())
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestList(t *testing.T) {
	r, repo, _ := newTestRouter(t)

	require.NoError(t, repo.Create(&model.Submission{
		Name: "Ana", Email: "a@x.com", Title: "Paper", Category: "CS",
		ArticleFile: "1-aaa.pdf", ConsentFile: "2-bbb.pdf",
	}))
	require.NoError(t, repo.Create(&model.Submission{
		Name: "Bruno", Email: "b@x.com", Title: "Outro", Category: "Eng",
		ArticleFile: "3-ccc.pdf", ConsentFile: "4-ddd.pdf",
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/documentos", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Documentos Enviados")
	assert.Contains(t, body, "Ana")
	assert.Contains(t, body, "Bruno")
	assert.Contains(t, body, `href="/uploads/1-aaa.pdf"`)
	assert.Contains(t, body, `href="/uploads/4-ddd.pdf"`)
	assert.Contains(t, body, `action="/deletar/1"`)
	assert.Contains(t, body, `action="/deletar/2"`)
}

func TestListEscapesMetadata(t *testing.T) {
	// 元数据直接来自用户输入，渲染必须转义
	r, repo, _ := newTestRouter(t)

	require.NoError(t, repo.Create(&model.Submission{
		Name:        "<script>alert('xss')</script>",
		Title:       `"><img src=x>`,
		ArticleFile: "1-aaa.pdf",
		ConsentFile: "2-bbb.pdf",
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/documentos", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "<script>alert")
	assert.NotContains(t, body, "<img src=x>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestListRepositoryFailure(t *testing.T) {
	r, repo, _ := newTestRouter(t)
	repo.failAll = true

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/documentos", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Erro ao recuperar os documentos.")
}

func TestDelete(t *testing.T) {
	r, repo, _ := newTestRouter(t)

	// 先经由完整的投稿流程创建一条记录
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, multipartRequest(t, submissionFields, map[string]string{
		"article":      "draft.pdf",
		"consent_form": "consent.pdf",
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	row := repo.rows[1]

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/deletar/1", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/documentos", rec.Header().Get("Location"))
	assert.Empty(t, repo.rows)

	// 列表页不再包含该投稿
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/documentos", nil))
	assert.NotContains(t, rec.Body.String(), "Ana")

	// 两个文件的下载地址现在都 404
	for _, ref := range []string{row.ArticleFile, row.ConsentFile} {
		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/"+ref, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
}

func TestDeleteUnknownID(t *testing.T) {
	r, repo, _ := newTestRouter(t)

	require.NoError(t, repo.Create(&model.Submission{
		Name: "Ana", ArticleFile: "1-aaa.pdf", ConsentFile: "2-bbb.pdf",
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/deletar/999", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Documento não encontrado.")
	assert.Len(t, repo.rows, 1)
}

func TestDeleteMalformedID(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/deletar/abc", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteRepositoryFailure(t *testing.T) {
	r, repo, _ := newTestRouter(t)

	require.NoError(t, repo.Create(&model.Submission{
		Name: "Ana", ArticleFile: "1-aaa.pdf", ConsentFile: "2-bbb.pdf",
	}))
	repo.failAll = true

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/deletar/1", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Erro ao excluir o documento.")
}
