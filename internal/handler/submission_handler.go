// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"artigos-go/internal/repository"
	"artigos-go/internal/service"
	"artigos-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// SubmissionHandler 负责处理投稿、列表与删除三类页面请求。
type SubmissionHandler struct {
	submissionService service.SubmissionService
}

// NewSubmissionHandler 创建一个新的 SubmissionHandler 实例。
func NewSubmissionHandler(submissionService service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// Submit 处理投稿表单的提交请求。
// 两个文件（artigo 与 termo）缺一不可，缺失时返回 400 且不做任何持久化。
func (h *SubmissionHandler) Submit(c *gin.Context) {
	article, articleErr := c.FormFile("article")
	consent, consentErr := c.FormFile("consent_form")
	if articleErr != nil || consentErr != nil {
		h.renderError(c, http.StatusBadRequest,
			"Ambos os arquivos (artigo e termo) são obrigatórios.")
		return
	}

	input := service.SubmitInput{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Title:    c.PostForm("title"),
		Category: c.PostForm("category"),
	}

	if _, err := h.submissionService.Submit(c.Request.Context(), input, article, consent); err != nil {
		log.Error("Submit: failed", err)
		h.renderError(c, http.StatusInternalServerError, "Erro ao salvar os dados.")
		return
	}

	c.HTML(http.StatusOK, "success.html", nil)
}

// List 处理投稿列表页的请求，渲染包含全部投稿的 HTML 表格。
func (h *SubmissionHandler) List(c *gin.Context) {
	submissions, err := h.submissionService.List()
	if err != nil {
		log.Error("List: failed", err)
		h.renderError(c, http.StatusInternalServerError, "Erro ao recuperar os documentos.")
		return
	}

	c.HTML(http.StatusOK, "documents.html", gin.H{
		"Submissions": submissions,
	})
}

// Delete 处理删除投稿的请求，成功后重定向回列表页。
// 未知 ID 返回 404，持久化故障返回 500。
func (h *SubmissionHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.renderError(c, http.StatusNotFound, "Documento não encontrado.")
		return
	}

	if err := h.submissionService.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, repository.ErrSubmissionNotFound) {
			h.renderError(c, http.StatusNotFound, "Documento não encontrado.")
			return
		}
		log.Error("Delete: failed", err)
		h.renderError(c, http.StatusInternalServerError, "Erro ao excluir o documento.")
		return
	}

	c.Redirect(http.StatusFound, "/documentos")
}

// renderError 用统一的错误页模板输出错误信息。
func (h *SubmissionHandler) renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{
		"Message": message,
	})
}
