package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/corpora-ai/corpora/app/logic/v1"
	"github.com/corpora-ai/corpora/app/response"
	"github.com/corpora-ai/corpora/pkg/utils"
)

type ListDocumentsRequest struct {
	PlaygroundID string `form:"playground_id"`
	Page         uint64 `form:"page"`
	PageSize     uint64 `form:"pagesize"`
}

func (s *HttpSrv) ListDocuments(c *gin.Context) {
	var req ListDocumentsRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 || req.PageSize > 100 {
		req.PageSize = 20
	}

	result, err := v1.NewDocumentLogic(c, s.Core).ListDocuments(c.Param("tenant"), req.PlaygroundID, req.Page, req.PageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, result)
}

func (s *HttpSrv) GetDocument(c *gin.Context) {
	result, err := v1.NewDocumentLogic(c, s.Core).GetDocument(c.Param("tenant"), c.Param("id"))
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, result)
}

func (s *HttpSrv) DeleteDocument(c *gin.Context) {
	if err := v1.NewDocumentLogic(c, s.Core).DeleteDocument(c.Param("tenant"), c.Param("id")); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}
