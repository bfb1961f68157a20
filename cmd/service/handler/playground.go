package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/corpora-ai/corpora/app/logic/v1"
	"github.com/corpora-ai/corpora/app/response"
	"github.com/corpora-ai/corpora/pkg/utils"
)

type CreatePlaygroundRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *HttpSrv) CreatePlayground(c *gin.Context) {
	var req CreatePlaygroundRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	result, err := v1.NewPlaygroundLogic(c, s.Core).CreatePlayground(c.Param("tenant"), v1.CreatePlaygroundArgs{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, result)
}

type ListPlaygroundsRequest struct {
	Page     uint64 `form:"page"`
	PageSize uint64 `form:"pagesize"`
}

func (s *HttpSrv) ListPlaygrounds(c *gin.Context) {
	var req ListPlaygroundsRequest
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

	result, err := v1.NewPlaygroundLogic(c, s.Core).ListPlaygrounds(c.Param("tenant"), req.Page, req.PageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, result)
}

func (s *HttpSrv) GetPlayground(c *gin.Context) {
	result, err := v1.NewPlaygroundLogic(c, s.Core).GetPlayground(c.Param("tenant"), c.Param("id"))
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, result)
}

func (s *HttpSrv) DeletePlayground(c *gin.Context) {
	if err := v1.NewPlaygroundLogic(c, s.Core).DeletePlayground(c.Param("tenant"), c.Param("id")); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}
