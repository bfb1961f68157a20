package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/corpora-ai/corpora/app/logic/v1"
	"github.com/corpora-ai/corpora/app/response"
	"github.com/corpora-ai/corpora/pkg/utils"
)

type QueryRequest struct {
	PlaygroundID string `json:"playground_id"`
	Question     string `json:"question" binding:"required"`
	TopK         uint64 `json:"top_k"`
}

func (s *HttpSrv) Query(c *gin.Context) {
	var req QueryRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	result, err := v1.NewQueryLogic(c, s.Core).Query(v1.QueryArgs{
		TenantID:     c.Param("tenant"),
		PlaygroundID: req.PlaygroundID,
		Question:     req.Question,
		TopK:         req.TopK,
	})
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, result)
}
