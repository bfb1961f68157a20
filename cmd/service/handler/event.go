package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/corpora-ai/corpora/app/logic/v1"
	"github.com/corpora-ai/corpora/app/response"
	"github.com/corpora-ai/corpora/pkg/utils"
)

type ListEventsRequest struct {
	PlaygroundID string `form:"playground_id"`
	Page         uint64 `form:"page"`
	PageSize     uint64 `form:"pagesize"`
}

func (s *HttpSrv) ListEvents(c *gin.Context) {
	var req ListEventsRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 || req.PageSize > 200 {
		req.PageSize = 50
	}

	result, err := v1.NewEventLogic(c, s.Core).ListEvents(c.Param("tenant"), req.PlaygroundID, req.Page, req.PageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, result)
}
