package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/corpora-ai/corpora/app/core"
)

type HttpSrv struct {
	Core   *core.Core
	Engine *gin.Engine
}
