package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/corpora-ai/corpora/app/logic/v1"
	"github.com/corpora-ai/corpora/app/response"
	"github.com/corpora-ai/corpora/pkg/errors"
	"github.com/corpora-ai/corpora/pkg/i18n"
)

// MaxUploadSize bounds one raw document upload.
const MaxUploadSize = 32 << 20 // 32 MiB

func (s *HttpSrv) Ingest(c *gin.Context) {
	tenantID := c.Param("tenant")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.APIError(c, errors.New("handler.Ingest.FormFile", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest))
		return
	}
	if fileHeader.Size > MaxUploadSize {
		response.APIError(c, errors.New("handler.Ingest.FileTooLarge", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusRequestEntityTooLarge))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.APIError(c, errors.New("handler.Ingest.Open", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest))
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		response.APIError(c, errors.New("handler.Ingest.ReadAll", i18n.ERROR_INTERNAL, err))
		return
	}

	result, err := v1.NewIngestLogic(c, s.Core).Ingest(v1.IngestArgs{
		TenantID:     tenantID,
		PlaygroundID: c.PostForm("playground_id"),
		Filename:     fileHeader.Filename,
		Mime:         fileHeader.Header.Get("Content-Type"),
		Raw:          raw,
	})
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, result)
}

func (s *HttpSrv) RechunkDocument(c *gin.Context) {
	tenantID := c.Param("tenant")
	documentID := c.Param("id")

	result, err := v1.NewIngestLogic(c, s.Core).Rechunk(tenantID, documentID)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, result)
}
