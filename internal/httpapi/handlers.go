package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/soal8877-ctrl/referent/internal/prompt"
	"github.com/soal8877-ctrl/referent/internal/referr"
)

type handlers struct {
	pipeline Pipeline
}

type parseRequest struct {
	URL string `json:"url"`
}

type parseResponse struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

func (h *handlers) parse(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, referr.Errorf(referr.EValidation, "request body must be JSON with a url field"))
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeError(c, referr.Errorf(referr.EValidation, "url is required"))
		return
	}

	article, err := h.pipeline.Extract(c.Request.Context(), req.URL)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, parseResponse{
		Title:   article.Title,
		Date:    article.PublishedAt,
		Content: article.Body,
	})
}

type processRequest struct {
	Content   string `json:"content"`
	Action    string `json:"action"`
	SourceURL string `json:"sourceUrl"`
}

type processResponse struct {
	Result string `json:"result"`
}

func (h *handlers) aiProcess(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, referr.Errorf(referr.EValidation, "request body must be JSON with content and action fields"))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(c, referr.Errorf(referr.EValidation, "content is required"))
		return
	}
	action, err := prompt.Parse(req.Action)
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := h.pipeline.Transform(c.Request.Context(), req.Content, action, req.SourceURL)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, processResponse{Result: result})
}

type translateRequest struct {
	Content string `json:"content"`
}

type translateResponse struct {
	Translation string `json:"translation"`
}

func (h *handlers) translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, referr.Errorf(referr.EValidation, "request body must be JSON with a content field"))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(c, referr.Errorf(referr.EValidation, "content is required"))
		return
	}

	translation, err := h.pipeline.Translate(c.Request.Context(), req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, translateResponse{Translation: translation})
}

// illustration is intentionally wired but switched off: the rendering backend
// is not provisioned for this deployment, so the route reports unavailability
// instead of failing mid-pipeline.
func (h *handlers) illustration(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error":   "UNAVAILABLE",
		"message": "illustration generation is temporarily disabled",
	})
}
