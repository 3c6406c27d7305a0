package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/alkime/stylepost/internal/content"
	"github.com/alkime/stylepost/internal/pipeline"
	"github.com/alkime/stylepost/internal/topics"
	"github.com/gin-gonic/gin"
)

// Output formats accepted by ?format= on run and topic endpoints.
const (
	formatMarkdown = "md"
	formatHTML     = "html"
)

type postRequest struct {
	Topic        string `json:"topic"`
	Reference    string `json:"reference"`
	Requirements string `json:"requirements"`
}

type researchRequest struct {
	Topic string   `json:"topic"`
	Areas []string `json:"areas"`
}

func (s *Server) handleSample(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(pipeline.SampleInput))
}

func (s *Server) handleValidate(c *gin.Context) {
	in, err := s.decodeInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true, "input": in})
}

func (s *Server) handlePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, fmt.Errorf("%w: %w", pipeline.ErrInvalidInput, err))
		return
	}

	in := pipeline.Input{
		RootBlogURL:         strings.TrimSpace(req.Reference),
		Topics:              []string{strings.TrimSpace(req.Topic)},
		WritingRequirements: strings.TrimSpace(req.Requirements),
	}

	s.run(c, pipeline.VariantPost, in)
}

func (s *Server) handleWorkflow(c *gin.Context) {
	var (
		in  pipeline.Input
		err error
	)

	if mediaType(c) == "text/plain" {
		raw, readErr := io.ReadAll(c.Request.Body)
		if readErr != nil {
			s.fail(c, fmt.Errorf("failed to read request body: %w", readErr))
			return
		}
		text := strings.TrimSpace(string(raw))
		if text == "" {
			s.fail(c, fmt.Errorf("%w: input is empty", pipeline.ErrInvalidInput))
			return
		}
		in, err = s.service.ParseInput(c.Request.Context(), text)
	} else {
		in, err = s.decodeInput(c)
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	s.run(c, pipeline.VariantWorkflow, in)
}

func (s *Server) handleTopics(c *gin.Context) {
	var req topics.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, fmt.Errorf("%w: %w", topics.ErrInvalidRequest, err))
		return
	}

	ideas, err := s.service.GenerateTopics(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}

	if c.Query("format") == formatMarkdown {
		c.Header("Content-Disposition", `attachment; filename="topic_ideas.md"`)
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(topics.Format(ideas)))
		return
	}

	if ideas == nil {
		ideas = []topics.TopicIdea{}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(ideas), "ideas": ideas})
}

func (s *Server) handleResearch(c *gin.Context) {
	var req researchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, fmt.Errorf("%w: %w", pipeline.ErrInvalidInput, err))
		return
	}

	notes, err := s.service.Research(c.Request.Context(), req.Topic, req.Areas)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"topic": req.Topic, "notes": notes})
}

// run executes a variant and writes the result in the requested format.
func (s *Server) run(c *gin.Context, variant pipeline.Variant, in pipeline.Input) {
	res, err := s.service.Run(c.Request.Context(), variant, in)
	if err != nil {
		body := gin.H{"error": err.Error()}

		var stageErr *pipeline.StageError
		if errors.As(err, &stageErr) {
			body["stage"] = stageErr.Stage
		}
		if res != nil {
			body["elapsed"] = pipeline.FormatElapsed(res.Elapsed)
		}

		c.JSON(statusFor(err), body)
		return
	}

	filename := content.PostSlug(res.Final)

	switch c.Query("format") {
	case formatMarkdown:
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.md"`, filename))
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(res.Final))
	case formatHTML:
		html, err := content.RenderHTML(res.Final)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.html"`, filename))
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	default:
		c.JSON(http.StatusOK, gin.H{
			"result":  res,
			"elapsed": pipeline.FormatElapsed(res.Elapsed),
		})
	}
}

// decodeInput reads an input record from the body. The format comes from
// ?input=, else from the content type; JSON is the default.
func (s *Server) decodeInput(c *gin.Context) (pipeline.Input, error) {
	format := c.Query("input")
	if format == "" && strings.Contains(mediaType(c), "yaml") {
		format = pipeline.FormatYAML
	}
	return pipeline.DecodeInput(c.Request.Body, format)
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	if pipeline.IsInputError(err) || errors.Is(err, topics.ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func mediaType(c *gin.Context) string {
	mt, _, err := mime.ParseMediaType(c.GetHeader("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}
