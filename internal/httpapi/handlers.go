package httpapi

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nguyentantai21042004/segment-flow/internal/archive"
	"github.com/nguyentantai21042004/segment-flow/internal/config"
	"github.com/nguyentantai21042004/segment-flow/internal/pipeline"
	"github.com/nguyentantai21042004/segment-flow/internal/segmenter"
)

// UploadParams are the optional per-request overrides for /upload.
type UploadParams struct {
	Strategy    string   `validate:"omitempty,oneof=turn similarity"`
	Threshold   *float64 `validate:"omitempty,gte=0,lte=1"`
	MinWords    *int     `validate:"omitempty,gte=0"`
	Target      string   `validate:"omitempty,max=200"`
	Counterpart string   `validate:"omitempty,max=200"`
}

// apply returns a copy of base with the overrides set.
func (p UploadParams) apply(base *config.Config) *config.Config {
	cfg := *base
	if p.Strategy != "" {
		cfg.Segmentation.Strategy = p.Strategy
	}
	if p.Threshold != nil {
		cfg.Segmentation.SimilarityThreshold = *p.Threshold
	}
	if p.MinWords != nil {
		cfg.Filter.MinWords = *p.MinWords
	}
	if p.Target != "" {
		cfg.Speakers.Target = p.Target
	}
	if p.Counterpart != "" {
		cfg.Speakers.Counterpart = p.Counterpart
	}
	return &cfg
}

func (s *implServer) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *implServer) upload(c *fiber.Ctx) error {
	ctx := c.UserContext()

	file, err := c.FormFile("contentFile")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, codeNoFile, "No file uploaded")
	}

	maxSize := int64(s.cfg.Server.MaxUploadSize) * 1024 * 1024
	if file.Size > maxSize {
		return respondError(c, fiber.StatusBadRequest, codeFileTooLarge,
			fmt.Sprintf("File too large (max %dMB)", s.cfg.Server.MaxUploadSize))
	}

	params, err := parseUploadParams(c)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, codeInvalidParams, err.Error())
	}
	if err := s.validate.Struct(params); err != nil {
		return respondError(c, fiber.StatusBadRequest, codeInvalidParams, formatValidationErrors(err))
	}

	data, err := readFormFile(file)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, codeNoFile, "Uploaded file could not be read")
	}

	s.logger.Info(ctx, "Upload received: %s (%d bytes)", file.Filename, file.Size)

	runCfg := params.apply(s.cfg)
	if err := runCfg.Speakers.Check(); err != nil {
		return respondError(c, fiber.StatusBadRequest, codeInvalidParams, err.Error())
	}

	pipe, err := s.pipeline(runCfg)
	if err != nil {
		s.logger.Error(ctx, "Failed to build pipeline: %v", err)
		if errors.Is(err, segmenter.ErrEmbedding) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Embedding service unavailable",
				"code":  codePipeline,
				"stage": string(pipeline.StageSegment),
			})
		}
		return respondError(c, fiber.StatusInternalServerError, codeInternal, "Pipeline unavailable")
	}

	result, err := pipe.Run(ctx, data)
	if err != nil {
		return s.pipelineError(c, err)
	}

	zipData, err := archive.Zip(result.Accepted)
	if err != nil {
		s.logger.Error(ctx, "Failed to build zip: %v", err)
		return respondError(c, fiber.StatusInternalServerError, codeInternal, "Failed to package segments")
	}

	c.Attachment(archive.DownloadName)
	c.Set(fiber.HeaderCacheControl, "no-store, no-cache, must-revalidate, max-age=0")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderExpires, "0")
	c.Set("X-Run-ID", result.RunID)
	return c.Status(fiber.StatusOK).Send(zipData)
}

func (s *implServer) pipelineError(c *fiber.Ctx, err error) error {
	if errors.Is(err, pipeline.ErrEmptyResult) {
		return respondError(c, fiber.StatusUnprocessableEntity, codeNoContent, "No meaningful content found after filtering")
	}

	stage := pipeline.StageOf(err)
	if stage == "" {
		return err
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
		"code":  codePipeline,
		"stage": string(stage),
	})
}

func (s *implServer) generatePost(c *fiber.Ctx) error {
	if s.posts == nil {
		return respondError(c, fiber.StatusServiceUnavailable, codeUnavailable, "Post generation is not configured")
	}

	styleFile, err := c.FormFile("styleFile")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, codeNoFile, "Both files are required")
	}
	transcriptFile, err := c.FormFile("transcriptFile")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, codeNoFile, "Both files are required")
	}

	style, err := readFormFile(styleFile)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, codeNoFile, "Style file could not be read")
	}
	transcript, err := readFormFile(transcriptFile)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, codeNoFile, "Transcript file could not be read")
	}

	post, err := s.posts.Generate(c.UserContext(), string(style), string(transcript))
	if err != nil {
		s.logger.Error(c.UserContext(), "Post generation failed: %v", err)
		return respondError(c, fiber.StatusInternalServerError, codeGeneration, "Failed to generate content")
	}

	return c.JSON(fiber.Map{"post": post})
}

func parseUploadParams(c *fiber.Ctx) (UploadParams, error) {
	params := UploadParams{
		Strategy:    strings.TrimSpace(c.FormValue("strategy")),
		Target:      strings.TrimSpace(c.FormValue("target")),
		Counterpart: strings.TrimSpace(c.FormValue("counterpart")),
	}

	if raw := strings.TrimSpace(c.FormValue("threshold")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return params, fmt.Errorf("threshold must be a number")
		}
		params.Threshold = &v
	}
	if raw := strings.TrimSpace(c.FormValue("min_words")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return params, fmt.Errorf("min_words must be an integer")
		}
		params.MinWords = &v
	}
	return params, nil
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
