package pipeline

import (
	"github.com/nguyentantai21042004/segment-flow/internal/config"
	"github.com/nguyentantai21042004/segment-flow/internal/embedding"
	"github.com/nguyentantai21042004/segment-flow/internal/filter"
	"github.com/nguyentantai21042004/segment-flow/internal/judge"
	"github.com/nguyentantai21042004/segment-flow/internal/logger"
	"github.com/nguyentantai21042004/segment-flow/internal/segmenter"
	"github.com/nguyentantai21042004/segment-flow/internal/transcript"
)

type implPipeline struct {
	segmenter segmenter.Segmenter
	filter    filter.Filter
	speakers  transcript.SpeakerSet
	logger    logger.Logger
}

// New creates a Pipeline from its stages.
func New(seg segmenter.Segmenter, f filter.Filter, speakers transcript.SpeakerSet, log logger.Logger) Pipeline {
	return &implPipeline{
		segmenter: seg,
		filter:    f,
		speakers:  speakers,
		logger:    log,
	}
}

// FromConfig wires a Pipeline from cfg. embedder may be nil when the turn
// strategy is configured.
func FromConfig(cfg *config.Config, embedder embedding.Embedder, evaluator judge.Evaluator, log logger.Logger) (Pipeline, error) {
	speakers := transcript.SpeakerSet{
		Target:      cfg.Speakers.Target,
		Counterpart: cfg.Speakers.Counterpart,
	}

	seg, err := segmenter.New(cfg.Segmentation.Strategy, speakers, embedder, cfg.Segmentation.SimilarityThreshold)
	if err != nil {
		return nil, err
	}

	f := filter.New(evaluator, filter.Options{
		MinWords:           cfg.Filter.MinWords,
		RelevanceThreshold: cfg.Filter.RelevanceThreshold,
		MaxConcurrent:      cfg.Filter.MaxConcurrent,
		Timeout:            cfg.FilterTimeout(),
	}, log)

	return New(seg, f, speakers, log), nil
}
