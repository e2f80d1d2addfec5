// Package nlp wraps sentence segmentation and part-of-speech tagging.
package nlp

import (
	"errors"
	"fmt"
	"strings"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/logger"

	"github.com/jdkato/prose/v2"
	"go.uber.org/zap"
)

// ErrUnavailable is returned by a pipeline whose models failed to load.
var ErrUnavailable = errors.New("nlp: model unavailable")

// ProsePipeline implements domain.LanguagePipeline on top of prose.
// The tagging model is loaded once by NewProsePipeline and shared read-only.
type ProsePipeline struct {
	model     *prose.Model
	segmenter bool
}

// NewProsePipeline loads the tagging model. A failed load is logged and
// leaves the pipeline in degraded mode: HasTagger reports false and Tag
// returns ErrUnavailable. Segmentation does not depend on the model.
func NewProsePipeline() *ProsePipeline {
	p := &ProsePipeline{segmenter: true}
	model, err := loadModel()
	if err != nil {
		logger.Get().Warn("POS tagger unavailable, question strategies will degrade", zap.Error(err))
		return p
	}
	p.model = model
	return p
}

// NewDegradedPipeline returns a pipeline with neither segmenter nor tagger.
func NewDegradedPipeline() *ProsePipeline {
	return &ProsePipeline{}
}

func loadModel() (model *prose.Model, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("loading prose model: %v", r)
		}
	}()
	model = prose.ModelFromData("lecturequiz")
	if model == nil {
		return nil, ErrUnavailable
	}
	return model, nil
}

// HasTagger reports whether Tag can succeed.
func (p *ProsePipeline) HasTagger() bool {
	return p.model != nil
}

// Sentences segments text with the punkt-style segmenter bundled by prose.
func (p *ProsePipeline) Sentences(text string) (sentences []string, err error) {
	if !p.segmenter {
		return nil, ErrUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			sentences, err = nil, fmt.Errorf("segmenting text: %v", r)
		}
	}()

	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("segmenting text: %w", err)
	}
	for _, s := range doc.Sentences() {
		sentences = append(sentences, s.Text)
	}
	return sentences, nil
}

// Tag tokenizes sentence and assigns Penn Treebank tags.
func (p *ProsePipeline) Tag(sentence string) (tokens []domain.Token, err error) {
	if p.model == nil {
		return nil, ErrUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			tokens, err = nil, fmt.Errorf("tagging sentence: %v", r)
		}
	}()

	doc, err := prose.NewDocument(sentence,
		prose.UsingModel(p.model),
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("tagging sentence: %w", err)
	}
	for _, tok := range doc.Tokens() {
		if strings.TrimSpace(tok.Text) == "" {
			continue
		}
		tokens = append(tokens, domain.Token{Text: tok.Text, Tag: tok.Tag})
	}
	return tokens, nil
}
