package corpus

import (
	"errors"
	"testing"

	"lecture-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
)

type stubPipeline struct {
	sentences []string
	err       error
}

func (s stubPipeline) Sentences(string) ([]string, error) { return s.sentences, s.err }
func (s stubPipeline) Tag(string) ([]domain.Token, error) { return nil, errors.New("no tagger") }
func (s stubPipeline) HasTagger() bool                    { return false }

func TestBuild_UsesSegmenter(t *testing.T) {
	nlp := stubPipeline{sentences: []string{
		"  Agile is an iterative software development methodology.  ",
		"Too short.",
		"Scrum is a framework for Agile.",
	}}

	got := Build(nlp, "ignored")
	assert.Equal(t, []string{
		"Agile is an iterative software development methodology.",
		"Scrum is a framework for Agile.",
	}, got)
}

func TestBuild_FallsBackToRegexSplit(t *testing.T) {
	nlp := stubPipeline{err: errors.New("segmenter broken")}
	text := "Agile is an iterative software development methodology. Hi! Scrum is a framework for Agile teams"

	got := Build(nlp, text)
	assert.Equal(t, []string{
		"Agile is an iterative software development methodology",
		"Scrum is a framework for Agile teams",
	}, got)
}

func TestBuild_NilPipeline(t *testing.T) {
	got := Build(nil, "Sprints usually last two weeks in Scrum. Ok.")
	assert.Equal(t, []string{"Sprints usually last two weeks in Scrum"}, got)
}

func TestBuild_EmptyText(t *testing.T) {
	assert.Empty(t, Build(stubPipeline{}, ""))
	assert.Empty(t, Build(nil, "   "))
}

func TestBuild_LengthBoundary(t *testing.T) {
	exactly20 := "abcdefghij abcdefghi"
	exactly21 := "abcdefghij abcdefghij"
	got := Build(stubPipeline{sentences: []string{exactly20, exactly21}}, "")
	assert.Equal(t, []string{exactly21}, got)
}
