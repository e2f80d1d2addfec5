package relevance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var agileCorpus = []string{
	"Agile is an iterative software development methodology.",
	"Waterfall is a linear software development methodology.",
	"Scrum is a framework for Agile.",
}

func TestRanker_FindRelevant(t *testing.T) {
	ctx := context.Background()
	r := NewRanker(agileCorpus)

	t.Run("exact sentence ranks first", func(t *testing.T) {
		for _, s := range agileCorpus {
			got := r.FindRelevant(ctx, s, 3)
			require.NotEmpty(t, got)
			assert.Equal(t, s, got[0])
		}
	})

	t.Run("topic with two matching terms", func(t *testing.T) {
		got := r.FindRelevant(ctx, "agile methodology", 3)
		require.NotEmpty(t, got)
		assert.Equal(t, agileCorpus[0], got[0])
	})

	t.Run("respects n", func(t *testing.T) {
		got := r.FindRelevant(ctx, "software development methodology agile", 1)
		assert.Len(t, got, 1)
	})

	t.Run("unrelated topic returns nothing", func(t *testing.T) {
		assert.Empty(t, r.FindRelevant(ctx, "photosynthesis", 3))
	})

	t.Run("non-positive n", func(t *testing.T) {
		assert.Nil(t, r.FindRelevant(ctx, "agile", 0))
	})
}

func TestRanker_CancelledContextFallsBack(t *testing.T) {
	r := NewRanker(agileCorpus)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := r.FindRelevant(ctx, "scrum", 3)
	assert.Equal(t, []string{agileCorpus[2]}, got)
}

func TestRanker_EmptyVocabularyFallsBack(t *testing.T) {
	// Every word is a stop word, so the index cannot be built.
	corpus := []string{"It is what it is and will be.", "They were there."}
	r := NewRanker(corpus)
	ranker, ok := r.(*Ranker)
	require.True(t, ok)
	assert.Nil(t, ranker.index)

	assert.Equal(t, []string{corpus[1]}, r.FindRelevant(context.Background(), "there", 5))
}

func TestRanker_EmptyCorpus(t *testing.T) {
	r := NewRanker(nil)
	assert.Empty(t, r.FindRelevant(context.Background(), "agile", 5))
}

func TestKeywordMatch(t *testing.T) {
	corpus := []string{
		"Testing finds defects early.",
		"Unit testing and integration testing complement each other.",
		"Deployment pipelines automate releases.",
		"Integration of unit modules happens later.",
	}

	got := KeywordMatch(corpus, "Unit Integration", 10)
	assert.Equal(t, []string{corpus[1], corpus[3]}, got)

	got = KeywordMatch(corpus, "testing", 1)
	assert.Equal(t, []string{corpus[0]}, got)

	assert.Nil(t, KeywordMatch(corpus, "   ", 3))
}

func TestBuildIndex(t *testing.T) {
	idx, err := BuildIndex(agileCorpus, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())
	assert.Contains(t, idx.vocab, "software development")
	assert.Contains(t, idx.vocab, "agile")
	assert.NotContains(t, idx.vocab, "is")

	_, err = BuildIndex(nil, 10)
	assert.ErrorIs(t, err, ErrEmptyVocabulary)

	small, err := BuildIndex(agileCorpus, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, small.VocabularySize())
}

func TestBuildIndex_DropsTermsInEveryDocument(t *testing.T) {
	docs := []string{"kanban board columns", "kanban limits work", "kanban pulls tasks"}
	idx, err := BuildIndex(docs, 0)
	require.NoError(t, err)
	assert.NotContains(t, idx.vocab, "kanban")
	assert.Contains(t, idx.vocab, "board")
}

func TestIndex_SimilaritiesAreCosine(t *testing.T) {
	idx, err := BuildIndex(agileCorpus, 0)
	require.NoError(t, err)

	scores, err := idx.Similarities(context.Background(), agileCorpus[1])
	require.NoError(t, err)
	assert.InDelta(t, 1.0, scores[1], 1e-9)
	for _, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0+1e-9)
	}
}
