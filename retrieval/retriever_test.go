package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/veridex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	vector []float32
	err    error
}

func (s *stubEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vector, nil
}

type stubSearcher struct {
	hits      []*core.SectionHit
	err       error
	gotLimit  int
	gotVector []float32
}

func (s *stubSearcher) SearchSections(ctx context.Context, vector []float32, queryText string, limit int) ([]*core.SectionHit, error) {
	s.gotLimit = limit
	s.gotVector = vector
	if s.err != nil {
		return nil, s.err
	}
	return s.hits, nil
}

func hit(docID, secID core.ID, score float64, authority int, deprecated bool, sourcePath string) *core.SectionHit {
	return &core.SectionHit{
		DocumentId:     docID,
		SectionId:      secID,
		Score:          score,
		Excerpt:        "excerpt",
		AuthorityLevel: authority,
		Deprecated:     deprecated,
		SourcePath:     sourcePath,
	}
}

func TestNewRetriever(t *testing.T) {
	t.Run("requires embedder", func(t *testing.T) {
		_, err := NewRetriever(nil, &stubSearcher{})
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("requires searcher", func(t *testing.T) {
		_, err := NewRetriever(&stubEmbedder{}, nil)
		assert.ErrorIs(t, err, ErrSearcherRequired)
	})
}

func TestRetrieve(t *testing.T) {
	ctx := context.Background()

	t.Run("over-fetches by factor", func(t *testing.T) {
		searcher := &stubSearcher{}
		r, err := NewRetriever(&stubEmbedder{vector: []float32{1}}, searcher)
		require.NoError(t, err)

		_, err = r.Retrieve(ctx, core.NewQueryInput("q", core.WithMaxSources(5)))
		require.NoError(t, err)
		assert.Equal(t, 20, searcher.gotLimit)
	})

	t.Run("embedding failure is hard error", func(t *testing.T) {
		r, err := NewRetriever(&stubEmbedder{err: errors.New("down")}, &stubSearcher{})
		require.NoError(t, err)

		_, err = r.Retrieve(ctx, core.NewQueryInput("q"))
		assert.ErrorIs(t, err, ErrEmbeddingUnavailable)
	})

	t.Run("search failure is hard error", func(t *testing.T) {
		r, err := NewRetriever(&stubEmbedder{vector: []float32{1}}, &stubSearcher{err: errors.New("down")})
		require.NoError(t, err)

		_, err = r.Retrieve(ctx, core.NewQueryInput("q"))
		assert.ErrorIs(t, err, ErrSearchUnavailable)
	})

	t.Run("filters deprecated by default", func(t *testing.T) {
		searcher := &stubSearcher{hits: []*core.SectionHit{
			hit(1, 10, 0.9, 1, false, "docs/a.md"),
			hit(2, 20, 0.8, 1, true, "docs/b.md"),
		}}
		r, err := NewRetriever(&stubEmbedder{vector: []float32{1}}, searcher)
		require.NoError(t, err)

		got, err := r.Retrieve(ctx, core.NewQueryInput("q"))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, core.ID(1), got[0].DocumentId)
	})

	t.Run("includes deprecated when requested", func(t *testing.T) {
		searcher := &stubSearcher{hits: []*core.SectionHit{
			hit(1, 10, 0.9, 1, false, "docs/a.md"),
			hit(2, 20, 0.8, 1, true, "docs/b.md"),
		}}
		r, err := NewRetriever(&stubEmbedder{vector: []float32{1}}, searcher)
		require.NoError(t, err)

		got, err := r.Retrieve(ctx, core.NewQueryInput("q", core.WithIncludeDeprecated(true)))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.True(t, got[1].Deprecated)
	})

	t.Run("scope by glob pattern", func(t *testing.T) {
		searcher := &stubSearcher{hits: []*core.SectionHit{
			hit(1, 10, 0.9, 1, false, "docs/auth/tokens.md"),
			hit(2, 20, 0.8, 1, false, "guides/setup.md"),
		}}
		r, err := NewRetriever(&stubEmbedder{vector: []float32{1}}, searcher)
		require.NoError(t, err)

		got, err := r.Retrieve(ctx, core.NewQueryInput("q", core.WithScope("docs/**")))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, core.ID(1), got[0].DocumentId)
	})

	t.Run("scope by exact document id", func(t *testing.T) {
		searcher := &stubSearcher{hits: []*core.SectionHit{
			hit(42, 10, 0.9, 1, false, "docs/a.md"),
			hit(43, 20, 0.8, 1, false, "docs/b.md"),
		}}
		r, err := NewRetriever(&stubEmbedder{vector: []float32{1}}, searcher)
		require.NoError(t, err)

		got, err := r.Retrieve(ctx, core.NewQueryInput("q", core.WithScope("42")))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, core.ID(42), got[0].DocumentId)
	})

	t.Run("authority breaks near-ties", func(t *testing.T) {
		searcher := &stubSearcher{hits: []*core.SectionHit{
			hit(1, 10, 0.90002, 1, false, "docs/a.md"),
			hit(2, 20, 0.90001, 5, false, "docs/b.md"),
		}}
		r, err := NewRetriever(&stubEmbedder{vector: []float32{1}}, searcher)
		require.NoError(t, err)

		got, err := r.Retrieve(ctx, core.NewQueryInput("q"))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, core.ID(2), got[0].DocumentId, "higher authority should win inside a score bucket")
	})

	t.Run("clear score gap beats authority", func(t *testing.T) {
		searcher := &stubSearcher{hits: []*core.SectionHit{
			hit(1, 10, 0.95, 1, false, "docs/a.md"),
			hit(2, 20, 0.70, 9, false, "docs/b.md"),
		}}
		r, err := NewRetriever(&stubEmbedder{vector: []float32{1}}, searcher)
		require.NoError(t, err)

		got, err := r.Retrieve(ctx, core.NewQueryInput("q"))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, core.ID(1), got[0].DocumentId)
	})

	t.Run("truncates to max sources", func(t *testing.T) {
		var hits []*core.SectionHit
		for i := 1; i <= 10; i++ {
			hits = append(hits, hit(core.ID(i), core.ID(i*10), 1.0-float64(i)*0.05, 1, false, "docs/a.md"))
		}
		searcher := &stubSearcher{hits: hits}
		r, err := NewRetriever(&stubEmbedder{vector: []float32{1}}, searcher)
		require.NoError(t, err)

		got, err := r.Retrieve(ctx, core.NewQueryInput("q", core.WithMaxSources(3)))
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("empty results are not an error", func(t *testing.T) {
		r, err := NewRetriever(&stubEmbedder{vector: []float32{1}}, &stubSearcher{})
		require.NoError(t, err)

		got, err := r.Retrieve(ctx, core.NewQueryInput("q"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestMatchesScope(t *testing.T) {
	h := hit(7, 70, 0.9, 1, false, "docs/auth/tokens.md")

	assert.True(t, matchesScope(h, []string{"7"}))
	assert.True(t, matchesScope(h, []string{"docs/**"}))
	assert.True(t, matchesScope(h, []string{"nomatch", "docs/auth/*.md"}))
	assert.False(t, matchesScope(h, []string{"8"}))
	assert.False(t, matchesScope(h, []string{"guides/**"}))
	assert.False(t, matchesScope(h, []string{"[malformed"}))
}
