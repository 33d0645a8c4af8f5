package synthesis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/veridex/ai/mock"
	"github.com/poiesic/veridex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func source(excerpt string, authority int) core.RetrievedSection {
	return core.RetrievedSection{
		DocumentId:     1,
		SectionId:      10,
		Score:          0.9,
		Excerpt:        excerpt,
		AuthorityLevel: authority,
	}
}

func TestNewSynthesizer(t *testing.T) {
	_, err := NewSynthesizer(nil)
	assert.ErrorIs(t, err, ErrGeneratorRequired)
}

func TestSynthesize(t *testing.T) {
	ctx := context.Background()
	input := core.NewQueryInput("how long do tokens last?")

	t.Run("parses model answer", func(t *testing.T) {
		gen := mock.NewMockGenerator()
		gen.GenerateJSONFunc = func(ctx context.Context, system, user string) (string, error) {
			return `{"answer":"Tokens expire after 24 hours.","confidence":0.92,"knowledge_gaps":[]}`, nil
		}
		s, err := NewSynthesizer(gen)
		require.NoError(t, err)

		answer := s.Synthesize(ctx, input, []core.RetrievedSection{source("tokens expire after 24 hours", 1)}, nil, nil)
		assert.Equal(t, "Tokens expire after 24 hours.", answer.Answer)
		assert.Equal(t, 0.92, answer.Confidence)
		assert.Empty(t, answer.KnowledgeGaps)
	})

	t.Run("strips code fences", func(t *testing.T) {
		gen := mock.NewMockGenerator()
		gen.GenerateJSONFunc = func(ctx context.Context, system, user string) (string, error) {
			return "```json\n{\"answer\":\"ok\",\"confidence\":0.5,\"knowledge_gaps\":[]}\n```", nil
		}
		s, err := NewSynthesizer(gen)
		require.NoError(t, err)

		answer := s.Synthesize(ctx, input, []core.RetrievedSection{source("x", 1)}, nil, nil)
		assert.Equal(t, "ok", answer.Answer)
	})

	t.Run("clamps confidence", func(t *testing.T) {
		gen := mock.NewMockGenerator()
		gen.GenerateJSONFunc = func(ctx context.Context, system, user string) (string, error) {
			return `{"answer":"ok","confidence":1.7,"knowledge_gaps":[]}`, nil
		}
		s, err := NewSynthesizer(gen)
		require.NoError(t, err)

		answer := s.Synthesize(ctx, input, []core.RetrievedSection{source("x", 1)}, nil, nil)
		assert.Equal(t, 1.0, answer.Confidence)
	})

	t.Run("no sources answers without model call", func(t *testing.T) {
		gen := mock.NewMockGenerator()
		s, err := NewSynthesizer(gen)
		require.NoError(t, err)

		answer := s.Synthesize(ctx, input, nil, nil, nil)
		assert.Contains(t, answer.Answer, "No relevant information")
		assert.Equal(t, noEvidenceConfidence, answer.Confidence)
		require.Len(t, answer.KnowledgeGaps, 1)
		assert.Contains(t, answer.KnowledgeGaps[0], input.Query)
		assert.Equal(t, 0, gen.CallCount())
	})

	t.Run("generation failure falls back to best claim", func(t *testing.T) {
		gen := mock.NewMockGenerator()
		gen.GenerateJSONFunc = func(ctx context.Context, system, user string) (string, error) {
			return "", errors.New("model down")
		}
		s, err := NewSynthesizer(gen)
		require.NoError(t, err)

		claims := []core.SupportingClaim{
			{Id: 1, Text: "tokens expire after 12 hours", Confidence: 0.6, DocumentId: 1},
			{Id: 2, Text: "tokens expire after 24 hours", Confidence: 0.9, DocumentId: 2},
		}
		answer := s.Synthesize(ctx, input, []core.RetrievedSection{source("x", 1)}, claims, nil)
		assert.Contains(t, answer.Answer, "tokens expire after 24 hours")
		assert.Equal(t, fallbackConfidence, answer.Confidence)
		assert.Equal(t, []string{FallbackGap}, answer.KnowledgeGaps)
	})

	t.Run("unparsable response falls back to excerpt when no claims", func(t *testing.T) {
		gen := mock.NewMockGenerator()
		gen.GenerateJSONFunc = func(ctx context.Context, system, user string) (string, error) {
			return "I think the answer is probably 24 hours.", nil
		}
		s, err := NewSynthesizer(gen)
		require.NoError(t, err)

		answer := s.Synthesize(ctx, input, []core.RetrievedSection{source("tokens expire after 24 hours", 1)}, nil, nil)
		assert.Contains(t, answer.Answer, "tokens expire after 24 hours")
		assert.Equal(t, fallbackConfidence, answer.Confidence)
	})

	t.Run("prompts carry evidence and conflicts", func(t *testing.T) {
		gen := mock.NewMockGenerator()
		s, err := NewSynthesizer(gen)
		require.NoError(t, err)

		unverified := false
		claims := []core.SupportingClaim{
			{Id: 1, Text: "tokens expire after 24 hours", Confidence: 0.9, DocumentId: 1, Verified: &unverified},
		}
		conflicts := []core.ResolvedConflict{
			{
				ClaimA:       core.ClaimRef{Text: "tokens expire after 24 hours", Confidence: 0.9, DocumentId: 1},
				ClaimB:       core.ClaimRef{Text: "tokens never expire", Confidence: 0.5, DocumentId: 2},
				ConflictType: core.ConflictDirectNegation,
			},
		}

		s.Synthesize(ctx, input, []core.RetrievedSection{source("token excerpt", 3)}, claims, conflicts)

		user := gen.LastUserPrompt()
		assert.Contains(t, user, input.Query)
		assert.Contains(t, user, "token excerpt")
		assert.Contains(t, user, "authority 3")
		assert.Contains(t, user, "unverified")
		assert.Contains(t, user, "direct_negation")
		assert.Contains(t, user, "tokens never expire")
	})

	t.Run("query type selects answer shape", func(t *testing.T) {
		gen := mock.NewMockGenerator()
		s, err := NewSynthesizer(gen)
		require.NoError(t, err)

		procedural := core.NewQueryInput("how do I rotate keys?", core.WithQueryType(core.QueryTypeProcedural))
		s.Synthesize(ctx, procedural, []core.RetrievedSection{source("x", 1)}, nil, nil)
		assert.Contains(t, gen.LastSystemPrompt(), "ordered steps")

		comparative := core.NewQueryInput("JWT vs sessions?", core.WithQueryType(core.QueryTypeComparative))
		s.Synthesize(ctx, comparative, []core.RetrievedSection{source("x", 1)}, nil, nil)
		assert.Contains(t, gen.LastSystemPrompt(), "side-by-side")
	})
}

func TestParseAnswer(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		answer, err := parseAnswer(`{"answer":"ok","confidence":0.7,"knowledge_gaps":["x"]}`)
		require.NoError(t, err)
		assert.Equal(t, "ok", answer.Answer)
		assert.Equal(t, 0.7, answer.Confidence)
		assert.Equal(t, []string{"x"}, answer.KnowledgeGaps)
	})

	t.Run("missing gaps become empty slice", func(t *testing.T) {
		answer, err := parseAnswer(`{"answer":"ok","confidence":0.7}`)
		require.NoError(t, err)
		assert.NotNil(t, answer.KnowledgeGaps)
		assert.Empty(t, answer.KnowledgeGaps)
	})

	t.Run("negative confidence clamped", func(t *testing.T) {
		answer, err := parseAnswer(`{"answer":"ok","confidence":-0.5,"knowledge_gaps":[]}`)
		require.NoError(t, err)
		assert.Equal(t, 0.0, answer.Confidence)
	})

	t.Run("empty answer rejected", func(t *testing.T) {
		_, err := parseAnswer(`{"answer":"","confidence":0.7,"knowledge_gaps":[]}`)
		assert.ErrorIs(t, err, ErrUnparsableAnswer)
	})

	t.Run("prose rejected", func(t *testing.T) {
		_, err := parseAnswer("The answer is 24 hours.")
		assert.ErrorIs(t, err, ErrUnparsableAnswer)
	})

	t.Run("repairs missing opening quote on key", func(t *testing.T) {
		answer, err := parseAnswer(`{"answer":"ok", confidence":0.7,"knowledge_gaps":[]}`)
		require.NoError(t, err)
		assert.Equal(t, 0.7, answer.Confidence)
	})
}

func TestBuildUserPrompt(t *testing.T) {
	prompt := buildUserPrompt("q", nil, nil, nil)
	assert.True(t, strings.Contains(prompt, "(none)"))
}
