package mock

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeterministicVector(t *testing.T) {
	t.Run("same text same vector", func(t *testing.T) {
		a := GenerateDeterministicVector("signing key rotation", 384)
		b := GenerateDeterministicVector("signing key rotation", 384)
		assert.Equal(t, a, b)
	})

	t.Run("distinct texts distinct vectors", func(t *testing.T) {
		a := GenerateDeterministicVector("signing key rotation", 384)
		b := GenerateDeterministicVector("database sharding", 384)
		assert.NotEqual(t, a, b)
	})

	t.Run("scaled well below unit length", func(t *testing.T) {
		v := GenerateDeterministicVector("signing key rotation", 384)

		var sumSquares float64
		for _, x := range v {
			sumSquares += float64(x) * float64(x)
		}
		norm := math.Sqrt(sumSquares)
		assert.Greater(t, norm, 0.0)
		assert.Less(t, norm, 0.25)

		// The self dot product equals the squared norm, so even identical
		// text cannot clear a raw dot-product threshold. Tests exercising
		// such thresholds must seed explicit unit vectors.
		assert.Less(t, sumSquares, 0.25)
	})
}

func TestMockEmbedderDefaults(t *testing.T) {
	ctx := context.Background()
	embedder := NewMockEmbedder()

	single, err := embedder.EmbedText(ctx, "signing key rotation")
	require.NoError(t, err)

	batch, err := embedder.EmbedTexts(ctx, []string{"signing key rotation"})
	require.NoError(t, err)
	require.Len(t, batch, 1)

	assert.Equal(t, single, batch[0])
	assert.Equal(t, 2, embedder.CallCount())
}
