package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IDFromContent("docs/auth.md#sha256:abc123")
		b := IDFromContent("docs/auth.md#sha256:abc123")
		assert.Equal(t, a, b)
	})

	t.Run("distinct content distinct ids", func(t *testing.T) {
		a := IDFromContent("docs/auth.md")
		b := IDFromContent("docs/deploy.md")
		assert.NotEqual(t, a, b)
	})

	t.Run("empty content has an id", func(t *testing.T) {
		assert.NotZero(t, IDFromContent(""))
	})
}

func TestQueryTypeValid(t *testing.T) {
	for _, qt := range []QueryType{QueryTypeFactual, QueryTypeProcedural, QueryTypeConceptual, QueryTypeComparative} {
		assert.True(t, qt.Valid(), "expected %q to be valid", qt)
	}
	assert.False(t, QueryType("rhetorical").Valid())
	assert.False(t, QueryType("").Valid())
}

func TestContainsAllWords(t *testing.T) {
	t.Run("all words present", func(t *testing.T) {
		assert.True(t, ContainsAllWords(
			"Authentication uses OAuth2 with PKCE for public clients.",
			"OAuth2 PKCE authentication"))
	})

	t.Run("missing word", func(t *testing.T) {
		assert.False(t, ContainsAllWords(
			"Authentication uses OAuth2 with PKCE.",
			"SAML authentication"))
	})

	t.Run("stop words ignored", func(t *testing.T) {
		assert.True(t, ContainsAllWords(
			"Sessions expire after one hour.",
			"the sessions expire"))
	})

	t.Run("empty needle never matches", func(t *testing.T) {
		assert.False(t, ContainsAllWords("some document text", ""))
		assert.False(t, ContainsAllWords("some document text", "the a an"))
	})
}
