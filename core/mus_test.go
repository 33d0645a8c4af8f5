package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentMUSRoundTrip(t *testing.T) {
	doc := Document{
		Id:             IDFromContent("docs/auth.md"),
		Title:          "Authentication Guide",
		SourcePath:     "docs/auth.md",
		ContentHash:    "abc123",
		Format:         "markdown",
		DocumentType:   "guide",
		RawContent:     "# Authentication\nSessions use JWT tokens.",
		AuthorityLevel: 3,
		Frontmatter:    map[string]string{"owner": "platform"},
		CreatedAt:      time.UnixMicro(1756600000000000).UTC(),
		Deprecated:     true,
	}

	bs := make([]byte, DocumentMUS.Size(doc))
	n := DocumentMUS.Marshal(doc, bs)
	assert.Equal(t, len(bs), n)

	got, n, err := DocumentMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, len(bs), n)
	assert.Equal(t, doc, got)
}

func TestSectionMUSRoundTrip(t *testing.T) {
	section := Section{
		Id:         7,
		DocumentId: 3,
		Header:     "Sessions",
		Content:    "Tokens expire after 24 hours.",
		Order:      2,
		Vector:     []float32{0.25, -0.5, 1.0},
	}

	bs := make([]byte, SectionMUS.Size(section))
	n := SectionMUS.Marshal(section, bs)
	assert.Equal(t, len(bs), n)

	got, n, err := SectionMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, len(bs), n)
	assert.Equal(t, section, got)
}
