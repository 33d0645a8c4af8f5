package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strconv"

	"github.com/poiesic/veridex/ai"
	"github.com/poiesic/veridex/ai/openai"
	"github.com/poiesic/veridex/core"
	"github.com/poiesic/veridex/storage/badger"
)

type seedClaim struct {
	subject    string
	text       string
	confidence float64
}

type seedSection struct {
	header  string
	content string
	claims  []seedClaim
}

type seedDocument struct {
	title      string
	sourcePath string
	docType    string
	authority  int
	deprecated bool
	sections   []seedSection
}

// seedConflict names its endpoints by claim text. Both texts must appear in
// the corpus above.
type seedConflict struct {
	claimA       string
	claimB       string
	conflictType core.ConflictType
}

var corpus = []seedDocument{
	{
		title:      "Deployment Runbook",
		sourcePath: "docs/ops/deployment.md",
		docType:    "runbook",
		authority:  5,
		sections: []seedSection{
			{
				header:  "Rollout procedure",
				content: "Deployments go through the staging environment first. Every rollout requires a green canary for thirty minutes before promotion to production. Rollbacks are automatic when the error rate exceeds one percent.",
				claims: []seedClaim{
					{subject: "deployment staging", text: "Deployments go through the staging environment first.", confidence: 0.95},
					{subject: "canary promotion", text: "Every rollout requires a green canary for thirty minutes before promotion to production.", confidence: 0.9},
					{subject: "automatic rollback", text: "Rollbacks are automatic when the error rate exceeds one percent.", confidence: 0.85},
				},
			},
			{
				header:  "Release windows",
				content: "Production deploys are allowed Monday through Thursday. Friday deploys need a director sign-off.",
				claims: []seedClaim{
					{subject: "release windows", text: "Production deploys are allowed Monday through Thursday.", confidence: 0.9},
					{subject: "friday deploys", text: "Friday deploys need a director sign-off.", confidence: 0.8},
				},
			},
		},
	},
	{
		title:      "Key Management Guide",
		sourcePath: "docs/security/keys.md",
		docType:    "guide",
		authority:  4,
		sections: []seedSection{
			{
				header:  "Rotation",
				content: "Signing keys are rotated quarterly. Key rotation requires a coordinated deploy of the auth service. Old keys stay valid for a seven day grace period.",
				claims: []seedClaim{
					{subject: "key rotation", text: "Signing keys are rotated quarterly.", confidence: 0.9},
					{subject: "rotation deploy", text: "Key rotation requires a coordinated deploy of the auth service.", confidence: 0.8},
					{subject: "grace period", text: "Old keys stay valid for a seven day grace period.", confidence: 0.75},
				},
			},
			{
				header:  "Storage",
				content: "All private keys live in the vault cluster. Keys are never written to application config files.",
				claims: []seedClaim{
					{subject: "key storage", text: "All private keys live in the vault cluster.", confidence: 0.95},
				},
			},
		},
	},
	{
		title:      "Auth Service FAQ",
		sourcePath: "docs/faq/auth.md",
		docType:    "faq",
		authority:  2,
		sections: []seedSection{
			{
				header:  "Sessions",
				content: "Sessions use JWT tokens. Tokens expire after 24 hours and are refreshed transparently by the client SDK.",
				claims: []seedClaim{
					{subject: "session tokens", text: "Sessions use JWT tokens.", confidence: 0.9},
					{subject: "token expiry", text: "Tokens expire after 24 hours.", confidence: 0.85},
				},
			},
			{
				header:  "Key handling",
				content: "Signing keys are rotated once a year during the January maintenance window.",
				claims: []seedClaim{
					{subject: "key rotation", text: "Signing keys are rotated once a year.", confidence: 0.7},
				},
			},
		},
	},
	{
		title:      "Legacy Deployment Notes",
		sourcePath: "docs/legacy/deploy-2019.md",
		docType:    "notes",
		authority:  1,
		deprecated: true,
		sections: []seedSection{
			{
				header:  "Manual process",
				content: "Deployments are done by copying the binary to each host over ssh. There is no staging environment.",
				claims: []seedClaim{
					{subject: "deployment staging", text: "There is no staging environment.", confidence: 0.8},
				},
			},
		},
	},
}

var conflicts = []seedConflict{
	{
		claimA:       "Signing keys are rotated quarterly.",
		claimB:       "Signing keys are rotated once a year.",
		conflictType: core.ConflictVersionDivergence,
	},
	{
		claimA:       "Deployments go through the staging environment first.",
		claimB:       "There is no staging environment.",
		conflictType: core.ConflictDirectNegation,
	},
}

var (
	dbPath         = flag.String("db", "./veridex_db", "path to the database directory")
	host           = flag.String("host", "http://localhost:11434/v1", "OpenAI-compatible service host URL")
	embeddingModel = flag.String("embedding-model", "embeddinggemma", "embedding model name")
	skipEmbed      = flag.Bool("no-embed", false, "skip section embeddings (keyword search only)")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// embedSections fills in the vector for each section from its header and
// content, batched in one call per document.
func embedSections(ctx context.Context, embedder ai.Embedder, sections []*core.Section) error {
	texts := make([]string, len(sections))
	for i, section := range sections {
		texts[i] = section.Header + " " + section.Content
	}

	vectors, err := embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}
	for i := range sections {
		sections[i].Vector = vectors[i]
	}
	return nil
}

func seedDocumentTree(ctx context.Context, store *badger.Store, embedder ai.Embedder, doc seedDocument, claimIDs map[string]core.ID) error {
	docs, err := store.Documents().AddDocuments(ctx, &core.Document{
		Title:          doc.title,
		SourcePath:     doc.sourcePath,
		ContentHash:    strconv.FormatUint(uint64(core.IDFromContent(doc.sourcePath)), 16),
		Format:         "markdown",
		DocumentType:   doc.docType,
		AuthorityLevel: doc.authority,
	})
	if err != nil {
		return err
	}
	docID := docs[0].Id

	if doc.deprecated {
		if err := store.Documents().SetDeprecated(ctx, docID, true); err != nil {
			return err
		}
	}

	sections := make([]*core.Section, len(doc.sections))
	for i, section := range doc.sections {
		sections[i] = &core.Section{
			DocumentId: docID,
			Header:     section.header,
			Content:    section.content,
			Order:      i,
		}
	}
	if embedder != nil {
		if err := embedSections(ctx, embedder, sections); err != nil {
			return err
		}
	}
	stored, err := store.Sections().AddSections(ctx, sections...)
	if err != nil {
		return err
	}

	for i, section := range doc.sections {
		for _, claim := range section.claims {
			added, err := store.Claims().AddClaims(ctx, &core.Claim{
				DocumentId:      docID,
				SourceSectionId: stored[i].Id,
				Subject:         claim.subject,
				OriginalText:    claim.text,
				Confidence:      claim.confidence,
			})
			if err != nil {
				return err
			}
			claimIDs[claim.text] = added[0].Id
		}
	}

	slog.Info("seeded document", "title", doc.title, "sections", len(stored))
	return nil
}

func main() {
	ctx := context.Background()

	store, err := badger.OpenStore(*dbPath, false)
	if err != nil {
		panic(err)
	}
	defer store.Close()

	var embedder ai.Embedder
	if !*skipEmbed {
		config := ai.NewConfig(ai.WithHost(*host), ai.WithEmbeddingModel(*embeddingModel))
		provider, err := openai.NewProvider(config)
		if err != nil {
			panic(err)
		}
		defer provider.Close()
		embedder = provider.Embedder()
	}

	claimIDs := make(map[string]core.ID)
	for _, doc := range corpus {
		if err := seedDocumentTree(ctx, store, embedder, doc, claimIDs); err != nil {
			panic(err)
		}
	}

	for _, conflict := range conflicts {
		aID, okA := claimIDs[conflict.claimA]
		bID, okB := claimIDs[conflict.claimB]
		if !okA || !okB {
			slog.Warn("conflict endpoint missing from corpus, skipping",
				"claimA", conflict.claimA, "claimB", conflict.claimB)
			continue
		}
		if _, err := store.Conflicts().AddConflicts(ctx, &core.Conflict{
			ClaimAId:     aID,
			ClaimBId:     bID,
			ConflictType: conflict.conflictType,
		}); err != nil {
			panic(err)
		}
	}

	slog.Info("seeding complete", "documents", len(corpus), "conflicts", len(conflicts))
}
