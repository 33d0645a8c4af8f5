package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the stored record types. Field order is
// the wire format; changing it requires a re-ingestion of the store.
var (
	IDMUS       = idMUS{}
	DocumentMUS = documentMUS{}
	SectionMUS  = sectionMUS{}
	ClaimMUS    = claimMUS{}
	ConflictMUS = conflictMUS{}

	vectorMUS      = ord.NewSliceSer[float32](varint.Float32)
	frontmatterMUS = ord.NewMapSer[string, string](ord.String, ord.String)
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

type documentMUS struct{}

func (documentMUS) Marshal(d Document, bs []byte) (n int) {
	n = IDMUS.Marshal(d.Id, bs)
	n += ord.String.Marshal(d.Title, bs[n:])
	n += ord.String.Marshal(d.SourcePath, bs[n:])
	n += ord.String.Marshal(d.ContentHash, bs[n:])
	n += ord.String.Marshal(d.Format, bs[n:])
	n += ord.String.Marshal(d.DocumentType, bs[n:])
	n += ord.String.Marshal(d.RawContent, bs[n:])
	n += varint.Int.Marshal(d.AuthorityLevel, bs[n:])
	n += frontmatterMUS.Marshal(d.Frontmatter, bs[n:])
	n += varint.Int64.Marshal(d.CreatedAt.UnixMicro(), bs[n:])
	n += ord.Bool.Marshal(d.Deprecated, bs[n:])
	return
}

func (documentMUS) Unmarshal(bs []byte) (d Document, n int, err error) {
	var n1 int
	d.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	if d.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	if d.SourcePath, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	if d.ContentHash, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	if d.Format, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	if d.DocumentType, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	if d.RawContent, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	if d.AuthorityLevel, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	if d.Frontmatter, n1, err = frontmatterMUS.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	d.CreatedAt = time.UnixMicro(micros).UTC()
	if d.Deprecated, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return d, n + n1, err
	}
	n += n1
	return
}

func (documentMUS) Size(d Document) (size int) {
	size = IDMUS.Size(d.Id)
	size += ord.String.Size(d.Title)
	size += ord.String.Size(d.SourcePath)
	size += ord.String.Size(d.ContentHash)
	size += ord.String.Size(d.Format)
	size += ord.String.Size(d.DocumentType)
	size += ord.String.Size(d.RawContent)
	size += varint.Int.Size(d.AuthorityLevel)
	size += frontmatterMUS.Size(d.Frontmatter)
	size += varint.Int64.Size(d.CreatedAt.UnixMicro())
	size += ord.Bool.Size(d.Deprecated)
	return
}

type sectionMUS struct{}

func (sectionMUS) Marshal(s Section, bs []byte) (n int) {
	n = IDMUS.Marshal(s.Id, bs)
	n += IDMUS.Marshal(s.DocumentId, bs[n:])
	n += ord.String.Marshal(s.Header, bs[n:])
	n += ord.String.Marshal(s.Content, bs[n:])
	n += varint.Int.Marshal(s.Order, bs[n:])
	n += vectorMUS.Marshal(s.Vector, bs[n:])
	return
}

func (sectionMUS) Unmarshal(bs []byte) (s Section, n int, err error) {
	var n1 int
	s.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	if s.DocumentId, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.Header, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.Content, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.Order, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.Vector, n1, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	return
}

func (sectionMUS) Size(s Section) (size int) {
	size = IDMUS.Size(s.Id)
	size += IDMUS.Size(s.DocumentId)
	size += ord.String.Size(s.Header)
	size += ord.String.Size(s.Content)
	size += varint.Int.Size(s.Order)
	size += vectorMUS.Size(s.Vector)
	return
}

type claimMUS struct{}

func (claimMUS) Marshal(c Claim, bs []byte) (n int) {
	n = IDMUS.Marshal(c.Id, bs)
	n += IDMUS.Marshal(c.DocumentId, bs[n:])
	n += IDMUS.Marshal(c.SourceSectionId, bs[n:])
	n += ord.String.Marshal(c.Subject, bs[n:])
	n += ord.String.Marshal(c.OriginalText, bs[n:])
	n += varint.Float64.Marshal(c.Confidence, bs[n:])
	return
}

func (claimMUS) Unmarshal(bs []byte) (c Claim, n int, err error) {
	var n1 int
	c.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	if c.DocumentId, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.SourceSectionId, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Subject, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.OriginalText, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Confidence, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	return
}

func (claimMUS) Size(c Claim) (size int) {
	size = IDMUS.Size(c.Id)
	size += IDMUS.Size(c.DocumentId)
	size += IDMUS.Size(c.SourceSectionId)
	size += ord.String.Size(c.Subject)
	size += ord.String.Size(c.OriginalText)
	size += varint.Float64.Size(c.Confidence)
	return
}

type conflictMUS struct{}

func (conflictMUS) Marshal(c Conflict, bs []byte) (n int) {
	n = IDMUS.Marshal(c.Id, bs)
	n += IDMUS.Marshal(c.ClaimAId, bs[n:])
	n += IDMUS.Marshal(c.ClaimBId, bs[n:])
	n += ord.String.Marshal(string(c.ConflictType), bs[n:])
	return
}

func (conflictMUS) Unmarshal(bs []byte) (c Conflict, n int, err error) {
	var n1 int
	c.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	if c.ClaimAId, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.ClaimBId, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	var ct string
	if ct, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	c.ConflictType = ConflictType(ct)
	return
}

func (conflictMUS) Size(c Conflict) (size int) {
	size = IDMUS.Size(c.Id)
	size += IDMUS.Size(c.ClaimAId)
	size += IDMUS.Size(c.ClaimBId)
	size += ord.String.Size(string(c.ConflictType))
	return
}
