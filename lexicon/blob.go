package lexicon

import (
	"context"
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/cometsh/atkit"
)

// ---- bytes ----

// bytesSchema validates the {"$bytes": <base64>} wrapper and transforms it:
// the normalized value is the decoded raw byte sequence, with length bounds
// applied to the decoded bytes, not the encoded string.
type bytesSchema struct {
	minLength *int
	maxLength *int
}

func (s bytesSchema) Parse(ctx context.Context, v any) (any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, atkit.Issues{{Path: "/", Code: atkit.CodeInvalidType, Message: "expected $bytes object"}}
	}
	enc, ok := m["$bytes"].(string)
	if !ok {
		return nil, atkit.Issues{{Path: "/$bytes", Code: atkit.CodeRequired, Message: "missing $bytes string"}}
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return nil, atkit.Issues{{Path: "/$bytes", Code: atkit.CodeInvalidFormat, Message: "invalid base64", Cause: err}}
	}
	if s.minLength != nil && len(raw) < *s.minLength {
		return nil, atkit.Issues{{Path: "/$bytes", Code: atkit.CodeTooShort, Message: "decoded bytes too short", Params: map[string]any{"min": *s.minLength, "got": len(raw)}}}
	}
	if s.maxLength != nil && len(raw) > *s.maxLength {
		return nil, atkit.Issues{{Path: "/$bytes", Code: atkit.CodeTooLong, Message: "decoded bytes too long", Params: map[string]any{"max": *s.maxLength, "got": len(raw)}}}
	}
	return raw, nil
}

func (s bytesSchema) Validate(ctx context.Context, v any) error {
	_, err := s.Parse(ctx, v)
	return err
}

// encodeValue is the inverse transform: raw bytes back to the wire wrapper.
func (s bytesSchema) encodeValue(v any) (any, error) {
	raw, ok := v.([]byte)
	if !ok {
		return v, nil
	}
	return map[string]any{"$bytes": base64.StdEncoding.EncodeToString(raw)}, nil
}

// ---- cid-link ----

// cidLinkSchema checks the {"$link": <string>} structural shape only; the
// linked CID is not decoded (see the package design notes).
type cidLinkSchema struct{}

func (cidLinkSchema) Parse(ctx context.Context, v any) (any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, atkit.Issues{{Path: "/", Code: atkit.CodeInvalidType, Message: "expected $link object"}}
	}
	link, ok := m["$link"].(string)
	if !ok || link == "" {
		return nil, atkit.Issues{{Path: "/$link", Code: atkit.CodeRequired, Message: "missing $link string"}}
	}
	return v, nil
}

func (cidLinkSchema) Validate(ctx context.Context, v any) error {
	_, err := cidLinkSchema{}.Parse(ctx, v)
	return err
}

// ---- blob ----

// blobSchema accepts the two blob reference shapes: the current form
// {"$type": "blob", "ref": {"$link": ...}, "mimeType": ..., "size": ...}
// and the legacy form {"cid": ..., "mimeType": ...}.
type blobSchema struct {
	accept    *regexp.Regexp // nil means any <type>/<subtype>
	acceptSrc []string
	maxSize   *int64
}

var genericMimeRegex = regexp.MustCompile(`^[^/]+/[^/]+$`)

func compileBlob(cc *compileContext, path string, f *Field) (Schema, error) {
	s := blobSchema{maxSize: f.MaxSize, acceptSrc: f.Accept}
	if len(f.Accept) > 0 {
		// Glob patterns: "image/*" becomes "image/.+"; all patterns OR'd
		// into one anchored alternation.
		alts := make([]string, len(f.Accept))
		for i, pat := range f.Accept {
			alts[i] = strings.ReplaceAll(regexp.QuoteMeta(pat), `\*`, `.+`)
		}
		re, err := regexp.Compile(`^(` + strings.Join(alts, `|`) + `)$`)
		if err != nil {
			return nil, cc.errf(path, "invalid accept pattern list")
		}
		s.accept = re
	}
	return s, nil
}

func (s blobSchema) Parse(ctx context.Context, v any) (any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, atkit.Issues{{Path: "/", Code: atkit.CodeInvalidType, Message: "expected blob object"}}
	}
	if t, _ := m["$type"].(string); t == "blob" {
		if _, err := (cidLinkSchema{}).Parse(ctx, m["ref"]); err != nil {
			return nil, atkit.RebaseIssues("/ref", err)
		}
		if err := s.checkMime(m["mimeType"]); err != nil {
			return nil, err
		}
		size, err := toInt64(m["size"])
		if err != nil || size < 0 {
			return nil, atkit.Issues{{Path: "/size", Code: atkit.CodeInvalidType, Message: "expected non-negative size"}}
		}
		if s.maxSize != nil && size > *s.maxSize {
			return nil, atkit.Issues{{Path: "/size", Code: atkit.CodeTooBig, Message: "blob exceeds maxSize", Params: map[string]any{"max": *s.maxSize, "got": size}}}
		}
		return v, nil
	}
	// Legacy blobs: {"cid": ..., "mimeType": ...}; size is unknown, so
	// maxSize cannot be enforced.
	if cid, _ := m["cid"].(string); cid != "" {
		if err := s.checkMime(m["mimeType"]); err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, atkit.Issues{{Path: "/", Code: atkit.CodeInvalidType, Message: "not a blob reference"}}
}

func (s blobSchema) checkMime(v any) error {
	mime, ok := v.(string)
	if !ok || mime == "" {
		return atkit.Issues{{Path: "/mimeType", Code: atkit.CodeRequired, Message: "missing mimeType"}}
	}
	if s.accept != nil {
		if !s.accept.MatchString(mime) {
			return atkit.Issues{{Path: "/mimeType", Code: atkit.CodeInvalidEnum, Message: "mimeType not accepted", Params: map[string]any{"accept": s.acceptSrc}}}
		}
		return nil
	}
	if !genericMimeRegex.MatchString(mime) {
		return atkit.Issues{{Path: "/mimeType", Code: atkit.CodeInvalidFormat, Message: "malformed mimeType"}}
	}
	return nil
}

func (s blobSchema) Validate(ctx context.Context, v any) error {
	_, err := s.Parse(ctx, v)
	return err
}
