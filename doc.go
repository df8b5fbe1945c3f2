// Package atkit is a toolkit for working with the AT Protocol:
//
//   - Identifier parsing and validation under syntax/ (DID, Handle, NSID,
//     at:// URIs, record keys, TIDs)
//   - A Lexicon schema compiler and runtime validator under lexicon/
//   - A code-generation CLI under cmd/lexgen
//
// The root package carries the shared contracts:
//
//   - A stable validation error model via Issues (JSON Pointer path, code,
//     message)
//   - Presence metadata distinguishing missing vs null vs default-applied
//     fields
//   - JSON value decode/encode helpers used everywhere JSON crosses a
//     boundary
//
// Typical usage:
//
//	cat := lexicon.NewBaseCatalog()
//	if _, err := cat.AddJSON(raw); err != nil { ... }
//	s, err := cat.Resolve("app.bsky.feed.post")
//	rec, err := s.Parse(ctx, input)
package atkit
