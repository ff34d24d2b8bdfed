// Package docindex provides a structured reference index over a corpus of
// technical guides. Documents are trees of sections holding tagged blocks
// (prose, code examples, tables, cross-references). The index extracts
// named entities and their relationships, answers structured queries, and
// reports cross-references that point nowhere.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goldmark/, goquery/).
package docindex
