// Package lits implements a learned string index: an ordered, in-memory
// key/value map over NUL-free byte-string keys (alphabet 0x01..0x7F) and
// uint64 values.
//
// The structural core is a recursive tree. Internal nodes place each key by
// a trained position model (see package hpt) instead of a comparison; leaves
// are one of a singleton, a small sorted compact array (cnode.go), or an
// embedded ordered trie (package trie). A cost model (package pmss) decides,
// at bulk-build time, whether a range of keys becomes a model node or a
// trie. Mutations repair saturated or under-filled nodes by re-bulk-loading
// the affected subtree from a freshly extracted, sorted key stream.
//
// The index is not safe for concurrent use: callers must serialize their own
// access to a single Index.
package lits
