// Package cktext provides a localized-text store: source strings mapped to
// translations, organised into named overlay groups that are consulted in
// priority order. A document is persisted as a single little-endian binary
// container (magic "CKT") whose payload can optionally be wrapped in a zstd
// frame.
//
// Every document owns an unnamed default group that cannot be deleted, only
// cleared. Named groups carry a priority (default 100) taken from their
// "priority" property; Lookup walks the groups from highest to lowest
// priority and stops at the first group that knows the source string, even
// when that group has no translation for it yet.
//
// Metadata is attached to documents and groups as typed properties with
// strict size limits that are enforced on every write, so anything held in
// memory can always be serialised.
package cktext

import "errors"

// Sentinel errors for programmatic handling. Callers can use errors.Is to
// distinguish rejected input (ErrInvalidName, ErrInvalidValue,
// ErrInvalidSource, ErrInvalidTranslation) from damaged files (ErrBadMagic,
// ErrCorruptRecord, ErrDecompress).
var (
	ErrNotFound           = errors.New("group not found")
	ErrExists             = errors.New("group already exists")
	ErrInvalidName        = errors.New("invalid name length")
	ErrInvalidValue       = errors.New("invalid property value")
	ErrInvalidSource      = errors.New("invalid source length")
	ErrInvalidTranslation = errors.New("invalid translation length")
	ErrBadMagic           = errors.New("bad file tag")
	ErrCorruptRecord      = errors.New("corrupt record")
	ErrCompress           = errors.New("compression failed")
	ErrDecompress         = errors.New("decompression failed")
)
