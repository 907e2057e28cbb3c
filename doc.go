// Package supernotes is the Composition Root for the Supernotes note-taking
// core.
//
// It connects the domain (pkg/core: the note store and its invariants) with
// the storage adapters (filesystem, SQLite, memory) using the Hexagonal
// Architecture pattern. The query pipeline (pkg/query), the content
// formatter (pkg/format) and the exporters (pkg/export) operate on the
// notes a Store hands out and never mutate it.
//
// Features:
//
//   - **Whole-snapshot persistence**: every mutation rewrites the note
//     sequence under a single key, atomically.
//   - **Stable, monotonic IDs**: IDs are never reused within a session.
//   - **Pluggable storage**: `core.Storage` is a tiny key-value contract.
//   - **Live reload**: storages implementing `core.Watchable` let a Store
//     follow changes made by other processes.
//
// Usage:
//
//	nb, err := supernotes.Open(ctx, "./notes",
//		supernotes.WithCodec("yaml"),
//		supernotes.WithLogger(logger),
//	)
//	defer nb.Close()
//
//	note, err := nb.Store.Add(ctx, supernotes.Draft{Title: "Groceries", Content: "milk"})
package supernotes
