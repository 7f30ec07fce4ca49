// Package store provides persistent storage for bloglist using SQLite.
//
// # Data Models
//
//   - Owner: a registered user. Username is unique; PostIDs is the reverse
//     index of the posts the owner authored, stored on the owner row.
//   - Post: a blog post. Title, Author, URL and LikeCount are nullable since an
//     overwrite replaces them wholesale. OwnerID may be nil.
//
// The store knows nothing about the relationship between Post.OwnerID and
// Owner.PostIDs. Keeping the two in sync is the caller's job (see package blog);
// every method here is a single independent write with no surrounding transaction.
//
// # SQLite Configuration
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA busy_timeout=5000;
//
// Ids are random UUIDs assigned on insert. A monotonically increasing seq column
// keeps list results in insertion order.
//
// # Error Handling
//
//   - ErrNotFound: Requested entity does not exist
//   - ErrDuplicateKey: Username already taken
//
// # Testing
//
// Use NewMockStore() for unit tests. FailOn injects an error into a single
// method, which is how the partial-write paths of the coordinator are tested.
//
// Use NewSQLiteStore(":memory:") or a file under t.TempDir() for tests against
// real SQLite.
package store
