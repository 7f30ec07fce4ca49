// Package blog implements the owner and post operations of bloglist.
//
// # Back-references
//
// A post stores its owner's id, and the owner stores the ids of its posts
// (Owner.PostIDs). Service keeps the two in step:
//
//   - CreatePost writes the post first, then appends its id to the owner.
//   - DeletePost deletes the post first, then removes its id from the owner.
//
// Writing the post first means a failure can leave an orphan post but never
// an owner pointing at a post that does not exist. There is no transaction
// and no compensation: a failed second write returns ErrBackReferenceSync
// with the first write already done. Concurrent creates for the same owner
// read-modify-write PostIDs, so the last writer wins.
//
// # Authorization
//
// Operations that need an identity take the raw token and call
// Tokens.Authorize themselves. A missing token is ErrMissingToken; a bad
// one is ErrInvalidToken. ListPosts, GetPost, ListOwners, LikePost and Stats
// take no token. GetOwner needs a valid token but does not compare it with
// the requested owner. UpdatePost and DeletePost also require the token
// subject to own the post (ErrForbidden).
//
// LikePost overwrites the same fields as UpdatePost with no token and no
// ownership check.
//
// # Validation
//
// RegisterOwner checks password length (5 to 15 characters) and
// confirmation before field rules. CreatePost requires title and url before
// it looks at the token, and applies length rules after. Updates overwrite
// without validation.
package blog
