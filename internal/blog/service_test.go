// ABOUTME: Tests for the blog service using MockStore and a real token codec
// ABOUTME: Covers authorization ordering, ownership, and back-reference consistency

package blog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/2389/bloglist/internal/auth"
	"github.com/2389/bloglist/internal/store"
)

// missingID is well formed but never assigned by MockStore in these tests.
const missingID = "00000000-0000-4000-8000-999999999999"

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func newTestService(t *testing.T) (*Service, *store.MockStore, *auth.TokenCodec) {
	t.Helper()
	codec, err := auth.NewTokenCodec([]byte("blog-service-test-secret"))
	require.NoError(t, err)
	s := store.NewMockStore()
	svc := NewService(s, codec, Options{BcryptCost: bcrypt.MinCost}, nil, nil)
	return svc, s, codec
}

// registerAndLogin creates an owner with password "secret" and returns its id and token.
func registerAndLogin(t *testing.T, svc *Service, username string) (string, string) {
	t.Helper()
	ctx := context.Background()
	_, err := svc.RegisterOwner(ctx, RegisterInput{
		Username:             username,
		DisplayName:          "Display " + username,
		Password:             "secret",
		PasswordConfirmation: "secret",
	})
	require.NoError(t, err)

	login, err := svc.Authenticate(ctx, LoginInput{Username: username, Password: "secret"})
	require.NoError(t, err)
	return login.OwnerID, login.Token
}

func validPost() PostInput {
	return PostInput{Title: strPtr("Hello World"), URL: strPtr("http://x.test")}
}

func TestRegisterOwner(t *testing.T) {
	svc, s, _ := newTestService(t)
	ctx := context.Background()

	view, err := svc.RegisterOwner(ctx, RegisterInput{
		Username:             "alice1",
		DisplayName:          "Alice Liddell",
		Password:             "secret",
		PasswordConfirmation: "secret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "alice1", view.Username)
	assert.Equal(t, "Alice Liddell", view.DisplayName)
	assert.Empty(t, view.PostIDs)
	assert.NotNil(t, view.PostIDs)

	stored, err := s.GetOwner(ctx, view.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret", stored.PasswordHash)
	assert.True(t, auth.CheckPassword(stored.PasswordHash, "secret"))
}

func TestRegisterOwner_WithoutDisplayName(t *testing.T) {
	svc, _, _ := newTestService(t)

	view, err := svc.RegisterOwner(context.Background(), RegisterInput{
		Username:             "alice1",
		Password:             "secret",
		PasswordConfirmation: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "", view.DisplayName)
}

func TestRegisterOwner_PasswordRules(t *testing.T) {
	tests := []struct {
		name         string
		password     string
		confirmation string
		wantErr      error
	}{
		{name: "length 4", password: "abcd", confirmation: "abcd", wantErr: ErrPasswordTooShort},
		{name: "length 5", password: "abcde", confirmation: "abcde"},
		{name: "length 15", password: "abcdefghijklmno", confirmation: "abcdefghijklmno"},
		{name: "length 16", password: "abcdefghijklmnop", confirmation: "abcdefghijklmnop", wantErr: ErrPasswordTooLong},
		{name: "multibyte counts runes", password: "ééééé", confirmation: "ééééé"},
		{name: "mismatch", password: "secret", confirmation: "secreT", wantErr: ErrPasswordMismatch},
		{name: "too short beats mismatch", password: "abc", confirmation: "xyz", wantErr: ErrPasswordTooShort},
		{name: "empty password", password: "", confirmation: "", wantErr: ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(t)
			_, err := svc.RegisterOwner(context.Background(), RegisterInput{
				Username:             "tester",
				Password:             tt.password,
				PasswordConfirmation: tt.confirmation,
			})
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterOwner_FieldValidation(t *testing.T) {
	tests := []struct {
		name        string
		username    string
		displayName string
	}{
		{name: "username too short", username: "abcd"},
		{name: "username too long", username: "abcdefghijklmnop"},
		{name: "username missing", username: ""},
		{name: "display name too short", username: "tester", displayName: "Abe"},
		{name: "display name too long", username: "tester", displayName: "A Very Long Display Name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(t)
			_, err := svc.RegisterOwner(context.Background(), RegisterInput{
				Username:             tt.username,
				DisplayName:          tt.displayName,
				Password:             "secret",
				PasswordConfirmation: "secret",
			})
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRegisterOwner_DuplicateUsername(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	in := RegisterInput{Username: "alice1", Password: "secret", PasswordConfirmation: "secret"}

	_, err := svc.RegisterOwner(ctx, in)
	require.NoError(t, err)

	_, err = svc.RegisterOwner(ctx, in)
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestRegisterOwner_StoreFailureIsInternal(t *testing.T) {
	svc, s, _ := newTestService(t)
	s.FailOn("CreateOwner", errors.New("disk full"))

	_, err := svc.RegisterOwner(context.Background(), RegisterInput{Username: "alice1", Password: "secret", PasswordConfirmation: "secret"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateUsername)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestAuthenticate(t *testing.T) {
	svc, _, codec := newTestService(t)
	ctx := context.Background()

	ownerID, token := registerAndLogin(t, svc, "alice1")

	identity, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, ownerID, identity.OwnerID)
	assert.Equal(t, "alice1", identity.Username)

	login, err := svc.Authenticate(ctx, LoginInput{Username: "alice1", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "alice1", login.Username)
	assert.Equal(t, "Display alice1", login.DisplayName)
	assert.Equal(t, ownerID, login.OwnerID)
}

func TestAuthenticate_SameErrorForUnknownUserAndWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	registerAndLogin(t, svc, "alice1")

	_, unknownErr := svc.Authenticate(ctx, LoginInput{Username: "nobody", Password: "secret"})
	_, wrongErr := svc.Authenticate(ctx, LoginInput{Username: "alice1", Password: "wrong1"})

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestCreatePost_DefaultsLikesAndSyncsOwner(t *testing.T) {
	svc, s, _ := newTestService(t)
	ctx := context.Background()
	ownerID, token := registerAndLogin(t, svc, "alice1")

	post, err := svc.CreatePost(ctx, token, validPost())
	require.NoError(t, err)
	require.NotNil(t, post.LikeCount)
	assert.Equal(t, 0, *post.LikeCount)
	require.NotNil(t, post.OwnerID)
	assert.Equal(t, ownerID, *post.OwnerID)

	owner, err := s.GetOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, []string{post.ID}, owner.PostIDs)

	second, err := svc.CreatePost(ctx, token, PostInput{Title: strPtr("Second post"), URL: strPtr("http://y.test"), LikeCount: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, *second.LikeCount)

	owner, err = s.GetOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, []string{post.ID, second.ID}, owner.PostIDs)
}

func TestCreatePost_CheckOrder(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, token := registerAndLogin(t, svc, "alice1")

	tests := []struct {
		name    string
		token   string
		in      PostInput
		wantErr error
	}{
		{name: "missing title before token", token: "", in: PostInput{URL: strPtr("http://x.test")}, wantErr: ErrValidation},
		{name: "missing url before token", token: "garbage", in: PostInput{Title: strPtr("Hello World")}, wantErr: ErrValidation},
		{name: "no token", token: "", in: validPost(), wantErr: ErrMissingToken},
		{name: "invalid token", token: "garbage", in: validPost(), wantErr: ErrInvalidToken},
		{name: "length rules after token", token: "", in: PostInput{Title: strPtr("Hi"), URL: strPtr("http://x.test")}, wantErr: ErrMissingToken},
		{name: "title too short", token: token, in: PostInput{Title: strPtr("Hi"), URL: strPtr("http://x.test")}, wantErr: ErrValidation},
		{name: "author too short", token: token, in: PostInput{Title: strPtr("Hello World"), Author: strPtr("Al"), URL: strPtr("http://x.test")}, wantErr: ErrValidation},
		{name: "negative likes", token: token, in: PostInput{Title: strPtr("Hello World"), URL: strPtr("http://x.test"), LikeCount: intPtr(-1)}, wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(ctx, tt.token, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreatePost_TokenMissingSubject(t *testing.T) {
	svc, _, codec := newTestService(t)

	token, err := codec.Issue("", "ghost")
	require.NoError(t, err)

	_, err = svc.CreatePost(context.Background(), token, validPost())
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCreatePost_OwnerGone(t *testing.T) {
	svc, s, _ := newTestService(t)
	ctx := context.Background()
	_, token := registerAndLogin(t, svc, "alice1")

	require.NoError(t, s.Reset(ctx))

	_, err := svc.CreatePost(ctx, token, validPost())
	assert.ErrorIs(t, err, ErrInvalidToken)

	posts, err := s.ListPosts(ctx, store.PostFilter{})
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestCreatePost_SecondWriteFails(t *testing.T) {
	svc, s, _ := newTestService(t)
	ctx := context.Background()
	ownerID, token := registerAndLogin(t, svc, "alice1")

	s.FailOn("SetOwnerPostIDs", errors.New("connection reset"))

	_, err := svc.CreatePost(ctx, token, validPost())
	assert.ErrorIs(t, err, ErrBackReferenceSync)

	// The post write is not rolled back
	posts, err := s.ListPosts(ctx, store.PostFilter{OwnerID: ownerID})
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	owner, err := s.GetOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, owner.PostIDs)
}

func TestCreatePost_FirstWriteFails(t *testing.T) {
	svc, s, _ := newTestService(t)
	ctx := context.Background()
	ownerID, token := registerAndLogin(t, svc, "alice1")

	s.FailOn("CreatePost", errors.New("connection reset"))

	_, err := svc.CreatePost(ctx, token, validPost())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBackReferenceSync)

	owner, err := s.GetOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, owner.PostIDs, "owner must never reference a post that was not stored")
}

func TestUpdatePost(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, token := registerAndLogin(t, svc, "alice1")

	post, err := svc.CreatePost(ctx, token, PostInput{
		Title:  strPtr("Hello World"),
		Author: strPtr("Alice Liddell"),
		URL:    strPtr("http://x.test"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdatePost(ctx, token, post.ID, PostInput{Title: strPtr("New title"), LikeCount: intPtr(9)})
	require.NoError(t, err)
	assert.Equal(t, "New title", *updated.Title)
	assert.Equal(t, 9, *updated.LikeCount)
	assert.Nil(t, updated.Author, "fields missing from the update become absent")
	assert.Nil(t, updated.URL)
	assert.Equal(t, *post.OwnerID, *updated.OwnerID)
}

func TestUpdatePost_Errors(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, aliceToken := registerAndLogin(t, svc, "alice1")
	_, bobToken := registerAndLogin(t, svc, "bobby")

	post, err := svc.CreatePost(ctx, aliceToken, validPost())
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		id      string
		wantErr error
	}{
		{name: "no token", token: "", id: post.ID, wantErr: ErrMissingToken},
		{name: "invalid token", token: "garbage", id: post.ID, wantErr: ErrInvalidToken},
		{name: "token before id check", token: "", id: "not-an-id", wantErr: ErrMissingToken},
		{name: "malformed id", token: aliceToken, id: "not-an-id", wantErr: ErrMalformedID},
		{name: "not found", token: aliceToken, id: missingID, wantErr: ErrNotFound},
		{name: "not the owner", token: bobToken, id: post.ID, wantErr: ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdatePost(ctx, tt.token, tt.id, PostInput{Title: strPtr("Hijacked")})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	got, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", *got.Title)
}

func TestLikePost(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, token := registerAndLogin(t, svc, "alice1")

	post, err := svc.CreatePost(ctx, token, validPost())
	require.NoError(t, err)

	liked, err := svc.LikePost(ctx, post.ID, PostInput{Title: post.Title, URL: post.URL, LikeCount: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, 1, *liked.LikeCount)
	assert.Equal(t, "Hello World", *liked.Title)

	_, err = svc.LikePost(ctx, missingID, PostInput{LikeCount: intPtr(1)})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.LikePost(ctx, "12345", PostInput{LikeCount: intPtr(1)})
	assert.ErrorIs(t, err, ErrMalformedID)
}

func TestDeletePost(t *testing.T) {
	svc, s, _ := newTestService(t)
	ctx := context.Background()
	ownerID, token := registerAndLogin(t, svc, "alice1")

	first, err := svc.CreatePost(ctx, token, validPost())
	require.NoError(t, err)
	second, err := svc.CreatePost(ctx, token, PostInput{Title: strPtr("Second post"), URL: strPtr("http://y.test")})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(ctx, token, first.ID))

	_, err = svc.GetPost(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	owner, err := s.GetOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID}, owner.PostIDs)
}

func TestDeletePost_Errors(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, aliceToken := registerAndLogin(t, svc, "alice1")
	_, bobToken := registerAndLogin(t, svc, "bobby")

	post, err := svc.CreatePost(ctx, aliceToken, validPost())
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		id      string
		wantErr error
	}{
		{name: "no token", token: "", id: post.ID, wantErr: ErrMissingToken},
		{name: "invalid token", token: "garbage", id: post.ID, wantErr: ErrInvalidToken},
		{name: "malformed id", token: aliceToken, id: "xyz", wantErr: ErrMalformedID},
		{name: "not found", token: aliceToken, id: missingID, wantErr: ErrNotFound},
		{name: "not the owner", token: bobToken, id: post.ID, wantErr: ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, svc.DeletePost(ctx, tt.token, tt.id), tt.wantErr)
		})
	}

	_, err = svc.GetPost(ctx, post.ID)
	assert.NoError(t, err, "failed deletes must leave the post in place")
}

func TestDeletePost_SecondWriteFails(t *testing.T) {
	svc, s, _ := newTestService(t)
	ctx := context.Background()
	ownerID, token := registerAndLogin(t, svc, "alice1")

	post, err := svc.CreatePost(ctx, token, validPost())
	require.NoError(t, err)

	s.FailOn("SetOwnerPostIDs", errors.New("connection reset"))

	err = svc.DeletePost(ctx, token, post.ID)
	assert.ErrorIs(t, err, ErrBackReferenceSync)

	_, err = s.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, store.ErrNotFound, "the post delete is not rolled back")

	owner, err := s.GetOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, []string{post.ID}, owner.PostIDs)
}

func TestGetOwner(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	aliceID, aliceToken := registerAndLogin(t, svc, "alice1")
	_, bobToken := registerAndLogin(t, svc, "bobby")

	post, err := svc.CreatePost(ctx, aliceToken, validPost())
	require.NoError(t, err)

	// Any valid token may read any owner
	view, err := svc.GetOwner(ctx, bobToken, aliceID)
	require.NoError(t, err)
	assert.Equal(t, "alice1", view.Username)
	assert.Equal(t, []string{post.ID}, view.PostIDs)
	require.Len(t, view.Posts, 1)
	assert.Equal(t, post.ID, view.Posts[0].ID)
	assert.Equal(t, "Hello World", *view.Posts[0].Title)

	_, err = svc.GetOwner(ctx, "", aliceID)
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = svc.GetOwner(ctx, "garbage", aliceID)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.GetOwner(ctx, aliceToken, missingID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetOwner(ctx, aliceToken, "bad-id")
	assert.ErrorIs(t, err, ErrMalformedID)
}

func TestListOwners_Populated(t *testing.T) {
	svc, s, _ := newTestService(t)
	ctx := context.Background()
	aliceID, aliceToken := registerAndLogin(t, svc, "alice1")
	_, bobToken := registerAndLogin(t, svc, "bobby")

	a1, err := svc.CreatePost(ctx, aliceToken, validPost())
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, bobToken, PostInput{Title: strPtr("Bobs post"), URL: strPtr("http://b.test")})
	require.NoError(t, err)
	a2, err := svc.CreatePost(ctx, aliceToken, PostInput{Title: strPtr("Alice again"), URL: strPtr("http://a.test")})
	require.NoError(t, err)

	// A dangling back-reference is listed in postIds but not resolved
	owner, err := s.GetOwner(ctx, aliceID)
	require.NoError(t, err)
	require.NoError(t, s.SetOwnerPostIDs(ctx, aliceID, append(owner.PostIDs, missingID)))

	owners, err := svc.ListOwners(ctx)
	require.NoError(t, err)
	require.Len(t, owners, 2)

	alice := owners[0]
	assert.Equal(t, "alice1", alice.Username)
	assert.Equal(t, []string{a1.ID, a2.ID, missingID}, alice.PostIDs)
	require.Len(t, alice.Posts, 2)
	assert.Equal(t, a1.ID, alice.Posts[0].ID)
	assert.Equal(t, a2.ID, alice.Posts[1].ID)

	assert.Len(t, owners[1].Posts, 1)
}

func TestListPosts_IncludesOwnerSummary(t *testing.T) {
	svc, s, _ := newTestService(t)
	ctx := context.Background()
	aliceID, token := registerAndLogin(t, svc, "alice1")

	_, err := svc.CreatePost(ctx, token, validPost())
	require.NoError(t, err)
	// A post with no owner is listed without one
	require.NoError(t, s.CreatePost(ctx, &store.Post{Title: strPtr("Orphan post")}))

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	require.NotNil(t, posts[0].Owner)
	assert.Equal(t, aliceID, posts[0].Owner.ID)
	assert.Equal(t, "alice1", posts[0].Owner.Username)
	assert.Equal(t, "Display alice1", posts[0].Owner.DisplayName)
	assert.Nil(t, posts[1].Owner)
}

func TestGetPost(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, token := registerAndLogin(t, svc, "alice1")

	created, err := svc.CreatePost(ctx, token, validPost())
	require.NoError(t, err)

	got, err := svc.GetPost(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = svc.GetPost(ctx, missingID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetPost(ctx, "nope")
	assert.ErrorIs(t, err, ErrMalformedID)
}

func TestReset(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, token := registerAndLogin(t, svc, "alice1")
	_, err := svc.CreatePost(ctx, token, validPost())
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx))

	owners, err := svc.ListOwners(ctx)
	require.NoError(t, err)
	assert.Empty(t, owners)
	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)
}
