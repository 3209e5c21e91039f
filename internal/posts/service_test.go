package posts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nikhpete/devconnect/internal/accounts"
	"github.com/nikhpete/devconnect/internal/models"
)

func newTestService(t *testing.T) (*Service, *models.User, *models.User) {
	t.Helper()
	users := accounts.NewMemoryRepository()
	accSvc := accounts.NewService(users)
	ctx := context.Background()
	a, err := accSvc.Register(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	b, err := accSvc.Register(ctx, "Bob", "bob@example.com", "secret2")
	require.NoError(t, err)
	return NewService(NewMemoryRepository(), users), a, b
}

func TestCreate_DenormalizesAuthor(t *testing.T) {
	svc, alice, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, alice.ID.Hex(), "hello world")
	require.NoError(t, err)
	require.Equal(t, "hello world", p.Text)
	require.Equal(t, alice.ID, p.User)
	require.Equal(t, "Alice", p.Name)
	require.Equal(t, alice.Avatar, p.Avatar)
	require.Empty(t, p.Likes)
	require.Empty(t, p.Comments)
}

func TestList_NewestFirst(t *testing.T) {
	svc, alice, _ := newTestService(t)
	ctx := context.Background()
	uid := alice.ID.Hex()

	first, err := svc.Create(ctx, uid, "first")
	require.NoError(t, err)
	second, err := svc.Create(ctx, uid, "second")
	require.NoError(t, err)
	// force distinct timestamps; creation granularity can collide
	first.Date = first.Date.Add(-1e9)
	require.NoError(t, svc.repo.Replace(ctx, first))

	ps, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, ps, 2)
	require.Equal(t, second.ID, ps[0].ID)
	require.Equal(t, first.ID, ps[1].ID)
}

func TestGet_UnknownPost(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Get(context.Background(), "ffffffffffffffffffffffff")
	require.ErrorIs(t, err, ErrNotFound)

	// malformed ids are treated as missing posts
	_, err = svc.Get(context.Background(), "not-hex")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_OwnershipEnforced(t *testing.T) {
	svc, alice, bob := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, alice.ID.Hex(), "mine")
	require.NoError(t, err)

	// non-author cannot delete, and the post survives
	err = svc.Delete(ctx, bob.ID.Hex(), p.ID.Hex())
	require.ErrorIs(t, err, ErrForbidden)
	got, err := svc.Get(ctx, p.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, "mine", got.Text)

	// author can
	require.NoError(t, svc.Delete(ctx, alice.ID.Hex(), p.ID.Hex()))
	_, err = svc.Get(ctx, p.ID.Hex())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLikeUnlike_Invariant(t *testing.T) {
	svc, alice, bob := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, alice.ID.Hex(), "like me")
	require.NoError(t, err)
	pid := p.ID.Hex()

	likes, err := svc.Like(ctx, bob.ID.Hex(), pid)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	require.Equal(t, bob.ID, likes[0].User)

	// double like rejected, list unchanged
	_, err = svc.Like(ctx, bob.ID.Hex(), pid)
	require.ErrorIs(t, err, ErrAlreadyLiked)
	got, err := svc.Get(ctx, pid)
	require.NoError(t, err)
	require.Len(t, got.Likes, 1)

	// second user's like lands at the head
	likes, err = svc.Like(ctx, alice.ID.Hex(), pid)
	require.NoError(t, err)
	require.Len(t, likes, 2)
	require.Equal(t, alice.ID, likes[0].User)
	require.Equal(t, bob.ID, likes[1].User)

	// unlike removes only that user's entry, order preserved
	likes, err = svc.Unlike(ctx, alice.ID.Hex(), pid)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	require.Equal(t, bob.ID, likes[0].User)

	// unliking again fails
	_, err = svc.Unlike(ctx, alice.ID.Hex(), pid)
	require.ErrorIs(t, err, ErrNotLiked)
}

func TestComments_AddRemoveOwnership(t *testing.T) {
	svc, alice, bob := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, alice.ID.Hex(), "discuss")
	require.NoError(t, err)
	pid := p.ID.Hex()

	comments, err := svc.AddComment(ctx, bob.ID.Hex(), pid, "first!")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, "Bob", comments[0].Name)

	comments, err = svc.AddComment(ctx, alice.ID.Hex(), pid, "welcome")
	require.NoError(t, err)
	// newest comment at the head
	require.Equal(t, "welcome", comments[0].Text)
	require.Equal(t, "first!", comments[1].Text)

	bobComment := comments[1]

	// only the comment author may remove it
	_, err = svc.RemoveComment(ctx, alice.ID.Hex(), pid, bobComment.ID.Hex())
	require.ErrorIs(t, err, ErrForbidden)

	comments, err = svc.RemoveComment(ctx, bob.ID.Hex(), pid, bobComment.ID.Hex())
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, "welcome", comments[0].Text)

	// unknown comment id
	_, err = svc.RemoveComment(ctx, bob.ID.Hex(), pid, "ffffffffffffffffffffffff")
	require.ErrorIs(t, err, ErrCommentNotFound)
}
