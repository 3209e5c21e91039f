package profiles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nikhpete/devconnect/internal/accounts"
	"github.com/nikhpete/devconnect/internal/models"
)

func newTestService(t *testing.T) (*Service, *models.User) {
	t.Helper()
	users := accounts.NewMemoryRepository()
	accSvc := accounts.NewService(users)
	u, err := accSvc.Register(context.Background(), "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	return NewService(NewMemoryRepository(), users), u
}

func TestUpsert_CreateThenSparseUpdate(t *testing.T) {
	svc, u := newTestService(t)
	ctx := context.Background()

	p, err := svc.Upsert(ctx, u.ID.Hex(), ProfileInput{
		Status:   "Developer",
		Skills:   "Go, MongoDB , gin",
		Company:  "Acme",
		Location: "Berlin",
	})
	require.NoError(t, err)
	require.Equal(t, u.ID, p.User)
	require.Equal(t, []string{"Go", "MongoDB", "gin"}, p.Skills)
	require.Equal(t, "Acme", p.Company)
	require.Empty(t, p.Experience)

	// sparse update: only supplied fields change
	p2, err := svc.Upsert(ctx, u.ID.Hex(), ProfileInput{
		Status:  "Senior Developer",
		Twitter: "https://twitter.com/alice",
	})
	require.NoError(t, err)
	require.Equal(t, p.ID, p2.ID, "update must not create a second profile")
	require.Equal(t, "Senior Developer", p2.Status)
	require.Equal(t, "Acme", p2.Company, "untouched field must survive")
	require.Equal(t, []string{"Go", "MongoDB", "gin"}, p2.Skills)
	require.Equal(t, "https://twitter.com/alice", p2.Social.Twitter)
}

func TestGetOwn_JoinsOwner(t *testing.T) {
	svc, u := newTestService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, u.ID.Hex(), ProfileInput{Status: "Dev", Skills: "Go"})
	require.NoError(t, err)

	p, err := svc.GetOwn(ctx, u.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, p.Owner)
	require.Equal(t, "Alice", p.Owner.Name)
	require.NotEmpty(t, p.Owner.Avatar)
}

func TestGetOwn_NoProfile(t *testing.T) {
	svc, u := newTestService(t)
	_, err := svc.GetOwn(context.Background(), u.ID.Hex())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestList_EmptyIsNotAnError(t *testing.T) {
	svc, _ := newTestService(t)
	ps, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, ps)
}

func TestExperience_AddHeadInsertAndRemove(t *testing.T) {
	svc, u := newTestService(t)
	ctx := context.Background()
	uid := u.ID.Hex()

	_, err := svc.Upsert(ctx, uid, ProfileInput{Status: "Dev", Skills: "Go"})
	require.NoError(t, err)

	_, err = svc.AddExperience(ctx, uid, ExperienceInput{Title: "First", Company: "A", From: "2019-01-01"})
	require.NoError(t, err)
	p, err := svc.AddExperience(ctx, uid, ExperienceInput{Title: "Second", Company: "B", From: "2021-01-01"})
	require.NoError(t, err)

	// most recent insertion sits at the head
	require.Len(t, p.Experience, 2)
	require.Equal(t, "Second", p.Experience[0].Title)
	require.Equal(t, "First", p.Experience[1].Title)

	// remove the head; remainder keeps its order
	p, err = svc.RemoveExperience(ctx, uid, p.Experience[0].ID.Hex())
	require.NoError(t, err)
	require.Len(t, p.Experience, 1)
	require.Equal(t, "First", p.Experience[0].Title)
}

func TestRemoveExperience_UnknownEntry(t *testing.T) {
	svc, u := newTestService(t)
	ctx := context.Background()
	uid := u.ID.Hex()

	_, err := svc.Upsert(ctx, uid, ProfileInput{Status: "Dev", Skills: "Go"})
	require.NoError(t, err)

	_, err = svc.RemoveExperience(ctx, uid, "ffffffffffffffffffffffff")
	require.ErrorIs(t, err, ErrEntryNotFound)
}

func TestEducation_AddAndRemove(t *testing.T) {
	svc, u := newTestService(t)
	ctx := context.Background()
	uid := u.ID.Hex()

	_, err := svc.Upsert(ctx, uid, ProfileInput{Status: "Dev", Skills: "Go"})
	require.NoError(t, err)

	p, err := svc.AddEducation(ctx, uid, EducationInput{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2015-09-01"})
	require.NoError(t, err)
	require.Len(t, p.Education, 1)

	p, err = svc.RemoveEducation(ctx, uid, p.Education[0].ID.Hex())
	require.NoError(t, err)
	require.Empty(t, p.Education)

	_, err = svc.RemoveEducation(ctx, uid, "ffffffffffffffffffffffff")
	require.ErrorIs(t, err, ErrEntryNotFound)
}

func TestDeleteAccount(t *testing.T) {
	users := accounts.NewMemoryRepository()
	accSvc := accounts.NewService(users)
	ctx := context.Background()
	u, err := accSvc.Register(ctx, "Gone", "gone@example.com", "secret1")
	require.NoError(t, err)

	svc := NewService(NewMemoryRepository(), users)
	_, err = svc.Upsert(ctx, u.ID.Hex(), ProfileInput{Status: "Dev", Skills: "Go"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx, u.ID.Hex()))

	_, err = svc.GetOwn(ctx, u.ID.Hex())
	require.ErrorIs(t, err, ErrNotFound)
	_, err = accSvc.Get(ctx, u.ID.Hex())
	require.ErrorIs(t, err, accounts.ErrNotFound)
}
