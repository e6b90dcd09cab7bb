package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/dangerclosesec/colab/internal/domain"
	"github.com/dangerclosesec/colab/internal/model"
	"github.com/dangerclosesec/colab/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	users       *repository.UserRepository
	projects    *repository.ProjectRepository
	catalog     *repository.CatalogRepository
	preferences *repository.PreferenceRepository

	sectors map[string]uint
	stacks  map[string]uint
}

func newFixture(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		users:       repository.NewUserRepository(db),
		projects:    repository.NewProjectRepository(db),
		catalog:     repository.NewCatalogRepository(db),
		preferences: repository.NewPreferenceRepository(db),
		sectors:     map[string]uint{},
		stacks:      map[string]uint{},
	}

	_, err := f.catalog.SeedSectors(ctx, []string{"Education", "Health", "Finance"})
	require.NoError(t, err)
	_, err = f.catalog.SeedStacks(ctx, []string{"Go", "Python", "Rust"})
	require.NoError(t, err)

	sectors, err := f.catalog.ListSectors(ctx)
	require.NoError(t, err)
	for _, s := range sectors {
		f.sectors[s.Name] = s.ID
	}
	stacks, err := f.catalog.ListStacks(ctx)
	require.NoError(t, err)
	for _, s := range stacks {
		f.stacks[s.Name] = s.ID
	}

	return f
}

func (f *fixture) user(t *testing.T, username string) *model.User {
	t.Helper()
	u := &model.User{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: username,
		LastName:  "Test",
		GitHandle: username + "-gh",
		Password:  "hash",
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) project(t *testing.T, owner *model.User, title, sector string, created time.Time, stacks ...string) *model.Project {
	t.Helper()
	ctx := context.Background()

	p := &model.Project{
		Title:     title,
		GitRepo:   owner.GitHandle + "/" + title,
		OwnerID:   owner.ID,
		SectorID:  f.sectors[sector],
		CreatedAt: created,
	}
	require.NoError(t, f.projects.Create(ctx, p))

	ids := make([]uint, 0, len(stacks))
	for _, s := range stacks {
		ids = append(ids, f.stacks[s])
	}
	require.NoError(t, f.projects.AttachStacks(ctx, p.ID, ids))
	return p
}

func titles(projects []model.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Title)
	}
	return out
}

func TestUserUniqueness(t *testing.T) {
	f := newFixture(t, testDB(t))
	ctx := context.Background()
	f.user(t, "ada")

	dup := &model.User{Username: "ada", Email: "other@example.com", FirstName: "A", LastName: "B", GitHandle: "other", Password: "x"}
	assert.ErrorIs(t, f.users.Create(ctx, dup), domain.ErrUsernameTaken)

	dup = &model.User{Username: "other", Email: "ada@example.com", FirstName: "A", LastName: "B", GitHandle: "other", Password: "x"}
	assert.ErrorIs(t, f.users.Create(ctx, dup), domain.ErrEmailTaken)

	dup = &model.User{Username: "other", Email: "other@example.com", FirstName: "A", LastName: "B", GitHandle: "ada-gh", Password: "x"}
	assert.ErrorIs(t, f.users.Create(ctx, dup), domain.ErrGitHandleTaken)

	_, err := f.users.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListProjects(t *testing.T) {
	f := newFixture(t, testDB(t))
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	viewer := f.user(t, "viewer")
	other := f.user(t, "other")

	f.project(t, viewer, "mine", "Education", base, "Go")
	f.project(t, other, "polyglot", "Health", base.Add(time.Hour), "Go", "Python", "Rust")
	f.project(t, other, "ledger", "Finance", base.Add(2*time.Hour), "Rust")
	f.project(t, other, "school", "Education", base.Add(3*time.Hour))

	t.Run("excludes the viewer's own projects, newest first", func(t *testing.T) {
		got, err := f.projects.List(ctx, repository.ProjectFilter{ViewerID: viewer.ID})
		require.NoError(t, err)
		assert.Equal(t, []string{"school", "ledger", "polyglot"}, titles(got))
		assert.Equal(t, "other", got[0].Owner.Username)
	})

	t.Run("owned listing", func(t *testing.T) {
		got, err := f.projects.List(ctx, repository.ProjectFilter{ViewerID: viewer.ID, Owned: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"mine"}, titles(got))
	})

	t.Run("several matching stacks list a project once", func(t *testing.T) {
		got, err := f.projects.List(ctx, repository.ProjectFilter{
			ViewerID: viewer.ID,
			StackIDs: []uint{f.stacks["Go"], f.stacks["Python"], f.stacks["Rust"]},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"ledger", "polyglot"}, titles(got))
	})

	t.Run("sector and stack criteria are alternatives", func(t *testing.T) {
		got, err := f.projects.List(ctx, repository.ProjectFilter{
			ViewerID:  viewer.ID,
			SectorIDs: []uint{f.sectors["Education"]},
			StackIDs:  []uint{f.stacks["Python"]},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"school", "polyglot"}, titles(got))
	})

	t.Run("preferred only", func(t *testing.T) {
		require.NoError(t, f.preferences.Replace(ctx, viewer.ID, []uint{f.sectors["Finance"]}, []uint{f.stacks["Python"]}))

		got, err := f.projects.List(ctx, repository.ProjectFilter{ViewerID: viewer.ID, PreferredOnly: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"ledger", "polyglot"}, titles(got))
	})

	t.Run("preferred only without preferences is empty", func(t *testing.T) {
		got, err := f.projects.List(ctx, repository.ProjectFilter{ViewerID: other.ID, PreferredOnly: true})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestAttachIsIdempotent(t *testing.T) {
	f := newFixture(t, testDB(t))
	ctx := context.Background()

	owner := f.user(t, "owner")
	helper := f.user(t, "helper")
	p := f.project(t, owner, "repo", "Health", time.Now(), "Go")

	require.NoError(t, f.projects.AttachStacks(ctx, p.ID, []uint{f.stacks["Go"], f.stacks["Python"]}))
	require.NoError(t, f.projects.AttachCollaborators(ctx, p.ID, []uuid.UUID{helper.ID}))
	require.NoError(t, f.projects.AttachCollaborators(ctx, p.ID, []uuid.UUID{helper.ID}))

	got, err := f.projects.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Python"}, got.StackNames())
	assert.Equal(t, []string{"helper-gh"}, got.CollaboratorHandles())

	users, err := f.users.FindByGitHandles(ctx, []string{"helper-gh", "stranger"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, helper.ID, users[0].ID)
}

func TestGitHandlesIgnoreCase(t *testing.T) {
	f := newFixture(t, testDB(t))
	ctx := context.Background()
	alice := f.user(t, "alice")

	users, err := f.users.FindByGitHandles(ctx, []string{"ALICE-GH", "Stranger"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, alice.ID, users[0].ID)

	dup := &model.User{Username: "other", Email: "other@example.com", FirstName: "A", LastName: "B", GitHandle: "Alice-GH", Password: "x"}
	assert.ErrorIs(t, f.users.Create(ctx, dup), domain.ErrGitHandleTaken)
}

func TestDeleteUserCascades(t *testing.T) {
	f := newFixture(t, testDB(t))
	ctx := context.Background()

	owner := f.user(t, "owner")
	helper := f.user(t, "helper")
	owned := f.project(t, owner, "owned", "Health", time.Now(), "Go")
	theirs := f.project(t, helper, "theirs", "Finance", time.Now())
	require.NoError(t, f.projects.AttachCollaborators(ctx, theirs.ID, []uuid.UUID{owner.ID}))
	require.NoError(t, f.preferences.Replace(ctx, owner.ID, []uint{f.sectors["Health"]}, nil))

	require.NoError(t, f.users.Delete(ctx, owner.ID))

	_, err := f.projects.FindByID(ctx, owned.ID)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	got, err := f.projects.FindByID(ctx, theirs.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Collaborators)

	prefs, err := f.preferences.Find(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, prefs.Sectors)

	assert.ErrorIs(t, f.users.Delete(ctx, owner.ID), domain.ErrUserNotFound)
}

func TestPreferences(t *testing.T) {
	f := newFixture(t, testDB(t))
	ctx := context.Background()

	ada := f.user(t, "ada")
	bob := f.user(t, "bob")
	owner := f.user(t, "owner")

	t.Run("replace drops duplicates and earlier choices", func(t *testing.T) {
		require.NoError(t, f.preferences.Replace(ctx, ada.ID, []uint{f.sectors["Health"]}, []uint{f.stacks["Go"]}))
		require.NoError(t, f.preferences.Replace(ctx, ada.ID,
			[]uint{f.sectors["Finance"], f.sectors["Finance"]},
			[]uint{f.stacks["Rust"], f.stacks["Python"], f.stacks["Rust"]}))

		prefs, err := f.preferences.Find(ctx, ada.ID)
		require.NoError(t, err)
		require.Len(t, prefs.Sectors, 1)
		assert.Equal(t, "Finance", prefs.Sectors[0].Name)
		require.Len(t, prefs.Stacks, 2)
		assert.Equal(t, "Python", prefs.Stacks[0].Name)
		assert.Equal(t, "Rust", prefs.Stacks[1].Name)
	})

	t.Run("interested users match sector or stack but never the owner", func(t *testing.T) {
		require.NoError(t, f.preferences.Replace(ctx, bob.ID, []uint{f.sectors["Education"]}, nil))
		require.NoError(t, f.preferences.Replace(ctx, owner.ID, []uint{f.sectors["Finance"]}, nil))

		p := f.project(t, owner, "fintech", "Finance", time.Now(), "Go")
		project, err := f.projects.FindByID(ctx, p.ID)
		require.NoError(t, err)

		users, err := f.preferences.FindInterestedUsers(ctx, project)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "ada", users[0].Username)
	})
}

func TestFindCreatedSince(t *testing.T) {
	f := newFixture(t, testDB(t))
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	owner := f.user(t, "owner")
	f.project(t, owner, "old", "Health", now.Add(-48*time.Hour))
	f.project(t, owner, "new", "Health", now.Add(-time.Hour), "Go")

	got, err := f.projects.FindCreatedSince(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, titles(got))
	assert.Equal(t, []string{"Go"}, got[0].StackNames())
}

func TestSeedIsIdempotent(t *testing.T) {
	f := newFixture(t, testDB(t))
	ctx := context.Background()

	n, err := f.catalog.SeedStacks(ctx, []string{"Go", "Haskell"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	stacks, err := f.catalog.FindStacksByNames(ctx, []string{"Haskell", "Cobol"})
	require.NoError(t, err)
	require.Len(t, stacks, 1)
	assert.Equal(t, "Haskell", stacks[0].Name)

	_, err = f.catalog.FindSectorByID(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrSectorNotFound)
}
