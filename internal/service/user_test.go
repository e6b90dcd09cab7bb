package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dangerclosesec/colab/internal/auth"
	"github.com/dangerclosesec/colab/internal/domain"
	"github.com/dangerclosesec/colab/internal/mocks"
	"github.com/dangerclosesec/colab/internal/model"
	"github.com/dangerclosesec/colab/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(ctrl *gomock.Controller) (*service.UserService, *mocks.MockUserRepositoryIface, *mocks.MockMetadataClient) {
	userRepo := mocks.NewMockUserRepositoryIface(ctrl)
	gh := mocks.NewMockMetadataClient(ctrl)
	svc := service.NewUserService(
		userRepo,
		gh,
		auth.NewPasswordHasherWithCost(bcrypt.MinCost),
		auth.NewTokenManager("test-secret", time.Hour),
	)
	return svc, userRepo, gh
}

func validRegisterInput() service.RegisterInput {
	return service.RegisterInput{
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Liddell",
		Password:  "wonderland",
		GitHandle: "alice",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user when handle is verified", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, userRepo, gh := newUserService(ctrl)

		gh.EXPECT().
			VerifyHandleOwnership(gomock.Any(), "alice", "alice@example.com", false).
			Return(true, nil)
		userRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *model.User) error {
				assert.Equal(t, "alice", u.Username)
				assert.NotEqual(t, "wonderland", u.Password)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("wonderland")))
				u.ID = uuid.New()
				return nil
			})

		user, err := svc.Register(ctx, validRegisterInput())
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "Alice Liddell", user.FullName())
	})

	t.Run("rejects mismatched provider email without creating a user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _, gh := newUserService(ctrl)

		gh.EXPECT().
			VerifyHandleOwnership(gomock.Any(), "alice", "alice@example.com", false).
			Return(false, nil)
		// no Create expectation: any call fails the test

		user, err := svc.Register(ctx, validRegisterInput())
		require.Error(t, err)
		assert.Nil(t, user)
		assert.True(t, errors.Is(err, domain.ErrHandleNotVerified))
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		assert.Contains(t, service.FieldErrors(err), "git_handle")
	})

	t.Run("treats lookup failure as not verified", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _, gh := newUserService(ctrl)

		gh.EXPECT().
			VerifyHandleOwnership(gomock.Any(), gomock.Any(), gomock.Any(), true).
			Return(false, errors.New("rate limited"))

		input := validRegisterInput()
		input.IsOrganisation = true
		_, err := svc.Register(ctx, input)
		assert.True(t, errors.Is(err, domain.ErrHandleNotVerified))
	})

	t.Run("validates input before calling github", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _, _ := newUserService(ctrl)

		input := validRegisterInput()
		input.Email = "not-an-email"
		input.Password = "short"

		_, err := svc.Register(ctx, input)
		require.Error(t, err)
		fields := service.FieldErrors(err)
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "password")
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("maps duplicate username to a field error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, userRepo, gh := newUserService(ctrl)

		gh.EXPECT().VerifyHandleOwnership(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrUsernameTaken)

		_, err := svc.Register(ctx, validRegisterInput())
		assert.True(t, errors.Is(err, domain.ErrUsernameTaken))
		assert.Contains(t, service.FieldErrors(err), "username")
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.NewPasswordHasherWithCost(bcrypt.MinCost).Hash("wonderland")
	require.NoError(t, err)
	stored := &model.User{ID: uuid.New(), Username: "alice", Password: hash}

	t.Run("valid credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, userRepo, _ := newUserService(ctrl)
		userRepo.EXPECT().FindByUsername(gomock.Any(), "alice").Return(stored, nil)

		user, err := svc.Authenticate(ctx, "alice", "wonderland")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, userRepo, _ := newUserService(ctrl)
		userRepo.EXPECT().FindByUsername(gomock.Any(), "alice").Return(stored, nil)

		_, err := svc.Authenticate(ctx, "alice", "looking-glass")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, userRepo, _ := newUserService(ctrl)
		userRepo.EXPECT().FindByUsername(gomock.Any(), "nobody").Return(nil, domain.ErrUserNotFound)

		_, err := svc.Authenticate(ctx, "nobody", "wonderland")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("issues a token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, userRepo, _ := newUserService(ctrl)
		userRepo.EXPECT().FindByUsername(gomock.Any(), "alice").Return(stored, nil)

		token, err := svc.IssueToken(ctx, "alice", "wonderland")
		require.NoError(t, err)

		identity, err := auth.NewTokenManager("test-secret", time.Hour).Validate(token)
		require.NoError(t, err)
		assert.Equal(t, stored.ID, identity.UserID)
		assert.Equal(t, "alice", identity.Username)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	input := service.ProfileInput{Username: "alice2", Email: "a2@example.com", FirstName: "Alice", LastName: "L"}

	t.Run("only the user themselves", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _, _ := newUserService(ctrl)

		_, err := svc.UpdateProfile(ctx, "bob", "alice", input)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("saves changes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, userRepo, _ := newUserService(ctrl)

		existing := &model.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
		userRepo.EXPECT().FindByUsername(gomock.Any(), "alice").Return(existing, nil)
		userRepo.EXPECT().Update(gomock.Any(), existing).Return(nil)

		user, err := svc.UpdateProfile(ctx, "alice", "alice", input)
		require.NoError(t, err)
		assert.Equal(t, "alice2", user.Username)
		assert.Equal(t, "a2@example.com", user.Email)
	})

	t.Run("duplicate email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, userRepo, _ := newUserService(ctrl)

		userRepo.EXPECT().FindByUsername(gomock.Any(), "alice").Return(&model.User{Username: "alice"}, nil)
		userRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(domain.ErrEmailTaken)

		_, err := svc.UpdateProfile(ctx, "alice", "alice", input)
		assert.Contains(t, service.FieldErrors(err), "email")
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes own account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, userRepo, _ := newUserService(ctrl)

		id := uuid.New()
		userRepo.EXPECT().FindByUsername(gomock.Any(), "alice").Return(&model.User{ID: id, Username: "alice"}, nil)
		userRepo.EXPECT().Delete(gomock.Any(), id).Return(nil)

		assert.NoError(t, svc.Delete(ctx, "alice", "alice"))
	})

	t.Run("refuses someone else's account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _, _ := newUserService(ctrl)

		assert.ErrorIs(t, svc.Delete(ctx, "bob", "alice"), domain.ErrUnauthorized)
		assert.ErrorIs(t, svc.Delete(ctx, "", ""), domain.ErrUnauthorized)
	})
}
