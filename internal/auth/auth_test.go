package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dangerclosesec/colab/internal/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	hasher := auth.NewPasswordHasherWithCost(bcrypt.MinCost)

	hash, err := hasher.Hash("testuser")
	require.NoError(t, err)
	assert.NotEqual(t, "testuser", hash)

	ok, err := hasher.Verify("testuser", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = hasher.Verify("testuser", "not-a-hash")
	assert.Error(t, err)
}

func TestTokenManager(t *testing.T) {
	tm := auth.NewTokenManager("test_secret", time.Hour)
	kid := auth.Identity{UserID: uuid.MustParse("6b1f3c9e-0000-0000-0000-000000000001"), Username: "kid"}

	token, err := tm.Generate(kid)
	require.NoError(t, err)

	identity, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, kid, identity)

	t.Run("other secret", func(t *testing.T) {
		_, err := auth.NewTokenManager("other_secret", time.Hour).Validate(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := auth.NewTokenManager("test_secret", -time.Minute).Generate(kid)
		require.NoError(t, err)
		_, err = tm.Validate(expired)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   kid.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString([]byte("test_secret"))
		require.NoError(t, err)
		_, err = tm.Validate(foreign)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("subject is not a user id", func(t *testing.T) {
		bad, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Issuer:    auth.TokenIssuer,
			Subject:   "kid",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString([]byte("test_secret"))
		require.NoError(t, err)
		_, err = tm.Validate(bad)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Issuer:    auth.TokenIssuer,
			Subject:   kid.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = tm.Validate(none)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

// roundTrip copies the cookies set on rec onto a fresh request.
func roundTrip(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestSessionManager(t *testing.T) {
	sm := auth.NewSessionManager("secret", 3600, false)

	t.Run("anonymous request has no username", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Empty(t, sm.Username(req))
	})

	t.Run("login then logout", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, sm.Login(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "kid"))

		req := roundTrip(rec)
		assert.Equal(t, "kid", sm.Username(req))

		rec = httptest.NewRecorder()
		require.NoError(t, sm.Logout(rec, req))
		assert.Empty(t, sm.Username(roundTrip(rec)))
	})

	t.Run("flashes are popped once", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, sm.AddFlash(rec, httptest.NewRequest(http.MethodGet, "/", nil), auth.FlashDanger, "Access unauthorized."))

		req := roundTrip(rec)
		rec = httptest.NewRecorder()
		flashes := sm.Flashes(rec, req)
		require.Len(t, flashes, 1)
		assert.Equal(t, auth.Flash{Category: auth.FlashDanger, Message: "Access unauthorized."}, flashes[0])

		assert.Empty(t, sm.Flashes(httptest.NewRecorder(), roundTrip(rec)))
	})
}

func TestDeriveKey(t *testing.T) {
	key := auth.DeriveKey("session-secret", "csrf")
	assert.Len(t, key, 32)
	assert.Equal(t, key, auth.DeriveKey("session-secret", "csrf"))
	assert.NotEqual(t, key, auth.DeriveKey("session-secret", "other"))
	assert.NotEqual(t, key, auth.DeriveKey("another-secret", "csrf"))
}
