package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"ipmanager/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	byName map[string]*models.User
	err    error
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byName[username], nil
}

func newTestService(t *testing.T) (*Service, *TokenManager) {
	t.Helper()
	h := NewHasher(bcrypt.MinCost)
	adminHash, err := h.Hash([]byte("adminpassword"))
	require.NoError(t, err)
	userHash, err := h.Hash([]byte("userpassword"))
	require.NoError(t, err)

	users := &fakeUsers{byName: map[string]*models.User{
		"admin": {ID: 1, Username: "admin", PasswordHash: adminHash, IsAdmin: true},
		"bob":   {ID: 2, Username: "bob", PasswordHash: userHash, IsAdmin: false},
	}}
	tm := NewTokenManager("test-secret", time.Hour)
	return mustService(t, users, h, tm), tm
}

func mustService(t *testing.T, users UserStore, h *Hasher, tm *TokenManager) *Service {
	t.Helper()
	s, err := NewService(users, h, tm)
	require.NoError(t, err)
	return s
}

func TestNewService_PrecomputesDummyHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	s, err := NewService(&fakeUsers{}, h, NewTokenManager("k", time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, s.dummyHash)

	cost, err := bcrypt.Cost([]byte(s.dummyHash))
	require.NoError(t, err)
	assert.Equal(t, h.Cost, cost)
}

func TestNewService_DummyHashFailure(t *testing.T) {
	// мимо NewHasher: bcrypt отвергает такой cost
	h := &Hasher{Cost: bcrypt.MaxCost + 1}
	s, err := NewService(&fakeUsers{}, h, NewTokenManager("k", time.Hour))
	require.Error(t, err)
	assert.Nil(t, s)
}

func TestAuthenticate_AdminFlagRoundTrip(t *testing.T) {
	s, _ := newTestService(t)

	for _, tc := range []struct {
		user, pass string
		id         uint
		admin      bool
	}{
		{"admin", "adminpassword", 1, true},
		{"bob", "userpassword", 2, false},
	} {
		sess, err := s.Authenticate(context.Background(), tc.user, tc.pass)
		require.NoError(t, err, tc.user)
		assert.Equal(t, tc.admin, sess.IsAdmin)

		c := s.Authorize(sess.Token)
		assert.Equal(t, Context{UserID: tc.id, IsAdmin: tc.admin}, c)
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	s, _ := newTestService(t)

	sess, err := s.Authenticate(context.Background(), "admin", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, sess)
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	s, _ := newTestService(t)

	sess, err := s.Authenticate(context.Background(), "mallory", "x")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, sess)
}

func TestAuthenticate_UsernameIsCaseSensitive(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.Authenticate(context.Background(), "Admin", "adminpassword")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthenticate_StoreError(t *testing.T) {
	boom := errors.New("db down")
	s := mustService(t, &fakeUsers{err: boom}, NewHasher(bcrypt.MinCost), NewTokenManager("k", time.Hour))

	_, err := s.Authenticate(context.Background(), "admin", "x")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthorize_FailsOpenToAnonymous(t *testing.T) {
	s, tm := newTestService(t)

	expiredMgr := NewTokenManager("test-secret", time.Hour)
	expiredMgr.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
	expired, _, err := expiredMgr.Issue(1, true)
	require.NoError(t, err)

	forged, _, err := NewTokenManager("other-secret", time.Hour).Issue(1, true)
	require.NoError(t, err)

	for name, header := range map[string]string{
		"empty":     "",
		"garbage":   "abc",
		"expired":   expired,
		"forged":    forged,
		"bearer-ws": "Bearer ",
	} {
		assert.Equal(t, Context{}, s.Authorize(header), name)
	}

	valid, _, err := tm.Issue(1, true)
	require.NoError(t, err)
	assert.True(t, s.Authorize(valid).IsAdmin)
	assert.True(t, s.Authorize("Bearer "+valid).IsAdmin)
}

func TestContextHelpers(t *testing.T) {
	assert.Equal(t, Context{}, FromContext(context.Background()))

	ctx := WithContext(context.Background(), Context{UserID: 3, IsAdmin: true})
	assert.Equal(t, Context{UserID: 3, IsAdmin: true}, FromContext(ctx))
}
