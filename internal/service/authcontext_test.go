package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/rankedhq/ranked-api/internal/domain/auth"
	"github.com/rankedhq/ranked-api/internal/mocks"
	"github.com/rankedhq/ranked-api/internal/session"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newAuthContextService(t *testing.T, members *mocks.MockMemberStore, cfg AuthContextConfig) *AuthContextService {
	t.Helper()
	return NewAuthContextService(AuthContextServiceOptions{
		Members: members,
		Config:  cfg,
	}).WithNow(func() time.Time { return fixedNow })
}

func defaultLifetimes() AuthContextConfig {
	return AuthContextConfig{
		TTL:         24 * time.Hour,
		AbsoluteTTL: 24 * time.Hour,
		Rolling:     true,
	}
}

func TestResolve_AnonymousWhenNoMemberID(t *testing.T) {
	ctrl := gomock.NewController(t)
	members := mocks.NewMockMemberStore(ctrl)
	svc := newAuthContextService(t, members, defaultLifetimes())

	sess := session.New()
	got, err := svc.Resolve(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, domainauth.StateUnauthenticated, got.State)
	assert.False(t, sess.Deleted())
}

func TestResolve_MissingIssuedAtExpires(t *testing.T) {
	ctrl := gomock.NewController(t)
	members := mocks.NewMockMemberStore(ctrl)
	svc := newAuthContextService(t, members, defaultLifetimes())

	sess := session.New()
	sess.SetMemberID("member-1")

	got, err := svc.Resolve(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, domainauth.StateExpired, got.State)
	assert.Equal(t, domainauth.ExpiredMissingIssuedAt, got.Reason)
	assert.True(t, sess.Deleted())
}

func TestResolve_AbsoluteTTLExceeded(t *testing.T) {
	ctrl := gomock.NewController(t)
	members := mocks.NewMockMemberStore(ctrl)
	svc := newAuthContextService(t, members, defaultLifetimes())

	sess := session.New()
	sess.SetMemberID("member-1")
	sess.SetIssuedAt(fixedNow.Add(-25 * time.Hour).UnixMilli())

	got, err := svc.Resolve(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, domainauth.StateExpired, got.State)
	assert.Equal(t, domainauth.ExpiredAbsoluteTTL, got.Reason)
	assert.True(t, sess.Deleted())
}

func TestResolve_ExactlyAtAbsoluteTTLStillValid(t *testing.T) {
	ctrl := gomock.NewController(t)
	members := mocks.NewMockMemberStore(ctrl)
	members.EXPECT().GetByID(gomock.Any(), "member-1").
		Return(&domainauth.Member{InternalID: "member-1"}, nil)
	svc := newAuthContextService(t, members, defaultLifetimes())

	sess := session.New()
	sess.SetMemberID("member-1")
	sess.SetIssuedAt(fixedNow.Add(-24 * time.Hour).UnixMilli())

	got, err := svc.Resolve(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, domainauth.StateAuthenticated, got.State)
}

func TestResolve_MissingMemberExpires(t *testing.T) {
	ctrl := gomock.NewController(t)
	members := mocks.NewMockMemberStore(ctrl)
	members.EXPECT().GetByID(gomock.Any(), "member-1").Return(nil, nil)
	svc := newAuthContextService(t, members, defaultLifetimes())

	sess := session.New()
	sess.SetMemberID("member-1")
	sess.SetIssuedAt(fixedNow.Add(-time.Hour).UnixMilli())

	got, err := svc.Resolve(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, domainauth.StateExpired, got.State)
	assert.Equal(t, domainauth.ExpiredMissingMember, got.Reason)
	assert.True(t, sess.Deleted())
}

func TestResolve_StoreErrorFailsRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	members := mocks.NewMockMemberStore(ctrl)
	members.EXPECT().GetByID(gomock.Any(), "member-1").
		Return(nil, errors.New("connection refused"))
	svc := newAuthContextService(t, members, defaultLifetimes())

	sess := session.New()
	sess.SetMemberID("member-1")
	sess.SetIssuedAt(fixedNow.Add(-time.Hour).UnixMilli())

	_, err := svc.Resolve(context.Background(), sess)
	require.Error(t, err)
	// A flaky store must not log the member out.
	assert.False(t, sess.Deleted())
}

func TestResolve_AuthenticatedRollsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	members := mocks.NewMockMemberStore(ctrl)
	member := &domainauth.Member{InternalID: "member-1", Email: "ada@example.com"}
	members.EXPECT().GetByID(gomock.Any(), "member-1").Return(member, nil)
	svc := newAuthContextService(t, members, defaultLifetimes())

	sess := session.New()
	sess.SetMemberID("member-1")
	sess.SetIssuedAt(fixedNow.Add(-time.Hour).UnixMilli())

	got, err := svc.Resolve(context.Background(), sess)
	require.NoError(t, err)
	require.True(t, got.IsAuthenticated())
	assert.Equal(t, member, got.Member)
	assert.True(t, sess.Dirty())
}

func TestResolve_NonRollingLeavesSessionAlone(t *testing.T) {
	ctrl := gomock.NewController(t)
	members := mocks.NewMockMemberStore(ctrl)
	members.EXPECT().GetByID(gomock.Any(), "member-1").
		Return(&domainauth.Member{InternalID: "member-1"}, nil)

	cfg := defaultLifetimes()
	cfg.Rolling = false
	svc := newAuthContextService(t, members, cfg)

	// Built the way Load produces a session, so the dirty flag starts false.
	sess := session.FromValues(map[string]any{
		session.KeyMemberID: "member-1",
		session.KeyIssuedAt: float64(fixedNow.Add(-time.Hour).UnixMilli()),
	})

	got, err := svc.Resolve(context.Background(), sess)
	require.NoError(t, err)
	assert.True(t, got.IsAuthenticated())
	assert.False(t, sess.Dirty())
}

func TestResolve_ZeroAbsoluteTTLDisablesCap(t *testing.T) {
	ctrl := gomock.NewController(t)
	members := mocks.NewMockMemberStore(ctrl)
	members.EXPECT().GetByID(gomock.Any(), "member-1").
		Return(&domainauth.Member{InternalID: "member-1"}, nil)

	cfg := defaultLifetimes()
	cfg.AbsoluteTTL = 0
	svc := newAuthContextService(t, members, cfg)

	sess := session.New()
	sess.SetMemberID("member-1")
	sess.SetIssuedAt(fixedNow.Add(-1000 * time.Hour).UnixMilli())

	got, err := svc.Resolve(context.Background(), sess)
	require.NoError(t, err)
	assert.True(t, got.IsAuthenticated())
}
