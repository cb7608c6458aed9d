package session

import (
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func testStore(t *testing.T) *Store {
	t.Helper()
	st, err := NewStore(testKey(t), Config{
		CookieName: "ranked_session",
		TTL:        24 * time.Hour,
		Secure:     false,
	})
	require.NoError(t, err)
	return st
}

func requestWithCookie(c *http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if c != nil {
		r.AddCookie(c)
	}
	return r
}

func TestNewStore_RejectsBadKeyLength(t *testing.T) {
	_, err := NewStore(make([]byte, 16), Config{CookieName: "s"})
	require.Error(t, err)
}

func TestStore_RoundTrip(t *testing.T) {
	st := testStore(t)

	sess := st.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, sess.IsEmpty())

	sess.SetMemberID("member-1")
	sess.SetIssuedAt(1700000000000)
	sess.SetCSRFToken("tok")

	cookie, err := st.Directive(sess)
	require.NoError(t, err)
	require.NotNil(t, cookie)
	assert.Equal(t, "ranked_session", cookie.Name)

	loaded := st.Load(requestWithCookie(cookie))
	assert.Equal(t, "member-1", loaded.MemberID())
	issuedAt, ok := loaded.IssuedAt()
	require.True(t, ok)
	assert.Equal(t, int64(1700000000000), issuedAt)
	assert.Equal(t, "tok", loaded.CSRFToken())
}

func TestStore_GarbageCookieLoadsEmpty(t *testing.T) {
	st := testStore(t)

	for _, v := range []string{"", "not-base64!!", "AAAA", "dmFsaWQtYjY0LWJ1dC1ub3QtYS1zZXNzaW9u"} {
		sess := st.Load(requestWithCookie(&http.Cookie{Name: "ranked_session", Value: v}))
		assert.True(t, sess.IsEmpty(), "value %q should decode to an empty bag", v)
		assert.Equal(t, "", sess.MemberID())
	}
}

func TestStore_WrongKeyLoadsEmpty(t *testing.T) {
	st1 := testStore(t)
	st2 := testStore(t)

	sess := st1.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	sess.SetMemberID("member-1")
	cookie, err := st1.Directive(sess)
	require.NoError(t, err)

	loaded := st2.Load(requestWithCookie(cookie))
	assert.True(t, loaded.IsEmpty())
}

func TestStore_ExpiredPayloadLoadsEmpty(t *testing.T) {
	now := time.Now()
	st := testStore(t).WithNow(func() time.Time { return now })

	sess := st.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	sess.SetMemberID("member-1")
	cookie, err := st.Directive(sess)
	require.NoError(t, err)

	// Advance beyond the enforced expiry carried inside the payload.
	now = now.Add(25 * time.Hour)
	loaded := st.Load(requestWithCookie(cookie))
	assert.True(t, loaded.IsEmpty())
}

func TestStore_NoDirectiveWhenUntouched(t *testing.T) {
	st := testStore(t)

	sess := st.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	cookie, err := st.Directive(sess)
	require.NoError(t, err)
	assert.Nil(t, cookie)
}

func TestStore_DeleteEmitsClearingCookie(t *testing.T) {
	st := testStore(t)

	sess := st.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	sess.SetMemberID("member-1")
	sess.Delete()

	cookie, err := st.Directive(sess)
	require.NoError(t, err)
	require.NotNil(t, cookie)
	assert.Equal(t, -1, cookie.MaxAge)
	assert.Empty(t, cookie.Value)

	// Clearing attributes must mirror the set attributes.
	set := st.ClearingCookie()
	assert.Equal(t, "/", set.Path)
	assert.True(t, set.HttpOnly)
}

func TestStore_TouchExtendsMaxAge(t *testing.T) {
	now := time.Now()
	st := testStore(t).WithNow(func() time.Time { return now })

	sess := st.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	sess.SetMemberID("member-1")
	sess.Touch(now, 30*time.Minute)

	cookie, err := st.Directive(sess)
	require.NoError(t, err)
	require.NotNil(t, cookie)
	assert.Equal(t, int(30*time.Minute.Seconds()), cookie.MaxAge)
}

func TestStore_CookieAttributes(t *testing.T) {
	key := testKey(t)

	secureStore, err := NewStore(key, Config{CookieName: "s", TTL: time.Hour, Secure: true})
	require.NoError(t, err)
	c := secureStore.ClearingCookie()
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteNoneMode, c.SameSite)

	laxStore, err := NewStore(key, Config{CookieName: "s", TTL: time.Hour, Secure: false})
	require.NoError(t, err)
	c = laxStore.ClearingCookie()
	assert.False(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)
}

func TestSession_DeleteClearsValues(t *testing.T) {
	sess := New()
	sess.SetMemberID("member-1")
	sess.SetCSRFToken("tok")

	sess.Delete()

	assert.True(t, sess.IsEmpty())
	assert.True(t, sess.Deleted())
	assert.Equal(t, "", sess.MemberID())
}

func TestSession_GetInt64AcceptsFloat(t *testing.T) {
	sess := New()
	sess.Set(KeyIssuedAt, float64(1700000000000))

	v, ok := sess.GetInt64(KeyIssuedAt)
	require.True(t, ok)
	assert.Equal(t, int64(1700000000000), v)
}
