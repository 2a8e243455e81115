package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-server/pkg/sanity"
)

func testStore() *Store {
	return NewStore("session-secret", "proj123", "viewer-token")
}

func TestStore_EncodeDecodeRoundTrip(t *testing.T) {
	store := testStore()
	sess := store.NewSession()

	value, err := store.Encode(sess)
	require.NoError(t, err)

	got, err := store.Decode(value)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, "proj123", got.ProjectID)
}

func TestStore_DecodeRejectsTamperedSignature(t *testing.T) {
	store := testStore()
	value, err := store.Encode(store.NewSession())
	require.NoError(t, err)

	last := value[len(value)-1]
	repl := byte('0')
	if last == repl {
		repl = '1'
	}
	tampered := value[:len(value)-1] + string(repl)

	_, err = store.Decode(tampered)
	assert.Error(t, err)
}

func TestStore_DecodeRejectsGarbage(t *testing.T) {
	store := testStore()
	for _, v := range []string{"", "no-dot", "a.b", "!!!.deadbeef"} {
		_, err := store.Decode(v)
		assert.Error(t, err, "value %q", v)
	}
}

func TestOptions_NoCookie(t *testing.T) {
	on, opt := testStore().Options("")
	assert.False(t, on)
	assert.Equal(t, sanity.PerspectivePublished, opt.Perspective)
	assert.False(t, opt.Stega)
	assert.Empty(t, opt.Token)
}

func TestOptions_ValidSession(t *testing.T) {
	store := testStore()
	value, err := store.Encode(store.NewSession())
	require.NoError(t, err)

	on, opt := store.Options(value)
	assert.True(t, on)
	assert.Equal(t, sanity.PerspectiveDrafts, opt.Perspective)
	assert.True(t, opt.Stega)
	assert.Equal(t, "viewer-token", opt.Token)
}

func TestOptions_TamperedCookieFallsBackToPublished(t *testing.T) {
	store := testStore()
	value, err := store.Encode(store.NewSession())
	require.NoError(t, err)

	on, opt := store.Options(value + "x")
	assert.False(t, on)
	assert.Equal(t, sanity.PerspectivePublished, opt.Perspective)
	assert.Empty(t, opt.Token)
}

// A session minted for another project does not unlock drafts here, even when
// both deployments share a signing secret.
func TestOptions_ForeignProjectSession(t *testing.T) {
	other := NewStore("session-secret", "other-project", "viewer-token")
	value, err := other.Encode(other.NewSession())
	require.NoError(t, err)

	on, opt := testStore().Options(value)
	assert.False(t, on)
	assert.Equal(t, sanity.PerspectivePublished, opt.Perspective)
}
