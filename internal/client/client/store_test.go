package client

import (
	"context"
	"errors"
	"testing"

	firebase "firebase.google.com/go/v4"
	"github.com/dmitrijs2005/dailyjournal/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestNewStore_None(t *testing.T) {
	for _, b := range []string{"", BackendNone, "NONE"} {
		s, err := NewStore(context.Background(), StoreOptions{Backend: b})
		require.NoError(t, err)
		assert.Nil(t, s)
	}
}

func TestNewStore_UnknownBackend(t *testing.T) {
	_, err := NewStore(context.Background(), StoreOptions{Backend: "dropbox"})
	require.ErrorIs(t, err, common.ErrorUnknownBackend)
}

func TestNewStore_FirebaseInitFailureIsUnavailable(t *testing.T) {
	orig := newFirebaseApp
	t.Cleanup(func() { newFirebaseApp = orig })

	var gotCfg *firebase.Config
	var gotOpts int
	newFirebaseApp = func(ctx context.Context, cfg *firebase.Config, opts ...option.ClientOption) (*firebase.App, error) {
		gotCfg = cfg
		gotOpts = len(opts)
		return nil, errors.New("no credentials")
	}

	_, err := NewStore(context.Background(), StoreOptions{
		Backend:                 BackendFirebase,
		FirebaseCredentialsFile: "/tmp/sa.json",
		FirebaseProjectID:       "journal-dev",
		FirebaseDatabaseURL:     "https://journal-dev.firebaseio.com",
	})
	require.ErrorIs(t, err, ErrUnavailable)
	require.NotNil(t, gotCfg)
	assert.Equal(t, "journal-dev", gotCfg.ProjectID)
	assert.Equal(t, "https://journal-dev.firebaseio.com", gotCfg.DatabaseURL)
	assert.Equal(t, 1, gotOpts)
}

func TestNewStore_RedisUnreachableIsUnavailable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore(ctx, StoreOptions{Backend: BackendRedis, RedisAddr: "127.0.0.1:1"})
	require.ErrorIs(t, err, ErrUnavailable)
}
