package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/supernotes/pkg/adapters/lifecycle"
	"github.com/aretw0/supernotes/pkg/adapters/memory"
	"github.com/aretw0/supernotes/pkg/core"
)

func TestSource(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := core.NewStore(memory.New())
	require.NoError(t, store.Load(ctx))

	src := lifecycle.NewSource(store, 4)
	require.NoError(t, src.Start(ctx))

	_, err := store.Add(ctx, core.Draft{Title: "t", Content: "c"})
	require.NoError(t, err)

	select {
	case e := <-src.Events():
		assert.Equal(t, "CREATE #1", e.String())
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}

	cancel()
	require.Eventually(t, func() bool {
		_, open := <-src.Events()
		return !open
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, store.State().(core.StoreState).Subscribers)
}
