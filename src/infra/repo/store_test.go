package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candlepin/src/core/domain"
)

func doc(kind, id, key, scope string, created int) *Document {
	return &Document{Kind: kind, ID: id, Key: key, Scope: scope, Data: []byte(`{}`), Created: at(created), Updated: at(created)}
}

// testStore runs the behaviour every Store implementation shares. newStore
// must return an empty store.
func testStore(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("keys are unique", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		require.NoError(t, s.Insert(ctx, doc("k", "1", "a", "", 0)))
		err := s.Insert(ctx, doc("k", "2", "a", "", 0))
		assert.True(t, domain.IsAlreadyExists(err))
		err = s.Insert(ctx, doc("k", "1", "", "", 0))
		assert.True(t, domain.IsAlreadyExists(err))

		// Same key under another kind is fine.
		require.NoError(t, s.Insert(ctx, doc("other", "1", "a", "", 0)))

		// Rekeying frees the old key.
		require.NoError(t, s.Update(ctx, doc("k", "1", "b", "", 1)))
		require.NoError(t, s.Insert(ctx, doc("k", "2", "a", "", 1)))
		_, err = s.GetByKey(ctx, "k", "b")
		require.NoError(t, err)

		// Rekeying onto a taken key fails.
		err = s.Update(ctx, doc("k", "1", "a", "", 2))
		assert.True(t, domain.IsAlreadyExists(err))

		require.NoError(t, s.Delete(ctx, "k", "1"))
		_, err = s.GetByKey(ctx, "k", "b")
		assert.True(t, domain.IsNotFound(err))
		assert.True(t, domain.IsNotFound(s.Delete(ctx, "k", "1")))
		assert.True(t, domain.IsNotFound(s.Update(ctx, doc("k", "9", "", "", 0))))
	})

	t.Run("empty keys never collide", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		require.NoError(t, s.Insert(ctx, doc("k", "1", "", "", 0)))
		require.NoError(t, s.Insert(ctx, doc("k", "2", "", "", 0)))

		got, err := s.Get(ctx, "k", "2")
		require.NoError(t, err)
		assert.Empty(t, got.Key)

		_, err = s.GetByKey(ctx, "k", "")
		assert.True(t, domain.IsNotFound(err))

		// Clearing a key releases it.
		require.NoError(t, s.Insert(ctx, doc("k", "3", "x", "", 0)))
		require.NoError(t, s.Update(ctx, doc("k", "3", "", "", 1)))
		require.NoError(t, s.Insert(ctx, doc("k", "4", "x", "", 1)))
	})

	t.Run("get and update", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		_, err := s.Get(ctx, "k", "1")
		assert.True(t, domain.IsNotFound(err))

		require.NoError(t, s.Insert(ctx, doc("k", "1", "a", "o1", 0)))
		next := doc("k", "1", "a", "o2", 5)
		next.Data = []byte(`{"name":"box"}`)
		require.NoError(t, s.Update(ctx, next))

		got, err := s.Get(ctx, "k", "1")
		require.NoError(t, err)
		assert.Equal(t, "o2", got.Scope)
		assert.JSONEq(t, `{"name":"box"}`, string(got.Data))
		assert.True(t, at(0).Equal(got.Created), "created is kept")
		assert.True(t, at(5).Equal(got.Updated))

		byKey, err := s.GetByKey(ctx, "k", "a")
		require.NoError(t, err)
		assert.Equal(t, "1", byKey.ID)
	})

	t.Run("list order and scope", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		require.NoError(t, s.Insert(ctx, doc("k", "b", "", "o1", 1)))
		require.NoError(t, s.Insert(ctx, doc("k", "a", "", "o2", 1)))
		require.NoError(t, s.Insert(ctx, doc("k", "c", "", "o1", 0)))
		require.NoError(t, s.Insert(ctx, doc("other", "d", "", "o1", 0)))

		all, err := s.List(ctx, "k", "")
		require.NoError(t, err)
		var ids []string
		for _, d := range all {
			ids = append(ids, d.ID)
		}
		assert.Equal(t, []string{"c", "a", "b"}, ids)

		scoped, err := s.List(ctx, "k", "o1")
		require.NoError(t, err)
		assert.Len(t, scoped, 2)

		none, err := s.List(ctx, "k", "o9")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("health", func(t *testing.T) {
		assert.NoError(t, newStore(t).Health(context.Background()))
	})
}
