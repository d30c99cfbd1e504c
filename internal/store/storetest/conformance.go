// Package storetest holds the behaviour every store.VendorStore backend must
// share, as a reusable test suite.
package storetest

import (
	"context"
	"testing"

	"fjacquet/budget-sync/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunVendorStoreTests runs the shared suite. newStore must return an empty
// store; it is called once per subtest.
func RunVendorStoreTests(t *testing.T, newStore func(t *testing.T) store.VendorStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing mapping is nil without error", func(t *testing.T) {
		s := newStore(t)

		m, err := s.FindMapping(ctx, "alice", "TESCO STORES 2093")
		require.NoError(t, err)
		assert.Nil(t, m)
	})

	t.Run("insert and list vendors", func(t *testing.T) {
		s := newStore(t)

		tesco, err := s.InsertVendor(ctx, "alice", "Tesco Stores")
		require.NoError(t, err)
		assert.NotEmpty(t, tesco.ID)
		assert.Equal(t, "alice", tesco.Owner)
		assert.False(t, tesco.CreatedAt.IsZero())

		greggs, err := s.InsertVendor(ctx, "alice", "Greggs")
		require.NoError(t, err)
		assert.NotEqual(t, tesco.ID, greggs.ID)

		_, err = s.InsertVendor(ctx, "bob", "Greggs")
		require.NoError(t, err)

		vendors, err := s.ListVendors(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, vendors, 2)
		assert.ElementsMatch(t, []string{"Tesco Stores", "Greggs"}, []string{vendors[0].Name, vendors[1].Name})

		empty, err := s.ListVendors(ctx, "carol")
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("mapping round trip and overwrite", func(t *testing.T) {
		s := newStore(t)
		first, err := s.InsertVendor(ctx, "alice", "Boots")
		require.NoError(t, err)
		second, err := s.InsertVendor(ctx, "alice", "Boots Pharmacy")
		require.NoError(t, err)

		require.NoError(t, s.InsertMapping(ctx, "alice", "BOOTS 1234", first.ID))
		m, err := s.FindMapping(ctx, "alice", "BOOTS 1234")
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, first.ID, m.VendorID)
		assert.Equal(t, "alice", m.Owner)
		assert.Equal(t, "BOOTS 1234", m.RawKey)

		require.NoError(t, s.InsertMapping(ctx, "alice", "BOOTS 1234", second.ID))
		m, err = s.FindMapping(ctx, "alice", "BOOTS 1234")
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, second.ID, m.VendorID)
	})

	t.Run("mappings are owner scoped and verbatim", func(t *testing.T) {
		s := newStore(t)
		v, err := s.InsertVendor(ctx, "alice", "Greggs")
		require.NoError(t, err)
		require.NoError(t, s.InsertMapping(ctx, "alice", "GREGGS", v.ID))

		m, err := s.FindMapping(ctx, "bob", "GREGGS")
		require.NoError(t, err)
		assert.Nil(t, m)

		m, err = s.FindMapping(ctx, "alice", "greggs")
		require.NoError(t, err)
		assert.Nil(t, m)
	})

	t.Run("delete vendor", func(t *testing.T) {
		s := newStore(t)
		v, err := s.InsertVendor(ctx, "alice", "Costa")
		require.NoError(t, err)
		require.NoError(t, s.InsertMapping(ctx, "alice", "COSTA", v.ID))

		assert.ErrorIs(t, s.DeleteVendor(ctx, "bob", v.ID), store.ErrNotFound)
		require.NoError(t, s.DeleteVendor(ctx, "alice", v.ID))
		assert.ErrorIs(t, s.DeleteVendor(ctx, "alice", v.ID), store.ErrNotFound)

		vendors, err := s.ListVendors(ctx, "alice")
		require.NoError(t, err)
		assert.Empty(t, vendors)
	})
}
