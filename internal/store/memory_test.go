package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentms/internal/store"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := store.NewMemoryStore()
	want := sampleStudents()

	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMemoryStoreEmptyLoad(t *testing.T) {
	records, err := store.NewMemoryStore().Load()

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestMemoryStoreCopiesSnapshots(t *testing.T) {
	s := store.NewMemoryStore()
	in := sampleStudents()
	require.NoError(t, s.Save(in))

	in[0].Name = "changed after save"
	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", got[0].Name)

	got[1].Roll = "changed after load"
	again, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "S101", again[1].Roll)
}
