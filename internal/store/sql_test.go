package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"studentms/internal/model"
	"studentms/internal/store"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&store.StudentRow{}))
	return db
}

func TestSQLStoreRoundTrip(t *testing.T) {
	s := store.NewSQLStore(setupTestDB(t))
	want := sampleStudents()

	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSQLStoreEmptyLoad(t *testing.T) {
	s := store.NewSQLStore(setupTestDB(t))

	records, err := s.Load()

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSQLStoreSaveReplacesPreviousContent(t *testing.T) {
	s := store.NewSQLStore(setupTestDB(t))

	require.NoError(t, s.Save(sampleStudents()))
	require.NoError(t, s.Save([]model.Student{{Name: "Carol", Roll: "S200"}}))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "S200", got[0].Roll)
}

func TestSQLStoreSaveEmptyClearsTable(t *testing.T) {
	s := store.NewSQLStore(setupTestDB(t))

	require.NoError(t, s.Save(sampleStudents()))
	require.NoError(t, s.Save([]model.Student{}))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLStorePreservesInsertionOrder(t *testing.T) {
	s := store.NewSQLStore(setupTestDB(t))
	want := []model.Student{
		{Name: "Zoe", Roll: "S300"},
		{Name: "Adam", Roll: "S100"},
		{Name: "Mona", Roll: "S200"},
	}

	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "S300", got[0].Roll)
	assert.Equal(t, "S100", got[1].Roll)
	assert.Equal(t, "S200", got[2].Roll)
}
