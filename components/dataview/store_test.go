package dataview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowStoreAssignsPositionalKeys(t *testing.T) {
	store := NewRowStore(
		NewRecord("", "Available"),
		NewRecord("", "Occupied"),
	)
	assert.Equal(t, []string{"1", "2"}, keys(store.All()))
}

func TestRowStoreLoadDropsDuplicateKeys(t *testing.T) {
	store := NewRowStore()
	n := store.Load([]Record{
		NewRecord("A", "Available"),
		NewRecord("A", "Occupied"),
		NewRecord("B", "Occupied"),
	})
	assert.Equal(t, 2, n)
	rec, ok := store.Get("A")
	require.True(t, ok)
	assert.Equal(t, "Available", rec.Status)
}

func TestRowStoreAddRejectsDuplicate(t *testing.T) {
	store := NewRowStore(NewRecord("A", ""))
	_, err := store.Add(NewRecord("A", ""))
	assert.ErrorIs(t, err, ErrDuplicateRowKey)

	rec, err := store.Add(NewRecord("", ""))
	require.NoError(t, err)
	assert.NotEqual(t, "A", rec.Key)
	assert.Equal(t, 2, store.Len())
}

func TestRowStoreAllReturnsCopies(t *testing.T) {
	store := NewRowStore(NewRecord("A", "Available", Field{Name: "room", Value: "101"}))
	rows := store.All()
	rows[0].Fields[0].Value = "changed"
	rec, _ := store.Get("A")
	assert.Equal(t, "101", rec.Value("room"))
}

func TestRowStoreRemove(t *testing.T) {
	store := NewRowStore(NewRecord("A", ""), NewRecord("B", ""), NewRecord("C", ""))
	assert.True(t, store.Remove("B"))
	assert.False(t, store.Remove("B"))
	assert.Equal(t, []string{"A", "C"}, keys(store.All()))
	_, ok := store.Get("B")
	assert.False(t, ok)
}

func TestRecordFromValuesOrdersColumns(t *testing.T) {
	def := TableDefinition{
		KeyColumn:    "id",
		StatusColumn: "status",
		Columns:      []ColumnDefinition{{Key: "id"}, {Key: "status"}},
	}
	rec := RecordFromValues(def, 4, map[string]string{"status": "Occupied", "zeta": "z", "alpha": "a"})
	assert.Equal(t, "4", rec.Key)
	assert.Equal(t, "Occupied", rec.Status)
	names := make([]string, len(rec.Fields))
	for i, f := range rec.Fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"id", "status", "alpha", "zeta"}, names)
	assert.Equal(t, " Occupied a z", rec.Text())
}
