package dataview

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryRegistersDefaults(t *testing.T) {
	reg := NewRegistry()
	codes := make([]string, 0)
	for _, def := range reg.Tables() {
		codes = append(codes, def.Code)
	}
	assert.Subset(t, codes, []string{"admin.table.bookings", "admin.table.guests", "admin.table.rooms"})

	source, ok := reg.Source("admin.table.rooms")
	require.True(t, ok)
	rows, err := source.Records(context.Background(), SourceQuery{})
	require.NoError(t, err)
	assert.NotEmpty(t, rows)
}

func TestRegistryRegisterSourceRequiresTable(t *testing.T) {
	reg := NewEmptyRegistry()
	err := reg.RegisterSource("missing", NewStaticSource(nil))
	assert.Error(t, err)

	require.NoError(t, reg.RegisterTable(TableDefinition{Code: "t", Name: "T"}))
	assert.NoError(t, reg.RegisterSource("t", NewStaticSource(nil)))
	assert.Error(t, reg.RegisterSource("t", nil))
}

func TestRegistryRejectsEmptyCode(t *testing.T) {
	reg := NewEmptyRegistry()
	assert.Error(t, reg.RegisterTable(TableDefinition{}))
}

func TestStaticSourceReturnsCopies(t *testing.T) {
	source := NewStaticSource([]map[string]string{{"id": "R1"}})
	rows, _ := source.Records(context.Background(), SourceQuery{})
	rows[0]["id"] = "changed"
	again, _ := source.Records(context.Background(), SourceQuery{})
	assert.Equal(t, "R1", again[0]["id"])
}

func TestRegisterTableHookAppliesToNewRegistries(t *testing.T) {
	code := "test.table.hooked"
	RegisterTableHook(func(reg *Registry) error {
		return reg.RegisterTable(TableDefinition{Code: code, Name: "Hooked"})
	})
	reg := NewRegistry()
	_, ok := reg.Table(code)
	assert.True(t, ok)

	_, ok = NewEmptyRegistry().Table(code)
	assert.False(t, ok)
}

func TestDefaultTableDefinitionsAreDeepCopies(t *testing.T) {
	defs := DefaultTableDefinitions()
	defs[0].Columns[0].Key = "mutated"
	defs[0].StatusOptions[0] = "mutated"
	props := defs[0].Schema["properties"].(map[string]any)
	props["mutated"] = true
	defs[0].Schema["required"].([]string)[0] = "mutated"

	again := DefaultTableDefinitions()
	assert.NotEqual(t, "mutated", again[0].Columns[0].Key)
	assert.NotEqual(t, "mutated", again[0].StatusOptions[0])
	assert.NotContains(t, again[0].Schema["properties"], "mutated")
	assert.NotEqual(t, "mutated", again[0].Schema["required"].([]string)[0])
}

func TestRegistryStoresIndependentCopies(t *testing.T) {
	reg := NewEmptyRegistry()
	def := TableDefinition{Code: "t", Name: "T", Columns: []ColumnDefinition{{Key: "roomId"}}}
	require.NoError(t, reg.RegisterTable(def))
	assert.Equal(t, "roomId", def.Columns[0].Key)

	got, ok := reg.Table("t")
	require.True(t, ok)
	got.Columns[0].Key = "changed"
	again, _ := reg.Table("t")
	assert.Equal(t, "room_id", again.Columns[0].Key)
}
