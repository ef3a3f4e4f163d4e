package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelMetadataValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m *ModelMetadata[testDish])
		wantErr bool
	}{
		{name: "valid", mutate: func(m *ModelMetadata[testDish]) {}},
		{name: "missing table", mutate: func(m *ModelMetadata[testDish]) { m.TableName = "" }, wantErr: true},
		{name: "missing columns", mutate: func(m *ModelMetadata[testDish]) { m.Columns = nil }, wantErr: true},
		{name: "primary key not selected", mutate: func(m *ModelMetadata[testDish]) { m.Columns = []string{"name"} }, wantErr: true},
		{name: "missing accessors", mutate: func(m *ModelMetadata[testDish]) { m.Values = nil }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metadata := testDishMetadata()
			tt.mutate(metadata)

			err := metadata.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	var nilMetadata *ModelMetadata[testDish]
	assert.Error(t, nilMetadata.Validate())
}

func TestModelMetadataColumns(t *testing.T) {
	metadata := testDishMetadata()

	assert.True(t, metadata.HasColumn("price"))
	assert.False(t, metadata.HasColumn("colour"))
	assert.Equal(t, []string{"dishes.id", "dishes.name", "dishes.price"}, metadata.QualifiedColumns())
	assert.Equal(t, "dishes.id", metadata.PrimaryKeyColumn().String())
}
