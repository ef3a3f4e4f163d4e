package orm

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnConditions(t *testing.T) {
	col := Column[int64]{Name: "category_id", Table: "dishes"}

	tests := []struct {
		name         string
		condition    Condition
		expected     string
		expectedArgs []interface{}
	}{
		{
			name:         "Eq",
			condition:    col.Eq(1),
			expected:     "dishes.category_id = ?",
			expectedArgs: []interface{}{int64(1)},
		},
		{
			name:         "NotEq",
			condition:    col.NotEq(1),
			expected:     "dishes.category_id <> ?",
			expectedArgs: []interface{}{int64(1)},
		},
		{
			name:         "In",
			condition:    col.In(1, 2),
			expected:     "dishes.category_id IN (?,?)",
			expectedArgs: []interface{}{int64(1), int64(2)},
		},
		{
			name:      "IsNull",
			condition: col.IsNull(),
			expected:  "dishes.category_id IS NULL",
		},
		{
			name:      "IsNotNull",
			condition: col.IsNotNull(),
			expected:  "dishes.category_id IS NOT NULL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := tt.condition.ToSqlizer().ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sql)
			if tt.expectedArgs != nil {
				assert.Equal(t, tt.expectedArgs, args)
			} else {
				assert.Empty(t, args)
			}
		})
	}
}

func TestColumnExpressions(t *testing.T) {
	ordersClient := Column[int64]{Name: "client_id", Table: "orders"}
	clientsID := Column[int64]{Name: "id", Table: "clients"}
	bare := Column[string]{Name: "name"}

	assert.Equal(t, "orders.client_id", ordersClient.String())
	assert.Equal(t, "name", bare.String())
	assert.Equal(t, "orders.client_id ASC", ordersClient.Asc())
	assert.Equal(t, "orders.client_id DESC", ordersClient.Desc())
	assert.Equal(t, "clients.name AS client_name", Column[string]{Name: "name", Table: "clients"}.As("client_name"))
	assert.Equal(t, "clients.id = orders.client_id", clientsID.EqColumn(ordersClient))
}

func TestLogicalConditions(t *testing.T) {
	name := Column[string]{Name: "name", Table: "clients"}
	phone := Column[string]{Name: "phone", Table: "clients"}

	t.Run("And", func(t *testing.T) {
		sql, args, err := And(name.Eq("Ana"), phone.Eq("555-0100")).ToSqlizer().ToSql()
		require.NoError(t, err)
		assert.Equal(t, "(clients.name = ? AND clients.phone = ?)", sql)
		assert.Equal(t, []interface{}{"Ana", "555-0100"}, args)
	})

	t.Run("Or", func(t *testing.T) {
		sql, _, err := name.Eq("Ana").Or(name.Eq("Bruno")).ToSqlizer().ToSql()
		require.NoError(t, err)
		assert.Equal(t, "(clients.name = ? OR clients.name = ?)", sql)
	})

	t.Run("Not", func(t *testing.T) {
		sql, _, err := squirrel.Select("id").From("clients").Where(Not(name.Eq("Ana")).ToSqlizer()).ToSql()
		require.NoError(t, err)
		assert.Equal(t, "SELECT id FROM clients WHERE NOT (clients.name = ?)", sql)
	})
}
