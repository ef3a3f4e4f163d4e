package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityCommands(t *testing.T) {
	db := workspace(t)

	out := run(t, db, "category", "create", "--name", "Beverages")
	assert.Equal(t, "Category created successfully: Category(id=1, name=Beverages)\n", out)

	out = run(t, db, "dish", "create", "--name", "Cola", "--price", "5", "--category", "1")
	assert.Equal(t, "Dish created successfully: Dish(id=1, name=Cola, price=5, category=1)\n", out)

	out = run(t, db, "client", "create", "--name", "Ana", "--phone", "555-0101")
	assert.Equal(t, "Client created successfully: Client(id=1, name=Ana, phone=555-0101)\n", out)

	out = run(t, db, "order", "create", "--client", "1", "--dish", "1", "--date", "2024-01-01")
	assert.Equal(t, "Order created successfully: Order(id=1, client=1, dish=1, date=2024-01-01)\n", out)

	out = run(t, db, "order", "details")
	assert.Equal(t, "Order 1: Client Ana, Dish Cola, Date 2024-01-01\n", out)

	out = run(t, db, "dish", "get", "1")
	assert.Equal(t, "Dish(id=1, name=Cola, price=5, category=1)\n", out)

	out = run(t, db, "category", "delete", "1")
	assert.Equal(t, "Category 1 deleted successfully.\n", out)

	out = run(t, db, "dish", "list")
	assert.Equal(t, "Dish(id=1, name=Cola, price=5, category=1)\n", out, "dish keeps its dangling category")

	out = run(t, db, "category", "list")
	assert.Equal(t, "No categories registered.\n", out)
}

func TestUpdateCommandsOnlyChangeGivenFlags(t *testing.T) {
	db := workspace(t)

	run(t, db, "category", "create", "--name", "Mains")
	run(t, db, "category", "create", "--name", "Desserts")
	run(t, db, "dish", "create", "--name", "Steak", "--price", "30", "--category", "1")

	out := run(t, db, "dish", "update", "1", "--price", "32")
	assert.Equal(t, "Dish updated successfully: Dish(id=1, name=Steak, price=32, category=1)\n", out)

	out = run(t, db, "dish", "update", "1", "--category", "2", "--name", "Ribeye")
	assert.Equal(t, "Dish updated successfully: Dish(id=1, name=Ribeye, price=32, category=2)\n", out)

	out = run(t, db, "dish", "update", "1")
	assert.Equal(t, "Dish updated successfully: Dish(id=1, name=Ribeye, price=32, category=2)\n", out)

	run(t, db, "client", "create", "--name", "Bo", "--phone", "1")
	out = run(t, db, "client", "update", "1", "--phone", "2")
	assert.Equal(t, "Client updated successfully: Client(id=1, name=Bo, phone=2)\n", out)

	run(t, db, "order", "create", "--client", "1", "--dish", "1", "--date", "2024-03-05")
	out = run(t, db, "order", "update", "1", "--date", "2024-03-06")
	assert.Equal(t, "Order updated successfully: Order(id=1, client=1, dish=1, date=2024-03-06)\n", out)
}

func TestMissingRecords(t *testing.T) {
	db := workspace(t)

	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"category", "get", "9"}, want: "Category with ID 9 not found.\n"},
		{args: []string{"dish", "delete", "9"}, want: "Dish with ID 9 not found.\n"},
		{args: []string{"client", "update", "9", "--name", "X"}, want: "Client with ID 9 not found.\n"},
		{args: []string{"order", "get", "9"}, want: "Order with ID 9 not found.\n"},
		{args: []string{"order", "list"}, want: "No orders registered.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.args[0]+" "+tt.args[1], func(t *testing.T) {
			assert.Equal(t, tt.want, run(t, db, tt.args...))
		})
	}
}

func TestCommandErrors(t *testing.T) {
	db := workspace(t)

	t.Run("invalid id", func(t *testing.T) {
		_, err := execute(t, "", "--db", db, "category", "get", "abc")
		assert.ErrorContains(t, err, "invalid id")
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := execute(t, "", "--db", db, "category", "create", "--name", "  ")
		assert.ErrorContains(t, err, "name")
	})

	t.Run("missing reference", func(t *testing.T) {
		_, err := execute(t, "", "--db", db, "dish", "create", "--name", "Soup", "--price", "4", "--category", "7")
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := execute(t, "", "--db", db, "order", "create", "--client", "1", "--dish", "1", "--date", "01/02/2024")
		assert.Error(t, err)
	})

	t.Run("required flag", func(t *testing.T) {
		_, err := execute(t, "", "--db", db, "dish", "create", "--name", "Soup")
		assert.ErrorContains(t, err, "price")
	})
}

func TestDumpCommand(t *testing.T) {
	db := workspace(t)

	run(t, db, "category", "create", "--name", "Beverages")
	run(t, db, "dish", "create", "--name", "Water", "--price", "0")

	out := run(t, db, "dump")
	assert.Equal(t, `Categories:
Category(id=1, name=Beverages)
Dishes:
Dish(id=1, name=Water, price=0, category=none)
Clients:
No clients registered.
Orders:
No orders registered.
`, out)
}

func TestDBCommands(t *testing.T) {
	db := workspace(t)

	out := run(t, db, "db", "status")
	assert.Contains(t, out, "Driver: sqlite")
	assert.Contains(t, out, "Applied migrations: 1")
	assert.Contains(t, out, "0001_restaurant.sql")

	run(t, db, "client", "create", "--name", "Ana", "--phone", "1")

	_, err := execute(t, "", "--db", db, "db", "reset")
	require.ErrorContains(t, err, "--yes")
	assert.Equal(t, "Client(id=1, name=Ana, phone=1)\n", run(t, db, "client", "list"))

	out = run(t, db, "db", "reset", "--yes")
	assert.Equal(t, "Database reset successfully.\n", out)
	assert.Equal(t, "No clients registered.\n", run(t, db, "client", "list"))
}

func TestDBSchemaCommand(t *testing.T) {
	db := workspace(t)
	run(t, db, "category", "create", "--name", "Beverages")

	out := run(t, db, "db", "schema")
	assert.Contains(t, out, "## categories")
	assert.Contains(t, out, "## orders")
	assert.Contains(t, out, "| order_date | TEXT | NO |")
	assert.Contains(t, out, "- **Tables**: 5")

	out = run(t, db, "db", "schema", "--format", "json")
	assert.Contains(t, out, `"driver": "sqlite"`)

	_, err := execute(t, "", "--db", db, "db", "schema", "--format", "dot")
	assert.ErrorContains(t, err, "unsupported export format")
}
