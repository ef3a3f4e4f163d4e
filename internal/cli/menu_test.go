package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func runMenu(t *testing.T, db, input string) string {
	t.Helper()

	out, err := execute(t, input, "--db", db, "menu")
	require.NoError(t, err, out)
	return out
}

func TestMenuSession(t *testing.T) {
	db := workspace(t)

	out := runMenu(t, db, script(
		"1", "1", "Beverages",
		"2", "1", "Cola", "5", "1",
		"3", "1", "Ana", "555-0101",
		"4", "1", "1", "1", "2024-01-01",
		"4", "5",
		"0",
	))

	assert.Contains(t, out, "--- MAIN MENU ---")
	assert.Contains(t, out, "--- CATEGORIES MENU ---")
	assert.Contains(t, out, "Category created successfully: Category(id=1, name=Beverages)")
	assert.Contains(t, out, "Dish created successfully: Dish(id=1, name=Cola, price=5, category=1)")
	assert.Contains(t, out, "Client created successfully: Client(id=1, name=Ana, phone=555-0101)")
	assert.Contains(t, out, "Order created successfully: Order(id=1, client=1, dish=1, date=2024-01-01)")
	assert.Contains(t, out, "Order 1: Client Ana, Dish Cola, Date 2024-01-01")
	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))
}

func TestMenuUpdateKeepsBlankFields(t *testing.T) {
	db := workspace(t)
	run(t, db, "dish", "create", "--name", "Soup", "--price", "4")

	out := runMenu(t, db, script("2", "3", "1", "", "6", "", "0"))
	assert.Contains(t, out, "Dish updated successfully: Dish(id=1, name=Soup, price=6, category=none)")
}

func TestMenuInvalidInput(t *testing.T) {
	db := workspace(t)

	out := runMenu(t, db, script(
		"9",
		"1", "2", "abc",
		"2", "1", "Soup", "cheap",
		"4", "1", "1", "1", "tomorrow",
		"1", "7",
		"0",
	))

	assert.Contains(t, out, "Invalid option.")
	assert.Contains(t, out, "Invalid ID. Please enter a whole number.")
	assert.Contains(t, out, "Invalid price. Please enter a whole number.")
	assert.Contains(t, out, "Invalid date. Please use YYYY-MM-DD.")
	assert.Equal(t, 2, strings.Count(out, "Invalid option."))
}

func TestMenuReportsStoreErrors(t *testing.T) {
	db := workspace(t)

	out := runMenu(t, db, script(
		"2", "1", "Soup", "4", "3",
		"1", "1", "",
		"5",
		"0",
	))

	assert.Contains(t, out, "Error: ")
	assert.Contains(t, out, "does not exist")
	assert.Contains(t, out, "No dishes registered.")
	assert.Contains(t, out, "No categories registered.")
}

func TestMenuNotFound(t *testing.T) {
	db := workspace(t)

	out := runMenu(t, db, script("3", "2", "4", "3", "4", "4", "0"))
	assert.Contains(t, out, "Client with ID 4 not found.")
	assert.Equal(t, 2, strings.Count(out, "not found."))
}

func TestMenuEndOfInput(t *testing.T) {
	db := workspace(t)

	out := runMenu(t, db, "1\n1\n")
	assert.Contains(t, out, "Enter the new category name: ")
	assert.NotContains(t, out, "Goodbye!")
}
