package cli

import (
	"context"

	"github.com/eleven-am/bistro/internal/store"
)

func (m *menu) categories(ctx context.Context) error {
	choice, err := m.submenu(categoryKind)
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		name, err := m.ask("Enter the new category name: ")
		if err != nil {
			return err
		}
		category, err := m.store.CreateCategory(ctx, store.Category{Name: name})
		if err != nil {
			return err
		}
		m.out.created(categoryKind, category)

	case "2":
		id, ok, err := m.askID("Enter the category ID: ")
		if err != nil || !ok {
			return err
		}
		category, found, err := m.store.GetCategory(ctx, id)
		if err != nil {
			return err
		}
		m.show(categoryKind, category, found, id)

	case "3":
		id, ok, err := m.askID("Enter the ID of the category to update: ")
		if err != nil || !ok {
			return err
		}
		name, err := m.askOptional("Enter the new category name (leave blank to keep): ")
		if err != nil {
			return err
		}
		category, found, err := m.store.UpdateCategory(ctx, id, store.CategoryPatch{Name: name})
		if err != nil {
			return err
		}
		m.changed(categoryKind, category, found, id)

	case "4":
		id, ok, err := m.askID("Enter the category ID: ")
		if err != nil || !ok {
			return err
		}
		deleted, err := m.store.DeleteCategory(ctx, id)
		if err != nil {
			return err
		}
		m.removed(categoryKind, deleted, id)

	case "5":
		categories, err := m.store.ListCategories(ctx)
		if err != nil {
			return err
		}
		printAll(m.out, categoryKind, categories)

	default:
		m.out.line("Invalid option.")
	}
	return nil
}

func (m *menu) dishes(ctx context.Context) error {
	choice, err := m.submenu(dishKind)
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		name, err := m.ask("Enter the new dish name: ")
		if err != nil {
			return err
		}
		price, ok, err := m.askOptionalAmount("Enter the dish price: ")
		if err != nil || !ok {
			return err
		}
		if price == nil {
			m.out.line("Invalid price. Please enter a whole number.")
			return nil
		}
		categoryID, ok, err := m.askOptionalID("Enter the dish category ID (leave blank for none): ")
		if err != nil || !ok {
			return err
		}
		dish, err := m.store.CreateDish(ctx, store.Dish{Name: name, Price: *price, CategoryID: categoryID})
		if err != nil {
			return err
		}
		m.out.created(dishKind, dish)

	case "2":
		id, ok, err := m.askID("Enter the dish ID: ")
		if err != nil || !ok {
			return err
		}
		dish, found, err := m.store.GetDish(ctx, id)
		if err != nil {
			return err
		}
		m.show(dishKind, dish, found, id)

	case "3":
		id, ok, err := m.askID("Enter the ID of the dish to update: ")
		if err != nil || !ok {
			return err
		}
		var patch store.DishPatch
		if patch.Name, err = m.askOptional("Enter the new dish name (leave blank to keep): "); err != nil {
			return err
		}
		if patch.Price, ok, err = m.askOptionalAmount("Enter the new dish price (leave blank to keep): "); err != nil || !ok {
			return err
		}
		if patch.CategoryID, ok, err = m.askOptionalID("Enter the new category ID (leave blank to keep): "); err != nil || !ok {
			return err
		}
		dish, found, err := m.store.UpdateDish(ctx, id, patch)
		if err != nil {
			return err
		}
		m.changed(dishKind, dish, found, id)

	case "4":
		id, ok, err := m.askID("Enter the dish ID: ")
		if err != nil || !ok {
			return err
		}
		deleted, err := m.store.DeleteDish(ctx, id)
		if err != nil {
			return err
		}
		m.removed(dishKind, deleted, id)

	case "5":
		dishes, err := m.store.ListDishes(ctx)
		if err != nil {
			return err
		}
		printAll(m.out, dishKind, dishes)

	default:
		m.out.line("Invalid option.")
	}
	return nil
}

func (m *menu) clients(ctx context.Context) error {
	choice, err := m.submenu(clientKind)
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		name, err := m.ask("Enter the new client name: ")
		if err != nil {
			return err
		}
		phone, err := m.ask("Enter the client phone number: ")
		if err != nil {
			return err
		}
		client, err := m.store.CreateClient(ctx, store.Client{Name: name, Phone: phone})
		if err != nil {
			return err
		}
		m.out.created(clientKind, client)

	case "2":
		id, ok, err := m.askID("Enter the client ID: ")
		if err != nil || !ok {
			return err
		}
		client, found, err := m.store.GetClient(ctx, id)
		if err != nil {
			return err
		}
		m.show(clientKind, client, found, id)

	case "3":
		id, ok, err := m.askID("Enter the ID of the client to update: ")
		if err != nil || !ok {
			return err
		}
		var patch store.ClientPatch
		if patch.Name, err = m.askOptional("Enter the new client name (leave blank to keep): "); err != nil {
			return err
		}
		if patch.Phone, err = m.askOptional("Enter the new phone number (leave blank to keep): "); err != nil {
			return err
		}
		client, found, err := m.store.UpdateClient(ctx, id, patch)
		if err != nil {
			return err
		}
		m.changed(clientKind, client, found, id)

	case "4":
		id, ok, err := m.askID("Enter the client ID: ")
		if err != nil || !ok {
			return err
		}
		deleted, err := m.store.DeleteClient(ctx, id)
		if err != nil {
			return err
		}
		m.removed(clientKind, deleted, id)

	case "5":
		clients, err := m.store.ListClients(ctx)
		if err != nil {
			return err
		}
		printAll(m.out, clientKind, clients)

	default:
		m.out.line("Invalid option.")
	}
	return nil
}

func (m *menu) orders(ctx context.Context) error {
	choice, err := m.submenu(orderKind)
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		clientID, ok, err := m.askID("Enter the client ID: ")
		if err != nil || !ok {
			return err
		}
		dishID, ok, err := m.askID("Enter the dish ID: ")
		if err != nil || !ok {
			return err
		}
		date, ok, err := m.askOptionalDate("Enter the order date (YYYY-MM-DD): ")
		if err != nil || !ok {
			return err
		}
		if date == nil {
			m.out.line("Invalid date. Please use YYYY-MM-DD.")
			return nil
		}
		order, err := m.store.CreateOrder(ctx, store.Order{ClientID: clientID, DishID: dishID, Date: *date})
		if err != nil {
			return err
		}
		m.out.created(orderKind, order)

	case "2":
		id, ok, err := m.askID("Enter the order ID: ")
		if err != nil || !ok {
			return err
		}
		order, found, err := m.store.GetOrder(ctx, id)
		if err != nil {
			return err
		}
		m.show(orderKind, order, found, id)

	case "3":
		id, ok, err := m.askID("Enter the ID of the order to update: ")
		if err != nil || !ok {
			return err
		}
		var patch store.OrderPatch
		if patch.ClientID, ok, err = m.askOptionalID("Enter the new client ID (leave blank to keep): "); err != nil || !ok {
			return err
		}
		if patch.DishID, ok, err = m.askOptionalID("Enter the new dish ID (leave blank to keep): "); err != nil || !ok {
			return err
		}
		if patch.Date, ok, err = m.askOptionalDate("Enter the new order date (YYYY-MM-DD, leave blank to keep): "); err != nil || !ok {
			return err
		}
		order, found, err := m.store.UpdateOrder(ctx, id, patch)
		if err != nil {
			return err
		}
		m.changed(orderKind, order, found, id)

	case "4":
		id, ok, err := m.askID("Enter the order ID: ")
		if err != nil || !ok {
			return err
		}
		deleted, err := m.store.DeleteOrder(ctx, id)
		if err != nil {
			return err
		}
		m.removed(orderKind, deleted, id)

	case "5":
		details, err := m.store.ListOrderDetails(ctx)
		if err != nil {
			return err
		}
		printAll(m.out, orderKind, details)

	default:
		m.out.line("Invalid option.")
	}
	return nil
}
