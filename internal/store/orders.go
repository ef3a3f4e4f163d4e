package store

import (
	"context"

	"github.com/eleven-am/bistro/internal/orm"
)

func (s *Store) CreateOrder(ctx context.Context, order Order) (Order, error) {
	var check presence
	check.id("client_id", order.ClientID)
	check.id("dish_id", order.DishID)
	check.date("date", order.Date)
	if err := check.err(); err != nil {
		return Order{}, err
	}

	if err := requireReference(ctx, "create", tableOrders, "client_id", s.clients, order.ClientID); err != nil {
		return Order{}, err
	}
	if err := requireReference(ctx, "create", tableOrders, "dish_id", s.dishes, order.DishID); err != nil {
		return Order{}, err
	}

	order.ID = 0
	return create(ctx, s.orders, order)
}

func (s *Store) GetOrder(ctx context.Context, id int64) (Order, bool, error) {
	return getByID(ctx, s.orders, id)
}

func (s *Store) ListOrders(ctx context.Context) ([]Order, error) {
	return s.orders.FindAll(ctx)
}

func (s *Store) UpdateOrder(ctx context.Context, id int64, patch OrderPatch) (Order, bool, error) {
	changes := map[string]interface{}{}
	var check presence
	if patch.ClientID != nil {
		check.id("client_id", *patch.ClientID)
		changes["client_id"] = *patch.ClientID
	}
	if patch.DishID != nil {
		check.id("dish_id", *patch.DishID)
		changes["dish_id"] = *patch.DishID
	}
	if patch.Date != nil {
		check.date("date", *patch.Date)
		changes["order_date"] = *patch.Date
	}
	if err := check.err(); err != nil {
		return Order{}, false, err
	}
	if len(changes) == 0 {
		return getByID(ctx, s.orders, id)
	}

	if patch.ClientID != nil || patch.DishID != nil {
		exists, err := s.orders.Exists(ctx, id)
		if err != nil || !exists {
			return Order{}, false, err
		}
	}
	if patch.ClientID != nil {
		if err := requireReference(ctx, "update", tableOrders, "client_id", s.clients, *patch.ClientID); err != nil {
			return Order{}, false, err
		}
	}
	if patch.DishID != nil {
		if err := requireReference(ctx, "update", tableOrders, "dish_id", s.dishes, *patch.DishID); err != nil {
			return Order{}, false, err
		}
	}

	return updateByID(ctx, s.orders, id, changes)
}

func (s *Store) DeleteOrder(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, s.orders, id)
}

// ListOrderDetails returns every order with its client and dish names.
// Orders whose client or dish no longer exists are left out.
func (s *Store) ListOrderDetails(ctx context.Context) ([]OrderDetails, error) {
	query := s.orders.Query(ctx).
		InnerJoin(tableClients, clientID.EqColumn(orderClientID)).
		InnerJoin(tableDishes, dishID.EqColumn(orderDishID)).
		OrderBy(orderID.Asc())

	return orm.Project[Order, OrderDetails](query,
		orderID.String(),
		orderClientID.String(),
		orderDishID.String(),
		orderDate.String(),
		clientName.As("client_name"),
		dishName.As("dish_name"),
	)
}

// Snapshot reads every table, with orders in their joined form
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	var snapshot Snapshot
	var err error

	if snapshot.Categories, err = s.ListCategories(ctx); err != nil {
		return Snapshot{}, err
	}
	if snapshot.Dishes, err = s.ListDishes(ctx); err != nil {
		return Snapshot{}, err
	}
	if snapshot.Clients, err = s.ListClients(ctx); err != nil {
		return Snapshot{}, err
	}
	if snapshot.Orders, err = s.ListOrderDetails(ctx); err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}
