package store

import "context"

func (s *Store) CreateDish(ctx context.Context, dish Dish) (Dish, error) {
	var check presence
	check.text("name", dish.Name)
	if dish.CategoryID != nil {
		check.id("category_id", *dish.CategoryID)
	}
	if err := check.err(); err != nil {
		return Dish{}, err
	}

	if dish.CategoryID != nil {
		if err := requireReference(ctx, "create", tableDishes, "category_id", s.categories, *dish.CategoryID); err != nil {
			return Dish{}, err
		}
	}

	dish.ID = 0
	return create(ctx, s.dishes, dish)
}

func (s *Store) GetDish(ctx context.Context, id int64) (Dish, bool, error) {
	return getByID(ctx, s.dishes, id)
}

func (s *Store) ListDishes(ctx context.Context) ([]Dish, error) {
	return s.dishes.FindAll(ctx)
}

func (s *Store) UpdateDish(ctx context.Context, id int64, patch DishPatch) (Dish, bool, error) {
	changes := map[string]interface{}{}
	var check presence
	if patch.Name != nil {
		check.text("name", *patch.Name)
		changes["name"] = *patch.Name
	}
	if patch.Price != nil {
		changes["price"] = *patch.Price
	}
	if patch.CategoryID != nil {
		check.id("category_id", *patch.CategoryID)
		changes["category_id"] = *patch.CategoryID
	}
	if err := check.err(); err != nil {
		return Dish{}, false, err
	}
	if len(changes) == 0 {
		return getByID(ctx, s.dishes, id)
	}

	if patch.CategoryID != nil {
		exists, err := s.dishes.Exists(ctx, id)
		if err != nil || !exists {
			return Dish{}, false, err
		}
		if err := requireReference(ctx, "update", tableDishes, "category_id", s.categories, *patch.CategoryID); err != nil {
			return Dish{}, false, err
		}
	}

	return updateByID(ctx, s.dishes, id, changes)
}

// DeleteDish removes the dish only. Orders keep their dish_id.
func (s *Store) DeleteDish(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, s.dishes, id)
}
