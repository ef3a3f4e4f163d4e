package store

import "context"

func (s *Store) CreateCategory(ctx context.Context, category Category) (Category, error) {
	var check presence
	check.text("name", category.Name)
	if err := check.err(); err != nil {
		return Category{}, err
	}

	category.ID = 0
	return create(ctx, s.categories, category)
}

func (s *Store) GetCategory(ctx context.Context, id int64) (Category, bool, error) {
	return getByID(ctx, s.categories, id)
}

func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	return s.categories.FindAll(ctx)
}

func (s *Store) UpdateCategory(ctx context.Context, id int64, patch CategoryPatch) (Category, bool, error) {
	changes := map[string]interface{}{}
	var check presence
	if patch.Name != nil {
		check.text("name", *patch.Name)
		changes["name"] = *patch.Name
	}
	if err := check.err(); err != nil {
		return Category{}, false, err
	}

	return updateByID(ctx, s.categories, id, changes)
}

// DeleteCategory removes the category only. Dishes keep their category_id.
func (s *Store) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, s.categories, id)
}
