package store

import "context"

func (s *Store) CreateClient(ctx context.Context, client Client) (Client, error) {
	var check presence
	check.text("name", client.Name)
	check.text("phone", client.Phone)
	if err := check.err(); err != nil {
		return Client{}, err
	}

	client.ID = 0
	return create(ctx, s.clients, client)
}

func (s *Store) GetClient(ctx context.Context, id int64) (Client, bool, error) {
	return getByID(ctx, s.clients, id)
}

func (s *Store) ListClients(ctx context.Context) ([]Client, error) {
	return s.clients.FindAll(ctx)
}

func (s *Store) UpdateClient(ctx context.Context, id int64, patch ClientPatch) (Client, bool, error) {
	changes := map[string]interface{}{}
	var check presence
	if patch.Name != nil {
		check.text("name", *patch.Name)
		changes["name"] = *patch.Name
	}
	if patch.Phone != nil {
		check.text("phone", *patch.Phone)
		changes["phone"] = *patch.Phone
	}
	if err := check.err(); err != nil {
		return Client{}, false, err
	}

	return updateByID(ctx, s.clients, id, changes)
}

func (s *Store) DeleteClient(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, s.clients, id)
}
