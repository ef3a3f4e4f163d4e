// Package store is the restaurant data store: typed CRUD over categories,
// dishes, clients and orders on top of the generic orm repositories.
//
// Missing keys are a normal outcome. Get and Update report them through a
// found flag, Delete through its boolean result. Errors are reserved for
// invalid input, unknown references and storage failures.
package store

import (
	"context"
	"fmt"

	"github.com/eleven-am/bistro/internal/logger"
	"github.com/eleven-am/bistro/internal/migrator"
	"github.com/eleven-am/bistro/internal/orm"
	"github.com/eleven-am/bistro/internal/store/migrations"
	"github.com/jmoiron/sqlx"
)

// Restaurant is the operation set offered to callers of the store
type Restaurant interface {
	CreateCategory(ctx context.Context, category Category) (Category, error)
	GetCategory(ctx context.Context, id int64) (Category, bool, error)
	ListCategories(ctx context.Context) ([]Category, error)
	UpdateCategory(ctx context.Context, id int64, patch CategoryPatch) (Category, bool, error)
	DeleteCategory(ctx context.Context, id int64) (bool, error)

	CreateDish(ctx context.Context, dish Dish) (Dish, error)
	GetDish(ctx context.Context, id int64) (Dish, bool, error)
	ListDishes(ctx context.Context) ([]Dish, error)
	UpdateDish(ctx context.Context, id int64, patch DishPatch) (Dish, bool, error)
	DeleteDish(ctx context.Context, id int64) (bool, error)

	CreateClient(ctx context.Context, client Client) (Client, error)
	GetClient(ctx context.Context, id int64) (Client, bool, error)
	ListClients(ctx context.Context) ([]Client, error)
	UpdateClient(ctx context.Context, id int64, patch ClientPatch) (Client, bool, error)
	DeleteClient(ctx context.Context, id int64) (bool, error)

	CreateOrder(ctx context.Context, order Order) (Order, error)
	GetOrder(ctx context.Context, id int64) (Order, bool, error)
	ListOrders(ctx context.Context) ([]Order, error)
	UpdateOrder(ctx context.Context, id int64, patch OrderPatch) (Order, bool, error)
	DeleteOrder(ctx context.Context, id int64) (bool, error)

	ListOrderDetails(ctx context.Context) ([]OrderDetails, error)
	Snapshot(ctx context.Context) (Snapshot, error)
}

var _ Restaurant = (*Store)(nil)

// Store holds the database handle and one repository per entity kind
type Store struct {
	db         *sqlx.DB
	categories *orm.Repository[Category]
	dishes     *orm.Repository[Dish]
	clients    *orm.Repository[Client]
	orders     *orm.Repository[Order]
}

// Open prepares the database described by cfg, connects, applies the
// embedded schema and returns a ready store. The caller owns Close.
func Open(ctx context.Context, cfg *migrator.DBConfig) (*Store, error) {
	if err := migrator.EnsureDatabaseExists(ctx, cfg); err != nil {
		return nil, err
	}

	db, err := cfg.Connect(ctx)
	if err != nil {
		return nil, err
	}

	s, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	if _, err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Store().Info("store opened", "driver", cfg.Driver)
	return s, nil
}

// New wraps an already connected database. The schema is not touched.
func New(db *sqlx.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle is required")
	}

	s := &Store{db: db}
	var err error

	if s.categories, err = orm.NewRepository(db, categoryMetadata); err != nil {
		return nil, fmt.Errorf("failed to create category repository: %w", err)
	}
	if s.dishes, err = orm.NewRepository(db, dishMetadata); err != nil {
		return nil, fmt.Errorf("failed to create dish repository: %w", err)
	}
	if s.clients, err = orm.NewRepository(db, clientMetadata); err != nil {
		return nil, fmt.Errorf("failed to create client repository: %w", err)
	}
	if s.orders, err = orm.NewRepository(db, orderMetadata); err != nil {
		return nil, fmt.Errorf("failed to create order repository: %w", err)
	}

	statementLog := orm.TimingMiddleware(logStatement)
	s.categories.AddMiddleware(statementLog)
	s.dishes.AddMiddleware(statementLog)
	s.clients.AddMiddleware(statementLog)
	s.orders.AddMiddleware(statementLog)

	return s, nil
}

// Migrate applies the embedded schema for the connected driver
func (s *Store) Migrate(ctx context.Context) ([]string, error) {
	root, err := migrations.Root(s.db.DriverName())
	if err != nil {
		return nil, err
	}
	applied, err := migrator.ApplyMigrations(ctx, s.db, migrations.FS, root)
	if err != nil {
		return applied, fmt.Errorf("failed to apply schema: %w", err)
	}
	return applied, nil
}

// Reset rolls back every embedded migration and applies them again, leaving empty tables
func (s *Store) Reset(ctx context.Context) error {
	root, err := migrations.Root(s.db.DriverName())
	if err != nil {
		return err
	}
	if _, err := migrator.RollbackMigrations(ctx, s.db, migrations.FS, root, 0); err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	_, err = s.Migrate(ctx)
	return err
}

// DB exposes the underlying handle
func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}

func logStatement(ctx *orm.MiddlewareContext) {
	log := logger.DB().WithFields(map[string]interface{}{
		"table":     ctx.TableName,
		"operation": string(ctx.Operation),
		"duration":  ctx.Duration,
	})
	if ctx.Error != nil && !orm.IsNotFound(ctx.Error) {
		log.Debug("statement failed", "query", ctx.Query, "error", ctx.Error)
		return
	}
	log.Debug("statement executed", "query", ctx.Query)
}
