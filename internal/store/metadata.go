package store

import "github.com/eleven-am/bistro/internal/orm"

const (
	tableCategories = "categories"
	tableDishes     = "dishes"
	tableClients    = "clients"
	tableOrders     = "orders"
)

// Column references used in joins and filters
var (
	dishID        = orm.Column[int64]{Name: "id", Table: tableDishes}
	dishName      = orm.Column[string]{Name: "name", Table: tableDishes}
	clientID      = orm.Column[int64]{Name: "id", Table: tableClients}
	clientName    = orm.Column[string]{Name: "name", Table: tableClients}
	orderID       = orm.Column[int64]{Name: "id", Table: tableOrders}
	orderClientID = orm.Column[int64]{Name: "client_id", Table: tableOrders}
	orderDishID   = orm.Column[int64]{Name: "dish_id", Table: tableOrders}
	orderDate     = orm.Column[Date]{Name: "order_date", Table: tableOrders}
)

var categoryMetadata = &orm.ModelMetadata[Category]{
	TableName:  tableCategories,
	PrimaryKey: "id",
	Columns:    []string{"id", "name"},
	Values: func(c *Category) map[string]interface{} {
		return map[string]interface{}{"name": c.Name}
	},
	SetPrimaryKey: func(c *Category, id int64) { c.ID = id },
}

var dishMetadata = &orm.ModelMetadata[Dish]{
	TableName:  tableDishes,
	PrimaryKey: "id",
	Columns:    []string{"id", "name", "price", "category_id"},
	Values: func(d *Dish) map[string]interface{} {
		return map[string]interface{}{
			"name":        d.Name,
			"price":       d.Price,
			"category_id": nullableID(d.CategoryID),
		}
	},
	SetPrimaryKey: func(d *Dish, id int64) { d.ID = id },
}

var clientMetadata = &orm.ModelMetadata[Client]{
	TableName:  tableClients,
	PrimaryKey: "id",
	Columns:    []string{"id", "name", "phone"},
	Values: func(c *Client) map[string]interface{} {
		return map[string]interface{}{"name": c.Name, "phone": c.Phone}
	},
	SetPrimaryKey: func(c *Client, id int64) { c.ID = id },
}

var orderMetadata = &orm.ModelMetadata[Order]{
	TableName:  tableOrders,
	PrimaryKey: "id",
	Columns:    []string{"id", "client_id", "dish_id", "order_date"},
	Values: func(o *Order) map[string]interface{} {
		return map[string]interface{}{
			"client_id":  o.ClientID,
			"dish_id":    o.DishID,
			"order_date": o.Date,
		}
	},
	SetPrimaryKey: func(o *Order, id int64) { o.ID = id },
}

func nullableID(id *int64) interface{} {
	if id == nil {
		return nil
	}
	return *id
}
