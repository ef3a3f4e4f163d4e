package store

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the calendar date format used for storage and display
const DateLayout = "2006-01-02"

// Date is a calendar day without time of day or zone
type Date struct {
	time.Time
}

// NewDate builds a Date in UTC
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Value implements driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Format(DateLayout), nil
}

// Scan implements sql.Scanner for TEXT (SQLite) and DATE (Postgres) columns
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(value string) error {
	if len(value) > len(DateLayout) {
		value = value[:len(DateLayout)]
	}
	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Category groups dishes on the menu
type Category struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

func (c Category) String() string {
	return fmt.Sprintf("Category(id=%d, name=%s)", c.ID, c.Name)
}

// Dish is a priced menu item. CategoryID is nil when the dish has no category.
type Dish struct {
	ID         int64  `db:"id"`
	Name       string `db:"name"`
	Price      int64  `db:"price"`
	CategoryID *int64 `db:"category_id"`
}

func (d Dish) String() string {
	category := "none"
	if d.CategoryID != nil {
		category = strconv.FormatInt(*d.CategoryID, 10)
	}
	return fmt.Sprintf("Dish(id=%d, name=%s, price=%d, category=%s)", d.ID, d.Name, d.Price, category)
}

type Client struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Phone string `db:"phone"`
}

func (c Client) String() string {
	return fmt.Sprintf("Client(id=%d, name=%s, phone=%s)", c.ID, c.Name, c.Phone)
}

// Order records one dish ordered by one client on a day
type Order struct {
	ID       int64 `db:"id"`
	ClientID int64 `db:"client_id"`
	DishID   int64 `db:"dish_id"`
	Date     Date  `db:"order_date"`
}

func (o Order) String() string {
	return fmt.Sprintf("Order(id=%d, client=%d, dish=%d, date=%s)", o.ID, o.ClientID, o.DishID, o.Date)
}

// OrderDetails is an order joined with the names it references
type OrderDetails struct {
	Order
	ClientName string `db:"client_name"`
	DishName   string `db:"dish_name"`
}

func (o OrderDetails) String() string {
	return fmt.Sprintf("Order %d: Client %s, Dish %s, Date %s", o.ID, o.ClientName, o.DishName, o.Date)
}

// Snapshot holds the contents of every table
type Snapshot struct {
	Categories []Category
	Dishes     []Dish
	Clients    []Client
	Orders     []OrderDetails
}

// CategoryPatch lists the category fields to change; nil fields are kept
type CategoryPatch struct {
	Name *string
}

func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil
}

type DishPatch struct {
	Name       *string
	Price      *int64
	CategoryID *int64
}

func (p DishPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.CategoryID == nil
}

type ClientPatch struct {
	Name  *string
	Phone *string
}

func (p ClientPatch) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil
}

type OrderPatch struct {
	ClientID *int64
	DishID   *int64
	Date     *Date
}

func (p OrderPatch) IsEmpty() bool {
	return p.ClientID == nil && p.DishID == nil && p.Date == nil
}
