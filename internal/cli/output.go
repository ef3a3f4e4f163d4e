package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/eleven-am/bistro/internal/store"
)

// kind names an entity in messages
type kind struct {
	title  string
	plural string
}

var (
	categoryKind = kind{title: "Category", plural: "categories"}
	dishKind     = kind{title: "Dish", plural: "dishes"}
	clientKind   = kind{title: "Client", plural: "clients"}
	orderKind    = kind{title: "Order", plural: "orders"}
)

func (k kind) singular() string {
	return strings.ToLower(k.title)
}

type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w}
}

func (p *printer) line(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) created(k kind, entity fmt.Stringer) {
	p.line("%s created successfully: %s", k.title, entity)
}

func (p *printer) updated(k kind, entity fmt.Stringer) {
	p.line("%s updated successfully: %s", k.title, entity)
}

func (p *printer) deleted(k kind, id int64) {
	p.line("%s %d deleted successfully.", k.title, id)
}

func (p *printer) notFound(k kind, id int64) {
	p.line("%s with ID %d not found.", k.title, id)
}

func (p *printer) empty(k kind) {
	p.line("No %s registered.", k.plural)
}

func (p *printer) invalidID() {
	p.line("Invalid ID. Please enter a whole number.")
}

func (p *printer) failed(err error) {
	p.line("Error: %v", err)
}

func printAll[T fmt.Stringer](p *printer, k kind, records []T) {
	if len(records) == 0 {
		p.empty(k)
		return
	}
	for _, record := range records {
		p.line("%s", record)
	}
}

func (p *printer) snapshot(snapshot store.Snapshot) {
	p.line("Categories:")
	printAll(p, categoryKind, snapshot.Categories)
	p.line("Dishes:")
	printAll(p, dishKind, snapshot.Dishes)
	p.line("Clients:")
	printAll(p, clientKind, snapshot.Clients)
	p.line("Orders:")
	printAll(p, orderKind, snapshot.Orders)
}
