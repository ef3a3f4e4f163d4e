package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/eleven-am/bistro/internal/logger"
	"github.com/eleven-am/bistro/internal/store"
	"github.com/spf13/cobra"
)

func newMenuCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Start the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withRestaurant(cmd, func(ctx context.Context, r store.Restaurant, out *printer) error {
				return newMenu(r, cmd.InOrStdin(), out).run(ctx)
			})
		},
	}
}

// menu is the interactive loop. Every answer is one input line; end of input ends the session.
type menu struct {
	store store.Restaurant
	in    *bufio.Scanner
	out   *printer
}

func newMenu(r store.Restaurant, in io.Reader, out *printer) *menu {
	return &menu{store: r, in: bufio.NewScanner(in), out: out}
}

// errEndOfInput stops the loop when the reader is exhausted
var errEndOfInput = errors.New("end of input")

func (m *menu) ask(prompt string) (string, error) {
	fmt.Fprint(m.out.w, prompt)
	if !m.in.Scan() {
		fmt.Fprintln(m.out.w)
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", errEndOfInput
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *menu) run(ctx context.Context) error {
	for {
		m.out.line("--- MAIN MENU ---")
		m.out.line("1. Categories")
		m.out.line("2. Dishes")
		m.out.line("3. Clients")
		m.out.line("4. Orders")
		m.out.line("5. List all tables")
		m.out.line("0. Exit")

		choice, err := m.ask("Choose an option: ")
		if err != nil {
			return m.finish(err)
		}

		switch choice {
		case "1":
			err = m.categories(ctx)
		case "2":
			err = m.dishes(ctx)
		case "3":
			err = m.clients(ctx)
		case "4":
			err = m.orders(ctx)
		case "5":
			err = m.dump(ctx)
		case "0":
			m.out.line("Goodbye!")
			return nil
		default:
			m.out.line("Invalid option.")
		}

		if err != nil {
			if errors.Is(err, errEndOfInput) {
				return m.finish(err)
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.CLI().Debug("menu operation failed", "error", err)
			m.out.failed(err)
		}
	}
}

func (m *menu) finish(err error) error {
	if errors.Is(err, errEndOfInput) {
		return nil
	}
	return err
}

func (m *menu) submenu(k kind) (string, error) {
	m.out.line("--- %s MENU ---", strings.ToUpper(k.plural))
	m.out.line("1. Create %s", k.singular())
	m.out.line("2. Read %s", k.singular())
	m.out.line("3. Update %s", k.singular())
	m.out.line("4. Delete %s", k.singular())
	m.out.line("5. List %s", k.plural)
	return m.ask("Choose an option: ")
}

// askID returns ok=false after printing a message when the answer is not an id
func (m *menu) askID(prompt string) (int64, bool, error) {
	answer, err := m.ask(prompt)
	if err != nil {
		return 0, false, err
	}
	id, err := parseID(answer)
	if err != nil {
		m.out.invalidID()
		return 0, false, nil
	}
	return id, true, nil
}

// askOptional returns nil for a blank answer
func (m *menu) askOptional(prompt string) (*string, error) {
	answer, err := m.ask(prompt)
	if err != nil || answer == "" {
		return nil, err
	}
	return &answer, nil
}

func (m *menu) askOptionalID(prompt string) (*int64, bool, error) {
	answer, err := m.askOptional(prompt)
	if err != nil || answer == nil {
		return nil, true, err
	}
	id, err := parseID(*answer)
	if err != nil {
		m.out.invalidID()
		return nil, false, nil
	}
	return &id, true, nil
}

func (m *menu) askOptionalAmount(prompt string) (*int64, bool, error) {
	answer, err := m.askOptional(prompt)
	if err != nil || answer == nil {
		return nil, true, err
	}
	amount, err := parseAmount(*answer)
	if err != nil {
		m.out.line("Invalid price. Please enter a whole number.")
		return nil, false, nil
	}
	return &amount, true, nil
}

func (m *menu) askOptionalDate(prompt string) (*store.Date, bool, error) {
	answer, err := m.askOptional(prompt)
	if err != nil || answer == nil {
		return nil, true, err
	}
	date, err := store.ParseDate(*answer)
	if err != nil {
		m.out.line("Invalid date. Please use YYYY-MM-DD.")
		return nil, false, nil
	}
	return &date, true, nil
}

func (m *menu) dump(ctx context.Context) error {
	snapshot, err := m.store.Snapshot(ctx)
	if err != nil {
		return err
	}
	m.out.snapshot(snapshot)
	return nil
}

func (m *menu) show(k kind, record fmt.Stringer, found bool, id int64) {
	if !found {
		m.out.notFound(k, id)
		return
	}
	m.out.line("%s", record)
}

func (m *menu) removed(k kind, deleted bool, id int64) {
	if !deleted {
		m.out.notFound(k, id)
		return
	}
	m.out.deleted(k, id)
}

func (m *menu) changed(k kind, record fmt.Stringer, found bool, id int64) {
	if !found {
		m.out.notFound(k, id)
		return
	}
	m.out.updated(k, record)
}
