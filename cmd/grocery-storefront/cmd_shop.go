package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/errors"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/models"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/utils/response"
	"github.com/spf13/cobra"
)

const shopHelp = `Commands:
  list              show products
  add ID            add one unit to the cart
  inc ID [N]        increase quantity (default 1)
  dec ID [N]        decrease quantity (default 1)
  remove ID         drop a line from the cart
  clear             empty the cart
  cart              show the cart and totals
  sync              reload the cart from the backend
  help              show this help
  quit              leave the shop`

// shopCmd runs the interactive storefront
var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Browse products and fill a cart interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {

			if a.cfg.Metrics.Addr != "" {
				metricsCtx, cancel := context.WithCancel(ctx)
				defer cancel()

				go func() {
					if err := metrics.Serve(metricsCtx, a.cfg.Metrics.Addr); err != nil {
						slog.Error("❌ Failed to serve metrics", slog.String("error", err.Error()))
					}
				}()
			}

			return runShop(ctx, a, cmd.InOrStdin(), cmd.OutOrStdout())
		})
	},
}

// runShop reads one command per line until quit or end of input. A failed
// command prints its error and the loop carries on.
func runShop(ctx context.Context, a *app, in io.Reader, out io.Writer) error {

	session := a.sessions.Current()
	if session == nil {
		return errors.AuthError("Not logged in").WithDetail("run 'grocery-storefront login' first")
	}

	fmt.Fprintf(out, "Welcome to the store, %s! Type 'help' for commands.\n", session.User.Name)

	if err := showProducts(ctx, a, out); err != nil {
		response.Error(out, err)
	}

	if a.cart.Synced() {
		if err := a.cart.Refresh(ctx, a.catalog.Find); err != nil {
			response.Error(out, err)
		}
	}

	scanner := bufio.NewScanner(in)

	for {
		if a.sessions.Current() == nil {
			fmt.Fprintln(out, "Your session has ended. Please log in again.")
			return nil
		}

		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "quit" || fields[0] == "exit" {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}

		if err := dispatch(ctx, a, out, fields[0], fields[1:]); err != nil {
			response.Error(out, err)
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

func dispatch(ctx context.Context, a *app, out io.Writer, command string, args []string) error {

	switch command {
	case "help":
		fmt.Fprintln(out, shopHelp)
		return nil

	case "list":
		return showProducts(ctx, a, out)

	case "add":
		if len(args) != 1 {
			return errors.ValidationError("Usage: add ID")
		}

		product, ok := a.catalog.Find(models.ID(args[0]))
		if !ok {
			return errors.NotFoundError("Product not found").WithDetail("id " + args[0])
		}

		if err := a.cart.Add(ctx, product); err != nil {
			return err
		}

		fmt.Fprintf(out, "Added %s to your cart.\n", product.Name)
		return nil

	case "inc", "dec":
		if len(args) < 1 || len(args) > 2 {
			return errors.ValidationError(fmt.Sprintf("Usage: %s ID [N]", command))
		}

		n := 1
		if len(args) == 2 {
			parsed, err := strconv.Atoi(args[1])
			if err != nil || parsed < 1 {
				return errors.AddValidationError("N", "must be a positive whole number")
			}
			n = parsed
		}

		if command == "dec" {
			n = -n
		}

		id := models.ID(args[0])
		if a.cart.Cart().Quantity(id) == 0 {
			return errors.NotFoundError("Product is not in your cart").WithDetail("id " + args[0])
		}

		return a.cart.UpdateQuantity(ctx, id, n)

	case "remove":
		if len(args) != 1 {
			return errors.ValidationError("Usage: remove ID")
		}

		return a.cart.Remove(ctx, models.ID(args[0]))

	case "clear":
		return a.cart.Empty(ctx)

	case "cart":
		view := newCartView(a.cart.Cart())
		return render(out, view, func(w io.Writer) {
			printCart(w, view)
		})

	case "sync":
		if !a.cart.Synced() {
			return errors.ValidationError("Cart sync is disabled").WithDetail("set CART_SYNC=true")
		}

		return a.cart.Refresh(ctx, a.catalog.Find)

	default:
		return errors.ValidationError(fmt.Sprintf("Unknown command %q", command)).WithDetail("type 'help'")
	}
}

func showProducts(ctx context.Context, a *app, out io.Writer) error {

	products, err := a.catalog.List(ctx)
	if err != nil {
		return err
	}

	return render(out, products, func(w io.Writer) {
		printProducts(w, products)
	})
}
