package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/models"
	service "github.com/aaravmahajanofficial/grocery-storefront/internal/services"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/utils/response"
	"github.com/shopspring/decimal"
)

type cartView struct {
	Lines    []models.CartLine `json:"lines"`
	Subtotal decimal.Decimal   `json:"subtotal"`
	Shipping decimal.Decimal   `json:"shipping"`
	Total    decimal.Decimal   `json:"total"`
}

// render writes v as JSON when --output json was given, otherwise calls text.
func render(w io.Writer, v any, text func(io.Writer)) error {
	if output == "json" {
		return response.WriteJson(w, v)
	}

	text(w)
	return nil
}

func printProducts(w io.Writer, products []models.Product) {

	if len(products) == 0 {
		fmt.Fprintln(w, "No products available.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tIMAGE")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Price.StringFixed(2), p.Image)
	}
	_ = tw.Flush()
}

func newCartView(cart *service.Cart) cartView {
	return cartView{
		Lines:    cart.Lines(),
		Subtotal: cart.Subtotal(),
		Shipping: cart.Shipping(),
		Total:    cart.Total(),
	}
}

func printCart(w io.Writer, view cartView) {

	if len(view.Lines) == 0 {
		fmt.Fprintln(w, "Your cart is empty.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tQTY\tPRICE\tLINE TOTAL")
		for _, l := range view.Lines {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
				l.Product.ID, l.Product.Name, l.Quantity, l.Product.Price.StringFixed(2), l.LineTotal().StringFixed(2))
		}
		_ = tw.Flush()
	}

	fmt.Fprintf(w, "Subtotal: %s\n", view.Subtotal.StringFixed(2))
	fmt.Fprintf(w, "Shipping: %s\n", view.Shipping.StringFixed(2))
	fmt.Fprintf(w, "Total:    %s\n", view.Total.StringFixed(2))
}

func printSession(w io.Writer, s *models.Session) {

	if s == nil {
		fmt.Fprintln(w, "Not logged in.")
		return
	}

	role := "customer"
	if s.IsAdmin() {
		role = "admin"
	}

	fmt.Fprintf(w, "Logged in as %s (%s)\n", s.User.Name, role)
}

// prompt prints question and reads one line of input.
func prompt(in *bufio.Reader, out io.Writer, question string) (string, error) {

	fmt.Fprint(out, question)

	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}

	return strings.TrimSpace(line), nil
}
