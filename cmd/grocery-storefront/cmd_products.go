package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/errors"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/models"
	service "github.com/aaravmahajanofficial/grocery-storefront/internal/services"
	"github.com/spf13/cobra"
)

var (
	productName      string
	productPrice     string
	productImage     string
	productImageFile string
	deleteYes        bool
)

// productsCmd groups catalog commands
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse and manage the product catalog",
	Long: `Browse and manage the product catalog.

Available subcommands:
  list   - Show every product
  create - Add a product (admin)
  update - Edit a product (admin)
  delete - Remove a product (admin)
  upload - Upload a product image (admin)`,
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every product",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {

			products, err := a.catalog.List(ctx)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), products, func(w io.Writer) {
				printProducts(w, products)
			})
		})
	},
}

var productsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a product (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {

			image, err := resolveImage(ctx, a.catalog, productImage)
			if err != nil {
				return err
			}

			draft, err := models.NewProductDraft(productName, productPrice, image)
			if err != nil {
				return err
			}

			product, err := a.catalog.Create(ctx, draft)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), product, func(w io.Writer) {
				fmt.Fprintf(w, "Created product %s (%s).\n", product.Name, product.ID)
			})
		})
	},
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Edit a product (admin)",
	Long: `Edit a product. Fields that are not given keep their current value.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {

			id := models.ID(args[0])

			if _, err := a.catalog.List(ctx); err != nil {
				return err
			}

			current, ok := a.catalog.Find(id)
			if !ok {
				return errors.NotFoundError("Product not found").WithDetail("id " + id.String())
			}

			name := current.Name
			if cmd.Flags().Changed("name") {
				name = productName
			}

			price := current.Price.String()
			if cmd.Flags().Changed("price") {
				price = productPrice
			}

			image := current.Image
			if cmd.Flags().Changed("image") {
				image = productImage
			}

			image, err := resolveImage(ctx, a.catalog, image)
			if err != nil {
				return err
			}

			draft, err := models.NewProductDraft(name, price, image)
			if err != nil {
				return err
			}

			product, err := a.catalog.Update(ctx, id, draft)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), product, func(w io.Writer) {
				fmt.Fprintf(w, "Updated product %s (%s).\n", product.Name, product.ID)
			})
		})
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Remove a product (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {

			id := models.ID(args[0])

			if _, err := a.catalog.List(ctx); err != nil {
				return err
			}

			if err := a.catalog.Delete(ctx, id, confirmDelete(cmd, deleteYes)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted product %s.\n", id)
			return nil
		})
	},
}

var productsUploadCmd = &cobra.Command{
	Use:   "upload FILE",
	Short: "Upload a product image (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {

			url, err := uploadFile(ctx, a.catalog, args[0])
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), map[string]string{"url": url}, func(w io.Writer) {
				fmt.Fprintln(w, url)
			})
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{productsCreateCmd, productsUpdateCmd} {
		c.Flags().StringVarP(&productName, "name", "n", "", "Product name")
		c.Flags().StringVarP(&productPrice, "price", "p", "", "Product price, e.g. 3.99")
		c.Flags().StringVar(&productImage, "image", "", "Image URL")
		c.Flags().StringVar(&productImageFile, "image-file", "", "Upload this file and use it as the image")
	}
	_ = productsCreateCmd.MarkFlagRequired("name")
	_ = productsCreateCmd.MarkFlagRequired("price")

	productsDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")

	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsCreateCmd)
	productsCmd.AddCommand(productsUpdateCmd)
	productsCmd.AddCommand(productsDeleteCmd)
	productsCmd.AddCommand(productsUploadCmd)
}

// resolveImage uploads --image-file when given and returns its URL, otherwise
// image unchanged.
func resolveImage(ctx context.Context, catalog *service.CatalogService, image string) (string, error) {
	if productImageFile == "" {
		return image, nil
	}

	return uploadFile(ctx, catalog, productImageFile)
}

func uploadFile(ctx context.Context, catalog *service.CatalogService, path string) (string, error) {

	f, err := os.Open(path)
	if err != nil {
		return "", errors.ValidationError("Cannot read image file").WithDetail(path).WithError(err)
	}
	defer f.Close()

	return catalog.UploadImage(ctx, path, f)
}

func confirmDelete(cmd *cobra.Command, yes bool) service.ConfirmFunc {
	return func(p models.Product) bool {
		if yes {
			return true
		}

		answer, err := prompt(bufio.NewReader(cmd.InOrStdin()), cmd.ErrOrStderr(),
			fmt.Sprintf("Delete %q (id %s)? [y/N]: ", p.Name, p.ID))
		if err != nil {
			return false
		}

		answer = strings.ToLower(answer)
		return answer == "y" || answer == "yes"
	}
}
