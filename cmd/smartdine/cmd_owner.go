package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/itzabhishekgour/smartdine/internal/api"
	"github.com/itzabhishekgour/smartdine/internal/owner"
	"github.com/itzabhishekgour/smartdine/internal/poller"
	"github.com/itzabhishekgour/smartdine/internal/session"
)

var ownerCmd = &cobra.Command{
	Use:   "owner",
	Short: "Owner-side commands: login, tables, menu, order board",
}

func init() {
	ownerCmd.AddCommand(loginCmd)
	ownerCmd.AddCommand(registerCmd)
	ownerCmd.AddCommand(logoutCmd)
	ownerCmd.AddCommand(ordersCmd)
	ownerCmd.AddCommand(advanceCmd)
	ownerCmd.AddCommand(billCmd)
	ownerCmd.AddCommand(tableCmd)
	ownerCmd.AddCommand(categoryCmd)
	ownerCmd.AddCommand(ownerMenuCmd)
	ownerCmd.AddCommand(profileCmd)

	loginCmd.Flags().StringVar(&emailFlag, "email", "", "owner email")
	loginCmd.Flags().StringVar(&passwordFlag, "password", "", "owner password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringVar(&nameFlag, "name", "", "owner name")
	registerCmd.Flags().StringVar(&emailFlag, "email", "", "owner email")
	registerCmd.Flags().StringVar(&passwordFlag, "password", "", "owner password")
	registerCmd.MarkFlagRequired("name")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")

	ordersCmd.Flags().StringVar(&rangeFlag, "range", "all", "all, today, yesterday or month")
	ordersCmd.Flags().StringVar(&dateFlag, "date", "", "exact day, YYYY-MM-DD (overrides --range)")
	ordersCmd.Flags().StringVar(&searchByFlag, "search-by", "orderId", "orderId, tableNumber, customerName or invoiceNumber")
	ordersCmd.Flags().StringVar(&searchFlag, "search", "", "search text")
	ordersCmd.Flags().BoolVar(&watchOrdersFlag, "watch", false, "keep the board refreshing")

	detailsCmd.Flags().StringVar(&ownerNameFlag, "owner-name", "", "owner name")
	detailsCmd.Flags().StringVar(&restaurantFlag, "restaurant", "", "restaurant name")
	detailsCmd.Flags().StringVar(&gstinFlag, "gstin", "", "restaurant GSTIN")
	detailsCmd.Flags().StringVar(&addressFlag, "address", "", "restaurant address")
	detailsCmd.Flags().StringVar(&merchantFlag, "merchant-id", "", "payment gateway merchant id")
	detailsCmd.Flags().StringVar(&saltKeyFlag, "salt-key", "", "payment gateway salt key")
	detailsCmd.Flags().StringVar(&saltIndexFlag, "salt-index", "", "payment gateway salt index")
	ownerCmd.AddCommand(detailsCmd)
}

var (
	emailFlag       string
	passwordFlag    string
	rangeFlag       string
	dateFlag        string
	searchByFlag    string
	searchFlag      string
	watchOrdersFlag bool

	ownerNameFlag  string
	restaurantFlag string
	gstinFlag      string
	addressFlag    string
	merchantFlag   string
	saltKeyFlag    string
	saltIndexFlag  string
)

// smartdine owner login
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the owner token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		token, err := a.client.Login(cmd.Context(), api.Credentials{Email: emailFlag, Password: passwordFlag})
		if err != nil {
			return err
		}
		if err := a.store.Set(session.KeyOwnerToken, token); err != nil {
			return err
		}
		fmt.Println("Logged in.")
		return nil
	},
}

// smartdine owner register
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new owner account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		token, err := a.client.Register(cmd.Context(), api.Credentials{Name: nameFlag, Email: emailFlag, Password: passwordFlag})
		if err != nil {
			return err
		}
		if err := a.store.Set(session.KeyOwnerToken, token); err != nil {
			return err
		}
		fmt.Println("Registered and logged in.")
		return nil
	},
}

// smartdine owner logout
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored owner token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		if err := a.store.Delete(session.KeyOwnerToken); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

// smartdine owner orders — the order board, newest first. --watch keeps it
// refreshing on the poll interval like the dashboard does.
var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Show the order board",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}

		filter := owner.Filter{
			Range:    owner.RangeFilter(rangeFlag),
			SearchBy: owner.SearchField(searchByFlag),
			Search:   searchFlag,
		}
		if dateFlag != "" {
			d, err := time.ParseInLocation("2006-01-02", dateFlag, time.Local)
			if err != nil {
				return fmt.Errorf("bad --date %q: %w", dateFlag, err)
			}
			filter.Date = d
			filter.Range = ""
		}

		showBoard := func(ctx context.Context) error {
			orders, err := a.board.Fetch(ctx)
			if err != nil {
				return err
			}
			orders = owner.Apply(orders, filter, time.Now())
			if len(orders) == 0 {
				fmt.Println("No orders.")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ORDER\tTABLE\tCUSTOMER\tINVOICE\tSTATUS\tTOTAL\tWHEN")
			for _, o := range orders {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
					o.OrderID, o.TableNumber, o.CustomerName, o.InvoiceNumber,
					o.Status, o.TotalAmount.StringFixed(2), o.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		}

		if watchOrdersFlag {
			poller.New(a.cfg.PollInterval).Run(cmd.Context(), func(ctx context.Context) {
				if err := showBoard(ctx); err != nil {
					log.Printf("ERROR: refresh order board: %v", err)
				}
			})
			return nil
		}
		return showBoard(cmd.Context())
	},
}

// smartdine owner details — update the restaurant profile. Unset flags
// keep their current values.
var detailsCmd = &cobra.Command{
	Use:   "details",
	Short: "Update owner and restaurant details",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		d, err := a.client.OwnerDetails(ctx)
		if err != nil {
			return err
		}
		set := func(dst *string, v string) {
			if v != "" {
				*dst = v
			}
		}
		set(&d.OwnerName, ownerNameFlag)
		set(&d.RestaurantName, restaurantFlag)
		set(&d.GSTIN, gstinFlag)
		set(&d.Address, addressFlag)
		set(&d.MerchantID, merchantFlag)
		set(&d.SaltKey, saltKeyFlag)
		set(&d.SaltIndex, saltIndexFlag)
		if err := a.client.UpdateOwnerDetails(ctx, d); err != nil {
			return err
		}
		fmt.Println("Details updated.")
		return nil
	},
}

// smartdine owner advance <order-id>
var advanceCmd = &cobra.Command{
	Use:   "advance <order-id>",
	Short: "Move an order to its next status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		orders, err := a.board.Fetch(ctx)
		if err != nil {
			return err
		}
		for _, o := range orders {
			if o.OrderID == args[0] {
				next, err := a.board.Advance(ctx, o)
				if err != nil {
					return err
				}
				fmt.Printf("Order %s -> %s\n", o.OrderID, next)
				return nil
			}
		}
		return fmt.Errorf("no order %s on the board", args[0])
	},
}

// smartdine owner bill <order-id>
var billCmd = &cobra.Command{
	Use:   "bill <order-id>",
	Short: "Print the bill for an order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		bill, err := a.board.BillForOrder(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Print(bill.Render())
		return nil
	},
}

// smartdine owner table list|add|renumber|toggle-block|delete
var tableCmd = &cobra.Command{
	Use:   "table <list|add|renumber|toggle-block|delete> [args]",
	Short: "Manage restaurant tables",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		switch args[0] {
		case "list":
			tables, err := a.client.ListTables(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tNUMBER\tBLOCKED")
			for _, t := range tables {
				fmt.Fprintf(w, "%d\t%d\t%t\n", t.ID, t.TableNumber, t.Blocked)
			}
			return w.Flush()
		case "add":
			n, err := intArg(args, 1, "table number")
			if err != nil {
				return err
			}
			return a.client.AddTable(ctx, n)
		case "renumber":
			id, err := int64Arg(args, 1, "table id")
			if err != nil {
				return err
			}
			n, err := intArg(args, 2, "new table number")
			if err != nil {
				return err
			}
			return a.client.UpdateTable(ctx, id, n)
		case "toggle-block":
			id, err := int64Arg(args, 1, "table id")
			if err != nil {
				return err
			}
			return a.client.ToggleBlockTable(ctx, id)
		case "delete":
			id, err := int64Arg(args, 1, "table id")
			if err != nil {
				return err
			}
			return a.client.DeleteTable(ctx, id)
		default:
			return fmt.Errorf("unknown table action %q", args[0])
		}
	},
}

// smartdine owner category list|add|rename|delete
var categoryCmd = &cobra.Command{
	Use:   "category <list|add|rename|delete> [args]",
	Short: "Manage menu categories",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		switch args[0] {
		case "list":
			cats, err := a.client.ListCategories(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME")
			for _, c := range cats {
				fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Name)
			}
			return w.Flush()
		case "add":
			if len(args) < 2 {
				return fmt.Errorf("category add needs a name")
			}
			return a.client.AddCategory(ctx, args[1])
		case "rename":
			id, err := int64Arg(args, 1, "category id")
			if err != nil {
				return err
			}
			if len(args) < 3 {
				return fmt.Errorf("category rename needs a new name")
			}
			return a.client.UpdateCategory(ctx, id, args[2])
		case "delete":
			id, err := int64Arg(args, 1, "category id")
			if err != nil {
				return err
			}
			return a.client.DeleteCategory(ctx, id)
		default:
			return fmt.Errorf("unknown category action %q", args[0])
		}
	},
}

// smartdine owner menu list|add|update|delete
var ownerMenuCmd = &cobra.Command{
	Use:   "menu <list|add|update|delete> [args]",
	Short: "Manage menu items",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		switch args[0] {
		case "list":
			catID, err := int64Arg(args, 1, "category id")
			if err != nil {
				return err
			}
			items, err := a.client.MenuByCategory(ctx, catID)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRICE\tTYPE")
			for _, it := range items {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", it.ID, it.Name, it.Price.StringFixed(2), it.FoodType)
			}
			return w.Flush()
		case "add":
			// name price category-id food-type [description] [image-path]
			if len(args) < 5 {
				return fmt.Errorf("menu add needs: name price category-id food-type [description] [image-path]")
			}
			price, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("bad price %q: %w", args[2], err)
			}
			catID, err := int64Arg(args, 3, "category id")
			if err != nil {
				return err
			}
			item := api.NewMenuItem{
				Name:       args[1],
				Price:      price,
				CategoryID: catID,
				FoodType:   args[4],
			}
			if len(args) > 5 {
				item.Description = args[5]
			}
			if len(args) > 6 {
				f, err := os.Open(args[6])
				if err != nil {
					return err
				}
				defer f.Close()
				item.ImageName = args[6]
				item.Image = f
			}
			return a.client.AddMenuItem(ctx, item)
		case "update":
			// id name price category-id [description]
			if len(args) < 5 {
				return fmt.Errorf("menu update needs: id name price category-id [description]")
			}
			id, err := int64Arg(args, 1, "menu item id")
			if err != nil {
				return err
			}
			price, err := decimal.NewFromString(args[3])
			if err != nil {
				return fmt.Errorf("bad price %q: %w", args[3], err)
			}
			catID, err := int64Arg(args, 4, "category id")
			if err != nil {
				return err
			}
			desc := ""
			if len(args) > 5 {
				desc = args[5]
			}
			return a.client.UpdateMenuItem(ctx, id, args[2], price, catID, desc)
		case "delete":
			id, err := int64Arg(args, 1, "menu item id")
			if err != nil {
				return err
			}
			return a.client.DeleteMenuItem(ctx, id)
		default:
			return fmt.Errorf("unknown menu action %q", args[0])
		}
	},
}

// smartdine owner profile — who is logged in, plus restaurant details.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the owner profile and restaurant details",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		p, err := a.client.OwnerProfile(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s>\n%s\n", p.OwnerName, p.Email, p.RestaurantName)

		d, err := a.client.OwnerDetails(ctx)
		if err != nil {
			return nil
		}
		if d.Address != "" {
			fmt.Println(d.Address)
		}
		if d.GSTIN != "" {
			fmt.Printf("GSTIN: %s\n", d.GSTIN)
		}
		return nil
	},
}

func intArg(args []string, i int, what string) (int, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("missing %s", what)
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("bad %s %q: %w", what, args[i], err)
	}
	return n, nil
}

func int64Arg(args []string, i int, what string) (int64, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("missing %s", what)
	}
	n, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q: %w", what, args[i], err)
	}
	return n, nil
}
