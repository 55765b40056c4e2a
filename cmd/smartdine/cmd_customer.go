package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/itzabhishekgour/smartdine/internal/api"
	"github.com/itzabhishekgour/smartdine/internal/cart"
	"github.com/itzabhishekgour/smartdine/internal/order"
	"github.com/itzabhishekgour/smartdine/internal/poller"
	"github.com/itzabhishekgour/smartdine/internal/push"
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Customer-side commands: menu, order, status, history",
}

func init() {
	customerCmd.AddCommand(menuCmd)
	customerCmd.AddCommand(orderCmd)
	customerCmd.AddCommand(statusCmd)
	customerCmd.AddCommand(historyCmd)

	menuCmd.Flags().StringVar(&tableFlag, "table", "", "table id from the QR code")
	menuCmd.MarkFlagRequired("table")

	orderCmd.Flags().StringVar(&tableFlag, "table", "", "table id from the QR code")
	orderCmd.Flags().StringArrayVar(&itemFlags, "item", nil, "menu item to order, as id or id:qty (repeatable)")
	orderCmd.Flags().StringVar(&payFlag, "pay", "offline", "payment mode: online or offline")
	orderCmd.Flags().StringVar(&nameFlag, "name", "", "customer name (offline orders)")
	orderCmd.Flags().StringVar(&phoneFlag, "phone", "", "phone number (offline orders)")
	orderCmd.MarkFlagRequired("table")
	orderCmd.MarkFlagRequired("item")

	statusCmd.Flags().StringVar(&tableFlag, "table", "", "table id from the QR code")
	statusCmd.Flags().BoolVar(&watchFlag, "watch", false, "keep refreshing until the order is served")
	statusCmd.MarkFlagRequired("table")

	historyCmd.Flags().StringVar(&tableFlag, "table", "", "table id from the QR code")
	historyCmd.MarkFlagRequired("table")
}

var (
	tableFlag string
	itemFlags []string
	payFlag   string
	nameFlag  string
	phoneFlag string
	watchFlag bool
)

// smartdine customer menu — the menu behind the table's QR code.
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Show the menu for a table",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		m, err := a.client.Menu(cmd.Context(), tableFlag)
		if err != nil {
			if errors.Is(err, api.ErrTableBlocked) {
				return fmt.Errorf("table %s is not accepting orders right now", tableFlag)
			}
			return err
		}

		fmt.Printf("%s — table %d\n\n", m.RestaurantName, m.TableNumber)
		categories := make([]string, 0, len(m.Menu))
		for c := range m.Menu {
			categories = append(categories, c)
		}
		sort.Strings(categories)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		for _, c := range categories {
			fmt.Fprintf(w, "%s\t\t\n", strings.ToUpper(c))
			for _, it := range m.Menu[c] {
				fmt.Fprintf(w, "  %d\t%s\t%s\n", it.ID, it.Name, it.Price.StringFixed(2))
			}
		}
		return w.Flush()
	},
}

// parseItems turns repeated --item id[:qty] flags into a cart, pricing each
// line from the table's menu.
func parseItems(m *api.Menu, specs []string) (*cart.Cart, error) {
	byID := map[int64]api.MenuItem{}
	for _, items := range m.Menu {
		for _, it := range items {
			byID[it.ID] = it
		}
	}

	c := cart.New()
	for _, spec := range specs {
		idPart, qtyPart, hasQty := strings.Cut(spec, ":")
		id, err := strconv.ParseInt(idPart, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad --item %q: %w", spec, err)
		}
		qty := 1
		if hasQty {
			qty, err = strconv.Atoi(qtyPart)
			if err != nil || qty < 1 {
				return nil, fmt.Errorf("bad --item quantity in %q", spec)
			}
		}
		it, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("menu has no item %d", id)
		}
		for i := 0; i < qty; i++ {
			c.Add(it.ID, it.Name, it.Price)
		}
	}
	return c, nil
}

// smartdine customer order — build a cart and check out.
var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Place an order for a table",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		m, err := a.client.Menu(ctx, tableFlag)
		if err != nil {
			if errors.Is(err, api.ErrTableBlocked) {
				return fmt.Errorf("table %s is not accepting orders right now", tableFlag)
			}
			return err
		}
		c, err := parseItems(m, itemFlags)
		if err != nil {
			return err
		}

		totals := c.Totals()
		fmt.Printf("Total %s + GST %s = %s\n",
			totals.Total.StringFixed(2), totals.GST.StringFixed(2), totals.GrandTotal.StringFixed(0))

		var mode order.PaymentMode
		switch strings.ToLower(payFlag) {
		case "online":
			mode = order.PaymentOnline
		case "offline":
			mode = order.PaymentOffline
		default:
			return fmt.Errorf("unknown --pay mode %q (want online or offline)", payFlag)
		}

		ident, err := a.identity.Current()
		if err != nil {
			return err
		}
		draft, err := order.NewDraft(tableFlag, c, mode, ident, nameFlag, phoneFlag)
		if err != nil {
			return err
		}

		if mode == order.PaymentOffline {
			res, err := a.checkout.PlaceOffline(ctx, draft)
			if err != nil {
				return err
			}
			fmt.Printf("Order placed: %s\n", res.OrderID)
			fmt.Printf("Follow it with: smartdine customer status --table %s --watch\n", tableFlag)
			return nil
		}

		init, err := a.checkout.InitiateOnline(ctx, draft)
		if err != nil {
			return err
		}
		fmt.Printf("Provisional order %s, amount %d paise.\n", init.OrderID, init.Amount)
		fmt.Printf("Pay here: %s\n\n", init.RedirectURL)
		fmt.Printf("Start the return listener before paying: smartdine return-server\n")
		return nil
	},
}

func printStatus(s *api.OrderStatus) {
	idx := order.ProgressIndex(s.Status)
	var steps []string
	for i, st := range order.Sequence {
		if i <= idx {
			steps = append(steps, "["+string(st)+"]")
		} else {
			steps = append(steps, " "+string(st)+" ")
		}
	}
	fmt.Printf("Order %s  %s\n", s.OrderID, strings.Join(steps, " > "))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	for _, it := range s.Items {
		fmt.Fprintf(w, "  %s\tx%d\t%s\n", it.Name, it.Quantity, it.Price.StringFixed(2))
	}
	w.Flush()

	amounts := order.SplitInclusiveTotal(s.TotalAmount)
	fmt.Printf("  Subtotal %s  Tax %s  Total %s (%s)\n",
		amounts.Subtotal.StringFixed(2), amounts.Tax.StringFixed(2), amounts.Total.StringFixed(2), s.PaymentMethod)
	if s.TransactionID != "" {
		fmt.Printf("  Txn %s\n", s.TransactionID)
	}
}

// smartdine customer status — the live order view. --watch keeps the view
// fresh: a push subscription when the backend offers one, a steady poll
// otherwise.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current order for a table",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		show := func(ctx context.Context) {
			s, err := a.client.OrderStatus(ctx, tableFlag)
			if err != nil {
				log.Printf("ERROR: fetch order status: %v", err)
				return
			}
			printStatus(s)
		}

		if !watchFlag {
			s, err := a.client.OrderStatus(ctx, tableFlag)
			if err != nil {
				return err
			}
			printStatus(s)
			return nil
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		show(ctx)
		sub := push.NewSubscriber(push.StatusURL(a.cfg.APIBaseURL, tableFlag))
		err = sub.Listen(ctx, func(push.Event) { show(ctx) })
		if err != nil {
			// No push channel; fall back to the steady poll.
			log.Printf("ERROR: status stream unavailable, polling every %s: %v", a.cfg.PollInterval, err)
			poller.New(a.cfg.PollInterval).Run(ctx, show)
		}
		return nil
	},
}

// smartdine customer history — past orders at a table.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past orders for a table",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		entries, err := a.client.OrderHistory(cmd.Context(), tableFlag)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No past orders.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ORDER\tSTATUS\tTOTAL\tWHEN")
		for _, e := range entries {
			total := order.SplitInclusiveTotal(e.TotalAmount).Total
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				e.OrderID, e.Status, total.StringFixed(2), e.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}
