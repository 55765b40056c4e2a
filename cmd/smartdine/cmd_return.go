package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/itzabhishekgour/smartdine/internal/callback"
)

// smartdine return-server — the local listener the payment gateway
// redirects back to. Run it before paying; it checks the payment, confirms
// the pending order exactly once, and shows the outcome page.
var returnServerCmd = &cobra.Command{
	Use:   "return-server",
	Short: "Run the payment-return listener",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		srv := callback.NewServer(a.checkout, a.client)
		fmt.Printf("Payment return listener on %s\n", a.cfg.ReturnAddr)
		return srv.ListenAndServe(cmd.Context(), a.cfg.ReturnAddr)
	},
}
