package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/itzabhishekgour/smartdine/internal/session"
)

// smartdine theme [light|dark] — show or set the display preference. The
// preference rides in the session store so every surface can honor it.
var themeCmd = &cobra.Command{
	Use:   "theme [light|dark]",
	Short: "Show or set the display theme",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			fmt.Println(session.GetOr(a.store, session.KeyTheme, "light"))
			return nil
		}
		if args[0] != "light" && args[0] != "dark" {
			return fmt.Errorf("unknown theme %q (want light or dark)", args[0])
		}
		return a.store.Set(session.KeyTheme, args[0])
	},
}
