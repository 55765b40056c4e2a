package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var identityCmd = &cobra.Command{
	Use:   "identity",
	Short: "Show or change who orders are placed as",
}

func init() {
	identityCmd.AddCommand(identityShowCmd)
	identityCmd.AddCommand(identityGoogleCmd)
	identityCmd.AddCommand(identityPhoneCmd)
	identityCmd.AddCommand(identityClearCmd)
}

// smartdine identity show
var identityShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		ident, err := a.identity.Current()
		if err != nil {
			return err
		}
		fmt.Println(ident.Label())
		return nil
	},
}

// smartdine identity google <id-token> — attach a Google sign-in. The token
// is the ID token the sign-in flow hands back; only its profile claims are
// read here, verification is the backend's job.
var identityGoogleCmd = &cobra.Command{
	Use:   "google <id-token>",
	Short: "Sign in with a Google ID token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		user, err := a.identity.SetGoogleToken(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
		return nil
	},
}

// smartdine identity phone <number>
var identityPhoneCmd = &cobra.Command{
	Use:   "phone <number>",
	Short: "Attach a phone number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		if err := a.identity.SetPhoneNumber(args[0]); err != nil {
			return err
		}
		fmt.Println("Phone number saved.")
		return nil
	},
}

// smartdine identity clear — drop the Google sign-in and fall back to the
// phone number or guest id.
var identityClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop the Google sign-in",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		if err := a.identity.ClearGoogle(); err != nil {
			return err
		}
		ident, err := a.identity.Current()
		if err != nil {
			return err
		}
		fmt.Printf("Now ordering as: %s\n", ident.Label())
		return nil
	},
}
