package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/itzabhishekgour/smartdine/internal/api"
	"github.com/itzabhishekgour/smartdine/internal/checkout"
	"github.com/itzabhishekgour/smartdine/internal/config"
	"github.com/itzabhishekgour/smartdine/internal/identity"
	"github.com/itzabhishekgour/smartdine/internal/owner"
	"github.com/itzabhishekgour/smartdine/internal/session"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "smartdine",
	Short: "SmartDine — QR table ordering client",
	Long:  "SmartDine talks to a restaurant backend: browse the menu at your table, order, pay, and follow your order; owners manage tables, the menu, and the live order board.",
}

func init() {
	rootCmd.AddCommand(customerCmd)
	rootCmd.AddCommand(ownerCmd)
	rootCmd.AddCommand(identityCmd)
	rootCmd.AddCommand(returnServerCmd)
	rootCmd.AddCommand(themeCmd)
}

// app is everything a command needs, wired once per invocation.
type app struct {
	cfg      *config.Config
	store    session.Store
	client   *api.Client
	identity *identity.Manager
	checkout *checkout.Service
	board    *owner.Board
}

func boot() (*app, error) {
	cfg := config.Load()
	store, err := session.NewFileStore(cfg.StateDir)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	client := api.New(cfg.APIBaseURL, store)
	return &app{
		cfg:      cfg,
		store:    store,
		client:   client,
		identity: identity.NewManager(store),
		checkout: checkout.NewService(client, store),
		board:    owner.NewBoard(client),
	}, nil
}
