// ABOUTME: Root Cobra command and global flags
// ABOUTME: Sets up CLI structure, logging, and storage backend connection

package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/maxboss2005/item-radar/internal/config"
	"github.com/maxboss2005/item-radar/internal/storage"
)

var repo storage.Repository

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:   "itemradar",
	Short: "Hot-and-cold tracking for things you keep losing",
	Long: `
██████╗  █████╗ ██████╗  █████╗ ██████╗
██╔══██╗██╔══██╗██╔══██╗██╔══██╗██╔══██╗
██████╔╝███████║██║  ██║███████║██████╔╝
██╔══██╗██╔══██║██║  ██║██╔══██║██╔══██╗
██║  ██║██║  ██║██████╔╝██║  ██║██║  ██║
╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝

     Track items and home in on them later

Examples:
  itemradar save keys 41.8781 -87.6298 --note "kitchen drawer"
  itemradar find keys --lat 41.8780 --lng -87.6300
  itemradar history keys
  itemradar list`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if debugFlag {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
}
