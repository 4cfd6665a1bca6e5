// ABOUTME: Proximity find command
// ABOUTME: Evaluates observer position against an item's last sighting, once or in a loop

package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/maxboss2005/item-radar/internal/geo"
	"github.com/maxboss2005/item-radar/internal/locate"
	"github.com/maxboss2005/item-radar/internal/radar"
	"github.com/maxboss2005/item-radar/internal/rssi"
	"github.com/maxboss2005/item-radar/internal/ui"
)

var findCmd = &cobra.Command{
	Use:     "find <name> --lat <latitude> --lng <longitude>",
	Aliases: []string{"f"},
	Short:   "Get a proximity readout for an item",
	Long: `Evaluate how far an item's last known location is from where you are.

Prints distance, initial compass bearing, and a proximity band. With
--follow the readout refreshes on an interval until interrupted; with
--walk a simulated observer steps toward the item until it is reached.

Examples:
  itemradar find keys --lat 41.8780 --lng -87.6300
  itemradar find keys --lat 41.8780 --lng -87.6300 --follow --interval 2s
  itemradar find keys --lat 41.8780 --lng -87.6300 --walk --seed 42 --step 5
  itemradar find keys --lat 41.8780 --lng -87.6300 --walk --rssi`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		lat, _ := cmd.Flags().GetFloat64("lat")
		lng, _ := cmd.Flags().GetFloat64("lng")
		observer := geo.Point{Latitude: lat, Longitude: lng}
		if err := observer.Validate(); err != nil {
			return err
		}

		item, err := repo.GetItemByName(name)
		if err != nil {
			return fmt.Errorf("item '%s' not found", name)
		}

		last, err := repo.GetLastSighting(item.ID)
		if err != nil {
			return fmt.Errorf("'%s' has never been seen", name)
		}
		target := last.Point()

		follow, _ := cmd.Flags().GetBool("follow")
		walk, _ := cmd.Flags().GetBool("walk")
		withRSSI, _ := cmd.Flags().GetBool("rssi")

		var sim *rssi.Simulator
		if withRSSI {
			sim = rssi.NewSimulator(findSeed())
		}

		var engine geo.Engine

		if !follow && !walk {
			reading, err := engine.Evaluate(observer, target)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", color.GreenString(name), readoutLine(reading, sim))
			fmt.Printf("  %s\n", color.New(color.Faint).Sprintf("last seen %s", ui.FormatRelativeTime(last.RecordedAt)))
			if last.Note != nil {
				fmt.Printf("  %s\n", color.New(color.Faint).Sprint(*last.Note))
			}
			return nil
		}

		var provider locate.Provider
		if walk {
			step, _ := cmd.Flags().GetFloat64("step")
			provider = locate.NewWalk(observer, target, step, findSeed())
		} else {
			provider = &locate.Static{Point: observer}
		}

		interval, _ := cmd.Flags().GetDuration("interval")
		tracker := radar.Tracker{
			Provider:     provider,
			Target:       target,
			Interval:     interval,
			StopAtTarget: walk,
			OnReading: func(fix geo.Point, reading geo.Reading) {
				fmt.Println(readoutLine(reading, sim))
			},
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()

		if err := tracker.Run(ctx); err != nil {
			// Interrupt is how a follow session ends
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		if walk {
			color.Green("✓ Reached %s", name)
		}
		return nil
	},
}

// readoutLine renders one reading, optionally with a simulated signal column.
func readoutLine(reading geo.Reading, sim *rssi.Simulator) string {
	line := ui.FormatReading(reading)
	if sim == nil {
		return line
	}
	// The path-loss model has no value at zero range
	dbm, err := sim.DBm(math.Max(reading.DistanceMeters, 0.1))
	if err != nil {
		return line
	}
	return line + "  " + ui.FormatRSSI(dbm)
}

// findSeed returns the --seed flag value, or the clock when unset so
// repeated runs differ unless the caller pins one.
func findSeed() int64 {
	seed, _ := findCmd.Flags().GetInt64("seed")
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

func init() {
	findCmd.Flags().Float64("lat", 0, "observer latitude (-90 to 90)")
	findCmd.Flags().Float64("lng", 0, "observer longitude (-180 to 180)")
	findCmd.Flags().Bool("follow", false, "keep refreshing the readout until interrupted")
	findCmd.Flags().Bool("walk", false, "simulate walking toward the item")
	findCmd.Flags().Duration("interval", radar.DefaultInterval, "refresh cadence for --follow and --walk")
	findCmd.Flags().Int64("seed", 0, "random seed for --walk and --rssi (0 = from clock)")
	findCmd.Flags().Float64("step", locate.DefaultStepMeters, "walk step length in meters")
	findCmd.Flags().Bool("rssi", false, "show a simulated signal strength column")

	rootCmd.AddCommand(findCmd)
}
