package cmd

import (
	"fmt"
	"os"

	"github.com/ktamura/kyoteidb/cmd/race"
	"github.com/ktamura/kyoteidb/cmd/schedule"
	"github.com/ktamura/kyoteidb/cmd/stats"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.1"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "kyoteidb",
		Short: "boat race schedule database",
		Long: fmt.Sprintf(`kyoteidb (v%s)

A key-value backed database for boat race schedules and race data,
indexing every event both by calendar month and by tournament.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of kyoteidb",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("kyoteidb v%s\n", Version)
		},
	}
)

func init() {
	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(schedule.ScheduleCommands)
	RootCmd.AddCommand(race.RaceCommands)
	RootCmd.AddCommand(stats.StatsCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
