package stats

import (
	"fmt"
	"os"

	"github.com/ktamura/kyoteidb/cmd/util"
	"github.com/spf13/cobra"
)

var (
	// StatsCmd prints store statistics
	StatsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Print statistics over the whole store",
		Long: util.WrapString(`Counts monthly view entries, distinct tournaments appearing in the monthly
view, and race data records. The tournament count is derived from monthly keys only, so
tournaments that have race data but no monthly entry are not counted.`),
		RunE: run,
	}

	showMetrics bool
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add common storage flags to the stats command
	util.SetupStoreFlags(StatsCmd)
	StatsCmd.Flags().BoolVar(&showMetrics, "metrics", false, util.WrapString("Also print engine operation counters in Prometheus text format"))
}

func run(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	eng, err := util.GetEngine()
	if err != nil {
		return err
	}
	defer eng.Store().Close()

	stats, err := eng.GetStatistics()
	if err != nil {
		return err
	}

	fmt.Printf("monthly entries:    %d\n", stats.MonthlyEntries)
	fmt.Printf("unique tournaments: %d\n", stats.UniqueTournaments)
	fmt.Printf("race records:       %d\n", stats.RaceRecords)

	if showMetrics {
		fmt.Println()
		eng.WriteMetrics(os.Stdout)
	}
	return nil
}
