package schedule

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ktamura/kyoteidb/cmd/util"
	"github.com/ktamura/kyoteidb/lib/engine"
	"github.com/ktamura/kyoteidb/lib/keycodec"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	eng    *engine.Engine
	logger *zap.Logger

	// ScheduleCommands represents the schedule command group
	ScheduleCommands = &cobra.Command{
		Use:                "schedule",
		Short:              "Manage monthly race schedules",
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
	}

	putCmd = &cobra.Command{
		Use:   "put [file]",
		Short: "Store a monthly schedule from a JSON file (or stdin)",
		Long: util.WrapString(`Reads a monthly schedule as JSON and writes one entry per event, keyed
under the schedule's month. The JSON shape is {"year_month": "2025-09", "events": [...]}.`),
		Args: cobra.MaximumNArgs(1),
		RunE: runPut,
	}

	getCmd = &cobra.Command{
		Use:   "get <year-month>",
		Short: "Print the schedule of one month (e.g. 2025-09) as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runGet,
	}

	registerCmd = &cobra.Command{
		Use:   "register [file]",
		Short: "Register one event (JSON) under every month it touches",
		Long: util.WrapString(`Reads a single event as JSON and writes it under each calendar month between
its start date and its last day, so multi-month events show up in every monthly view they span.`),
		Args: cobra.MaximumNArgs(1),
		RunE: runRegister,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add common storage flags to the schedule command
	util.SetupStoreFlags(ScheduleCommands)

	// Add subcommands
	ScheduleCommands.AddCommand(putCmd)
	ScheduleCommands.AddCommand(getCmd)
	ScheduleCommands.AddCommand(registerCmd)
}

// setup opens the configured store and builds the engine
func setup(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	var err error
	if logger, err = util.GetLogger(); err != nil {
		return err
	}
	if eng, err = util.GetEngine(); err != nil {
		return err
	}

	logger.Debug("store opened",
		zap.String("store", cmd.Flag("store").Value.String()),
	)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	defer logger.Sync()
	return eng.Store().Close()
}

// readInput reads the optional file argument, falling back to stdin
func readInput(args []string) ([]byte, error) {
	if len(args) == 1 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}

func runPut(_ *cobra.Command, args []string) error {
	raw, err := readInput(args)
	if err != nil {
		return err
	}

	var sched engine.MonthlySchedule
	if err := json.Unmarshal(raw, &sched); err != nil {
		return fmt.Errorf("malformed schedule JSON: %w", err)
	}

	if err := eng.PutMonthlySchedule(sched); err != nil {
		return err
	}

	logger.Info("schedule stored",
		zap.String("year_month", sched.YearMonth),
		zap.Int("events", len(sched.Events)),
	)
	fmt.Printf("stored %d event(s) under %s\n", len(sched.Events), sched.YearMonth)
	return nil
}

func runGet(_ *cobra.Command, args []string) error {
	yearMonth, err := keycodec.ParseYearMonth(args[0])
	if err != nil {
		return err
	}

	sched, err := eng.GetMonthlySchedule(yearMonth)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(sched, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runRegister(_ *cobra.Command, args []string) error {
	raw, err := readInput(args)
	if err != nil {
		return err
	}

	var event engine.RaceEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return fmt.Errorf("malformed event JSON: %w", err)
	}

	if err := eng.RegisterTournamentToMonths(event); err != nil {
		return err
	}

	tournamentID := keycodec.GenerateTournamentID(event.VenueName, event.EventName)
	logger.Info("event registered",
		zap.String("tournament_id", tournamentID),
		zap.String("start_date", event.StartDate),
		zap.Uint32("duration_days", event.DurationDays),
	)
	fmt.Printf("registered %s (%d day(s) from %s)\n", tournamentID, event.DurationDays, event.StartDate)
	return nil
}
