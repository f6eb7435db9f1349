package race

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ktamura/kyoteidb/cmd/util"
	"github.com/ktamura/kyoteidb/lib/engine"
	"github.com/ktamura/kyoteidb/lib/keycodec"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	eng    *engine.Engine
	logger *zap.Logger

	// RaceCommands represents the race data command group
	RaceCommands = &cobra.Command{
		Use:                "race",
		Short:              "Manage per-tournament race data records",
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
	}

	putCmd = &cobra.Command{
		Use:   "put <tournament-id> <timestamp> <json>",
		Short: "Store one race data record keyed by tournament and timestamp",
		Long: util.WrapString(`Stores an arbitrary JSON payload under (tournament-id, timestamp).
The timestamp is an integer, conventionally epoch milliseconds. Race records need no
corresponding monthly entry.`),
		Args: cobra.ExactArgs(3),
		RunE: runPut,
	}

	getCmd = &cobra.Command{
		Use:   "get <tournament-id> <timestamp>",
		Short: "Print the race data record at an exact timestamp",
		Args:  cobra.ExactArgs(2),
		RunE:  runGet,
	}

	listCmd = &cobra.Command{
		Use:   "list <tournament-id>",
		Short: "Print all race data records of one tournament in time order",
		Args:  cobra.ExactArgs(1),
		RunE:  runList,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add common storage flags to the race command
	util.SetupStoreFlags(RaceCommands)

	// Add subcommands
	RaceCommands.AddCommand(putCmd)
	RaceCommands.AddCommand(getCmd)
	RaceCommands.AddCommand(listCmd)
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
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	defer logger.Sync()
	return eng.Store().Close()
}

func parseTimestamp(arg string) (uint64, error) {
	ts, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", arg, err)
	}
	return ts, nil
}

func runPut(_ *cobra.Command, args []string) error {
	tournamentID := args[0]
	ts, err := parseTimestamp(args[1])
	if err != nil {
		return err
	}

	payload := json.RawMessage(args[2])
	if !json.Valid(payload) {
		return fmt.Errorf("payload is not valid JSON")
	}

	if err := engine.PutRaceData(eng, tournamentID, ts, payload); err != nil {
		return err
	}

	logger.Info("race data stored",
		zap.String("tournament_id", tournamentID),
		zap.Uint64("timestamp", ts),
	)
	fmt.Printf("stored race data at %s\n", strconv.Quote(keycodec.TournamentKey(tournamentID, ts)))
	return nil
}

func runGet(_ *cobra.Command, args []string) error {
	ts, err := parseTimestamp(args[1])
	if err != nil {
		return err
	}

	payload, err := engine.GetRaceData[json.RawMessage](eng, args[0], ts)
	if err != nil {
		return err
	}
	fmt.Println(string(payload))
	return nil
}

func runList(_ *cobra.Command, args []string) error {
	payloads, err := engine.GetTournamentRaces[json.RawMessage](eng, args[0])
	if err != nil {
		return err
	}

	for _, payload := range payloads {
		fmt.Println(string(payload))
	}
	fmt.Printf("%d record(s)\n", len(payloads))
	return nil
}
