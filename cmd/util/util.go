package util

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ktamura/kyoteidb/lib/db"
	"github.com/ktamura/kyoteidb/lib/db/engines/boltkv"
	"github.com/ktamura/kyoteidb/lib/db/engines/filekv"
	"github.com/ktamura/kyoteidb/lib/db/engines/memkv"
	"github.com/ktamura/kyoteidb/lib/engine"
	"github.com/ktamura/kyoteidb/lib/serializer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupStoreFlags adds the common storage flags to a command
func SetupStoreFlags(cmd *cobra.Command) {
	key := "store"
	cmd.PersistentFlags().String(key, string(db.ImplMemory), WrapString("The storage backend to use (memory, file or bolt)"))

	key = "path"
	cmd.PersistentFlags().String(key, "kyotei.json", WrapString("Path of the database file (ignored for the memory backend)"))

	key = "serializer"
	cmd.PersistentFlags().String(key, "msgpack", WrapString("The payload serializer to use (json, gob or msgpack)"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "info", WrapString("Log level (debug, info, warn, error)"))
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("kyoteidb")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// GetStore opens the configured storage backend
func GetStore() (db.OrderedKV, error) {
	switch db.Implementation(viper.GetString("store")) {
	case db.ImplMemory:
		return memkv.New(), nil
	case db.ImplFile:
		return filekv.Open(viper.GetString("path"))
	case db.ImplBolt:
		return boltkv.Open(viper.GetString("path"))
	default:
		return nil, fmt.Errorf("invalid store %s", viper.GetString("store"))
	}
}

// GetSerializer creates a serializer based on configuration
func GetSerializer() (serializer.ISerializer, error) {
	switch viper.GetString("serializer") {
	case "json":
		return serializer.NewJSONSerializer(), nil
	case "gob":
		return serializer.NewGOBSerializer(), nil
	case "msgpack":
		return serializer.NewMsgpackSerializer(), nil
	default:
		return nil, fmt.Errorf("invalid serializer %s", viper.GetString("serializer"))
	}
}

// GetEngine opens the configured backend and wraps it in a schedule engine.
// The caller owns the store lifecycle via engine.Store().Close().
func GetEngine() (*engine.Engine, error) {
	store, err := GetStore()
	if err != nil {
		return nil, err
	}
	ser, err := GetSerializer()
	if err != nil {
		store.Close()
		return nil, err
	}
	return engine.New(store, ser), nil
}

// GetLogger builds the process logger at the configured level
func GetLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(viper.GetString("log-level"))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", viper.GetString("log-level"), err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = level
	return cfg.Build()
}
