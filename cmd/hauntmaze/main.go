// hauntmaze is a haunted maze chase played in the terminal.
//
// Usage:
//
//	hauntmaze play     - Play locally
//	hauntmaze serve    - Start SSH server for remote play
//	hauntmaze scores   - Show the leaderboard of a scores database
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: in-memory)
//	--config <path>      - Load game settings from a YAML file
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Append logs to a file
//	--spectate <addr>    - Stream frames over WebSocket at addr/ws
//	--bell               - Ring the terminal bell on loud events
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hauntmaze/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
	flagSpectate string
	flagBell     bool
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hauntmaze",
	Short: "Haunted Maze - a ghost chase in your terminal",
	Long: `Haunted Maze is a maze chase: eat pellets, grab power candies to turn
the tables on the ghosts, smash walls and tombstones while powered, and dodge
the witches falling from the sky.

Available commands:
  play     - Play locally
  serve    - Start SSH server for remote play
  scores   - View the leaderboard

Examples:
  hauntmaze play
  hauntmaze play --seed 42 --config ./my-maze.yaml
  hauntmaze serve --ssh :2222 --db ~/.hauntmaze/runs.db
  hauntmaze scores --db ~/.hauntmaze/runs.db`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.MemoryPath, "Path to scores database (:memory: keeps scores for this process only)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagSpectate, "spectate", "", "Serve a WebSocket frame feed on this address (e.g. :8080)")
	rootCmd.PersistentFlags().BoolVar(&flagBell, "bell", false, "Ring the terminal bell when a ghost is eaten, a life is lost or a stage is won")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
