package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/coursewalk/internal/config"
	"github.com/abhisek/coursewalk/internal/course"
	"github.com/abhisek/coursewalk/internal/store"
)

var (
	cfg     *config.Config
	logger  *slog.Logger
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "coursewalk",
	Short: "Step through a guided training course in the terminal",
	Long: "coursewalk plays a linear training course: an introduction, a module\n" +
		"grid, one card per topic with narration and a challenge, a final\n" +
		"assessment and a completion card. Progress is saved between runs.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "path to SQLite database (default: ~/.local/share/coursewalk/coursewalk.db)")
	rootCmd.PersistentFlags().String("course", "", "path to a course YAML file (default: built-in course)")
	rootCmd.PersistentFlags().Bool("review", false, "disable all gates for content review")
	rootCmd.Flags().Bool("no-splash", false, "skip the welcome screen")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(courseCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads .env and the environment, applies flag overrides and
// installs the file logger.
func setup(cmd *cobra.Command, args []string) error {
	envErr := godotenv.Load()

	c, err := config.Load()
	if err != nil {
		return err
	}
	if p, _ := cmd.Flags().GetString("course"); p != "" {
		c.CoursePath = p
	}
	if cmd.Flags().Changed("review") {
		c.Review, _ = cmd.Flags().GetBool("review")
	}
	cfg = c

	if err := openLogger(); err != nil {
		return err
	}
	if envErr != nil {
		logger.Debug("no .env file loaded", "error", envErr)
	}
	return nil
}

func openLogger() error {
	path := cfg.LogFile
	if path == "" {
		dir, err := store.DataDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "coursewalk.log")
	}
	if err := store.EnsureDir(path); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logFile = f
	logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	return nil
}

// resolveDBPath returns the database path from the --db flag, the
// environment, or the default location, in that order.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve db path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func loadCourse() (*course.Course, error) {
	if cfg == nil {
		return course.Default()
	}
	return course.Load(cfg.CoursePath)
}

func progressKey(courseID string) string {
	return "flow-progress/" + courseID
}
