package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mpoulsen/strata/internal/cli"
	"github.com/mpoulsen/strata/internal/db"
	"github.com/mpoulsen/strata/internal/repository"
	"github.com/mpoulsen/strata/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads ~/.strata/config.yaml plus STRATA_* environment
// overrides. Every key has a default, so a missing file is fine.
func loadConfig() (*viper.Viper, error) {
	v := viper.New()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}
	configDir := filepath.Join(home, ".strata")

	v.SetDefault("db_path", filepath.Join(configDir, "strata.db"))
	v.SetDefault("org_id", "default")
	v.SetDefault("log.enabled", false)
	v.SetDefault("log.path", filepath.Join(configDir, "strata.log"))
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("strata")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return v, nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.GetString("db_path"))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	typeRepo := repository.NewSQLiteItemTypeRepo(database)
	itemRepo := repository.NewSQLitePlanItemRepo(database)
	historyRepo := repository.NewSQLiteHistoryRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case logging goes to a rotating file so it never pollutes command
	// output.
	var observers []service.UseCaseObserver
	if cfg.GetBool("log.enabled") {
		var logSink io.Writer = &lumberjack.Logger{
			Filename:   cfg.GetString("log.path"),
			MaxSize:    cfg.GetInt("log.max_size_mb"),
			MaxBackups: cfg.GetInt("log.max_backups"),
		}
		observers = append(observers, service.NewLogUseCaseObserver(logSink))
	}

	itemSvc := service.NewPlanItemService(projectRepo, typeRepo, itemRepo, historyRepo, uow, observers...)

	app := &cli.App{
		OrgID:    cfg.GetString("org_id"),
		Projects: service.NewProjectService(projectRepo),
		Items:    itemSvc,
		Types:    service.NewItemTypeService(typeRepo),
		Importer: service.NewImportService(projectRepo, itemSvc, observers...),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
