package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jask/gitreview/internal/app"
	"github.com/jask/gitreview/internal/clock"
	"github.com/jask/gitreview/internal/config"
	"github.com/jask/gitreview/internal/database"
	"github.com/jask/gitreview/internal/database/repository"
	"github.com/jask/gitreview/internal/event"
	"github.com/jask/gitreview/internal/service"
	"github.com/jask/gitreview/internal/tui"
	"github.com/jask/gitreview/internal/vcs"
	"github.com/jask/gitreview/internal/views"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:          "gitreview",
		Short:        "Track code reviews of local git branches from the terminal",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repoPath, _ := cmd.Flags().GetString("repo-path")
			return run(repoPath)
		},
	}
	root.Flags().String("repo-path", "", "git repository to review (default: config, then current directory)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(repoPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if repoPath != "" {
		cfg.Repo.Path = repoPath
	}

	if err := os.MkdirAll(config.DataDir(), 0o755); err != nil {
		return fmt.Errorf("mkdir data dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("mkdir db dir: %w", err)
	}

	// the terminal owns stdout, so logs go to a file in the data dir
	logFile, err := os.OpenFile(filepath.Join(config.DataDir(), "app.log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	bus := event.NewBus()
	state := service.NewStateService()

	var host *tui.Host
	a := app.New(app.Config{
		Bus:  bus,
		Root: views.NewMain(state.Snapshot().Reviews),
		Services: []app.Service{
			state,
			&service.ReviewService{},
			&service.BranchService{},
			&service.DiffService{},
			&service.CommentService{},
			&service.FileViewService{},
			&service.BranchStatusService{},
		},
		Context: app.ServiceContext{
			Reviews:   repository.NewReviewRepo(db),
			Comments:  repository.NewCommentRepo(db),
			FileViews: repository.NewFileViewRepo(db),
			Git:       vcs.NewRunner(cfg.Repo.Path),
			Clock:     clock.System{},
		},
		Factories: views.NewFactories(state),
		Sink:      func(frame string) { host.ShowFrame(frame) },
	})
	host = tui.NewHost(a)

	producer := event.NewProducer(bus, host.Keys(), cfg.TickInterval())
	go producer.Run()

	bus.SendApp(event.ReviewsLoad{})
	bus.SendApp(event.BranchStatusCheck{})

	coreDone := make(chan error, 1)
	go func() {
		err := a.Run(context.Background())
		bus.Close()
		host.Shutdown()
		coreDone <- err
	}()

	hostErr := host.Run()
	bus.Close()

	if err := <-coreDone; err != nil && !errors.Is(err, event.ErrClosed) {
		return err
	}
	return hostErr
}
