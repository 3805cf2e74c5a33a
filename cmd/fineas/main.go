package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/maloquacious/fineas/internal/config"
	"github.com/maloquacious/fineas/internal/logger"
	"github.com/maloquacious/fineas/internal/money"
	"github.com/maloquacious/fineas/internal/server"
	"github.com/maloquacious/fineas/internal/store"
	"github.com/maloquacious/fineas/internal/store/sqlite"
	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"
)

var (
	version   = semver.Version{Minor: 1, PreRelease: "alpha", Build: semver.Commit()}
	buildDate = ""
)

var log = logger.Default

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command line and reports any error through the logger,
// including usage errors cobra itself detects.
func run(args []string) int {
	if err := config.LoadEnv(".env"); err != nil {
		log.Error("%v", err)
		return 1
	}
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}

// options holds the flag values shared by all commands.
type options struct {
	dbFlag     string
	logLevel   string
	port       int
	shutdownTO time.Duration
	exitAfter  time.Duration

	txType      string
	amount      string
	description string
	date        string
}

func (o *options) dbPath() string {
	return config.DBPath(o.dbFlag)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "fineas",
		Short:         "Personal finance transaction logger",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return log.SetLevel(opts.logLevel)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&opts.dbFlag, "db", "", "database file (default $"+config.EnvDBPath+" or ./"+store.DefaultDBFile+")")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	// serve command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Accept transactions over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}
	serveCmd.Flags().IntVar(&opts.port, "port", 8080, "HTTP port")
	serveCmd.Flags().DurationVar(&opts.shutdownTO, "shutdown-timeout", 15*time.Second, "graceful shutdown timeout")
	serveCmd.Flags().DurationVar(&opts.exitAfter, "exit-after", 0, "optional runtime; if set, server exits after this duration (testing)")

	// add command
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record one transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, opts)
		},
	}
	addCmd.Flags().StringVar(&opts.txType, "type", "expense", "transaction type, by convention income or expense")
	addCmd.Flags().StringVar(&opts.amount, "amount", "", "amount, e.g. 12.50")
	addCmd.Flags().StringVar(&opts.description, "description", "", "optional description")
	addCmd.Flags().StringVar(&opts.date, "date", "", "date text (default today, YYYY-MM-DD)")

	// db command group
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	dbCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Create the transactions table if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBCreate(opts)
		},
	}
	dbVerifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the transactions table exists with the expected columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBVerify(cmd, opts)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			if buildDate != "" {
				cmd.Printf("fineas %s (built %s)\n", version.String(), buildDate)
				return
			}
			cmd.Printf("fineas %s\n", version.String())
		},
	}

	dbCmd.AddCommand(dbCreateCmd, dbVerifyCmd)
	rootCmd.AddCommand(serveCmd, addCmd, dbCmd, versionCmd)

	return rootCmd
}

func runDBCreate(opts *options) error {
	dbPath := opts.dbPath()
	if err := sqlite.CreateTable(dbPath); err != nil {
		return fmt.Errorf("db create: %w", err)
	}
	log.Info("db create: transactions table ready in %s", dbPath)
	return nil
}

func runDBVerify(cmd *cobra.Command, opts *options) error {
	dbPath := opts.dbPath()
	state, err := sqlite.Inspect(dbPath)
	if err != nil {
		return fmt.Errorf("db verify: %w", err)
	}
	cmd.Printf("%s: %s\n", dbPath, state)
	if state != store.StateReady {
		return fmt.Errorf("store %s is %s", dbPath, state)
	}
	return nil
}

func runAdd(cmd *cobra.Command, opts *options) error {
	t := store.Transaction{Type: store.String(opts.txType)}

	// an unset amount is passed through as NULL and rejected by the engine
	if cmd.Flags().Changed("amount") {
		amount, err := money.Parse(opts.amount)
		if err != nil {
			return fmt.Errorf("add: %w", err)
		}
		t.Amount = &amount
	}
	if cmd.Flags().Changed("description") {
		t.Description = store.String(opts.description)
	}
	if opts.date != "" {
		t.Date = store.String(opts.date)
	} else {
		t.Date = store.String(time.Now().Format(time.DateOnly))
	}

	dbPath := opts.dbPath()
	if err := sqlite.AddTransaction(dbPath, t); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	log.Info("add: recorded %s of %s on %s", opts.txType, opts.amount, *t.Date)
	return nil
}

// runServe opens the store once and serves the HTTP API until interrupted.
func runServe(opts *options) error {
	st := sqlite.New(opts.dbPath())
	if err := st.Open(); err != nil {
		return err
	}
	defer st.Close()

	if err := st.CreateTable(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.port),
		Handler: server.New(st, log, version.String()).Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening on :%d (db %s)", opts.port, st.Path())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Optional run timer
	if opts.exitAfter > 0 {
		go func() {
			log.Info("exit-after timer set: %s", opts.exitAfter)
			time.Sleep(opts.exitAfter)
			stop()
		}()
	}

	var serveErr error
	select {
	case <-ctx.Done():
		// graceful shutdown
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.shutdownTO)
	defer cancel()

	_ = srv.Shutdown(shutdownCtx)
	log.Info("shutdown complete")
	return serveErr
}
