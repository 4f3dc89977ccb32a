package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/api-sage/fd-account-processor/src/internal/adapter/repository/postgres"
	"github.com/api-sage/fd-account-processor/src/internal/clock"
	"github.com/api-sage/fd-account-processor/src/internal/config"
	"github.com/api-sage/fd-account-processor/src/internal/domain"
	"github.com/api-sage/fd-account-processor/src/internal/events"
	"github.com/api-sage/fd-account-processor/src/internal/usecase/service_interfaces"
	"github.com/api-sage/fd-account-processor/src/internal/usecase/services"
)

// fdbatch is the operational entry point for batch reruns and
// identifier tooling, without going through the HTTP API.
func main() {
	root := &cobra.Command{
		Use:           "fdbatch",
		Short:         "Fixed deposit batch operations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var batchDate string
	root.PersistentFlags().StringVar(&batchDate, "date", "", "pin the batch date (YYYY-MM-DD), defaults to today UTC")

	root.AddCommand(
		newRunCommand("accrual", "Post one day of interest to every active account", &batchDate, buildAccrual),
		newRunCommand("capitalization", "Fold accrued interest into principal at compounding boundaries", &batchDate, buildCapitalization),
		newRunCommand("maturity", "Settle deposits whose maturity date has arrived", &batchDate, buildMaturity),
		newDailyCommand(&batchDate),
		newIdgenCommand(),
		newIdcheckCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type batchEnv struct {
	cfg        config.Config
	db         *sql.DB
	batchClock clock.Clock
	interest   *services.InterestService
	publisher  events.Publisher
}

func openEnv(ctx context.Context, batchDate string) (*batchEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var batchClock clock.Clock = clock.SystemClock{}
	switch {
	case batchDate != "":
		pinned, err := time.Parse("2006-01-02", batchDate)
		if err != nil {
			return nil, fmt.Errorf("--date must be in YYYY-MM-DD format: %w", err)
		}
		batchClock = clock.FixedClock{Date: pinned}
	case cfg.BatchDate != nil:
		batchClock = clock.FixedClock{Date: *cfg.BatchDate}
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	return &batchEnv{
		cfg:        cfg,
		db:         db,
		batchClock: batchClock,
		interest:   services.NewInterestService(),
		publisher:  events.NewLogPublisher(),
	}, nil
}

func (e *batchEnv) Close() {
	_ = e.db.Close()
}

func buildAccrual(e *batchEnv) service_interfaces.BatchRunner {
	return services.NewAccrualService(
		postgres.NewAccountRepository(e.db),
		postgres.NewTransactionRepository(e.db),
		postgres.NewBalanceSnapshotRepository(e.db),
		e.interest,
		e.publisher,
		e.batchClock,
		e.cfg.BatchWorkers,
	)
}

func buildCapitalization(e *batchEnv) service_interfaces.BatchRunner {
	return services.NewCapitalizationService(
		postgres.NewAccountRepository(e.db),
		postgres.NewTransactionRepository(e.db),
		postgres.NewBalanceSnapshotRepository(e.db),
		e.publisher,
		e.batchClock,
		e.cfg.BatchWorkers,
	)
}

func buildMaturity(e *batchEnv) service_interfaces.BatchRunner {
	return services.NewMaturityService(
		postgres.NewAccountRepository(e.db),
		postgres.NewTransactionRepository(e.db),
		postgres.NewBalanceSnapshotRepository(e.db),
		e.interest,
		e.publisher,
		e.batchClock,
		e.cfg.BatchWorkers,
	)
}

func newRunCommand(name, short string, batchDate *string, build func(*batchEnv) service_interfaces.BatchRunner) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openEnv(cmd.Context(), *batchDate)
			if err != nil {
				return err
			}
			defer env.Close()

			report, err := build(env).Run(cmd.Context())
			if err != nil {
				return err
			}
			printReport(cmd, name, env.batchClock.Today(), report)
			return nil
		},
	}
}

func newDailyCommand(batchDate *string) *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Run accrual, capitalization and maturity in order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openEnv(cmd.Context(), *batchDate)
			if err != nil {
				return err
			}
			defer env.Close()

			steps := []struct {
				name   string
				runner service_interfaces.BatchRunner
			}{
				{"accrual", buildAccrual(env)},
				{"capitalization", buildCapitalization(env)},
				{"maturity", buildMaturity(env)},
			}
			for _, step := range steps {
				report, err := step.runner.Run(cmd.Context())
				if err != nil {
					return fmt.Errorf("%s step: %w", step.name, err)
				}
				printReport(cmd, step.name, env.batchClock.Today(), report)
			}
			return nil
		},
	}
}

func newIdgenCommand() *cobra.Command {
	var branchCode, strategy string

	cmd := &cobra.Command{
		Use:   "idgen",
		Short: "Mint an account number or IBAN",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openEnv(cmd.Context(), "")
			if err != nil {
				return err
			}
			defer env.Close()

			generator, err := resolveGenerator(env, strategy)
			if err != nil {
				return err
			}

			generated, err := generator.Generate(cmd.Context(), branchCode)
			if err != nil {
				return err
			}
			cmd.Printf("accountNumber: %s\n", generated.AccountNumber)
			if generated.IBAN != "" {
				cmd.Printf("iban: %s\n", generated.IBAN)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&branchCode, "branch", "", "branch code (defaults to the configured branch)")
	cmd.Flags().StringVar(&strategy, "strategy", "", "standard or iban (defaults to the configured strategy)")
	return cmd
}

func newIdcheckCommand() *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "idcheck <identifier>",
		Short: "Validate an account number or IBAN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context(), "")
			if err != nil {
				return err
			}
			defer env.Close()

			generator, err := resolveGenerator(env, strategy)
			if err != nil {
				return err
			}

			if generator.Validate(args[0]) {
				cmd.Printf("%s is valid\n", args[0])
				return nil
			}
			return fmt.Errorf("%s is not a valid identifier", args[0])
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "", "standard or iban (defaults to the configured strategy)")
	return cmd
}

func resolveGenerator(env *batchEnv, strategy string) (services.AccountNumberGenerator, error) {
	sequenceRepo := postgres.NewSequenceRepository(env.db, env.cfg.SequenceStart)
	branchRepo := postgres.NewBranchRepository(env.db)

	identifierService := services.NewIdentifierService(
		services.NewStandardAccountNumberGenerator(sequenceRepo, env.cfg.DefaultBranchCode),
		services.NewIBANAccountNumberGenerator(sequenceRepo, env.cfg.DefaultBranchCode, env.cfg.CountryCode, env.cfg.BankCode),
		branchRepo,
		env.cfg.GeneratorStrategy,
	)
	if strategy == "" {
		strategy = env.cfg.GeneratorStrategy
	}
	return identifierService.GeneratorFor(strategy)
}

func printReport(cmd *cobra.Command, name string, runDate time.Time, report domain.RunReport) {
	cmd.Printf("%s %s: %d succeeded, %d skipped, %d errored\n",
		name, runDate.Format("2006-01-02"), report.Succeeded, report.Skipped, report.Errored)
}
