// Package worker runs the background side of CampusVoice: the periodic
// integrity audit and a follower of the relayed event stream.
package worker

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"campusvoice/internal/application/complaint/usecases"
	"campusvoice/internal/infrastructure/cache"
	"campusvoice/internal/infrastructure/config"
	"campusvoice/internal/infrastructure/database"
	"campusvoice/internal/infrastructure/pubsub"
	"campusvoice/internal/infrastructure/repository"
	"campusvoice/internal/infrastructure/scheduler"
	"campusvoice/internal/interfaces/cli/bootstrap"
	"campusvoice/internal/shared/goroutine"
	"campusvoice/internal/shared/logger"
)

var (
	env  string
	once bool
)

// ErrViolationsFound is returned by a one-shot run that found violations.
var ErrViolationsFound = errors.New("integrity violations found")

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run background jobs",
		Long:  `Run the scheduled integrity audit and follow relayed complaint events.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&once, "once", false, "Run a single integrity audit and exit")

	return cmd
}

// NewIntegrityJob builds the audit job over db.
func NewIntegrityJob(db *gorm.DB, cfg *config.Config, log logger.Interface) (*usecases.IntegrityCheckUseCase, error) {
	policy, err := cfg.PriorityPolicy()
	if err != nil {
		return nil, err
	}
	return usecases.NewIntegrityCheckUseCase(
		repository.NewComplaintRepository(db),
		repository.NewStatusUpdateRepository(db),
		repository.NewEscalationRepository(db),
		repository.NewVoteRepository(db),
		repository.NewAuthorityRepository(db),
		policy,
		log.Named("integrity"),
	), nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.InitWithDatabase(bootstrap.ResolveEnv(env))
	if err != nil {
		return err
	}
	defer database.Close()

	job, err := NewIntegrityJob(database.Get(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build integrity job: %w", err)
	}

	if once {
		violations, err := job.Execute(cmd.Context())
		if err != nil {
			return fmt.Errorf("integrity check failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "integrity violations: %d\n", violations)
		if violations > 0 {
			return ErrViolationsFound
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Infow("starting worker", "integrity_enabled", cfg.Integrity.Enabled)

	mgr, err := scheduler.NewSchedulerManager(log.Named("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if cfg.Integrity.Enabled {
		if err := mgr.RegisterIntegrityJob(job, cfg.Integrity.Interval); err != nil {
			return fmt.Errorf("failed to register integrity job: %w", err)
		}
	}
	mgr.Start()
	defer func() {
		if err := mgr.Stop(); err != nil {
			log.Errorw("failed to stop scheduler", "error", err)
		}
	}()

	followEvents(ctx, cfg, log)

	<-ctx.Done()
	log.Infow("worker stopped")
	return nil
}

// followEvents logs every relayed event. Without Redis the worker only runs
// scheduled jobs.
func followEvents(ctx context.Context, cfg *config.Config, log logger.Interface) {
	client, err := cache.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		log.Warnw("redis unavailable, not following events", "error", err)
		return
	}

	relay := pubsub.NewRedisEventRelay(client, log.Named("event-relay"))
	activity := log.Named("activity")
	goroutine.SafeGo(log, "event-follower", func() {
		defer client.Close()
		err := relay.Subscribe(ctx, func(e pubsub.Envelope) {
			activity.Infow("event",
				"type", e.Type,
				"aggregate_id", e.AggregateID,
				"instance_id", e.InstanceID,
			)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Errorw("event follower stopped", "error", err)
		}
	})
}
