package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dailyjournal/internal/client/client"
	"github.com/dmitrijs2005/dailyjournal/internal/client/models"
	"github.com/dmitrijs2005/dailyjournal/internal/client/repositories/entries"
	"github.com/dmitrijs2005/dailyjournal/internal/client/repositories/pushlog"
	"github.com/dmitrijs2005/dailyjournal/internal/logging"
	"github.com/robfig/cron/v3"
)

// SyncService copies local entries to the remote mirror. Nothing is ever
// pulled back and no conflicts are resolved.
type SyncService interface {
	// PushAll saves every local entry to the mirror, even ones pushed before.
	PushAll(ctx context.Context) ([]string, error)
	// PushPending saves only entries the push log has no record of. Without
	// a push log it behaves like PushAll.
	PushPending(ctx context.Context) ([]string, error)
	// Schedule runs PushPending on a cron spec until ctx is done.
	Schedule(ctx context.Context, spec string) error
}

type syncService struct {
	mirror    client.Client
	entryRepo entries.Repository
	pushes    pushlog.Repository
	log       logging.Logger
	now       func() time.Time
}

// NewSyncService builds a SyncService. pushes may be nil.
func NewSyncService(mirror client.Client, entryRepo entries.Repository, pushes pushlog.Repository, log logging.Logger) SyncService {
	if log == nil {
		log = logging.Nop()
	}
	return &syncService{mirror: mirror, entryRepo: entryRepo, pushes: pushes, log: log, now: time.Now}
}

func (s *syncService) PushAll(ctx context.Context) ([]string, error) {
	list, err := s.entryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving entries: %w", err)
	}
	return s.push(ctx, list)
}

func (s *syncService) PushPending(ctx context.Context) ([]string, error) {
	list, err := s.entryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving entries: %w", err)
	}
	if s.pushes == nil {
		return s.push(ctx, list)
	}

	pushed, err := s.pushes.PushedIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading push log: %w", err)
	}
	pending := make([]models.JournalEntry, 0, len(list))
	for _, e := range list {
		if _, ok := pushed[e.ID]; !ok {
			pending = append(pending, e)
		}
	}
	return s.push(ctx, pending)
}

// push saves each entry in turn. A failed entry does not stop the rest; all
// failures are joined into the returned error.
func (s *syncService) push(ctx context.Context, list []models.JournalEntry) ([]string, error) {
	keys := make([]string, 0, len(list))
	var errs []error

	for _, e := range list {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		key, err := s.mirror.Save(ctx, e)
		if err != nil {
			s.log.Warn(ctx, "error pushing entry", "id", e.ID, "error", err)
			errs = append(errs, fmt.Errorf("entry %d: %w", e.ID, err))
			continue
		}
		keys = append(keys, key)

		if s.pushes != nil {
			if err := s.pushes.Record(ctx, e.ID, key, s.now()); err != nil {
				errs = append(errs, fmt.Errorf("entry %d: %w", e.ID, err))
			}
		}
	}

	s.log.Info(ctx, "pushed entries to mirror", "pushed", len(keys), "failed", len(errs))
	return keys, errors.Join(errs...)
}

func (s *syncService) Schedule(ctx context.Context, spec string) error {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if _, err := s.PushPending(ctx); err != nil {
			s.log.Error(ctx, "scheduled push failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid sync schedule %q: %w", spec, err)
	}

	s.log.Info(ctx, "sync scheduled", "spec", spec)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
