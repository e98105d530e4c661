package cli

import (
	"context"
	"errors"
	"time"

	"cinelist/services/metadata"
	"cinelist/services/scheduler"
)

// newWarmer registers background refreshes for the responses every client
// asks for first. It returns nil when warming is disabled.
func newWarmer(svc *metadata.Service, interval time.Duration) (*scheduler.Service, error) {
	if interval <= 0 {
		return nil, nil
	}
	sched := scheduler.NewService(time.Minute)
	tasks := []scheduler.Task{
		{
			ID:       "warm-home",
			Name:     "Warm home bundle",
			Interval: interval,
			Run: func(ctx context.Context) error {
				_, err := svc.Home(ctx)
				return err
			},
		},
		{
			ID:       "warm-genres",
			Name:     "Warm genre lists",
			Interval: 4 * interval,
			Run: func(ctx context.Context) error {
				_, movieErr := svc.Genres(ctx, metadata.MediaMovie)
				_, tvErr := svc.Genres(ctx, metadata.MediaTV)
				return errors.Join(movieErr, tvErr)
			},
		},
	}
	for _, t := range tasks {
		if err := sched.Register(t); err != nil {
			return nil, err
		}
	}
	return sched, nil
}
