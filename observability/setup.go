package observability

import (
	"context"
	"errors"

	"github.com/COVAS-Labs/plugin-elevenlabs/config"
)

// Setup starts the exporters enabled in cfg and returns a function that
// flushes and stops them. With nothing enabled it is a no-op.
func Setup(ctx context.Context, cfg *config.Config, version string) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error

	if t := cfg.Observability.Tracing; t.Enabled {
		tp, err := InitTracer(ctx, TracerConfig{
			ServiceName:    cfg.Name,
			ServiceVersion: version,
			Environment:    cfg.Environment,
			Endpoint:       t.Endpoint,
			Insecure:       t.Insecure,
			SampleRate:     t.SampleRate,
		})
		if err != nil {
			return nil, err
		}
		shutdowns = append(shutdowns, tp.Shutdown)
	}

	if m := cfg.Observability.Metrics; m.Enabled {
		mp, err := InitMeter(ctx, MeterConfig{
			ServiceName:    cfg.Name,
			ServiceVersion: version,
			Environment:    cfg.Environment,
			Endpoint:       m.Endpoint,
			Insecure:       m.Insecure,
		})
		if err != nil {
			for _, fn := range shutdowns {
				_ = fn(ctx)
			}
			return nil, err
		}
		shutdowns = append(shutdowns, mp.Shutdown)
	}

	return func(ctx context.Context) error {
		var errs []error
		for _, fn := range shutdowns {
			errs = append(errs, fn(ctx))
		}
		return errors.Join(errs...)
	}, nil
}
