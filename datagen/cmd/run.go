package cmd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sarchlab/datagen/datarecording"
	"github.com/sarchlab/datagen/gen"
	"github.com/sarchlab/datagen/gen/hooking"
	"github.com/sarchlab/datagen/gen/naming"
	"github.com/sarchlab/datagen/gen/wrapper"
	"github.com/sarchlab/datagen/logging"
	"github.com/sarchlab/datagen/monitoring"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// emit drives g according to the configuration and writes the values to the
// command output.
func emit[T any](cmd *cobra.Command, a *app, g gen.Generator[T]) error {
	cfg := a.cfg
	logger := a.logger.With(logging.Generator(g.Name()))

	g.AcceptHook(hooking.NewLogHook(a.logger))

	stopRecording, err := a.startRecording(g)
	if err != nil {
		return err
	}

	values, err := generate(cmd, a, g)

	if recErr := stopRecording(); err == nil {
		err = recErr
	}

	if err != nil {
		return err
	}

	logger.Info("generated", zap.Int(logging.FieldCount, len(values)))

	return writeValues(cmd.OutOrStdout(), cfg.Format, values)
}

func generate[T any](cmd *cobra.Command, a *app, g gen.Generator[T]) ([]T, error) {
	stopMonitor, err := a.startMonitor(cmd, g)
	if err != nil {
		return nil, err
	}
	defer stopMonitor()

	target := g
	if a.cfg.Workers > 1 {
		target, err = wrapper.NewSynchronized[T](
			naming.BuildName(g.Name(), "Sync"), g)
		if err != nil {
			return nil, err
		}
	}

	if err := target.Init(a.newContext()); err != nil {
		return nil, err
	}
	defer target.Close()

	a.logger.Info("generating",
		logging.Generator(g.Name()),
		zap.Int(logging.FieldCount, a.cfg.Count),
		zap.Int(logging.FieldWorkers, a.cfg.Workers))

	return collect(cmd.Context(), target, a.cfg.Workers, a.cfg.Count)
}

func (a *app) newContext() *gen.Context {
	b := gen.MakeContextBuilder().WithLogger(a.logger)
	if a.cfg.Seeded {
		b = b.WithSeed(a.cfg.Seed)
	}

	return b.Build()
}

func collect[T any](
	ctx context.Context,
	g gen.Generator[T],
	workers int,
	count int,
) ([]T, error) {
	if workers <= 1 {
		if count == 0 {
			return gen.Drain(g), nil
		}

		return gen.Take(g, count), nil
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var (
		lock   sync.Mutex
		values []T
	)

	err := gen.DrainParallel(ctx, g, workers, count, func(p gen.Product[T]) error {
		lock.Lock()
		defer lock.Unlock()

		values = append(values, p.Value)

		return nil
	})

	return values, err
}

// startRecording attaches a product recording hook to g. The returned
// function flushes the recording and reports the first recording error.
func (a *app) startRecording(g hooking.Hookable) (func() error, error) {
	if !a.cfg.Record {
		return func() error { return nil }, nil
	}

	recorder, err := datarecording.New(a.cfg.RecordFile)
	if err != nil {
		return nil, err
	}

	hook, err := datarecording.NewProductRecordingHook(recorder)
	if err != nil {
		_ = recorder.Close()
		return nil, err
	}

	g.AcceptHook(hook)

	return func() error {
		if err := hook.Err(); err != nil {
			_ = recorder.Close()
			return errors.Wrap(err, "record products")
		}

		return errors.Wrap(recorder.Close(), "close recording")
	}, nil
}

func (a *app) startMonitor(
	cmd *cobra.Command,
	g monitoring.Generator,
) (func(), error) {
	if !a.cfg.Monitor {
		return func() {}, nil
	}

	m := monitoring.NewMonitor().
		WithLogger(a.logger).
		WithPortNumber(a.cfg.MonitorPort).
		WithOpenBrowser(a.cfg.OpenBrowser)

	m.RegisterGenerator(g)

	if a.cfg.Count > 0 {
		m.TrackProgress(g, uint64(a.cfg.Count))
	}

	addr, err := m.StartServer()
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Monitoring generator with %s\n", addr)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		if err := m.StopServer(ctx); err != nil {
			a.logger.Warn("stop monitor", zap.Error(err))
		}
	}, nil
}

