package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"obbsim/internal/config"
	"obbsim/internal/world"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config")
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := cfg.Level()
	if err != nil {
		log.WithError(err).Warn("Invalid log level, using info")
	}
	log.SetLevel(level)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			log.WithError(err).Warn("Sentry disabled")
		} else {
			defer sentry.Flush(time.Second * 5)
		}
	}
	defer sentry.Recover()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Error("Simulation failed")
		sentry.CaptureException(err)
		sentry.Flush(time.Second * 5)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *logrus.Logger) error {
	w := world.New(cfg, log)
	if err := w.Initialize(); err != nil {
		return err
	}

	start := time.Now()
	stats, err := w.Run(ctx)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"ticks":         stats.Ticks,
		"collisions":    stats.Collisions,
		"resolved":      stats.Resolved,
		"peak_contacts": stats.PeakContacts,
		"contacts_in":   stats.Begun,
		"contacts_out":  stats.Ended,
		"elapsed":       time.Since(start).Round(time.Millisecond),
	}).Info("Simulation finished")

	for _, name := range stats.NonFinite {
		log.WithField("body", name).Warn("Body left the finite range")
		sentry.CaptureMessage("non-finite body state: " + name)
	}

	if hit, ok := w.Probe(0, 0, 100); ok {
		log.WithFields(logrus.Fields{
			"object":   hit.Shape.GetGameObject().Name,
			"point":    hit.Point,
			"distance": hit.Distance,
		}).Info("Probe hit")
	} else {
		log.Info("Probe missed")
	}
	return nil
}
