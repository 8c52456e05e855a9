// Command train runs a Q-learning training session for the colour whist
// agent, optionally resuming from a stored model, evaluates the result
// against the rule-based opponent, and saves the trained model to the
// local store.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/mielpeeters/whister/game"
	"github.com/mielpeeters/whister/qlearn"
	"github.com/mielpeeters/whister/store"
)

func main() {
	_ = godotenv.Load()

	defaults := qlearn.DefaultConfig()

	var (
		dbPath     = flag.String("db", envOr("WHISTER_DB", "whister.db"), "path to the model database")
		name       = flag.String("name", "", "name to save the trained model under (empty: don't save)")
		from       = flag.String("from", "", "existing model to continue training from")
		iterations = flag.Uint64("iterations", defaults.Iterations, "number of Q-updates to apply")
		rate       = flag.Float64("rate", defaults.Rate, "learning rate")
		discount   = flag.Float64("discount", defaults.Discount, "discount factor")
		initial    = flag.Float64("initial", defaults.InitialValue, "initial value for unseen state-action pairs")
		batch      = flag.Int("batch", defaults.BatchSize, "transitions per producer per table flush")
		selfPlay   = flag.Bool("self-play", false, "train against the in-progress model instead of the rule-based opponent")
		reduced    = flag.Bool("reduced", false, "save only the greedy policy, not the full value table")
		evalRounds = flag.Int("eval", 40000, "rounds to evaluate against the rule-based opponent (0: skip)")
		verbose    = flag.Bool("v", false, "log training progress")
	)
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	ctx := context.Background()

	db, err := store.Open(*dbPath)
	if err != nil {
		log.WithError(err).Fatal("opening model store")
	}
	defer db.Close()
	if err := store.Migrate(ctx, db); err != nil {
		log.WithError(err).Fatal("migrating model store")
	}

	trainer := qlearn.NewTrainer[game.State, game.Action](qlearn.Config{
		Iterations:   *iterations,
		Rate:         *rate,
		Discount:     *discount,
		InitialValue: *initial,
		SelfPlay:     *selfPlay,
		BatchSize:    *batch,
	})
	trainer.SetLogger(log)

	if *from != "" {
		m, err := db.LoadModel(ctx, *from)
		if err != nil {
			log.WithError(err).Fatalf("loading model %q", *from)
		}
		if err := trainer.Import(m.Blob); err != nil {
			log.WithError(err).Fatalf("importing model %q", *from)
		}
		log.WithFields(logrus.Fields{"model": *from, "reduced": m.Reduced}).Info("resumed from stored model")
	}

	if err := trainer.Train(ctx, game.New()); err != nil {
		log.WithError(err).Fatal("training aborted")
	}

	table := trainer.Table()

	if *evalRounds > 0 {
		score := game.Evaluate(table, *evalRounds)
		log.WithFields(logrus.Fields{
			"rounds":         *evalRounds,
			"tricks_won":     score,
			"trick_win_rate": float64(score) / float64(*evalRounds),
		}).Info("evaluation against rule-based opponent")
	}

	if *name == "" {
		return
	}

	blob, err := table.Encode(*reduced)
	if err != nil {
		log.WithError(err).Fatal("encoding model")
	}
	err = db.SaveModel(ctx, store.Model{
		Name:       *name,
		RunID:      trainer.RunID(),
		Reduced:    *reduced,
		Iterations: *iterations,
		Blob:       blob,
	})
	if err != nil {
		log.WithError(err).Fatal("saving model")
	}
	log.WithFields(logrus.Fields{"model": *name, "bytes": len(blob)}).Info("model saved")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
