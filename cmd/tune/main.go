// Command tune sweeps the discount factor and learning rate over a
// grid, trains a self-play model for every combination, and writes each
// combination's evaluation score to a CSV file for plotting.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/mielpeeters/whister/game"
	"github.com/mielpeeters/whister/qlearn"
)

func main() {
	_ = godotenv.Load()

	var (
		out        = flag.String("out", "tune.csv", "CSV file to write the sweep results to")
		iterations = flag.Uint64("iterations", 1000000, "Q-updates per grid point")
		evalRounds = flag.Int("eval", 40000, "evaluation rounds per grid point")
	)
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	f, err := os.Create(*out)
	if err != nil {
		log.WithError(err).Fatal("creating output file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"discount", "learning_rate", "score"}); err != nil {
		log.WithError(err).Fatal("writing header")
	}

	ctx := context.Background()

	for d := 1; d < 10; d++ {
		discount := float64(d) / 10
		for r := 1; r < 10; r++ {
			rate := float64(r) / 50

			trainer := qlearn.NewTrainer[game.State, game.Action](qlearn.Config{
				Iterations:   *iterations,
				Rate:         rate,
				Discount:     discount,
				InitialValue: qlearn.DefaultConfig().InitialValue,
				SelfPlay:     true,
				BatchSize:    qlearn.DefaultConfig().BatchSize,
			})
			trainer.SetLogger(log)

			if err := trainer.Train(ctx, game.New()); err != nil {
				log.WithError(err).Fatal("training aborted")
			}

			score := game.Evaluate(trainer.Table(), *evalRounds)
			winRate := float64(score) / float64(*evalRounds)

			log.WithFields(logrus.Fields{
				"discount": discount,
				"rate":     rate,
				"win_rate": winRate,
			}).Info("grid point finished")

			err := w.Write([]string{
				strconv.FormatFloat(discount, 'g', -1, 64),
				strconv.FormatFloat(rate, 'g', -1, 64),
				strconv.FormatFloat(winRate, 'g', -1, 64),
			})
			if err != nil {
				log.WithError(err).Fatal("writing record")
			}
			w.Flush()
		}
	}

	if err := w.Error(); err != nil {
		log.WithError(err).Fatal("flushing output")
	}
}
