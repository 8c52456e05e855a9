package qlearn

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Config holds the training hyperparameters.
type Config struct {
	// Iterations is the number of Q-updates to apply before stopping.
	Iterations uint64
	// Rate is the learning rate applied to each update.
	Rate float64
	// Discount weighs the bootstrapped future value against the
	// immediate reward.
	Discount float64
	// InitialValue stands in for unvisited (state, action) pairs, both
	// as the bootstrap term and as the base of the first update.
	InitialValue float64
	// SelfPlay makes the opposing seats consult the in-progress shared
	// table instead of the environment's default opponent.
	SelfPlay bool
	// BatchSize is the number of transitions each producer contributes
	// per table flush. The consumer takes the write lock once per
	// producers×BatchSize transitions.
	BatchSize int
}

// DefaultConfig returns the hyperparameters used for the shipped models.
func DefaultConfig() Config {
	return Config{
		Iterations:   100000,
		Rate:         0.05,
		Discount:     0.8,
		InitialValue: 0.5,
		SelfPlay:     false,
		BatchSize:    500,
	}
}

// transition is one experience tuple sent from a producer to the
// consumer. bootstrap is the best known value of the resulting state,
// read under the shared lock at production time.
type transition[S comparable, A comparable] struct {
	state     S
	action    A
	reward    float64
	bootstrap float64
}

// Trainer learns a value Table for any Space by exploration-only
// simulation. One Trainer owns one table; Train may be called again to
// continue training the same table.
//
// The table is the only datum shared between goroutines. Producers take
// the read lock per step (bootstrap lookup, and opposing-seat lookups
// under self-play); the consumer takes the write lock once per batch.
type Trainer[S comparable, A comparable] struct {
	cfg   Config
	runID uuid.UUID
	log   logrus.FieldLogger

	mu    sync.RWMutex
	table *Table[S, A]
}

// NewTrainer returns a trainer with the given hyperparameters and an
// empty table. Iterations is raised to at least one full batch and a
// non-positive BatchSize falls back to the default.
func NewTrainer[S comparable, A comparable](cfg Config) *Trainer[S, A] {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}
	if cfg.Iterations < uint64(cfg.BatchSize) {
		cfg.Iterations = uint64(cfg.BatchSize)
	}
	return &Trainer[S, A]{
		cfg:   cfg,
		runID: uuid.New(),
		log:   logrus.StandardLogger(),
		table: NewTable[S, A](),
	}
}

// SetLogger replaces the trainer's logger.
func (t *Trainer[S, A]) SetLogger(log logrus.FieldLogger) { t.log = log }

// Config returns the trainer's hyperparameters.
func (t *Trainer[S, A]) Config() Config { return t.cfg }

// RunID identifies this trainer's training run in logs and the model store.
func (t *Trainer[S, A]) RunID() uuid.UUID { return t.runID }

// Table returns a deep copy of the current value table.
func (t *Trainer[S, A]) Table() *Table[S, A] {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.table.Clone()
}

// SetTable replaces the trainer's table, e.g. to continue training an
// imported model. The trainer takes ownership of the table.
func (t *Trainer[S, A]) SetTable(table *Table[S, A]) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.table = table
}

// Export serializes the current table.
func (t *Trainer[S, A]) Export(reduced bool) ([]byte, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.table.Encode(reduced)
}

// Import replaces the table with a previously exported blob.
func (t *Trainer[S, A]) Import(blob []byte) error {
	table, err := Decode[S, A](blob)
	if err != nil {
		return err
	}
	t.SetTable(table)
	return nil
}

// Train runs the configured number of Q-updates against the given
// environment and blocks until every producer has stopped.
//
// It spawns max(1, NumCPU−1) producers, each owning an independent
// instance from space.NewSpace(). A producer repeatedly observes its
// state, applies a uniformly random legal action, reads the bootstrap
// value for the resulting state under the shared read lock, and sends
// the transition down a single channel. The calling goroutine consumes:
// once producers×BatchSize transitions have queued up it takes the
// write lock once and applies
//
//	Q[s,a] += Rate × (reward + Discount×bootstrap − Q[s,a])
//
// for the whole batch. Training stops as soon as the update count
// reaches Iterations, even mid-batch; producers observe the closed done
// channel on their next send and exit.
//
// Within one producer updates apply in generation order; across
// producers ordering is interleaved at batch granularity, which tabular
// Q-learning tolerates.
func (t *Trainer[S, A]) Train(ctx context.Context, space Space[S, A]) error {
	producers := runtime.NumCPU() - 1
	if producers < 1 {
		producers = 1
	}
	flushLen := producers * t.cfg.BatchSize

	ch := make(chan transition[S, A], flushLen)
	done := make(chan struct{})

	var g errgroup.Group
	for i := 0; i < producers; i++ {
		sp := space.NewSpace()
		g.Go(func() error {
			t.produce(sp, ch, done)
			return nil
		})
	}

	log := t.log.WithFields(logrus.Fields{
		"run":       t.runID,
		"producers": producers,
		"self_play": t.cfg.SelfPlay,
	})
	log.WithField("iterations", t.cfg.Iterations).Info("training started")

	start := time.Now()
	queue := make([]transition[S, A], 0, flushLen)
	var iter uint64

	// Log roughly every 5% of the run, rounded up to whole batches.
	logEvery := t.cfg.Iterations / 20
	nextLog := logEvery

consume:
	for {
		select {
		case <-ctx.Done():
			close(done)
			_ = g.Wait()
			return ctx.Err()

		case tr := <-ch:
			queue = append(queue, tr)
			if len(queue) < flushLen {
				continue
			}

			t.mu.Lock()
			for len(queue) > 0 {
				tr := queue[len(queue)-1]
				queue = queue[:len(queue)-1]

				old, ok := t.table.Get(tr.state, tr.action)
				if !ok {
					old = t.cfg.InitialValue
				}
				target := tr.reward + t.cfg.Discount*tr.bootstrap
				t.table.Set(tr.state, tr.action, old+t.cfg.Rate*(target-old))

				iter++
				if iter >= t.cfg.Iterations {
					t.mu.Unlock()
					break consume
				}
			}
			t.mu.Unlock()

			if logEvery > 0 && iter >= nextLog {
				nextLog += logEvery
				log.WithFields(logrus.Fields{
					"iter":   iter,
					"states": t.table.Len(),
				}).Debug("training progress")
			}
		}
	}

	close(done)
	_ = g.Wait()

	log.WithFields(logrus.Fields{
		"iter":    iter,
		"states":  t.Table().Len(),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("training finished")
	return nil
}

// produce is one producer loop. It runs unboundedly; the consumer is
// the sole stopping authority and signals it by closing done.
func (t *Trainer[S, A]) produce(sp Space[S, A], ch chan<- transition[S, A], done <-chan struct{}) {
	for {
		state := sp.State()
		action := RandomAction(sp)

		if t.cfg.SelfPlay {
			t.mu.RLock()
			sp.TakeAction(action, t.table)
			t.mu.RUnlock()
		} else {
			sp.TakeAction(action, nil)
		}

		reward := sp.Reward()

		t.mu.RLock()
		_, bootstrap, ok := t.table.BestAction(sp.State())
		t.mu.RUnlock()
		if !ok {
			bootstrap = t.cfg.InitialValue
		}

		select {
		case ch <- transition[S, A]{state: state, action: action, reward: reward, bootstrap: bootstrap}:
		case <-done:
			return
		}
	}
}
