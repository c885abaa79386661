// Package queue runs background model retrains on a single worker.
package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/api/metrics"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

const defaultRetrainTimeout = 10 * time.Minute

// Retrainer serializes retrain requests on one worker goroutine. At most one
// request waits while a retrain runs; further requests coalesce into it.
type Retrainer struct {
	trainer  ports.ModelTrainer
	requests chan string
	timeout  time.Duration
	log      zerolog.Logger
	done     chan struct{}
}

var _ ports.RetrainQueue = (*Retrainer)(nil)

// NewRetrainer creates a Retrainer. If timeout <= 0, defaultRetrainTimeout
// bounds each retrain.
func NewRetrainer(trainer ports.ModelTrainer, timeout time.Duration, log zerolog.Logger) *Retrainer {
	if timeout <= 0 {
		timeout = defaultRetrainTimeout
	}
	return &Retrainer{
		trainer:  trainer,
		requests: make(chan string, 1),
		timeout:  timeout,
		log:      log,
		done:     make(chan struct{}),
	}
}

// Start launches the worker. It stops when ctx is cancelled.
func (r *Retrainer) Start(ctx context.Context) {
	go r.run(ctx)
}

// Done is closed once the worker has stopped.
func (r *Retrainer) Done() <-chan struct{} {
	return r.done
}

// Enqueue schedules a retrain and never blocks. It reports false when a
// request is already pending.
func (r *Retrainer) Enqueue(reason string) bool {
	select {
	case r.requests <- reason:
		metrics.RetrainQueueDepth.Set(float64(len(r.requests)))
		return true
	default:
		return false
	}
}

func (r *Retrainer) run(ctx context.Context) {
	defer close(r.done)
	for {
		select {
		case <-ctx.Done():
			return
		case reason := <-r.requests:
			metrics.RetrainQueueDepth.Set(float64(len(r.requests)))
			r.retrain(ctx, reason)
		}
	}
}

func (r *Retrainer) retrain(ctx context.Context, reason string) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	info, err := r.trainer.Retrain(ctx)
	if err != nil {
		r.log.Error().Err(err).Str("reason", reason).Msg("retrain failed")
		return
	}
	r.log.Info().
		Str("reason", reason).
		Str("version", info.Version).
		Int("examples", info.Examples).
		Dur("took", time.Since(start)).
		Msg("retrain completed")
}
