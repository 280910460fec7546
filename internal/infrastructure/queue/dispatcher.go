package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/taskboard/tracker-api/internal/api/metrics"
	"github.com/taskboard/tracker-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes activity records to a fixed set of workers using
// consistent hashing on the entity id, guaranteeing per-entity ordering in
// the audit trail.
type Dispatcher struct {
	workers  []chan ports.ActivityInput
	recorder ports.ActivityRecorder
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, recorder ports.ActivityRecorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.ActivityInput, numWorkers),
		recorder: recorder,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ActivityInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Emit hands an activity record to the worker responsible for its entity.
// Recording is best-effort: when the worker's buffer is full the record is
// dropped with a warning rather than blocking the request path.
func (d *Dispatcher) Emit(in ports.ActivityInput) {
	select {
	case d.workers[d.shardIndex(in.EntityID)] <- in:
		metrics.ActivityQueueDepth.Inc()
	default:
		d.log.Warn().
			Str("entity_type", in.EntityType).
			Str("entity_id", in.EntityID).
			Str("action", in.Action).
			Msg("activity queue full, record dropped")
	}
}

// shardIndex maps an entity id deterministically to a worker index.
func (d *Dispatcher) shardIndex(entityID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(entityID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ActivityInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-ch:
			if !ok {
				return
			}
			metrics.ActivityQueueDepth.Dec()
			if err := d.recorder.Record(ctx, in); err != nil {
				d.log.Error().Err(err).
					Str("entity_type", in.EntityType).
					Str("entity_id", in.EntityID).
					Int("worker_id", id).
					Msg("activity recording failed")
			}
		}
	}
}
