package filemap

import (
	"context"
	"sync"
	"time"

	"github.com/vendorhub/vendorhub/backend/go-services/pkg/logger"
	"github.com/vendorhub/vendorhub/backend/go-services/pkg/metrics"
)

const defaultTimeout = 5 * time.Second

// Dispatcher runs tracker updates in the background once the primary write
// has been acknowledged. Outcomes are visible only in logs and metrics.
type Dispatcher struct {
	tracker Tracker
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDispatcher(tracker Tracker, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Dispatcher{tracker: tracker, timeout: timeout}
}

// Attach marks ids as referenced.
func (d *Dispatcher) Attach(ids []interface{}) { d.dispatch(ids, Attached) }

// Detach marks ids as no longer referenced.
func (d *Dispatcher) Detach(ids []interface{}) { d.dispatch(ids, Detached) }

func (d *Dispatcher) dispatch(ids []interface{}, status Status) {
	if d == nil || d.tracker == nil || len(ids) == 0 {
		return
	}
	batch := append([]interface{}(nil), ids...)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.tracker.BulkSetStatus(ctx, batch, status); err != nil {
			metrics.FileMapUpdates.WithLabelValues(status.String(), "error").Inc()
			logger.Errorf("filemap: %d file(s) %s failed: %v", len(batch), status, err)
			return
		}
		metrics.FileMapUpdates.WithLabelValues(status.String(), "ok").Inc()
		logger.Debugf("filemap: %d file(s) %s", len(batch), status)
	}()
}

// Wait blocks until every dispatched update has finished.
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}
