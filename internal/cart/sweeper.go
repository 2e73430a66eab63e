package cart

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunSweeper discards carts idle for longer than idle every interval until
// ctx is done.
func RunSweeper(ctx context.Context, store SessionStore, idle, interval time.Duration, m *Metrics, log *zap.Logger) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n := store.Sweep(ctx, idle)
			if n == 0 {
				continue
			}
			if m != nil {
				m.Swept.Add(float64(n))
			}
			if log != nil {
				log.Info("idle carts swept", zap.Int("count", n))
			}
		}
	}
}
