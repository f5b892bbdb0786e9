package resource

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxConcurrentIO is the maximum number of store calls in flight.
	// If 0, unlimited.
	MaxConcurrentIO int64

	// IOLimitBytesPerSec is the maximum write throughput.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller enforces a Config. A nil *Controller imposes no limits.
type Controller struct {
	cfg Config

	ioSem     *semaphore.Weighted // nil if unlimited
	ioLimiter *rate.Limiter       // nil if unlimited
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MaxConcurrentIO > 0 {
		c.ioSem = semaphore.NewWeighted(cfg.MaxConcurrentIO)
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// Config returns the limits the controller was created with.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// AcquireSlot reserves an I/O slot, blocking until one is free or ctx is
// canceled.
func (c *Controller) AcquireSlot(ctx context.Context) error {
	if c == nil || c.ioSem == nil {
		return ctx.Err()
	}
	return c.ioSem.Acquire(ctx, 1)
}

// TryAcquireSlot reserves an I/O slot without blocking.
func (c *Controller) TryAcquireSlot() bool {
	if c == nil || c.ioSem == nil {
		return true
	}
	return c.ioSem.TryAcquire(1)
}

// ReleaseSlot releases a slot obtained by AcquireSlot or TryAcquireSlot.
func (c *Controller) ReleaseSlot() {
	if c == nil || c.ioSem == nil {
		return
	}
	c.ioSem.Release(1)
}

// AcquireIO waits until the IO limit allows the specified number of bytes.
// Requests larger than one second of budget are split into burst-sized
// waits.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}

	burst := c.ioLimiter.Burst()
	for bytes > 0 {
		n := min(bytes, burst)
		if err := c.ioLimiter.WaitN(ctx, n); err != nil {
			return err
		}
		bytes -= n
	}
	return nil
}
