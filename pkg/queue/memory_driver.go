package queue

import "context"

// MemoryDriver is the in-process driver used in development and tests.
// Jobs do not survive a restart.
type MemoryDriver struct {
	jobs chan []byte
}

// NewMemoryDriver allocates a channel-backed queue holding up to 1000
// pending jobs. Push blocks once the buffer is full.
func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{jobs: make(chan []byte, 1000)}
}

func (d *MemoryDriver) Push(payload []byte) error {
	d.jobs <- payload
	return nil
}

func (d *MemoryDriver) Pop(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case payload := <-d.jobs:
		return payload, nil
	}
}
