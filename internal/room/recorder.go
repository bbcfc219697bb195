package room

import (
	"context"
	"fmt"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"cardclash/internal/shared"
)

// Recorder receives every finished game. Record must return immediately.
type Recorder interface {
	Record(res shared.Result)
}

type nopRecorder struct{}

func (nopRecorder) Record(shared.Result) {}

type ResultWriter interface {
	SaveResult(ctx context.Context, res shared.Result) error
}

const defaultWriteTimeout = 5 * time.Second

// AsyncRecorder writes results on a bounded worker pool. Submission never
// blocks: when every worker is busy the result is dropped and logged.
type AsyncRecorder struct {
	pool    *ants.Pool
	w       ResultWriter
	log     *zap.Logger
	timeout time.Duration
}

func NewAsyncRecorder(w ResultWriter, workers int, log *zap.Logger) (*AsyncRecorder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	pool, err := ants.NewPool(workers,
		ants.WithNonblocking(true),
		ants.WithExpiryDuration(60*time.Second),
		ants.WithPanicHandler(func(p any) {
			log.Error("result writer panicked", zap.Any("panic", p))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("recorder pool init: %w", err)
	}
	return &AsyncRecorder{pool: pool, w: w, log: log, timeout: defaultWriteTimeout}, nil
}

func (a *AsyncRecorder) Record(res shared.Result) {
	err := a.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		if err := a.w.SaveResult(ctx, res); err != nil {
			a.log.Error("save game result",
				zap.String("room", res.RoomID),
				zap.String("winner", res.Winner),
				zap.Error(err),
			)
			return
		}
		a.log.Info("game result saved", zap.String("room", res.RoomID), zap.String("winner", res.Winner))
	})
	if err != nil {
		a.log.Error("dispatch game result",
			zap.String("room", res.RoomID),
			zap.String("winner", res.Winner),
			zap.Error(err),
		)
	}
}

// Close waits up to timeout for pending writes.
func (a *AsyncRecorder) Close(timeout time.Duration) error {
	return a.pool.ReleaseTimeout(timeout)
}
