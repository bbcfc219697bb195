package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJanitorReclaimsIdleRooms(t *testing.T) {
	f := newFixture(t, defaultGame(), nil)
	_, _ = f.m.Join("R1", "a", "A")
	_, _ = f.m.Join("R2", "b", "B")
	f.clock.Advance(time.Hour)

	j := NewJanitor(f.m, 200*time.Millisecond, 30*time.Minute, zap.NewNop())
	j.Start()
	defer j.Stop()

	require.Eventually(t, func() bool {
		return f.m.Len() == 0
	}, 3*time.Second, 50*time.Millisecond)
}
