package room

import (
	"time"

	"github.com/RussellLuo/timingwheel"
	"go.uber.org/zap"
)

type every time.Duration

func (e every) Next(prev time.Time) time.Time {
	return prev.Add(time.Duration(e))
}

// Janitor periodically reclaims rooms nobody has touched for a while, so
// abandoned tables do not pile up.
type Janitor struct {
	m        *Manager
	tw       *timingwheel.TimingWheel
	timer    *timingwheel.Timer
	interval time.Duration
	ttl      time.Duration
	log      *zap.Logger
}

func NewJanitor(m *Manager, interval, ttl time.Duration, log *zap.Logger) *Janitor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Janitor{
		m:        m,
		tw:       timingwheel.NewTimingWheel(100*time.Millisecond, 60),
		interval: interval,
		ttl:      ttl,
		log:      log,
	}
}

func (j *Janitor) Start() {
	j.tw.Start()
	j.timer = j.tw.ScheduleFunc(every(j.interval), j.sweep)
	j.log.Info("room janitor started", zap.Duration("interval", j.interval), zap.Duration("ttl", j.ttl))
}

func (j *Janitor) Stop() {
	if j.timer != nil {
		j.timer.Stop()
	}
	j.tw.Stop()
}

func (j *Janitor) sweep() {
	if n := j.m.Sweep(j.ttl); n > 0 {
		j.log.Info("reclaimed idle rooms", zap.Int("count", n), zap.Int("live", j.m.Len()))
	}
}
