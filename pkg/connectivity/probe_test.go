package connectivity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func TestProbe_Throttling(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	checks := 0
	var checkErr error

	probe := NewProbe(
		func(ctx context.Context) error {
			checks++
			return checkErr
		},
		WithClock(clock.Now),
		WithReachability(func() bool { return true }),
	)

	ctx := context.Background()

	assert.True(t, probe.Online(ctx))
	assert.Equal(t, 1, checks)

	// Dentro do intervalo de 30s o resultado anterior é reaproveitado
	checkErr = errors.New("conexão recusada")
	clock.Advance(29 * time.Second)
	assert.True(t, probe.Online(ctx))
	assert.Equal(t, 1, checks)

	clock.Advance(time.Second)
	assert.False(t, probe.Online(ctx), "erro na leitura remota significa offline")
	assert.Equal(t, 2, checks)
	assert.Equal(t, clock.Now(), probe.LastCheckedAt())

	checkErr = nil
	probe.Invalidate()
	assert.True(t, probe.Online(ctx))
	assert.Equal(t, 3, checks)
}

func TestProbe_ReachabilityShortCircuit(t *testing.T) {
	checks := 0
	var changes []bool

	probe := NewProbe(
		func(ctx context.Context) error {
			checks++
			return nil
		},
		WithReachability(func() bool { return false }),
		WithOnChange(func(online bool) { changes = append(changes, online) }),
	)

	assert.False(t, probe.Online(context.Background()))
	assert.Equal(t, 0, checks, "sem rede a leitura remota não deve ser feita")
	assert.Equal(t, []bool{false}, changes)
	assert.False(t, probe.Status().Online)
}
