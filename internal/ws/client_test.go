package ws

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shootout-game/shootout-go/internal/model"
	"github.com/shootout-game/shootout-go/internal/testutil"
)

func TestClientSendAfterCloseIsDropped(t *testing.T) {
	c := NewClient(nil, testutil.NopLogger())
	c.close()

	require.NotPanics(t, func() {
		c.Send(model.EventPongTest, nil)
	})
}

func TestClientCloseIsIdempotent(t *testing.T) {
	c := NewClient(nil, testutil.NopLogger())

	require.NotPanics(t, func() {
		c.close()
		c.close()
	})
}

// A peer's read goroutine can broadcast to this client at any point relative
// to its teardown, so Send and close must be safe to race.
func TestClientSendRacesClose(t *testing.T) {
	c := NewClient(nil, testutil.NopLogger())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Send(model.EventPongTest, nil)
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		c.close()
	}()

	require.NotPanics(t, wg.Wait)
}
