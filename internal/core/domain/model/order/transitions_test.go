package order_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lifecycle is written out independently of the package so that any drift in
// the table is caught.
var lifecycle = map[order.Status][]order.Status{
	order.Placed:            {order.Accepted, order.DisputeOpen},
	order.Accepted:          {order.InProgress, order.DisputeOpen},
	order.InProgress:        {order.M1Submitted, order.FinalDelivered, order.DisputeOpen},
	order.M1Submitted:       {order.RevisionRequested, order.FinalDelivered, order.DisputeOpen},
	order.RevisionRequested: {order.InProgress, order.FinalDelivered, order.DisputeOpen},
	order.FinalDelivered:    {order.Completed, order.DisputeOpen},
	order.Completed:         {},
	order.PartnerAssigned:   {order.OutForDelivery, order.DisputeOpen},
	order.OutForDelivery:    {order.Delivered, order.DisputeOpen},
	order.Delivered:         {order.Completed, order.DisputeOpen},
	order.DisputeOpen:       {order.Completed},
}

func TestCanTransition_MatchesLifecycleExactly(t *testing.T) {
	for _, from := range order.AllStatuses() {
		allowed := map[order.Status]bool{}
		for _, to := range lifecycle[from] {
			allowed[to] = true
		}

		for _, to := range order.AllStatuses() {
			t.Run(fmt.Sprintf("%s->%s", from, to), func(t *testing.T) {
				assert.Equal(t, allowed[to], order.CanTransition(from, to))
			})
		}
	}
}

func TestNextStatuses_RoundTripsTable(t *testing.T) {
	for _, from := range order.AllStatuses() {
		t.Run(from.String(), func(t *testing.T) {
			assert.ElementsMatch(t, lifecycle[from], from.NextStatuses())
		})
	}
}

func TestNextStatuses_ReturnsFreshCopy(t *testing.T) {
	next := order.Placed.NextStatuses()
	require.NotEmpty(t, next)
	next[0] = order.Completed

	assert.Equal(t, []order.Status{order.Accepted, order.DisputeOpen}, order.Placed.NextStatuses())
	assert.False(t, order.CanTransition(order.Placed, order.Completed))
}

func TestCanTransition_Properties(t *testing.T) {
	t.Run("no status transitions to itself", func(t *testing.T) {
		for _, s := range order.AllStatuses() {
			assert.False(t, order.CanTransition(s, s), s.String())
		}
	})

	t.Run("completed has no outgoing transitions", func(t *testing.T) {
		for _, to := range order.AllStatuses() {
			assert.False(t, order.CanTransition(order.Completed, to), to.String())
		}
		assert.Empty(t, order.Completed.NextStatuses())
	})

	t.Run("dispute is reachable from every status except completed and itself", func(t *testing.T) {
		for _, s := range order.AllStatuses() {
			want := s != order.Completed && s != order.DisputeOpen
			assert.Equal(t, want, order.CanTransition(s, order.DisputeOpen), s.String())
		}
	})

	t.Run("dispute only leaves to completed", func(t *testing.T) {
		assert.Equal(t, []order.Status{order.Completed}, order.DisputeOpen.NextStatuses())
	})

	t.Run("placed cannot skip to completed", func(t *testing.T) {
		assert.False(t, order.CanTransition(order.Placed, order.Completed))
	})

	t.Run("physical branch is not entered from the digital branch", func(t *testing.T) {
		assert.False(t, order.CanTransition(order.FinalDelivered, order.PartnerAssigned))
		assert.False(t, order.CanTransition(order.Accepted, order.PartnerAssigned))
	})

	t.Run("unknown values return false", func(t *testing.T) {
		assert.False(t, order.CanTransition(order.Unknown, order.Accepted))
		assert.False(t, order.CanTransition(order.Placed, order.Unknown))
		assert.False(t, order.CanTransition(order.Status(-3), order.Status(42)))
		assert.Empty(t, order.Status(42).NextStatuses())
	})
}

func TestValidateTransition(t *testing.T) {
	t.Run("should accept a legal move", func(t *testing.T) {
		require.NoError(t, order.ValidateTransition(order.M1Submitted, order.RevisionRequested))
	})

	t.Run("should name the rejected move", func(t *testing.T) {
		err := order.ValidateTransition(order.Completed, order.InProgress)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		var invalid *order.InvalidTransitionError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, order.Completed, invalid.From)
		assert.Equal(t, order.InProgress, invalid.To)
		assert.Equal(t, "invalid status transition: COMPLETED -> IN_PROGRESS", err.Error())
	})
}

func TestCanTransition_ConcurrentReads(t *testing.T) {
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, from := range order.AllStatuses() {
				for _, to := range order.AllStatuses() {
					_ = order.CanTransition(from, to)
				}
				_ = from.NextStatuses()
			}
		}()
	}
	wg.Wait()
}
