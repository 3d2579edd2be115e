package orders

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	for _, s := range All {
		require.True(t, Valid(s), s)
	}
	require.False(t, Valid("shipped"))
	require.False(t, Valid(""))
}

func TestCanTransition_ForwardFlow(t *testing.T) {
	flow := []Status{
		StatusPending, StatusAccepted, StatusManufacturing, StatusPrinting,
		StatusPackaging, StatusDelivering, StatusFinished,
	}
	for i := 0; i < len(flow)-1; i++ {
		require.True(t, CanTransition(flow[i], flow[i+1]), "%s → %s", flow[i], flow[i+1])
	}
	// skipping a stage is off-flow
	require.False(t, CanTransition(StatusPending, StatusPrinting))
	require.False(t, CanTransition(StatusDelivering, StatusAccepted))
}

func TestCanTransition_SideStates(t *testing.T) {
	for _, from := range All {
		if from == StatusFinished {
			continue
		}
		require.True(t, CanTransition(from, StatusCancelled), from)
		require.True(t, CanTransition(from, StatusOnHold), from)
	}
	require.False(t, CanTransition(StatusFinished, StatusCancelled))
	require.False(t, CanTransition(StatusFinished, StatusOnHold))
}

func TestLabel(t *testing.T) {
	require.Equal(t, "Pending", StatusPending.Label())
	require.Equal(t, "On Hold", StatusOnHold.Label())
	require.Equal(t, "Manufacturing", StatusManufacturing.Label())
}
