package fragment_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/atrail/internal/fragment"
)

// TrackerSuite exercises linking, cycle detection and rollback.
type TrackerSuite struct {
	suite.Suite
}

func TestTrackerSuite(t *testing.T) {
	suite.Run(t, new(TrackerSuite))
}

// TestTriangleCloses links three edges head to tail; the last link closes the
// global cycle.
func (s *TrackerSuite) TestTriangleCloses() {
	tr := fragment.New(3)
	require.Equal(s.T(), 3, tr.Fragments())

	require.NoError(s.T(), tr.Link(1, 2)) // e0 → e1
	require.NoError(s.T(), tr.Link(3, 4)) // e1 → e2
	require.Equal(s.T(), 1, tr.Fragments())
	require.False(s.T(), tr.IsComplete())

	require.NoError(s.T(), tr.Link(5, 0)) // e2 → e0
	require.True(s.T(), tr.Closed())
	require.True(s.T(), tr.IsComplete())
	require.Equal(s.T(), 3, tr.Depth())
}

// TestPrematureCycleRejected refuses to close a fragment that misses edges.
func (s *TrackerSuite) TestPrematureCycleRejected() {
	tr := fragment.New(4)
	require.NoError(s.T(), tr.Link(1, 2))
	require.ErrorIs(s.T(), tr.Link(3, 0), fragment.ErrPrematureCycle) // {e0,e1} while e2,e3 remain
	require.Equal(s.T(), 1, tr.Depth(), "failed link leaves no trace")
	require.Equal(s.T(), -1, tr.Partner(3))

	// A single edge closing on itself is premature unless it is the only one.
	require.ErrorIs(s.T(), tr.Link(4, 5), fragment.ErrPrematureCycle)
	solo := fragment.New(1)
	require.NoError(s.T(), solo.Link(0, 1))
	require.True(s.T(), solo.IsComplete())
}

func (s *TrackerSuite) TestAlreadyLinkedAndRange() {
	tr := fragment.New(2)
	require.NoError(s.T(), tr.Link(0, 2))
	require.ErrorIs(s.T(), tr.Link(0, 3), fragment.ErrAlreadyLinked)
	require.ErrorIs(s.T(), tr.Link(3, 2), fragment.ErrAlreadyLinked)
	require.ErrorIs(s.T(), tr.Link(1, 1), fragment.ErrAlreadyLinked)
	require.ErrorIs(s.T(), tr.Link(1, 4), fragment.ErrEndRange)
	require.ErrorIs(s.T(), tr.Link(-1, 1), fragment.ErrEndRange)
}

// TestUndoRestoresState links a full cycle, then unwinds it link by link and
// checks that every intermediate state matches the state seen on the way in.
func (s *TrackerSuite) TestUndoRestoresState() {
	type snap struct {
		fragments int
		closed    bool
		partners  []int
	}
	take := func(tr *fragment.Tracker) snap {
		return snap{tr.Fragments(), tr.Closed(), tr.Partners()}
	}

	tr := fragment.New(4)
	links := [][2]int{{1, 2}, {5, 6}, {3, 4}, {7, 0}}
	var history []snap
	for _, l := range links {
		history = append(history, take(tr))
		require.NoError(s.T(), tr.Link(l[0], l[1]))
	}
	require.True(s.T(), tr.IsComplete())

	for i := len(links) - 1; i >= 0; i-- {
		require.ErrorIs(s.T(), tr.UndoLink(99, 98), fragment.ErrUndoOrder)
		require.NoError(s.T(), tr.UndoLink(links[i][1], links[i][0]))
		require.Equal(s.T(), history[i], take(tr), "after undoing link %d", i)
	}
	require.Equal(s.T(), 0, tr.Depth())
	_, _, ok := tr.Undo()
	require.False(s.T(), ok)
	require.ErrorIs(s.T(), tr.UndoLink(1, 2), fragment.ErrUndoOrder)
}

func (s *TrackerSuite) TestSameAndReset() {
	tr := fragment.New(3)
	require.NoError(s.T(), tr.Link(1, 2))
	require.True(s.T(), tr.Same(0, 1))
	require.False(s.T(), tr.Same(0, 2))

	tr.Reset()
	require.Equal(s.T(), 3, tr.Fragments())
	require.Equal(s.T(), 0, tr.Depth())
	require.False(s.T(), tr.Same(0, 1))
}
