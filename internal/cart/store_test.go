package cart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingMirror struct{}

func (failingMirror) Load() (State, error) { return Empty(), errors.New("storage unavailable") }
func (failingMirror) Save(State) error     { return errors.New("quota exceeded") }

func TestStore_SurvivesPageReload(t *testing.T) {
	dir := t.TempDir()

	s := NewStore(NewFileMirror(dir), zap.NewNop())
	s.Load()
	s.AddItem(item(1, 2, 599))
	s.AddItem(item(2, 1, 2999))
	s.Toggle()
	require.True(t, s.State().IsOpen)

	// Fresh session over the same mirror.
	s2 := NewStore(NewFileMirror(dir), zap.NewNop())
	s2.Load()

	st := s2.State()
	require.Len(t, st.Items, 2)
	assert.Equal(t, 1, st.Items[0].ID)
	assert.Equal(t, 2, st.Items[1].ID)
	assert.False(t, st.IsOpen, "sidebar must never auto-open from persisted state")
}

func TestStore_MirrorFailuresAreSwallowed(t *testing.T) {
	s := NewStore(failingMirror{}, zap.NewNop())
	s.Load()

	st := s.AddItem(item(1, 2, 100))
	require.Len(t, st.Items, 1)

	st = s.UpdateQuantity(1, 5)
	assert.Equal(t, 5, st.Items[0].Quantity)

	st = s.Clear()
	assert.Empty(t, st.Items)
}

func TestStore_OperationsPersistEachMutation(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(NewFileMirror(dir), zap.NewNop())
	s.Load()

	s.AddItem(item(1, 1, 10))
	s.RemoveItem(1)

	st, err := NewFileMirror(dir).Load()
	require.NoError(t, err)
	assert.Empty(t, st.Items)
}
