package chanq_test

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/chanq"
)

func TestSender_MoveTransfersCapability(t *testing.T) {
	tx, rx := chanq.New[int]()
	moved := tx.Move()

	assert.False(t, tx.Valid())
	assert.True(t, moved.Valid())

	moved.Send(1)
	v, ok := rx.TryRecv()
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestSender_MovedRejectsEveryOperation(t *testing.T) {
	tx, _ := chanq.New[int]()
	_ = tx.Move()

	requireInvalidHandle(t, "Sender", "Send", func() { tx.Send(1) })
	requireInvalidHandle(t, "Sender", "Close", func() { tx.Close() })
	requireInvalidHandle(t, "Sender", "Closed", func() { tx.Closed() })
	requireInvalidHandle(t, "Sender", "Stats", func() { tx.Stats() })
	requireInvalidHandle(t, "Sender", "Move", func() { tx.Move() })
	requireInvalidHandle(t, "Sender", "Clone", func() { tx.Clone() })
}

func TestReceiver_MovedRejectsEveryOperation(t *testing.T) {
	tx, rx := chanq.New[int]()
	tx.Send(1)
	moved := rx.Move()

	requireInvalidHandle(t, "Receiver", "Recv", func() { rx.Recv() })
	requireInvalidHandle(t, "Receiver", "RecvContext", func() { _, _ = rx.RecvContext(context.Background()) })
	requireInvalidHandle(t, "Receiver", "TryRecv", func() { rx.TryRecv() })
	requireInvalidHandle(t, "Receiver", "Closed", func() { rx.Closed() })
	requireInvalidHandle(t, "Receiver", "Len", func() { rx.Len() })
	requireInvalidHandle(t, "Receiver", "Empty", func() { rx.Empty() })
	requireInvalidHandle(t, "Receiver", "Stats", func() { rx.Stats() })
	requireInvalidHandle(t, "Receiver", "Move", func() { rx.Move() })
	requireInvalidHandle(t, "Receiver", "Clone", func() { rx.Clone() })
	requireInvalidHandle(t, "Receiver", "Iter", func() { rx.Iter() })
	requireInvalidHandle(t, "Receiver", "All", func() { rx.All() })

	// The value is still there for the new owner.
	v, ok := moved.TryRecv()
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestHandle_UsedOnceAfterMoveFails(t *testing.T) {
	tx, rx := chanq.New[int]()
	keep := rx.Move()
	_ = keep

	r := panicValue(func() { rx.TryRecv() })
	require.NotNil(t, r)

	other := tx
	tx = tx.Move()
	requireInvalidHandle(t, "Sender", "Send", func() { other.Send(1) })
	assert.NotPanics(t, func() { tx.Send(1) })
}

func TestHandle_NilIsInvalid(t *testing.T) {
	var tx *chanq.Sender[int]
	var rx *chanq.Receiver[int]

	assert.False(t, tx.Valid())
	assert.False(t, rx.Valid())
	requireInvalidHandle(t, "Sender", "Send", func() { tx.Send(1) })
	requireInvalidHandle(t, "Receiver", "Recv", func() { rx.Recv() })
}

func TestHandle_Clone(t *testing.T) {
	tx, rx := chanq.New[int]()
	tx2 := tx.Clone()
	rx2 := rx.Clone()

	tx.Send(1)
	tx2.Send(2)

	v, ok := rx2.TryRecv()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	v, ok = rx.TryRecv()
	require.True(t, ok)
	assert.Equal(t, 2, v)

	tx2.Close()
	assert.True(t, tx.Closed(), "clones share the closed flag")
	assert.True(t, rx.Closed())

	// Moving a clone leaves the original usable.
	_ = tx2.Move()
	assert.True(t, tx.Valid())
}

func TestHandleError_Message(t *testing.T) {
	err := &chanq.HandleError{Handle: "Sender", Op: "Send"}
	assert.Contains(t, err.Error(), "Sender.Send")
	assert.ErrorIs(t, err, chanq.ErrInvalidHandle)
}

func TestHandle_ObserverOutlivesMove(t *testing.T) {
	tx, rx := chanq.New[int](chanq.WithName("obs"))
	obs := rx.Observer()
	tx.Send(1).Send(2)

	moved := rx.Move()
	moved.Recv()

	st := obs.Stats()
	assert.Equal(t, "obs", st.Name)
	assert.EqualValues(t, 2, st.Sent)
	assert.EqualValues(t, 1, st.Received)
	assert.Equal(t, tx.Observer().Stats().Name, st.Name)

	requireInvalidHandle(t, "Receiver", "Observer", func() { rx.Observer() })
}

// hasLockerField reports whether typ embeds a field whose pointer
// implements sync.Locker, which is what go vet's copylocks keys on.
func hasLockerField(typ reflect.Type) bool {
	locker := reflect.TypeFor[sync.Locker]()
	for i := 0; i < typ.NumField(); i++ {
		if reflect.PointerTo(typ.Field(i).Type).Implements(locker) {
			return true
		}
	}
	return false
}

func TestHandle_CopyGuarded(t *testing.T) {
	assert.True(t, hasLockerField(reflect.TypeFor[chanq.Sender[int]]()))
	assert.True(t, hasLockerField(reflect.TypeFor[chanq.Receiver[int]]()))
}
