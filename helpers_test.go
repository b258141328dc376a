package chanq_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/chanq"
)

// panicValue runs f and returns whatever it panicked with, or nil.
func panicValue(f func()) (r any) {
	defer func() { r = recover() }()
	f()
	return nil
}

func requireInvalidHandle(t *testing.T, handle, op string, f func()) {
	t.Helper()

	r := panicValue(f)
	require.NotNil(t, r, "%s.%s on a moved-from handle must panic", handle, op)

	err, ok := r.(error)
	require.True(t, ok, "panic value %v is not an error", r)
	require.ErrorIs(t, err, chanq.ErrInvalidHandle)

	var he *chanq.HandleError
	require.True(t, errors.As(err, &he))
	require.Equal(t, handle, he.Handle)
	require.Equal(t, op, he.Op)
}
