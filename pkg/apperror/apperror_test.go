package apperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNotFound_namesEntity(t *testing.T) {
	err := NotFound("item", "abc")
	assert.Equal(t, "item abc: not found", err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
}

func TestKindOf_wrapped(t *testing.T) {
	err := fmt.Errorf("apply movement: %w", Conflict("item", "x", errors.New("deadlock")))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, IsRetryable(err))

	var appErr *Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "x", appErr.ID)
}

func TestKindOf_plainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, IsRetryable(errors.New("boom")))
}

func TestUnavailable_unwrapsCause(t *testing.T) {
	err := Unavailable(context.DeadlineExceeded)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.True(t, IsRetryable(err))
}

func TestToGRPC(t *testing.T) {
	cases := []struct {
		err  error
		code codes.Code
	}{
		{NotFound("customer", "c1"), codes.NotFound},
		{Conflict("item", "i1", nil), codes.Aborted},
		{Validation("quantity must be positive"), codes.InvalidArgument},
		{Unavailable(errors.New("dial tcp")), codes.Unavailable},
		{AlreadyExists("item", "sku taken"), codes.AlreadyExists},
		{FailedPrecondition("order", "o1", "cannot move from %s to %s", "paid", "unpaid"), codes.FailedPrecondition},
		{PermissionDenied("customer", "c1"), codes.PermissionDenied},
		{errors.New("boom"), codes.Internal},
	}
	for _, tc := range cases {
		st, ok := status.FromError(ToGRPC(tc.err))
		require.True(t, ok)
		assert.Equal(t, tc.code, st.Code(), tc.err.Error())
	}
}

func TestToGRPC_keepsExistingStatus(t *testing.T) {
	in := status.Error(codes.PermissionDenied, "access denied")
	assert.Equal(t, in, ToGRPC(in))
	assert.Nil(t, ToGRPC(nil))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("item", "1")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("bad")))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(Unavailable(nil)))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(PermissionDenied("order", "o1")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("x")))
}
