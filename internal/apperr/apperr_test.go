package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorFormatsWithAndWithoutCause(t *testing.T) {
	require.Equal(t, "bad query", New(KindInput, "bad query").Error())
	wrapped := Wrap(KindFatal, "load failed", errors.New("disk full"))
	require.Equal(t, "load failed: disk full", wrapped.Error())
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := Wrap(KindFatal, "load failed", cause)
	require.ErrorIs(t, wrapped, cause)
}

func TestAsExtractsFromWrappedChain(t *testing.T) {
	original := New(KindInput, "too many radicals")
	chained := fmt.Errorf("lookup: %w", original)

	got, ok := As(chained)
	require.True(t, ok)
	require.Equal(t, KindInput, got.Kind)
}

func TestKindOfDefaultsToFatalForPlainErrors(t *testing.T) {
	require.Equal(t, KindFatal, KindOf(errors.New("boom")))
	require.Equal(t, KindInput, KindOf(New(KindInput, "bad")))
}

func TestStatusCodeMapsInputTo400AndOthersTo500(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, StatusCode(KindInput))
	require.Equal(t, http.StatusInternalServerError, StatusCode(KindFatal))
	require.Equal(t, http.StatusInternalServerError, StatusCode(KindUnavailable))
	require.Equal(t, http.StatusInternalServerError, StatusCode(KindTransient))
}
