package status

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "forbidden", KindForbidden.String())
	assert.Equal(t, "invalid", KindInvalid.String())
	assert.Equal(t, "unavailable", KindUnavailable.String())
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(NotFound("Booking not found."))
	require.True(t, ok)
	assert.Equal(t, KindNotFound, kind)

	_, ok = KindOf(errors.New("sqlite is on fire"))
	assert.False(t, ok)

	_, ok = KindOf(nil)
	assert.False(t, ok)
}

func TestKindOf_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("create booking: %w", Unavailable("No seats available."))

	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindUnavailable, kind)
}

func TestUnavailablef(t *testing.T) {
	err := Unavailablef("Seat %s is not available.", "A-1")
	assert.Equal(t, "Seat A-1 is not available.", err.Error())
}
