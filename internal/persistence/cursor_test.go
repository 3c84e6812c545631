package persistence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/routine/internal/domain"
)

func TestCursorRoundTrip(t *testing.T) {
	cursor := &domain.Cursor{
		StartedAt: time.Date(2026, time.March, 10, 9, 30, 0, 123456789, time.UTC),
		ID:        "0c9c7c1e-2f57-4a7e-8f11-6f2a0d4c9b10",
	}

	token := EncodeCursor(cursor)
	require.NotEmpty(t, token)

	decoded, err := DecodeCursor(token)
	require.NoError(t, err)
	require.True(t, decoded.StartedAt.Equal(cursor.StartedAt))
	require.Equal(t, cursor.ID, decoded.ID)
}

func TestCursorEmptyToken(t *testing.T) {
	require.Empty(t, EncodeCursor(nil))

	decoded, err := DecodeCursor("  ")
	require.NoError(t, err)
	require.Nil(t, decoded)
}

func TestCursorRejectsMalformedTokens(t *testing.T) {
	_, err := DecodeCursor("not-base64!!!")
	require.Error(t, err)

	_, err = DecodeCursor("bm8tc2VwYXJhdG9y") // "no-separator"
	require.Error(t, err)
}
