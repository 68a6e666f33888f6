package kernel_test

import (
	"testing"

	"foodshare/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDFromString(t *testing.T) {
	const valid = "550e8400-e29b-41d4-a716-446655440000"

	t.Run("parses canonical and decorated forms", func(t *testing.T) {
		for _, input := range []string{valid, "{" + valid + "}", "urn:uuid:" + valid, "550e8400e29b41d4a716446655440000"} {
			id, err := kernel.UUIDFromString(input)

			require.NoError(t, err, input)
			assert.Equal(t, valid, id.String())
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, input := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716", valid + "-extra"} {
			_, err := kernel.UUIDFromString(input)

			require.Error(t, err, input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})

	t.Run("rejects the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromString(uuid.Nil.String())

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("round trips through Bytes", func(t *testing.T) {
		id := kernel.NewUUID()
		raw := id.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, id.IsEqual(restored))
	})

	t.Run("rejects short input", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55, 0x0e})

		assert.ErrorContains(t, err, "invalid UUID format")
	})

	t.Run("rejects nil bytes", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID

	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, zero.Validate())
	assert.NoError(t, kernel.NewUUID().Validate())
	assert.False(t, kernel.NewUUID().IsEqual(kernel.NewUUID()))
}

func TestOptionalUUID(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		id, err := kernel.OptionalUUIDFromBytes(nil)

		require.NoError(t, err)
		assert.Nil(t, id)
		assert.Nil(t, kernel.OptionalBytes(nil))
	})

	t.Run("round trips", func(t *testing.T) {
		id := kernel.NewUUID()

		restored, err := kernel.OptionalUUIDFromBytes(kernel.OptionalBytes(&id))

		require.NoError(t, err)
		require.NotNil(t, restored)
		assert.True(t, id.IsEqual(*restored))
	})
}
