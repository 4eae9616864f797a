package storage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuarantineCodec_RestoresCorruptUsersFile(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	corrupt := bytes.Repeat([]byte(`{"admin":{"password_hash":"$2b$12$`), 40)
	packed, err := c.Compress(corrupt)
	require.NoError(t, err)
	assert.Less(t, len(packed), len(corrupt))

	restored, err := c.Decompress(packed)
	require.NoError(t, err)
	assert.Equal(t, corrupt, restored)
}

func TestQuarantineCodec_EmptyInput(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	packed, err := c.Compress(nil)
	require.NoError(t, err)
	restored, err := c.Decompress(packed)
	require.NoError(t, err)
	assert.Empty(t, restored)
}

func TestQuarantineCodec_RejectsGarbage(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Decompress([]byte("definitely not zstd"))
	assert.ErrorContains(t, err, "zstd decode")
}
