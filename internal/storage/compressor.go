package storage

import (
	"aurora/internal/storage/interfaces"
	"fmt"
	"github.com/klauspost/compress/zstd"
)

// Quarantined store files are small and rarely read back, so the codec trades
// speed for ratio and refuses to inflate anything past maxQuarantineSize.
const maxQuarantineSize = 64 << 20

type quarantineCodec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func NewZstdCompressor() (interfaces.CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBestCompression),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxQuarantineSize),
	)
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &quarantineCodec{encoder: encoder, decoder: decoder}, nil
}

func (c *quarantineCodec) Compress(data []byte) ([]byte, error) {
	return c.encoder.EncodeAll(data, nil), nil
}

func (c *quarantineCodec) Decompress(data []byte) ([]byte, error) {
	out, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return out, nil
}

func (c *quarantineCodec) Close() {
	_ = c.encoder.Close()
	c.decoder.Close()
}
