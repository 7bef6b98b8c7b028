package pmem_benchmark

import (
	"testing"

	"github.com/boreq/pmem_benchmark/fixtures"
	"github.com/stretchr/testify/require"
)

func TestCodecsRoundTrip(t *testing.T) {
	payloads := [][]byte{
		[]byte("hello"),
		fixtures.RandomBytes(1000),
	}

	for _, codec := range testCodecs() {
		t.Run(codec.Name, func(t *testing.T) {
			for _, payload := range payloads {
				encoded, err := codec.Codec.Encode(payload)
				require.NoError(t, err)

				decoded, err := codec.Codec.Decode(encoded)
				require.NoError(t, err)

				require.Equal(t, payload, decoded)
			}
		})
	}
}

func TestNoopCodecPassesDataThrough(t *testing.T) {
	codec := NewNoopCodec()

	data := []byte("data")

	encoded, err := codec.Encode(data)
	require.NoError(t, err)
	require.Equal(t, data, encoded)
}

type namedCodec struct {
	Name  string
	Codec Codec
}

func testCodecs() []namedCodec {
	return []namedCodec{
		{
			Name:  "noop",
			Codec: NewNoopCodec(),
		},
		{
			Name:  "snappy",
			Codec: NewSnappyCodec(),
		},
		{
			Name:  "zstd",
			Codec: NewZSTDCodec(),
		},
	}
}
