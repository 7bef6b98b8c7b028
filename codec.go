package pmem_benchmark

import (
	"github.com/boreq/errors"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

// Codec transforms marshaled records before they hit an archive store or a
// trace file.
type Codec interface {
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

var (
	zstdDecoder *zstd.Decoder
	zstdEncoder *zstd.Encoder
)

func init() {
	var err error

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic(err)
	}

	zstdEncoder, err = zstd.NewWriter(nil)
	if err != nil {
		panic(err)
	}
}

type NoopCodec struct {
}

func NewNoopCodec() *NoopCodec {
	return &NoopCodec{}
}

func (c *NoopCodec) Encode(data []byte) ([]byte, error) {
	return data, nil
}

func (c *NoopCodec) Decode(data []byte) ([]byte, error) {
	return data, nil
}

type SnappyCodec struct {
}

func NewSnappyCodec() *SnappyCodec {
	return &SnappyCodec{}
}

func (c *SnappyCodec) Encode(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

func (c *SnappyCodec) Decode(data []byte) ([]byte, error) {
	decoded, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, errors.Wrap(err, "error decoding the data")
	}
	return decoded, nil
}

type ZSTDCodec struct {
}

func NewZSTDCodec() *ZSTDCodec {
	return &ZSTDCodec{}
}

func (c *ZSTDCodec) Encode(data []byte) ([]byte, error) {
	return zstdEncoder.EncodeAll(data, nil), nil
}

func (c *ZSTDCodec) Decode(data []byte) ([]byte, error) {
	decoded, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, errors.Wrap(err, "error decoding the data")
	}
	return decoded, nil
}
