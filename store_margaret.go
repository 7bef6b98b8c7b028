package pmem_benchmark

import (
	"bytes"
	"io"

	"github.com/boreq/errors"
	"go.cryptoscope.co/margaret"
	"go.cryptoscope.co/margaret/offset2"
)

// MargaretRunStore keeps archived runs in an append-only offset log. Run ids
// map directly onto log sequence numbers.
type MargaretRunStore struct {
	log   *offset2.OffsetLog
	codec Codec
}

func NewMargaretRunStore(dir string, codec Codec) (*MargaretRunStore, error) {
	log, err := offset2.Open(dir, newRawMargaretCodec())
	if err != nil {
		return nil, errors.Wrap(err, "error calling open")
	}

	return &MargaretRunStore{log: log, codec: codec}, nil
}

func (s *MargaretRunStore) Append(run ArchivedRun) (RunID, error) {
	data, err := marshalRun(run, s.codec)
	if err != nil {
		return 0, errors.Wrap(err, "error marshaling the run")
	}

	seq, err := s.log.Append(data)
	if err != nil {
		return 0, errors.Wrap(err, "error calling append")
	}

	return RunID(seq), nil
}

func (s *MargaretRunStore) Get(id RunID) (ArchivedRun, error) {
	v, err := s.log.Get(int64(id))
	if err != nil {
		return ArchivedRun{}, errors.Wrap(err, "error calling get")
	}

	run, err := unmarshalRun(v.([]byte), s.codec)
	if err != nil {
		return ArchivedRun{}, errors.Wrap(err, "error unmarshaling the run")
	}

	return run, nil
}

func (s *MargaretRunStore) List() ([]ArchivedRun, error) {
	lastSeq := s.log.Seq()
	if lastSeq < 0 {
		return nil, nil
	}

	var runs []ArchivedRun
	for id := RunID(0); id <= RunID(lastSeq); id++ {
		run, err := s.Get(id)
		if err != nil {
			return nil, errors.Wrap(err, "error getting a run")
		}
		runs = append(runs, run)
	}

	return runs, nil
}

func (s *MargaretRunStore) Close() error {
	return s.log.Close()
}

// rawMargaretCodec passes byte slices through untouched; compression is
// handled by the store's own codec before the log sees the data.
type rawMargaretCodec struct {
}

func newRawMargaretCodec() *rawMargaretCodec {
	return &rawMargaretCodec{}
}

func (m rawMargaretCodec) Marshal(value interface{}) ([]byte, error) {
	return value.([]byte), nil
}

func (m rawMargaretCodec) Unmarshal(data []byte) (interface{}, error) {
	return data, nil
}

func (m rawMargaretCodec) NewDecoder(reader io.Reader) margaret.Decoder {
	return newRawMargaretDecoder(reader)
}

func (m rawMargaretCodec) NewEncoder(writer io.Writer) margaret.Encoder {
	return newRawMargaretEncoder(writer)
}

type rawMargaretEncoder struct{ w io.Writer }

func newRawMargaretEncoder(w io.Writer) rawMargaretEncoder {
	return rawMargaretEncoder{w: w}
}

func (enc rawMargaretEncoder) Encode(v interface{}) error {
	_, err := io.Copy(enc.w, bytes.NewReader(v.([]byte)))
	return err
}

type rawMargaretDecoder struct{ r io.Reader }

func newRawMargaretDecoder(r io.Reader) rawMargaretDecoder {
	return rawMargaretDecoder{r: r}
}

func (dec rawMargaretDecoder) Decode() (interface{}, error) {
	b, err := io.ReadAll(dec.r)
	if err != nil {
		return nil, err
	}
	return b, nil
}
