package pmem_benchmark

import (
	"path"

	"github.com/boreq/errors"
	"go.etcd.io/bbolt"
)

type BoltRunStore struct {
	db    *bbolt.DB
	codec Codec
}

func NewBoltRunStore(dir string, codec Codec) (*BoltRunStore, error) {
	f := path.Join(dir, "runs.bolt")
	db, err := bbolt.Open(f, 0600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "error opening the database")
	}

	return &BoltRunStore{db: db, codec: codec}, nil
}

var boltRunsBucketName = []byte("runs")

func (s *BoltRunStore) Append(run ArchivedRun) (RunID, error) {
	var id RunID

	if err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(boltRunsBucketName)
		if err != nil {
			return errors.Wrap(err, "error creating the bucket")
		}

		seqInt, err := bucket.NextSequence()
		if err != nil {
			return errors.Wrap(err, "error calling next sequence")
		}
		id = RunID(seqInt - 1)

		data, err := marshalRun(run, s.codec)
		if err != nil {
			return errors.Wrap(err, "error marshaling the run")
		}

		return bucket.Put(marshalRunID(id), data)
	}); err != nil {
		return 0, errors.Wrap(err, "error calling update")
	}

	return id, nil
}

func (s *BoltRunStore) Get(id RunID) (ArchivedRun, error) {
	var run ArchivedRun

	if err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(boltRunsBucketName)
		if bucket == nil {
			return errors.New("run not found")
		}

		data := bucket.Get(marshalRunID(id))
		if data == nil {
			return errors.New("run not found")
		}

		var err error
		run, err = unmarshalRun(data, s.codec)
		return errors.Wrap(err, "error unmarshaling the run")
	}); err != nil {
		return ArchivedRun{}, errors.Wrap(err, "error calling view")
	}

	return run, nil
}

func (s *BoltRunStore) List() ([]ArchivedRun, error) {
	var runs []ArchivedRun

	if err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(boltRunsBucketName)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			run, err := unmarshalRun(v, s.codec)
			if err != nil {
				return errors.Wrap(err, "error unmarshaling a run")
			}

			runs = append(runs, run)
			return nil
		})
	}); err != nil {
		return nil, errors.Wrap(err, "error calling view")
	}

	return runs, nil
}

func (s *BoltRunStore) Close() error {
	return s.db.Close()
}
