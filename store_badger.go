package pmem_benchmark

import (
	"github.com/boreq/errors"
	"github.com/dgraph-io/badger/v4"
)

type BadgerRunStore struct {
	db    *badger.DB
	codec Codec
}

func NewBadgerRunStore(dir string, codec Codec) (*BadgerRunStore, error) {
	opt := badger.
		DefaultOptions(dir).
		WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(opt)
	if err != nil {
		return nil, errors.Wrap(err, "error opening the database")
	}

	return &BadgerRunStore{db: db, codec: codec}, nil
}

var badgerRunPrefix = []byte("run")
var badgerLastRunIDKey = []byte("last_run_id")

func (s *BadgerRunStore) Append(run ArchivedRun) (RunID, error) {
	var id RunID

	if err := s.db.Update(func(tx *badger.Txn) error {
		var err error

		id, err = s.getNextRunID(tx)
		if err != nil {
			return errors.Wrap(err, "error calling get next run id")
		}

		data, err := marshalRun(run, s.codec)
		if err != nil {
			return errors.Wrap(err, "error marshaling the run")
		}

		if err := tx.Set(s.runKey(id), data); err != nil {
			return errors.Wrap(err, "error calling set")
		}

		if err := tx.Set(badgerLastRunIDKey, marshalRunID(id)); err != nil {
			return errors.Wrap(err, "error calling set last run id")
		}

		return nil
	}); err != nil {
		return 0, errors.Wrap(err, "error calling update")
	}

	return id, nil
}

func (s *BadgerRunStore) Get(id RunID) (ArchivedRun, error) {
	var run ArchivedRun

	if err := s.db.View(func(tx *badger.Txn) error {
		var err error
		run, err = s.getRun(tx, id)
		return err
	}); err != nil {
		return ArchivedRun{}, errors.Wrap(err, "error calling view")
	}

	return run, nil
}

func (s *BadgerRunStore) List() ([]ArchivedRun, error) {
	var runs []ArchivedRun

	if err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(badgerLastRunIDKey)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return errors.Wrap(err, "error calling get last run id")
		}

		var lastID RunID
		if err := item.Value(func(val []byte) error {
			lastID = unmarshalRunID(val)
			return nil
		}); err != nil {
			return errors.Wrap(err, "error calling item value")
		}

		for id := RunID(0); id <= lastID; id++ {
			run, err := s.getRun(tx, id)
			if err != nil {
				return errors.Wrap(err, "error getting a run")
			}
			runs = append(runs, run)
		}

		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "error calling view")
	}

	return runs, nil
}

func (s *BadgerRunStore) Close() error {
	return s.db.Close()
}

func (s *BadgerRunStore) getRun(tx *badger.Txn, id RunID) (ArchivedRun, error) {
	item, err := tx.Get(s.runKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ArchivedRun{}, errors.New("run not found")
		}
		return ArchivedRun{}, errors.Wrap(err, "error calling get")
	}

	data, err := item.ValueCopy(nil)
	if err != nil {
		return ArchivedRun{}, errors.Wrap(err, "error calling value copy")
	}

	run, err := unmarshalRun(data, s.codec)
	if err != nil {
		return ArchivedRun{}, errors.Wrap(err, "error unmarshaling the run")
	}

	return run, nil
}

func (s *BadgerRunStore) getNextRunID(tx *badger.Txn) (RunID, error) {
	item, err := tx.Get(badgerLastRunIDKey)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return 0, nil
		}

		return 0, errors.Wrap(err, "error calling get last run id")
	}

	var lastID RunID

	if err := item.Value(func(val []byte) error {
		lastID = unmarshalRunID(val)
		return nil
	}); err != nil {
		return 0, errors.Wrap(err, "error calling item value")
	}

	return lastID + 1, nil
}

func (s *BadgerRunStore) runKey(id RunID) []byte {
	return append(badgerRunPrefix, marshalRunID(id)...)
}
