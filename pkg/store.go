package msgtree

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble/v2"
)

var ErrResultNotFound = errors.New("result not found")

const resultKeyPrefix = "result/"

// ResultStore persists decoded archives on disk, keyed by archive name. The
// bit message is kept packed.
type ResultStore struct {
	db *pebble.DB
}

type storedResult struct {
	Name       string     `json:"name"`
	Shape      string     `json:"shape"`
	BitCount   int        `json:"bit_count"`
	PackedBits []byte     `json:"packed_bits"`
	Codes      CodeTable  `json:"codes"`
	Message    string     `json:"message"`
	Stats      Statistics `json:"stats"`
}

func OpenResultStore(dir string) (*ResultStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{Logger: storeLogger{}})
	if err != nil {
		return nil, fmt.Errorf("error opening result store %q: %w", dir, err)
	}
	return &ResultStore{db: db}, nil
}

// storeLogger sends pebble's messages through the package logger.
type storeLogger struct{}

func (storeLogger) Infof(format string, args ...interface{}) {
	if configuration.Verbosity > 2 {
		logger.Info(fmt.Sprintf(format, args...), "store")
	}
}

func (storeLogger) Errorf(format string, args ...interface{}) {
	logger.Error(fmt.Sprintf(format, args...))
}

func (storeLogger) Fatalf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	logger.Error(message)
	panic(message)
}

func (s *ResultStore) Close() error {
	return s.db.Close()
}

func (s *ResultStore) Put(result Result) error {
	packed, err := PackBits(result.Bits)
	if err != nil {
		return err
	}
	record := storedResult{
		Name:       result.Name,
		Shape:      result.Shape,
		BitCount:   len(result.Bits),
		PackedBits: packed,
		Codes:      result.Codes,
		Message:    result.Message,
		Stats:      result.Stats,
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("error encoding result %q: %w", result.Name, err)
	}
	if err := s.db.Set(resultKey(result.Name), data, pebble.Sync); err != nil {
		return fmt.Errorf("error storing result %q: %w", result.Name, err)
	}
	return nil
}

func (s *ResultStore) Get(name string) (Result, error) {
	data, closer, err := s.db.Get(resultKey(name))
	if errors.Is(err, pebble.ErrNotFound) {
		return Result{}, fmt.Errorf("%w: %q", ErrResultNotFound, name)
	}
	if err != nil {
		return Result{}, fmt.Errorf("error reading result %q: %w", name, err)
	}
	defer closer.Close()

	var record storedResult
	if err := json.Unmarshal(data, &record); err != nil {
		return Result{}, fmt.Errorf("error decoding result %q: %w", name, err)
	}
	bits, err := UnpackBits(record.PackedBits, record.BitCount)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Name:    record.Name,
		Shape:   record.Shape,
		Bits:    bits,
		Codes:   record.Codes,
		Message: record.Message,
		Stats:   record.Stats,
	}, nil
}

func (s *ResultStore) Delete(name string) error {
	return s.db.Delete(resultKey(name), pebble.Sync)
}

func resultKey(name string) []byte {
	return []byte(resultKeyPrefix + name)
}
