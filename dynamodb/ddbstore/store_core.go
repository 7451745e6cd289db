package ddbstore

import (
	"context"
	"fmt"
	"time"

	"github.com/acksell/entitytable/dynamodb/ddbiface"
	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

var _ ddbiface.TableAPI = (*Store)(nil)

// Store is a local DynamoDB table catalog backed by BadgerDB.
// It answers the table lifecycle calls of ddbiface.TableAPI with the same
// validation rules and error types as DynamoDB.
type Store struct {
	db     *badger.DB
	logger *zap.Logger
	region string
	now    func() time.Time
}

// StoreOptions configures the BadgerDB store.
type StoreOptions struct {
	// Path to the database directory. If empty, uses in-memory mode.
	Path string
	// InMemory forces in-memory mode even if Path is set.
	InMemory bool
	// Logger receives store and BadgerDB logs. If nil, logging is disabled.
	Logger *zap.Logger
	// Region is used in table ARNs. Defaults to "local".
	Region string
}

const defaultRegion = "local"

// New opens a BadgerDB-backed table catalog.
func New(opts StoreOptions) (*Store, error) {
	badgerOpts := badger.DefaultOptions(opts.Path)

	if opts.Path == "" || opts.InMemory {
		// Badger rejects in-memory mode with a directory set.
		badgerOpts = badgerOpts.WithDir("").WithValueDir("").WithInMemory(true)
	}

	logger := opts.Logger
	if logger != nil {
		badgerOpts = badgerOpts.WithLogger(newBadgerLogger(logger))
	} else {
		logger = zap.NewNop()
		badgerOpts = badgerOpts.WithLogger(nil)
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	region := opts.Region
	if region == "" {
		region = defaultRegion
	}

	return &Store{
		db:     db,
		logger: logger,
		region: region,
		now:    time.Now,
	}, nil
}

// Close closes the BadgerDB database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) tableArn(name string) string {
	return fmt.Sprintf("arn:aws:dynamodb:%s:000000000000:table/%s", s.region, name)
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("request cancelled: %w", err)
	}
	return nil
}
