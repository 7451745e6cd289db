package ddbstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateTable registers a new table. Tables are ACTIVE as soon as they are created.
func (s *Store) CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if params == nil {
		return nil, fmt.Errorf("params is required")
	}
	rec, err := validateCreateTable(params)
	if err != nil {
		return nil, err
	}
	rec.ID = uuid.NewString()
	rec.CreatedAt = s.now().UTC()

	err = s.db.Update(func(txn *badger.Txn) error {
		key := tableKey(rec.Name)
		_, err := txn.Get(key)
		if err == nil {
			return &types.ResourceInUseException{
				Message: aws.String(fmt.Sprintf("Table already exists: %s", rec.Name)),
			}
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("read table %q: %w", rec.Name, err)
		}
		data, err := encodeRecord(rec)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("table created",
		zap.String("table", rec.Name),
		zap.Int("keys", len(rec.KeySchema)),
		zap.String("billingMode", rec.BillingMode),
	)
	return &dynamodb.CreateTableOutput{
		TableDescription: s.describe(rec, types.TableStatusActive),
	}, nil
}
