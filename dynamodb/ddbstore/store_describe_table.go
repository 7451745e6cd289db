package ddbstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dgraph-io/badger/v4"
)

// DescribeTable returns the stored definition of a table. Tables in the
// catalog are always ACTIVE; a missing table is a *types.ResourceNotFoundException.
func (s *Store) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if params == nil {
		return nil, fmt.Errorf("params is required")
	}
	if err := validateTableName(params.TableName); err != nil {
		return nil, err
	}

	var rec tableRecord
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = getRecord(txn, *params.TableName)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dynamodb.DescribeTableOutput{
		Table: s.describe(rec, types.TableStatusActive),
	}, nil
}

func getRecord(txn *badger.Txn, name string) (tableRecord, error) {
	item, err := txn.Get(tableKey(name))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return tableRecord{}, &types.ResourceNotFoundException{
			Message: aws.String(fmt.Sprintf("Requested resource not found: Table: %s not found", name)),
		}
	}
	if err != nil {
		return tableRecord{}, fmt.Errorf("read table %q: %w", name, err)
	}
	data, err := item.ValueCopy(nil)
	if err != nil {
		return tableRecord{}, fmt.Errorf("read table %q: %w", name, err)
	}
	return decodeRecord(data)
}
