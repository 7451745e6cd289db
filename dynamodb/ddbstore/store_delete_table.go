package ddbstore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// DeleteTable removes a table. The returned description has status DELETING,
// as DynamoDB reports, although the table is already gone.
func (s *Store) DeleteTable(ctx context.Context, params *dynamodb.DeleteTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteTableOutput, error) {
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
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		rec, err = getRecord(txn, *params.TableName)
		if err != nil {
			return err
		}
		return txn.Delete(tableKey(rec.Name))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("table deleted", zap.String("table", rec.Name))
	return &dynamodb.DeleteTableOutput{
		TableDescription: s.describe(rec, types.TableStatusDeleting),
	}, nil
}
