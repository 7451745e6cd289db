package ddbstore

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/dgraph-io/badger/v4"
)

const maxListTablesLimit = 100

// ListTables returns table names in lexical order, a page at a time.
func (s *Store) ListTables(ctx context.Context, params *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if params == nil {
		params = &dynamodb.ListTablesInput{}
	}
	limit := maxListTablesLimit
	if params.Limit != nil {
		l := int(*params.Limit)
		if l < 1 || l > maxListTablesLimit {
			return nil, validationError("Limit must be between 1 and %d, got %d", maxListTablesLimit, l)
		}
		limit = l
	}
	start := aws.ToString(params.ExclusiveStartTableName)

	out := &dynamodb.ListTablesOutput{TableNames: []string{}}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(tablePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(tableKey(start)); it.ValidForPrefix(opts.Prefix); it.Next() {
			name := tableNameFromKey(it.Item().Key())
			if name == start {
				continue
			}
			if len(out.TableNames) == limit {
				out.LastEvaluatedTableName = aws.String(out.TableNames[limit-1])
				break
			}
			out.TableNames = append(out.TableNames, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
