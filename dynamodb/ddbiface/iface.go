// Package ddbiface provides the interface for DynamoDB table lifecycle calls.
// It is satisfied by both the AWS SDK v2 DynamoDB client and by
// ddbstore.Store, allowing code to work with either real AWS DynamoDB or
// a local BadgerDB-backed table catalog.
package ddbiface

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// TableAPI mirrors the table management method signatures of the AWS SDK v2 *dynamodb.Client.
type TableAPI interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DeleteTable(ctx context.Context, params *dynamodb.DeleteTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	ListTables(ctx context.Context, params *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error)
}

var _ TableAPI = (*dynamodb.Client)(nil)
