package table_test

import (
	"context"

	"github.com/acksell/entitytable/dynamodb/schema"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// fakeFields resolves names from a fixed list and records every lookup.
type fakeFields struct {
	fields   schema.Fields
	err      error
	fieldsFn func(ctx context.Context, names ...string) (schema.Fields, error)
	calls    [][]string
}

func (f *fakeFields) Fields(ctx context.Context, names ...string) (schema.Fields, error) {
	f.calls = append(f.calls, names)
	if f.fieldsFn != nil {
		return f.fieldsFn(ctx, names...)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.fields, nil
}

type fakeClient struct {
	createTableFn   func(ctx context.Context, in *dynamodb.CreateTableInput) (*dynamodb.CreateTableOutput, error)
	deleteTableFn   func(ctx context.Context, in *dynamodb.DeleteTableInput) (*dynamodb.DeleteTableOutput, error)
	describeTableFn func(ctx context.Context, in *dynamodb.DescribeTableInput) (*dynamodb.DescribeTableOutput, error)
}

func (c *fakeClient) CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	if c.createTableFn != nil {
		return c.createTableFn(ctx, in)
	}
	return &dynamodb.CreateTableOutput{}, nil
}

func (c *fakeClient) DeleteTable(ctx context.Context, in *dynamodb.DeleteTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteTableOutput, error) {
	if c.deleteTableFn != nil {
		return c.deleteTableFn(ctx, in)
	}
	return &dynamodb.DeleteTableOutput{}, nil
}

func (c *fakeClient) DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if c.describeTableFn != nil {
		return c.describeTableFn(ctx, in)
	}
	return &dynamodb.DescribeTableOutput{}, nil
}

func (c *fakeClient) ListTables(context.Context, *dynamodb.ListTablesInput, ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error) {
	return &dynamodb.ListTablesOutput{}, nil
}
