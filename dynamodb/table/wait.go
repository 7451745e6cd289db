package table

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// WaitUntilActive blocks until the table reports ACTIVE or maxWait elapses.
func (t *Table) WaitUntilActive(ctx context.Context, maxWait time.Duration) error {
	return WaitUntilActive(ctx, t.client, t.name, maxWait)
}

// WaitUntilDeleted blocks until the table no longer exists or maxWait elapses.
func (t *Table) WaitUntilDeleted(ctx context.Context, maxWait time.Duration) error {
	return WaitUntilDeleted(ctx, t.client, t.name, maxWait)
}

// WaitUntilActive polls DescribeTable on client until name is ACTIVE.
func WaitUntilActive(ctx context.Context, client dynamodb.DescribeTableAPIClient, name string, maxWait time.Duration) error {
	w := dynamodb.NewTableExistsWaiter(client)
	return w.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(name)}, maxWait)
}

// WaitUntilDeleted polls DescribeTable on client until name is not found.
func WaitUntilDeleted(ctx context.Context, client dynamodb.DescribeTableAPIClient, name string, maxWait time.Duration) error {
	w := dynamodb.NewTableNotExistsWaiter(client)
	return w.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(name)}, maxWait)
}
