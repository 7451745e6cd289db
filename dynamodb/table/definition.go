package table

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Definition assembles the CreateTable request for the table.
//
// DynamoDB requires an attribute definition for every key attribute and
// rejects definitions for anything else, so only the key schema's attributes
// are declared.
func (t *Table) Definition(ctx context.Context) (*dynamodb.CreateTableInput, error) {
	keySchema, err := t.KeySchema(ctx)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, k := range keySchema {
		if name := aws.ToString(k.AttributeName); name != IDField {
			names = append(names, name)
		}
	}
	attrs, err := t.AttributeDefinitions(ctx, names...)
	if err != nil {
		return nil, err
	}

	return &dynamodb.CreateTableInput{
		TableName:            aws.String(t.name),
		AttributeDefinitions: attrs,
		KeySchema:            keySchema,
		ProvisionedThroughput: &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(t.config.ReadCapacity),
			WriteCapacityUnits: aws.Int64(t.config.WriteCapacity),
		},
	}, nil
}
