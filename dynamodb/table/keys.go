package table

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// IDField is the identity field. It is always the partition key and always
// declared as a string, whatever type the schema gives it.
const IDField = "id"

// KeySchema returns the table's key schema: the HASH key on IDField followed
// by the RANGE key when a sort key is configured.
//
// The sort key is looked up in the schema and the RANGE entry carries the name
// the schema resolved, which may differ from the configured one.
func (t *Table) KeySchema(ctx context.Context) ([]types.KeySchemaElement, error) {
	keys := []types.KeySchemaElement{
		{AttributeName: aws.String(IDField), KeyType: types.KeyTypeHash},
	}
	if t.config.SortKey == "" {
		return keys, nil
	}

	fields, err := t.fields.Fields(ctx, t.config.SortKey)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("sort key %q did not resolve to a schema field", t.config.SortKey)
	}
	return append(keys, types.KeySchemaElement{
		AttributeName: aws.String(fields[0].Name),
		KeyType:       types.KeyTypeRange,
	}), nil
}

// AttributeDefinitions returns the attribute definition of IDField followed by
// one definition per field resolved from names, in the order the schema
// returns them. The schema is not consulted when names is empty.
func (t *Table) AttributeDefinitions(ctx context.Context, names ...string) ([]types.AttributeDefinition, error) {
	defs := []types.AttributeDefinition{
		{AttributeName: aws.String(IDField), AttributeType: KindS},
	}
	if len(names) == 0 {
		return defs, nil
	}

	fields, err := t.fields.Fields(ctx, names...)
	if err != nil {
		return nil, err
	}
	for _, f := range fields {
		kind, err := MapType(f.Type)
		if err != nil {
			return nil, err
		}
		defs = append(defs, types.AttributeDefinition{
			AttributeName: aws.String(f.Name),
			AttributeType: kind,
		})
	}
	return defs, nil
}
