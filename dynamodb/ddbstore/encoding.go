package ddbstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Catalog key layout: [tablePrefix][tableName]. Table names never contain
// the prefix characters, so a prefix scan returns every table in name order.
const tablePrefix = "$table:"

func tableKey(name string) []byte {
	return []byte(tablePrefix + name)
}

func tableNameFromKey(key []byte) string {
	return string(key[len(tablePrefix):])
}

// tableRecord is the persisted form of a table. It is decoupled from the SDK
// types so that upgrades of the SDK do not change the on-disk format.
type tableRecord struct {
	Name                 string            `json:"name"`
	ID                   string            `json:"id"`
	AttributeDefinitions []attributeRecord `json:"attributeDefinitions"`
	KeySchema            []keyRecord       `json:"keySchema"`
	BillingMode          string            `json:"billingMode"`
	ReadCapacity         int64             `json:"readCapacity,omitempty"`
	WriteCapacity        int64             `json:"writeCapacity,omitempty"`
	CreatedAt            time.Time         `json:"createdAt"`
}

type attributeRecord struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type keyRecord struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func encodeRecord(r tableRecord) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode table %q: %w", r.Name, err)
	}
	return data, nil
}

func decodeRecord(data []byte) (tableRecord, error) {
	var r tableRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return tableRecord{}, fmt.Errorf("decode table record: %w", err)
	}
	return r, nil
}

func (s *Store) describe(r tableRecord, status types.TableStatus) *types.TableDescription {
	attrs := make([]types.AttributeDefinition, len(r.AttributeDefinitions))
	for i, a := range r.AttributeDefinitions {
		attrs[i] = types.AttributeDefinition{
			AttributeName: aws.String(a.Name),
			AttributeType: types.ScalarAttributeType(a.Type),
		}
	}
	keys := make([]types.KeySchemaElement, len(r.KeySchema))
	for i, k := range r.KeySchema {
		keys[i] = types.KeySchemaElement{
			AttributeName: aws.String(k.Name),
			KeyType:       types.KeyType(k.Type),
		}
	}
	return &types.TableDescription{
		TableName:            aws.String(r.Name),
		TableId:              aws.String(r.ID),
		TableArn:             aws.String(s.tableArn(r.Name)),
		TableStatus:          status,
		CreationDateTime:     aws.Time(r.CreatedAt),
		AttributeDefinitions: attrs,
		KeySchema:            keys,
		BillingModeSummary: &types.BillingModeSummary{
			BillingMode: types.BillingMode(r.BillingMode),
		},
		ProvisionedThroughput: &types.ProvisionedThroughputDescription{
			ReadCapacityUnits:      aws.Int64(r.ReadCapacity),
			WriteCapacityUnits:     aws.Int64(r.WriteCapacity),
			NumberOfDecreasesToday: aws.Int64(0),
		},
		ItemCount:      aws.Int64(0),
		TableSizeBytes: aws.Int64(0),
	}
}
