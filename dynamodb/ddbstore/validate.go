package ddbstore

import (
	"fmt"
	"regexp"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

const invalidParams = "One or more parameter values were invalid: "

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,255}$`)

// validationError has the same error code as DynamoDB's ValidationException,
// which the SDK does not model as a type.
func validationError(format string, args ...any) error {
	return &smithy.GenericAPIError{
		Code:    "ValidationException",
		Message: fmt.Sprintf(format, args...),
		Fault:   smithy.FaultClient,
	}
}

func validateTableName(name *string) error {
	if name == nil {
		return validationError("The parameter 'TableName' is required but was not present in the request")
	}
	if !tableNamePattern.MatchString(*name) {
		return validationError("TableName %q must be between 3 and 255 characters long and contain only [a-zA-Z0-9_.-]", *name)
	}
	return nil
}

// validateCreateTable applies DynamoDB's CreateTable rules for the primary key
// and throughput and returns the record to persist.
func validateCreateTable(in *dynamodb.CreateTableInput) (tableRecord, error) {
	if err := validateTableName(in.TableName); err != nil {
		return tableRecord{}, err
	}
	if len(in.GlobalSecondaryIndexes) > 0 || len(in.LocalSecondaryIndexes) > 0 {
		return tableRecord{}, validationError("secondary indexes are not supported by the local table store")
	}

	n := len(in.KeySchema)
	if n < 1 || n > 2 {
		return tableRecord{}, validationError(invalidParams+"KeySchema must have 1 or 2 elements, got %d", n)
	}
	if in.KeySchema[0].KeyType != types.KeyTypeHash {
		return tableRecord{}, validationError(invalidParams + "the first KeySchema element must be of type HASH")
	}
	if n == 2 && in.KeySchema[1].KeyType != types.KeyTypeRange {
		return tableRecord{}, validationError(invalidParams + "the second KeySchema element must be of type RANGE")
	}

	declared := make(map[string]types.ScalarAttributeType, len(in.AttributeDefinitions))
	attrs := make([]attributeRecord, 0, len(in.AttributeDefinitions))
	for _, d := range in.AttributeDefinitions {
		name := aws.ToString(d.AttributeName)
		if name == "" {
			return tableRecord{}, validationError(invalidParams + "AttributeName must not be empty")
		}
		if _, dup := declared[name]; dup {
			return tableRecord{}, validationError(invalidParams+"duplicate AttributeName %q in AttributeDefinitions", name)
		}
		declared[name] = d.AttributeType
		attrs = append(attrs, attributeRecord{Name: name, Type: string(d.AttributeType)})
	}

	keys := make([]keyRecord, 0, n)
	for _, k := range in.KeySchema {
		name := aws.ToString(k.AttributeName)
		kind, ok := declared[name]
		if !ok {
			return tableRecord{}, validationError(invalidParams+"key attribute %q is not defined in AttributeDefinitions", name)
		}
		for _, prev := range keys {
			if prev.Name == name {
				return tableRecord{}, validationError(invalidParams+"attribute %q is used more than once in KeySchema", name)
			}
		}
		switch kind {
		case types.ScalarAttributeTypeS, types.ScalarAttributeTypeN, types.ScalarAttributeTypeB:
		default:
			return tableRecord{}, validationError(invalidParams+"key attribute %q has type %q; key attributes must be S, N or B", name, kind)
		}
		keys = append(keys, keyRecord{Name: name, Type: string(k.KeyType)})
	}
	if len(declared) != len(keys) {
		return tableRecord{}, validationError(invalidParams + "Number of attributes in KeySchema does not exactly match number of attributes defined in AttributeDefinitions")
	}

	rec := tableRecord{
		Name:                 *in.TableName,
		AttributeDefinitions: attrs,
		KeySchema:            keys,
		BillingMode:          string(types.BillingModeProvisioned),
	}
	if in.BillingMode == types.BillingModePayPerRequest {
		if in.ProvisionedThroughput != nil {
			return tableRecord{}, validationError(invalidParams + "ProvisionedThroughput must not be set when BillingMode is PAY_PER_REQUEST")
		}
		rec.BillingMode = string(types.BillingModePayPerRequest)
		return rec, nil
	}

	pt := in.ProvisionedThroughput
	if pt == nil {
		return tableRecord{}, validationError("No provisioned throughput specified for the table")
	}
	read, write := aws.ToInt64(pt.ReadCapacityUnits), aws.ToInt64(pt.WriteCapacityUnits)
	if read < 1 || write < 1 {
		return tableRecord{}, validationError(invalidParams+"provisioned capacity units must be at least 1, got read=%d write=%d", read, write)
	}
	rec.ReadCapacity, rec.WriteCapacity = read, write
	return rec, nil
}
