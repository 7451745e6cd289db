package table

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Attribute type codes produced by MapType. Only S, N and B are accepted by
// DynamoDB for key attributes; the others are carried through unchanged.
const (
	KindS    types.ScalarAttributeType = types.ScalarAttributeTypeS
	KindN    types.ScalarAttributeType = types.ScalarAttributeTypeN
	KindBOOL types.ScalarAttributeType = "BOOL"
	KindNULL types.ScalarAttributeType = "NULL"
	KindM    types.ScalarAttributeType = "M"
	KindL    types.ScalarAttributeType = "L"
)

// SS and NS are never produced: array element types are not inspected.
var kindsByFieldType = map[string]types.ScalarAttributeType{
	"string":  KindS,
	"boolean": KindBOOL,
	"number":  KindN,
	"integer": KindN,
	"null":    KindNULL,
	"object":  KindM,
	"array":   KindL,
}

// UnsupportedTypeError is returned by MapType for a field type with no DynamoDB equivalent.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type: %s", e.Type)
}

// MapType maps a schema field type to a DynamoDB attribute type code.
// Matching is exact.
func MapType(fieldType string) (types.ScalarAttributeType, error) {
	kind, ok := kindsByFieldType[fieldType]
	if !ok {
		return "", &UnsupportedTypeError{Type: fieldType}
	}
	return kind, nil
}
