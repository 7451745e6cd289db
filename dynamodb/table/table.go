// Package table derives DynamoDB table definitions from entity schemas and
// manages the lifecycle of the resulting tables.
//
// Every table is keyed by the identity field "id" as its partition key. A sort
// key can be configured by naming one of the schema's fields; its DynamoDB
// attribute type is derived from the field's schema type through MapType.
package table

import (
	"context"

	"github.com/acksell/entitytable/dynamodb/ddbiface"
	"github.com/acksell/entitytable/dynamodb/schema"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"golang.org/x/exp/constraints"
)

// FieldResolver resolves field names to their schema fields.
// *schema.Schema implements it.
type FieldResolver interface {
	Fields(ctx context.Context, names ...string) (schema.Fields, error)
}

var _ FieldResolver = (*schema.Schema)(nil)

// Config holds the table options. Zero values are replaced by defaults in New.
type Config struct {
	// ReadCapacity is the provisioned read throughput. Defaults to 1.
	ReadCapacity int64
	// WriteCapacity is the provisioned write throughput. Defaults to 1.
	WriteCapacity int64
	// SortKey names the schema field used as range key. Empty means the
	// table only has a partition key.
	SortKey string
	// SchemaOptions are used by Open when building the schema.
	SchemaOptions schema.Options
}

const defaultCapacity = 1

func (c Config) withDefaults() Config {
	c.ReadCapacity = positiveOr(c.ReadCapacity, defaultCapacity)
	c.WriteCapacity = positiveOr(c.WriteCapacity, defaultCapacity)
	return c
}

func positiveOr[T constraints.Integer](v, def T) T {
	if v <= 0 {
		return def
	}
	return v
}

// Table manages one DynamoDB table described by an entity schema.
// Errors from the schema and from the client are returned unchanged.
type Table struct {
	name   string
	fields FieldResolver
	client ddbiface.TableAPI
	config Config
}

// New returns a Table named name whose fields are resolved by fields and
// whose lifecycle calls go through client.
func New(name string, fields FieldResolver, client ddbiface.TableAPI, cfg Config) *Table {
	return &Table{
		name:   name,
		fields: fields,
		client: client,
		config: cfg.withDefaults(),
	}
}

// Open builds a schema from desc using cfg.SchemaOptions and returns a Table backed by it.
func Open(name string, desc schema.Descriptor, client ddbiface.TableAPI, cfg Config) (*Table, error) {
	s, err := schema.New(desc, cfg.SchemaOptions)
	if err != nil {
		return nil, err
	}
	return New(name, s, client, cfg), nil
}

// Name returns the DynamoDB table name.
func (t *Table) Name() string {
	return t.name
}

// Config returns the configuration with defaults applied.
func (t *Table) Config() Config {
	return t.config
}

// Create builds the table definition and creates the table.
// Creating a table that already exists surfaces the client's error.
func (t *Table) Create(ctx context.Context) (*dynamodb.CreateTableOutput, error) {
	def, err := t.Definition(ctx)
	if err != nil {
		return nil, err
	}
	return t.client.CreateTable(ctx, def)
}

// Delete deletes the table.
func (t *Table) Delete(ctx context.Context) (*dynamodb.DeleteTableOutput, error) {
	return t.client.DeleteTable(ctx, &dynamodb.DeleteTableInput{
		TableName: aws.String(t.name),
	})
}

// Describe returns the current description of the table.
func (t *Table) Describe(ctx context.Context) (*dynamodb.DescribeTableOutput, error) {
	return t.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(t.name),
	})
}
