// Package tableset runs table lifecycle operations over several tables at once.
package tableset

import (
	"context"
	"fmt"
	"time"

	"github.com/acksell/entitytable/dynamodb/table"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// Set is an ordered group of tables.
type Set struct {
	tables      []*table.Table
	concurrency int
}

// Option configures a Set.
type Option func(*Set)

// WithConcurrency bounds the number of tables processed at once.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(s *Set) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// New returns a Set over tables, processed in the given order.
func New(tables []*table.Table, opts ...Option) *Set {
	s := &Set{tables: tables, concurrency: defaultConcurrency}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tables returns the tables of the set in order.
func (s *Set) Tables() []*table.Table {
	return s.tables
}

// Result pairs a table name with the output of the operation run on it.
type Result[T any] struct {
	Table  string
	Output T
}

// Create creates every table. Results are in the order of the set.
func (s *Set) Create(ctx context.Context) ([]Result[*dynamodb.CreateTableOutput], error) {
	return run(ctx, s, "create", (*table.Table).Create)
}

// Delete deletes every table.
func (s *Set) Delete(ctx context.Context) ([]Result[*dynamodb.DeleteTableOutput], error) {
	return run(ctx, s, "delete", (*table.Table).Delete)
}

// Describe describes every table.
func (s *Set) Describe(ctx context.Context) ([]Result[*dynamodb.DescribeTableOutput], error) {
	return run(ctx, s, "describe", (*table.Table).Describe)
}

// Definitions builds the CreateTable request of every table without calling the service.
func (s *Set) Definitions(ctx context.Context) ([]Result[*dynamodb.CreateTableInput], error) {
	return run(ctx, s, "build definition for", (*table.Table).Definition)
}

// WaitUntilActive waits for every table to become ACTIVE, each for at most maxWait.
func (s *Set) WaitUntilActive(ctx context.Context, maxWait time.Duration) error {
	_, err := run(ctx, s, "wait for", func(t *table.Table, ctx context.Context) (struct{}, error) {
		return struct{}{}, t.WaitUntilActive(ctx, maxWait)
	})
	return err
}

// WaitUntilDeleted waits for every table to be gone, each for at most maxWait.
func (s *Set) WaitUntilDeleted(ctx context.Context, maxWait time.Duration) error {
	_, err := run(ctx, s, "wait for deletion of", func(t *table.Table, ctx context.Context) (struct{}, error) {
		return struct{}{}, t.WaitUntilDeleted(ctx, maxWait)
	})
	return err
}

// run applies op to every table with bounded concurrency. The first failure
// cancels the context passed to the remaining operations.
func run[T any](ctx context.Context, s *Set, verb string, op func(*table.Table, context.Context) (T, error)) ([]Result[T], error) {
	results := make([]Result[T], len(s.tables))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, t := range s.tables {
		g.Go(func() error {
			out, err := op(t, gctx)
			if err != nil {
				return fmt.Errorf("%s table %q: %w", verb, t.Name(), err)
			}
			results[i] = Result[T]{Table: t.Name(), Output: out}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
