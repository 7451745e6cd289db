package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/acksell/entitytable/dynamodb/awsclient"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

func runCreate(ctx context.Context, c *cli) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	client, err := c.client(ctx, cfg)
	if err != nil {
		return err
	}
	set, err := c.openSet(cfg, client)
	if err != nil {
		return err
	}

	results, err := set.Create(ctx)
	if err != nil {
		return err
	}
	tables := make([]*types.TableDescription, len(results))
	for i, r := range results {
		tables[i] = r.Output.TableDescription
		c.logger.Info("table created",
			zap.String("table", r.Table),
			zap.String("status", string(r.Output.TableDescription.TableStatus)),
		)
	}

	if c.wait {
		if err := set.WaitUntilActive(ctx, cfg.WaitTimeout); err != nil {
			return err
		}
		c.logger.Info("tables active", zap.Int("count", len(results)))
	}
	return printOutput(c.stdout, c.output, tables)
}

func runDelete(ctx context.Context, c *cli) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	client, err := c.client(ctx, cfg)
	if err != nil {
		return err
	}
	set, err := c.openSet(cfg, client)
	if err != nil {
		return err
	}

	results, err := set.Delete(ctx)
	if err != nil {
		return err
	}
	tables := make([]*types.TableDescription, len(results))
	for i, r := range results {
		tables[i] = r.Output.TableDescription
		c.logger.Info("table deleted", zap.String("table", r.Table))
	}

	if c.wait {
		if err := set.WaitUntilDeleted(ctx, cfg.WaitTimeout); err != nil {
			return err
		}
		c.logger.Info("tables gone", zap.Int("count", len(results)))
	}
	return printOutput(c.stdout, c.output, tables)
}

func runDescribe(ctx context.Context, c *cli) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	client, err := c.client(ctx, cfg)
	if err != nil {
		return err
	}
	set, err := c.openSet(cfg, client)
	if err != nil {
		return err
	}

	results, err := set.Describe(ctx)
	if err != nil {
		return err
	}
	tables := make([]*types.TableDescription, len(results))
	for i, r := range results {
		tables[i] = r.Output.Table
	}
	return printOutput(c.stdout, c.output, tables)
}

// runDefinition never contacts DynamoDB, so the tables get no client.
func runDefinition(ctx context.Context, c *cli) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	set, err := c.openSet(cfg, nil)
	if err != nil {
		return err
	}

	results, err := set.Definitions(ctx)
	if err != nil {
		return err
	}
	defs := make([]*dynamodb.CreateTableInput, len(results))
	for i, r := range results {
		defs[i] = r.Output
	}
	return printOutput(c.stdout, c.output, defs)
}

func runList(ctx context.Context, c *cli) error {
	cfg, err := c.loadOptionalConfig()
	if err != nil {
		return err
	}
	client, err := c.client(ctx, cfg)
	if err != nil {
		return err
	}

	names := []string{}
	p := dynamodb.NewListTablesPaginator(client, &dynamodb.ListTablesInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("list tables: %w", err)
		}
		names = append(names, page.TableNames...)
	}
	return printOutput(c.stdout, c.output, names)
}

var errWhoamiLocal = errors.New("whoami needs AWS credentials and is not available with --local")

func runWhoami(ctx context.Context, c *cli) error {
	if c.local {
		return errWhoamiLocal
	}
	cfg, err := c.loadOptionalConfig()
	if err != nil {
		return err
	}
	awsCfg, err := c.awsConfig(ctx, cfg)
	if err != nil {
		return err
	}

	id, err := awsclient.CallerIdentity(ctx, awsclient.NewSTS(awsCfg))
	if err != nil {
		return err
	}
	c.logger.Debug("resolved identity", zap.String("region", awsCfg.Region))
	return printOutput(c.stdout, c.output, id)
}
