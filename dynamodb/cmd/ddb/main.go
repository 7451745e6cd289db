// ddb manages DynamoDB tables derived from entity schemas.
//
// # Installation
//
//	go install github.com/acksell/entitytable/dynamodb/cmd/ddb@latest
//
// # Commands
//
//	ddb create       Create the configured tables
//	ddb delete       Delete the configured tables
//	ddb describe     Describe the configured tables
//	ddb definition   Print the CreateTable requests without calling DynamoDB
//	ddb list         List the tables in the account or local store
//	ddb whoami       Print the AWS identity in use
//
// # Quick Start
//
// Describe the tables in ddb.tables.yaml:
//
//	aws:
//	  region: eu-west-1
//	tables:
//	  - name: articles
//	    schema: schemas/article.yaml
//	    sortKey: created
//
// Then create them against a local store:
//
//	ddb create --local --db ./data
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const version = "0.1.0"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return exitUsage
	}

	cmd, args := args[0], args[1:]

	var handler func(context.Context, *cli) error
	switch cmd {
	case "create":
		handler = runCreate
	case "delete":
		handler = runDelete
	case "describe":
		handler = runDescribe
	case "definition", "def":
		handler = runDefinition
	case "list", "ls":
		handler = runList
	case "whoami":
		handler = runWhoami
	case "help", "-h", "--help":
		printUsage(stdout)
		return exitOK
	case "version", "-v", "--version":
		fmt.Fprintf(stdout, "ddb version %s\n", version)
		return exitOK
	default:
		fmt.Fprintf(stderr, "ddb: unknown command %q\n\n", cmd)
		printUsage(stderr)
		return exitUsage
	}

	c, err := parseFlags(cmd, args, stdout, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	defer c.close()

	if err := handler(ctx, c); err != nil {
		reportError(stderr, cmd, err)
		return exitError
	}
	return exitOK
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `ddb - manage DynamoDB tables derived from entity schemas

Usage:
  ddb <command> [flags]

Commands:
  create       Create the configured tables
  delete       Delete the configured tables
  describe     Describe the configured tables
  definition   Print the CreateTable requests without calling DynamoDB
  list         List the tables in the account or local store
  whoami       Print the AWS identity in use
  version      Print the ddb version

Flags:
  --config PATH    Config file (default: ddb.tables.yaml in this or a parent directory)
  --table NAME     Restrict to a configured table, repeatable
  --local          Use the local BadgerDB store instead of AWS
  --db DIR         Local store directory (implies --local, default: in-memory)
  --wait           Wait for create/delete to finish
  --output FORMAT  json or yaml (default: yaml)
  --verbose        Debug logging

Examples:
  # Show what would be created:
  ddb definition --table articles

  # Create all tables in a local store:
  ddb create --db ./data

  # Delete a table in AWS and wait until it is gone:
  ddb delete --table articles --wait

Configuration:
  Create ddb.tables.yaml:

    aws:
      region: eu-west-1
      endpoint: http://localhost:8000   # optional, e.g. DynamoDB Local
    local:
      dataDir: ./data
    concurrency: 4
    waitTimeout: 5m
    tables:
      - name: articles
        schema: schemas/article.yaml     # relative to the config file
        sortKey: created
        readCapacity: 5
        writeCapacity: 5
        schemaOptions:
          foldCase: true
          aliases: {createdAt: created}

Run 'ddb <command> --help' for more information on a command.`)
}
