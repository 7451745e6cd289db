package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = "testdata/ddb.tables.yaml"

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

type definitionOutput struct {
	TableName             string
	AttributeDefinitions  []struct{ AttributeName, AttributeType string }
	KeySchema             []struct{ AttributeName, KeyType string }
	ProvisionedThroughput struct {
		ReadCapacityUnits  int64
		WriteCapacityUnits int64
	}
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runCLI(t)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "Usage:")

	code, stdout, _ := runCLI(t, "help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "ddb <command> [flags]")

	code, stdout, _ = runCLI(t, "version")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "ddb version "+version+"\n", stdout)

	code, _, stderr = runCLI(t, "frobnicate")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, `unknown command "frobnicate"`)
}

func TestRun_Flags(t *testing.T) {
	code, _, stderr := runCLI(t, "definition", "--config", testConfig, "--output", "xml")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, `unsupported output format "xml"`)

	code, _, stderr = runCLI(t, "create", "--help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "Usage: ddb create")
}

func TestRun_Definition(t *testing.T) {
	code, stdout, stderr := runCLI(t, "definition", "--config", testConfig, "--output", "json")
	require.Equal(t, exitOK, code, stderr)

	var defs []definitionOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &defs))
	require.Len(t, defs, 2)

	articles := defs[0]
	assert.Equal(t, "articles", articles.TableName)
	require.Len(t, articles.KeySchema, 2)
	assert.Equal(t, "id", articles.KeySchema[0].AttributeName)
	assert.Equal(t, "HASH", articles.KeySchema[0].KeyType)
	assert.Equal(t, "created", articles.KeySchema[1].AttributeName)
	assert.Equal(t, "RANGE", articles.KeySchema[1].KeyType)
	require.Len(t, articles.AttributeDefinitions, 2)
	assert.Equal(t, "S", articles.AttributeDefinitions[0].AttributeType)
	assert.Equal(t, "N", articles.AttributeDefinitions[1].AttributeType)
	assert.Equal(t, int64(5), articles.ProvisionedThroughput.ReadCapacityUnits)
	assert.Equal(t, int64(3), articles.ProvisionedThroughput.WriteCapacityUnits)

	authors := defs[1]
	assert.Equal(t, "authors", authors.TableName)
	require.Len(t, authors.KeySchema, 1)
	require.Len(t, authors.AttributeDefinitions, 1)
	assert.Equal(t, int64(1), authors.ProvisionedThroughput.ReadCapacityUnits)
}

func TestRun_DefinitionYAML(t *testing.T) {
	code, stdout, stderr := runCLI(t, "definition", "--config", testConfig, "authors")
	require.Equal(t, exitOK, code, stderr)

	assert.Contains(t, stdout, "TableName: authors")
	assert.Contains(t, stdout, "AttributeType: S")
	assert.NotContains(t, stdout, "articles")
	assert.NotContains(t, stdout, "null")
	assert.NotContains(t, stdout, "{")
}

func TestRun_UnknownTable(t *testing.T) {
	code, _, stderr := runCLI(t, "definition", "--config", testConfig, "--table", "nope")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, `ddb definition: table "nope" is not defined in the config`)
}

func TestRun_LocalLifecycle(t *testing.T) {
	db := t.TempDir()
	local := func(args ...string) []string {
		return append(args, "--config", testConfig, "--db", db, "--output", "json")
	}

	code, stdout, stderr := runCLI(t, local("create", "--wait")...)
	require.Equal(t, exitOK, code, stderr)
	var created []struct{ TableName, TableStatus string }
	require.NoError(t, json.Unmarshal([]byte(stdout), &created))
	require.Len(t, created, 2)
	assert.Equal(t, "articles", created[0].TableName)
	assert.Equal(t, "ACTIVE", created[0].TableStatus)
	assert.Contains(t, stderr, "table created")

	code, _, stderr = runCLI(t, local("create", "--table", "authors")...)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "error code: ResourceInUseException (client fault)")
	assert.Contains(t, stderr, "hint: the table already exists")

	code, stdout, stderr = runCLI(t, local("list")...)
	require.Equal(t, exitOK, code, stderr)
	var names []string
	require.NoError(t, json.Unmarshal([]byte(stdout), &names))
	assert.Equal(t, []string{"articles", "authors"}, names)

	code, stdout, stderr = runCLI(t, local("describe", "--table", "articles")...)
	require.Equal(t, exitOK, code, stderr)
	var described []definitionOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &described))
	require.Len(t, described, 1)
	assert.Equal(t, "created", described[0].KeySchema[1].AttributeName)

	code, _, stderr = runCLI(t, local("delete", "--table", "authors", "--wait")...)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stderr, "table deleted")

	code, _, stderr = runCLI(t, local("describe", "--table", "authors")...)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "error code: ResourceNotFoundException")
	assert.Contains(t, stderr, "hint: the table does not exist")
}

func TestRun_ListWithoutTables(t *testing.T) {
	code, stdout, stderr := runCLI(t, "list", "--local", "--config", testConfig, "--output", "json")
	require.Equal(t, exitOK, code, stderr)
	assert.JSONEq(t, "[]", stdout)
	assert.Contains(t, stderr, "in-memory")
}

func TestRun_WhoamiLocal(t *testing.T) {
	code, _, stderr := runCLI(t, "whoami", "--local")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, errWhoamiLocal.Error())
}

func TestRun_Verbose(t *testing.T) {
	code, _, stderr := runCLI(t, "definition", "--config", testConfig, "--verbose")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stderr, "loaded config")
	assert.Contains(t, stderr, "loaded schema")
	assert.Contains(t, stderr, `"title": "author"`)
	assert.Contains(t, stderr, "opened tables")
	assert.Contains(t, stderr, `"articles"`)
}
