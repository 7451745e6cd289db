package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"gopkg.in/yaml.v3"
)

// printOutput writes v to w as indented JSON or YAML.
//
// YAML goes through JSON first: SDK structs carry no yaml tags and embed
// unexported fields yaml.v3 cannot encode. Null values are dropped from YAML.
func printOutput(w io.Writer, format string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	if format == "json" {
		_, err := fmt.Fprintf(w, "%s\n", data)
		return err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	blockStyle(&doc)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return enc.Close()
}

// blockStyle clears the JSON flow and quoting styles and removes null mapping values.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	if n.Kind == yaml.MappingNode {
		content := n.Content[:0]
		for i := 0; i+1 < len(n.Content); i += 2 {
			if v := n.Content[i+1]; v.Kind == yaml.ScalarNode && v.Tag == "!!null" {
				continue
			}
			content = append(content, n.Content[i], n.Content[i+1])
		}
		n.Content = content
	}
	for _, child := range n.Content {
		blockStyle(child)
	}
}

// reportError prints err and, for DynamoDB API errors, its code and a hint.
func reportError(w io.Writer, cmd string, err error) {
	fmt.Fprintf(w, "ddb %s: %v\n", cmd, err)

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return
	}
	fmt.Fprintf(w, "  error code: %s (%s fault)\n", apiErr.ErrorCode(), apiErr.ErrorFault())

	var (
		inUse    *types.ResourceInUseException
		notFound *types.ResourceNotFoundException
	)
	switch {
	case errors.As(err, &inUse):
		fmt.Fprintln(w, "  hint: the table already exists, see 'ddb describe'")
	case errors.As(err, &notFound):
		fmt.Fprintln(w, "  hint: the table does not exist, see 'ddb create'")
	}
}
