package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"xwordcodec/internal/solverpage"
)

// readSource reads the single optional positional argument. No argument or
// "-" reads stdin.
func readSource(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "stdin", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("read input: %w", err)
	}
	return data, args[0], nil
}

// readPayload returns the trimmed payload, pulling it out of a saved solver
// page when fromPage is set.
func readPayload(cmd *cobra.Command, args []string, fromPage bool) (string, string, error) {
	data, name, err := readSource(cmd, args)
	if err != nil {
		return "", "", err
	}
	if fromPage {
		payload, err := solverpage.ExtractPayload(string(data))
		if err != nil {
			return "", "", fmt.Errorf("%s: %w", name, err)
		}
		return payload, name, nil
	}
	payload := strings.TrimSpace(string(data))
	if payload == "" {
		return "", "", fmt.Errorf("%s: empty payload", name)
	}
	return payload, name, nil
}

func readOptionalFile(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
