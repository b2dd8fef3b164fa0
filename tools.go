//go:build tools
// +build tools

package tools

// Build and migration tooling pinned in go.mod; never imported by the service.
import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "github.com/pressly/goose/v3/cmd/goose"
)
