//go:build tools

package tools

// This file tracks CLI tool dependencies. It is not compiled into the
// binary; goose itself is pinned via the tool directive in go.mod and is
// used for schema migrations (migrations/) and by the repository test
// helper.
