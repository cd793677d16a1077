// Package shared holds utilities used across the dashboard codebase that
// belong to no single layer. Currently this is limited to test helpers in
// the testutil subpackage.
package shared
