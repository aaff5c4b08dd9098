// Package testing switches the console into test mode for any test binary
// that imports it.
package testing

import (
	"os"
	stdtesting "testing"

	_ "github.com/odyssey-erp/odyssey-console/internal/testing/guard"
)

// TestMain runs m with CONSOLE_TEST_MODE already set by the guard import.
func TestMain(m *stdtesting.M) {
	os.Exit(m.Run())
}
