package app

import (
	"os"
	"strconv"
	"sync"
)

const testModeEnv = "CONSOLE_TEST_MODE"

var testMode = sync.OnceValue(func() bool {
	on, _ := strconv.ParseBool(os.Getenv(testModeEnv))
	return on
})

// InTestMode reports whether CONSOLE_TEST_MODE is set. Binaries under test
// skip the listener and the per-request log line.
func InTestMode() bool {
	return testMode()
}
