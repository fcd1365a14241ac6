package harness

import (
	"os/exec"
	"sync"

	"github.com/agentwire/agentwire/internal/core"
)

// pathCache memoizes binary name → absolute path lookups for the life of the
// process. Misses are cached too: a binary that is absent at first use is
// treated as absent for the whole run, since installations are assumed stable
// while the process lives.
var pathCache = struct {
	mu      sync.Mutex
	entries map[string]pathEntry
}{entries: make(map[string]pathEntry)}

type pathEntry struct {
	path string
	err  error
}

// Resolve returns the absolute path of a binary, consulting PATH once per
// binary name per process. A miss returns a transport-category DomainError.
func Resolve(binary string) (string, error) {
	pathCache.mu.Lock()
	defer pathCache.mu.Unlock()

	if entry, ok := pathCache.entries[binary]; ok {
		return entry.path, entry.err
	}

	path, err := exec.LookPath(binary)
	if err != nil {
		err = core.ErrTransport(core.CodeBinaryMissing, "binary not found in PATH: "+binary).WithCause(err)
		path = ""
	}
	pathCache.entries[binary] = pathEntry{path: path, err: err}
	return path, err
}

// resetPathCache clears the cache. Test hook only.
func resetPathCache() {
	pathCache.mu.Lock()
	defer pathCache.mu.Unlock()
	pathCache.entries = make(map[string]pathEntry)
}
