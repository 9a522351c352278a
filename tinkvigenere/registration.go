package tinkvigenere

import (
	"sync"

	"github.com/google/tink/go/core/registry"
)

var registerMu sync.Mutex

// Register adds the Vigenère KeyManager to Tink's registry. It is safe to
// call more than once; later calls are no-ops.
func Register() error {
	registerMu.Lock()
	defer registerMu.Unlock()

	// Tink has no "is registered" query, but GetKeyManager fails for unknown type URLs.
	if _, err := registry.GetKeyManager(VigenereKeyTypeURL); err == nil {
		return nil
	}
	return registry.RegisterKeyManager(NewKeyManager())
}
