package survey

import (
	"fmt"
	"sort"
	"sync"

	"github.com/joeshaw/envdecode"
)

var backendRegistry sync.Map // string -> func() Backend

// RegisterBackend makes a backend constructor available under name.
// Surface packages register themselves from an init function; the last
// registration for a name wins.
func RegisterBackend(name string, factory func() Backend) {
	if name == "" || factory == nil {
		panic("survey: RegisterBackend requires a name and a factory")
	}
	backendRegistry.Store(name, factory)
}

// NewBackend constructs the backend registered under name.
func NewBackend(name string) (Backend, error) {
	v, ok := backendRegistry.Load(name)
	if !ok {
		return nil, fmt.Errorf("survey: no backend registered as %q (have %v)", name, registeredBackends())
	}
	return v.(func() Backend)(), nil
}

func registeredBackends() []string {
	var names []string
	backendRegistry.Range(func(k, _ any) bool {
		names = append(names, k.(string))
		return true
	})
	sort.Strings(names)
	return names
}

// Config selects the collection surface from the environment.
type Config struct {
	Backend string `env:"SURVEY_BACKEND,default=console"`
}

// NewBackendFromEnv constructs the backend named by SURVEY_BACKEND,
// defaulting to the console surface.
func NewBackendFromEnv() (Backend, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("survey: reading backend config: %w", err)
	}
	return NewBackend(cfg.Backend)
}
