package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// LoadDir reads every *.yaml pool file under dir into a catalog. Pool files
// are content, not code: they are authored outside this service and mounted
// at deploy time.
func LoadDir(dir string) (*Catalog, error) {
	fis, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading catalog dir %s: %w", dir, err)
	}

	var pools []SubjectPool
	for _, fi := range fis {
		name := fi.Name()
		if fi.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		pool, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		pools = append(pools, pool)
		log.Info().Str("file", name).Str("subject", pool.Subject).Int("version", pool.Version).Msg("Loaded topic pool")
	}
	return New(pools...), nil
}

// LoadFile parses a single subject pool document.
func LoadFile(path string) (SubjectPool, error) {
	var pool SubjectPool
	data, err := os.ReadFile(path)
	if err != nil {
		return pool, fmt.Errorf("reading pool file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &pool); err != nil {
		return pool, fmt.Errorf("parsing pool file %s: %w", path, err)
	}
	if pool.Subject == "" {
		return pool, fmt.Errorf("pool file %s has no subject", path)
	}
	return pool, nil
}
