package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// glossaryMinEntries mirrors the original implementation's threshold:
// a glossary with two or fewer terms isn't worth persisting as its
// own sidecar file.
const glossaryMinEntries = 2

// SaveGlossary writes glossary to "<base>_terms.json" under dir, named
// after the subtitle file it was built from, but only once it holds
// more than glossaryMinEntries terms.
func SaveGlossary(dir, sourceFilePath string, glossary map[string]string) error {
	if len(glossary) <= glossaryMinEntries {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("checkpoint: create glossary dir: %w", err)
	}

	base := filepath.Base(sourceFilePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	path := filepath.Join(dir, base+"_terms.json")

	data, err := json.MarshalIndent(glossary, "", "  ")
	if err != nil {
		return fmt.Errorf("checkpoint: marshal glossary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("checkpoint: write glossary: %w", err)
	}
	return nil
}

// LoadGlossary reads a previously saved glossary sidecar, if any.
func LoadGlossary(dir, sourceFilePath string) (map[string]string, error) {
	base := filepath.Base(sourceFilePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	path := filepath.Join(dir, base+"_terms.json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("checkpoint: read glossary: %w", err)
	}

	var glossary map[string]string
	if err := json.Unmarshal(data, &glossary); err != nil {
		return nil, fmt.Errorf("checkpoint: parse glossary: %w", err)
	}
	return glossary, nil
}
