package displaymode

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type documentFile struct {
	ViewModes map[string][]ViewMode `json:"viewModes" yaml:"viewModes"`
}

// LoadFS walks fsys and registers the view modes declared in every JSON or
// YAML file. Files are processed in lexical order so the resulting option
// order is stable. A nil fsys yields an empty registry.
func LoadFS(fsys fs.FS) (*Static, error) {
	reg := NewStatic()
	if fsys == nil {
		return reg, nil
	}

	var files []string
	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isModeFile(p) {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("displaymode: walk: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("displaymode: read %s: %w", file, err)
		}
		doc, err := parseDocument(data, file)
		if err != nil {
			return nil, err
		}

		entityTypes := make([]string, 0, len(doc.ViewModes))
		for entityType := range doc.ViewModes {
			entityTypes = append(entityTypes, entityType)
		}
		sort.Strings(entityTypes)
		for _, entityType := range entityTypes {
			if err := reg.Add(entityType, doc.ViewModes[entityType]...); err != nil {
				return nil, fmt.Errorf("displaymode: file %s: %w", file, err)
			}
		}
	}
	return reg, nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if strings.TrimSpace(string(data)) == "" {
		return documentFile{}, fmt.Errorf("displaymode: file %s is empty", source)
	}
	if strings.EqualFold(path.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("displaymode: parse %s: %w", source, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("displaymode: parse %s: %w", source, err)
	}
	return doc, nil
}

func isModeFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
