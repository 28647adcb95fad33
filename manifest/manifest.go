// Package manifest reads and temporarily rewrites the version declared in
// a project manifest. JSON manifests (package.json) and YAML manifests are
// supported, detected by file extension.
//
// Writing is deliberately scoped: Pin captures the original bytes before
// touching the file and hands back a restore function the caller runs on
// every exit path, success or failure.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// jsonVersionRe locates the first "version" field; replacement keeps the
// rest of the file byte-identical, the way npm does.
var jsonVersionRe = regexp.MustCompile(`("version"\s*:\s*)"[^"]*"`)

// Read returns the version declared in the manifest at path.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read manifest: %w", err)
	}

	return Parse(path, data)
}

// Parse extracts the version field from raw manifest content. name is
// only used to detect the format by extension.
func Parse(name string, data []byte) (string, error) {
	var doc struct {
		Version string `json:"version" yaml:"version"`
	}

	switch ext(name) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return "", fmt.Errorf("parse manifest %s: %w", name, err)
		}

	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return "", fmt.Errorf("parse manifest %s: %w", name, err)
		}

	default:
		return "", fmt.Errorf("unsupported manifest format: %s", name)
	}

	if doc.Version == "" {
		return "", fmt.Errorf("manifest %s declares no version", name)
	}

	return doc.Version, nil
}

// Pin rewrites the manifest version in place and returns a restore
// function that puts the original content back. The caller must run
// restore on every exit path once Pin succeeds.
func Pin(path, version string) (restore func() error, err error) {
	orig, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	perm := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		perm = info.Mode().Perm()
	}

	next, err := setVersion(path, orig, version)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, next, perm); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	return func() error {
		if err := os.WriteFile(path, orig, perm); err != nil {
			return fmt.Errorf("restore manifest: %w", err)
		}
		return nil
	}, nil
}

// setVersion produces the manifest content with the version replaced,
// leaving everything else untouched.
func setVersion(name string, data []byte, version string) ([]byte, error) {
	switch ext(name) {
	case ".json":
		loc := jsonVersionRe.FindSubmatchIndex(data)
		if loc == nil {
			return nil, fmt.Errorf("manifest %s declares no version", name)
		}

		var out bytes.Buffer
		out.Grow(len(data) + len(version))
		out.Write(data[:loc[3]]) // up to and including `"version":`
		out.WriteByte('"')
		out.WriteString(version)
		out.WriteByte('"')
		out.Write(data[loc[1]:])

		return out.Bytes(), nil

	case ".yml", ".yaml":
		return setYAMLVersion(name, data, version)

	default:
		return nil, fmt.Errorf("unsupported manifest format: %s", name)
	}
}

// setYAMLVersion edits the version scalar of the top-level mapping via
// the yaml.v3 node API, preserving key order and comments.
func setYAMLVersion(name string, data []byte, version string) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", name, err)
	}

	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("manifest %s is not a mapping", name)
	}

	doc := root.Content[0]
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value != "version" {
			continue
		}

		val := doc.Content[i+1]
		val.Value = version
		val.Tag = "!!str"
		val.Style = 0

		out, err := yaml.Marshal(&root)
		if err != nil {
			return nil, fmt.Errorf("encode manifest %s: %w", name, err)
		}

		return out, nil
	}

	return nil, fmt.Errorf("manifest %s declares no version", name)
}

func ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}
