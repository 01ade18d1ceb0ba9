// Package manifest parses declared-package manifests for the analysis
// engine. Parsing preserves declaration order, which the engine's
// deterministic node ordering depends on.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"depscope/graph"
)

// ParsePackageJSON extracts the ordered dependency list from a
// package.json blob: dependencies first, then devDependencies. A plain
// map decode would lose declaration order, so the object is walked
// token by token.
func ParsePackageJSON(data []byte) ([]graph.Package, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid package.json: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("invalid package.json: expected top-level object")
	}

	var direct, dev []graph.Package
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid package.json: %w", err)
		}
		key, _ := keyTok.(string)

		switch key {
		case "dependencies":
			direct, err = parseDependencyBlock(dec)
		case "devDependencies":
			dev, err = parseDependencyBlock(dec)
		default:
			var skip json.RawMessage
			err = dec.Decode(&skip)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid package.json: %w", err)
		}
	}

	return append(direct, dev...), nil
}

func parseDependencyBlock(dec *json.Decoder) ([]graph.Package, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected dependency object")
	}

	var pkgs []graph.Package
	for dec.More() {
		nameTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := nameTok.(string)

		verTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		version, ok := verTok.(string)
		if !ok {
			return nil, fmt.Errorf("dependency %q: version must be a string", name)
		}

		pkgs = append(pkgs, graph.Package{
			Name:    name,
			Version: cleanVersion(version),
		})
	}

	// consume the closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return pkgs, nil
}

// cleanVersion strips semver range markers so "^18.2.0" and ">=4.17.1"
// become concrete-looking versions for labels and oracle lookups.
func cleanVersion(version string) string {
	return strings.TrimLeft(version, "^~>=< ")
}
