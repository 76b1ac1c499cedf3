package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/sablier/internal/theme"
	sablierrors "github.com/alexisbeaulieu97/sablier/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseOverrides reads a theme customization from a YAML or JSON file. The
// document has the shape of a theme with every family optional:
//
//	colorScheme: dark
//	colors:
//	  primary: "#ff0000"
//	  sidebar:
//	    border: "#334155"
func ParseOverrides(fs afero.Fs, path string) (theme.Partial, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return theme.Partial{}, sablierrors.NewParseError(path, 0, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return decodePartial(path, data)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return theme.Partial{}, sablierrors.NewParseError(path, extractLine(err), err)
	}
	if doc == nil {
		return theme.Partial{}, nil
	}
	if _, ok := doc.(map[string]any); !ok {
		return theme.Partial{}, sablierrors.NewParseError(path, 0, fmt.Errorf("expected a mapping at the top level"))
	}

	// Scalars become strings so `bold: 700` reads the same as `bold: "700"`.
	normalized, err := json.Marshal(normalize(doc))
	if err != nil {
		return theme.Partial{}, sablierrors.NewParseError(path, 0, err)
	}
	return decodePartial(path, normalized)
}

func decodePartial(path string, data []byte) (theme.Partial, error) {
	p, err := theme.DecodePartial(data)
	if err != nil {
		var parseErr *sablierrors.ParseError
		if errors.As(err, &parseErr) && parseErr.Path == "" {
			parseErr.Path = path
		}
		return theme.Partial{}, err
	}
	return p, nil
}

func normalize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}
		return out
	case nil, string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
