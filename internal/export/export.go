// Package export renders the downstream pipeline document in the supported
// formats and runs jq queries over it.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
	"gopkg.in/yaml.v3"

	"go-pipeline-builder/internal/model"
	"go-pipeline-builder/pkg/utils"
)

var ErrUnknownFormat = errors.New("unknown export format")

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// normalizeFormat maps a format name or alias to FormatJSON or FormatYAML.
// An empty format means json.
func normalizeFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// FileName is the file a pipeline is written to inside its output directory.
func FileName(format string) string {
	if f, _ := normalizeFormat(format); f == FormatYAML {
		return "pipeline.yaml"
	}
	return "pipeline.json"
}

// ContentType returns the HTTP content type of format.
func ContentType(format string) string {
	if f, _ := normalizeFormat(format); f == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// Marshal encodes doc as json (indented) or yaml. An empty format means json.
func Marshal(doc model.Document, format string) ([]byte, error) {
	f, err := normalizeFormat(format)
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		// Encode through JSON first so yaml output uses the same key names
		// and map shapes as the JSON document.
		plain, err := normalize(doc)
		if err != nil {
			return nil, err
		}
		return yaml.Marshal(plain)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Unmarshal decodes a json or yaml document. Yaml input is passed through
// JSON so params hold the same value types either way.
func Unmarshal(data []byte, format string) (model.Document, error) {
	var doc model.Document
	f, err := normalizeFormat(format)
	if err != nil {
		return doc, err
	}
	if f == FormatYAML {
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return doc, fmt.Errorf("decode %s document: %w", f, err)
		}
		if data, err = json.Marshal(stringKeys(raw)); err != nil {
			return doc, fmt.Errorf("decode %s document: %w", f, err)
		}
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decode %s document: %w", f, err)
	}
	return doc, nil
}

// Query runs a jq expression over the JSON form of doc and returns every
// result the expression yields.
func Query(doc model.Document, expression string) ([]any, error) {
	parsed, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("parse query: %w", err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}

	input, err := normalize(doc)
	if err != nil {
		return nil, err
	}

	iter := code.Run(input)
	results := []any{}
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return nil, fmt.Errorf("query: %w", err)
		}
		results = append(results, v)
	}
	return results, nil
}

// WriteFile writes doc to <base>/<name>/pipeline.<format> through om.
func WriteFile(om *utils.OutputManager, name string, doc model.Document, format string) (string, error) {
	data, err := Marshal(doc, format)
	if err != nil {
		return "", err
	}
	return om.WriteFile(name, FileName(format), data)
}

// normalize converts doc into JSON-compatible types via a JSON round trip.
func normalize(doc model.Document) (any, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// stringKeys rewrites yaml mappings with non-string keys (1: one, true: yes)
// into string-keyed maps so they encode as JSON objects.
func stringKeys(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = stringKeys(e)
		}
		return x
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[fmt.Sprint(k)] = stringKeys(e)
		}
		return out
	case []any:
		for i, e := range x {
			x[i] = stringKeys(e)
		}
		return x
	}
	return v
}
