package profile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.yaml.in/yaml/v4"
)

// Load reads a profile document from a JSON or YAML file. The raw content is
// validated against the profile schema before it is decoded.
func Load(path string) (doc Document, err error) {
	// Read file
	var fileData []byte
	fileData, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read profile file: %s", path)
		return doc, err
	}

	// YAML is normalized to JSON so a single schema covers both
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		fileData, err = yamlToJSON(fileData)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse profile YAML: %s", path)
			return doc, err
		}
	}

	doc, err = Decode(fileData)
	if err != nil {
		err = errors.Wrapf(err, "invalid profile: %s", path)
		return doc, err
	}

	return doc, err
}

// Decode validates raw JSON against the profile schema and decodes it.
func Decode(raw []byte) (doc Document, err error) {
	// Validate shape
	err = ValidateJSON(raw)
	if err != nil {
		return doc, err
	}

	// Parse JSON
	err = json.Unmarshal(raw, &doc)
	if err != nil {
		err = errors.Wrap(err, "failed to parse profile JSON")
		return doc, err
	}

	return doc, err
}

// Save writes the document as indented JSON.
func Save(path string, doc Document) (err error) {
	var data []byte
	data, err = json.MarshalIndent(doc, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal profile")
		return err
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create profile directory: %s", dir)
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write profile file: %s", path)
		return err
	}

	return err
}

// yamlToJSON converts a YAML document into equivalent JSON bytes.
func yamlToJSON(in []byte) (out []byte, err error) {
	var generic interface{}
	err = yaml.Unmarshal(in, &generic)
	if err != nil {
		return out, err
	}

	out, err = json.Marshal(normalizeYAML(generic))
	if err != nil {
		err = errors.Wrap(err, "failed to convert YAML to JSON")
		return out, err
	}

	return out, err
}

// normalizeYAML turns map[interface{}]interface{} nodes, which encoding/json
// cannot marshal, into map[string]interface{}.
func normalizeYAML(v interface{}) (out interface{}) {
	switch t := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[k] = normalizeYAML(val)
		}
		out = m
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[toString(k)] = normalizeYAML(val)
		}
		out = m
	case []interface{}:
		s := make([]interface{}, len(t))
		for i, val := range t {
			s[i] = normalizeYAML(val)
		}
		out = s
	default:
		out = v
	}
	return out
}

func toString(k interface{}) (s string) {
	if str, ok := k.(string); ok {
		s = str
		return s
	}
	var b []byte
	b, _ = json.Marshal(k)
	s = strings.Trim(string(b), `"`)
	return s
}
