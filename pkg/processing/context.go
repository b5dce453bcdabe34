package processing

import (
	"fmt"
	"maps"
	"os"

	"github.com/systemstart/bootstrap/pkg/api"
	"gopkg.in/yaml.v3"
)

// LoadContextFile reads the global context given with -context-file. Its keys
// are available to every templated manifest field.
func LoadContextFile(filename string) (map[string]any, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading context file %s: %w", filename, err)
	}

	var ctx map[string]any
	if err := yaml.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("parsing context file %s: %w", filename, err)
	}

	if ctx == nil {
		ctx = make(map[string]any)
	}

	return ctx, nil
}

// MergeContext overlays a manifest's context on the global context. The merge
// is shallow and neither input is modified.
func MergeContext(global, local map[string]any) map[string]any {
	merged := make(map[string]any, len(global)+len(local))
	maps.Copy(merged, global)
	maps.Copy(merged, local)
	return merged
}

// TemplateData builds the data manifest templates are rendered with: the
// global context, overridden by the manifest context, plus manifestDir.
func TemplateData(global map[string]any, m *api.Manifest) map[string]any {
	data := MergeContext(global, m.Context)
	if _, ok := data["manifestDir"]; !ok {
		data["manifestDir"] = m.Dir
	}
	return data
}
