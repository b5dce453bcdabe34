package steps

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/systemstart/bootstrap/pkg/api"
)

// render expands a manifest string against the template data. Strings
// without actions are returned unchanged.
func render(name, text string, data map[string]any) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}

	tmpl, err := template.New(name).Funcs(sprig.FuncMap()).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

type templatedField struct {
	name string
	dst  *string
}

// renderConfig returns a copy of cfg with its templated fields expanded.
func renderConfig(cfg api.StepConfig, data map[string]any) (api.StepConfig, error) {
	out := cfg
	fields := []templatedField{
		{"remediation", &out.Remediation},
		{"announce", &out.Announce},
	}

	if cfg.Python != nil {
		py := *cfg.Python
		out.Python = &py
		fields = append(fields, templatedField{"python.minVersion", &py.MinVersion})
	}
	if cfg.SDK != nil {
		sdk := *cfg.SDK
		out.SDK = &sdk
		fields = append(fields, templatedField{"sdk.minVersion", &sdk.MinVersion})
	}
	if cfg.Files != nil {
		files := *cfg.Files
		out.Files = &files
		fields = append(fields, templatedField{"files.root", &files.Root})
	}
	if cfg.Workdir != nil {
		wd := *cfg.Workdir
		out.Workdir = &wd
		fields = append(fields, templatedField{"workdir.path", &wd.Path})
	}
	if cfg.Command != nil {
		out.Command = copyCommand(cfg.Command)
		fields = appendCommandFields(fields, "command", out.Command)
	}
	if cfg.Run != nil {
		out.Run = copyCommand(cfg.Run)
		fields = appendCommandFields(fields, "run", out.Run)
	}
	if out.SDK != nil && cfg.SDK.VersionCommand != nil {
		out.SDK.VersionCommand = copyCommand(cfg.SDK.VersionCommand)
		fields = appendCommandFields(fields, "sdk.versionCommand", out.SDK.VersionCommand)
	}
	if cfg.Generate != nil {
		gen := api.GenerateConfig{Platforms: make(map[string]api.CommandConfig, len(cfg.Generate.Platforms))}
		for key, cmd := range cfg.Generate.Platforms {
			rendered, err := renderCommand(cfg.Name+".generate."+key, cmd, data)
			if err != nil {
				return cfg, err
			}
			gen.Platforms[key] = rendered
		}
		out.Generate = &gen
	}

	for _, f := range fields {
		v, err := render(cfg.Name+"."+f.name, *f.dst, data)
		if err != nil {
			return cfg, fmt.Errorf("rendering %s: %w", f.name, err)
		}
		*f.dst = v
	}
	return out, nil
}

func copyCommand(cmd *api.CommandConfig) *api.CommandConfig {
	c := *cmd
	c.Args = slices.Clone(cmd.Args)
	return &c
}

func appendCommandFields(fields []templatedField, prefix string, cmd *api.CommandConfig) []templatedField {
	fields = append(fields, templatedField{prefix + ".command", &cmd.Command})
	for i := range cmd.Args {
		fields = append(fields, templatedField{fmt.Sprintf("%s.args[%d]", prefix, i), &cmd.Args[i]})
	}
	return fields
}

func renderCommand(name string, cmd api.CommandConfig, data map[string]any) (api.CommandConfig, error) {
	out := *copyCommand(&cmd)
	for _, f := range appendCommandFields(nil, "", &out) {
		v, err := render(name+f.name, *f.dst, data)
		if err != nil {
			return cmd, fmt.Errorf("rendering %s%s: %w", name, f.name, err)
		}
		*f.dst = v
	}
	return out, nil
}
