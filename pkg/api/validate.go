package api

import (
	"fmt"
	"slices"
	"strings"

	"github.com/systemstart/bootstrap/pkg/platform"
)

var validStepTypes = map[string]bool{
	StepTypePython:     true,
	StepTypeCommand:    true,
	StepTypeRun:        true,
	StepTypeSDK:        true,
	StepTypeFiles:      true,
	StepTypeSubmodules: true,
	StepTypeGenerate:   true,
	StepTypeWorkdir:    true,
}

var validSeverities = map[string]bool{
	"":               true,
	SeverityRequired: true,
	SeverityAdvisory: true,
}

// Validate checks the manifest for errors.
func (m *Manifest) Validate() error {
	if len(m.Steps) == 0 {
		return fmt.Errorf("manifest has no steps")
	}

	names := make(map[string]int)

	for i, step := range m.Steps {
		if step.Name == "" {
			return fmt.Errorf("step %d: name is required", i)
		}
		if prev, exists := names[step.Name]; exists {
			return fmt.Errorf("step %d: duplicate step name %q (first defined at step %d)", i, step.Name, prev)
		}
		names[step.Name] = i

		if !validStepTypes[step.Type] {
			return fmt.Errorf("step %q: unknown type %q", step.Name, step.Type)
		}
		if !validSeverities[strings.ToLower(step.Severity)] {
			return fmt.Errorf("step %q: severity %q is not valid (valid: %s, %s)", step.Name, step.Severity, SeverityRequired, SeverityAdvisory)
		}

		if err := validateStepConfig(step); err != nil {
			return fmt.Errorf("step %q: %w", step.Name, err)
		}
	}

	return nil
}

func validateStepConfig(step StepConfig) error {
	switch step.Type {
	case StepTypePython:
		if step.Python == nil {
			return fmt.Errorf("python config is required")
		}
	case StepTypeCommand:
		return validateCommand("command", step.Command)
	case StepTypeRun:
		return validateCommand("run", step.Run)
	case StepTypeSDK:
		return validateSDKConfig(step)
	case StepTypeFiles:
		return validateFilesConfig(step)
	case StepTypeGenerate:
		return validateGenerateConfig(step)
	case StepTypeWorkdir:
		if step.Workdir == nil {
			return fmt.Errorf("workdir config is required")
		}
		if step.Workdir.Path != "" && step.Workdir.GitRoot {
			return fmt.Errorf("workdir.path and workdir.gitRoot are mutually exclusive")
		}
	}
	return nil
}

func validateCommand(field string, cfg *CommandConfig) error {
	if cfg == nil {
		return fmt.Errorf("%s config is required", field)
	}
	if cfg.Command == "" {
		return fmt.Errorf("%s.command is required", field)
	}
	return nil
}

func validateSDKConfig(step StepConfig) error {
	if step.SDK == nil {
		return fmt.Errorf("sdk config is required")
	}
	if step.SDK.EnvVar == "" {
		return fmt.Errorf("sdk.envVar is required")
	}
	if step.SDK.VersionCommand != nil {
		return validateCommand("sdk.versionCommand", step.SDK.VersionCommand)
	}
	return nil
}

func validateFilesConfig(step StepConfig) error {
	if step.Files == nil {
		return fmt.Errorf("files config is required")
	}
	if len(step.Files.Include) == 0 {
		return fmt.Errorf("files.include needs at least one pattern")
	}
	return nil
}

func validateGenerateConfig(step StepConfig) error {
	if step.Generate == nil {
		return fmt.Errorf("generate config is required")
	}
	if len(step.Generate.Platforms) == 0 {
		return fmt.Errorf("generate.platforms needs at least one platform")
	}

	keys := make([]string, 0, len(step.Generate.Platforms))
	for k := range step.Generate.Platforms {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if _, err := platform.Parse(k); err != nil {
			return fmt.Errorf("generate.platforms: %w", err)
		}
		cmd := step.Generate.Platforms[k]
		if err := validateCommand("generate.platforms."+k, &cmd); err != nil {
			return err
		}
	}
	return nil
}
