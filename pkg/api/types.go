package api

const (
	ManifestFilename = ".bootstrap.yaml"

	StepTypePython     = "python"
	StepTypeCommand    = "command"
	StepTypeRun        = "run"
	StepTypeSDK        = "sdk"
	StepTypeFiles      = "files"
	StepTypeSubmodules = "submodules"
	StepTypeGenerate   = "generate"
	StepTypeWorkdir    = "workdir"

	SeverityRequired = "required"
	SeverityAdvisory = "advisory"

	DefaultPythonInterpreter = "python3"
)

// Manifest is the .bootstrap.yaml configuration format.
type Manifest struct {
	Context map[string]any `yaml:"context"`
	Steps   []StepConfig   `yaml:"steps"`

	// Set by the loader, not from YAML.
	Dir      string `yaml:"-"`
	FilePath string `yaml:"-"`
}

// StepConfig defines a single bootstrap step.
type StepConfig struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Severity    string `yaml:"severity"`
	Remediation string `yaml:"remediation"`
	Announce    string `yaml:"announce"`

	Python     *PythonConfig     `yaml:"python,omitempty"`
	Command    *CommandConfig    `yaml:"command,omitempty"`
	Run        *CommandConfig    `yaml:"run,omitempty"`
	SDK        *SDKConfig        `yaml:"sdk,omitempty"`
	Files      *FilesConfig      `yaml:"files,omitempty"`
	Submodules *SubmodulesConfig `yaml:"submodules,omitempty"`
	Generate   *GenerateConfig   `yaml:"generate,omitempty"`
	Workdir    *WorkdirConfig    `yaml:"workdir,omitempty"`
}

// PythonConfig configures the python runtime probe.
type PythonConfig struct {
	Interpreter string   `yaml:"interpreter"`
	MinVersion  string   `yaml:"minVersion"`
	Packages    []string `yaml:"packages"`
}

// CommandConfig names an executable and its arguments.
type CommandConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// SDKConfig configures the SDK presence and version probe.
type SDKConfig struct {
	EnvVar     string `yaml:"envVar"`
	MinVersion string `yaml:"minVersion"`
	// VersionCommand reports the installed version on stdout. When empty the
	// version is taken from the SDK path.
	VersionCommand *CommandConfig `yaml:"versionCommand,omitempty"`
}

// FilesConfig configures the file presence probe.
type FilesConfig struct {
	Root    string   `yaml:"root"`
	Include []string `yaml:"include"`
}

// SubmodulesConfig configures the submodule sync action.
type SubmodulesConfig struct {
	Recursive *bool `yaml:"recursive,omitempty"` // default true
}

// GenerateConfig maps platform names to the generator to run there.
type GenerateConfig struct {
	Platforms map[string]CommandConfig `yaml:"platforms"`
}

// WorkdirConfig selects the working directory for the following steps.
type WorkdirConfig struct {
	Path    string `yaml:"path"`
	GitRoot bool   `yaml:"gitRoot"`
}
