package workflows

import (
	"context"
	"strings"

	"github.com/PolarWolf314/panelctl/internal/legacy"
)

// Variable describes one dotenv variable.
type Variable struct {
	// Name is the variable name.
	Name string

	// Value is the raw value as written in the file.
	Value string

	// Encrypted reports whether the value decodes as a legacy envelope.
	Encrypted bool

	// MasterKey reports whether this variable holds the master key.
	MasterKey bool
}

// EnvFileInfo holds the variables of one dotenv file.
type EnvFileInfo struct {
	// Path is the resolved path of the file.
	Path string

	// Exists is false when the file was named but is missing.
	Exists bool

	// Variables are listed in file order.
	Variables []Variable
}

// InspectSummary holds counts across all inspected files.
type InspectSummary struct {
	// Variables is the total number of variables.
	Variables int

	// Encrypted is the number of variables holding legacy envelopes.
	Encrypted int
}

// InspectOptions configures the inspect workflow.
type InspectOptions struct {
	// EnvPatterns select dotenv files. If empty, .env in Dir is used.
	EnvPatterns []string

	// Dir is the base directory for relative patterns. Defaults to ".".
	Dir string

	// MasterKeyVar names the master key variable. Defaults to APP_KEY.
	MasterKeyVar string

	// Logger receives diagnostics. May be nil.
	Logger legacy.Logger
}

// InspectResult contains the outcome of an inspect operation.
type InspectResult struct {
	// Files contains one entry per resolved dotenv file.
	Files []EnvFileInfo

	// Summary contains counts across all files.
	Summary InspectSummary
}

// Inspect lists the variables of dotenv files and flags those holding
// legacy encrypted values. Nothing is decrypted.
func Inspect(ctx context.Context, opts InspectOptions) (*InspectResult, error) {
	sources, err := loadSources(opts.EnvPatterns, dirOrDefault(opts.Dir), loggerOrDiscard(opts.Logger))
	if err != nil {
		return nil, err
	}

	keyVar := keyVarOrDefault(opts.MasterKeyVar)
	result := &InspectResult{Files: make([]EnvFileInfo, 0, len(sources))}

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info := EnvFileInfo{Path: src.Path, Exists: src.Exists}
		for _, name := range src.Vars.Keys() {
			value := src.Vars.Value(name)
			v := Variable{
				Name:      name,
				Value:     value,
				MasterKey: strings.EqualFold(name, keyVar),
			}
			v.Encrypted = !v.MasterKey && legacy.IsEnvelope(value)

			info.Variables = append(info.Variables, v)
			result.Summary.Variables++
			if v.Encrypted {
				result.Summary.Encrypted++
			}
		}
		result.Files = append(result.Files, info)
	}

	return result, nil
}
