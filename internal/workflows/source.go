package workflows

import (
	"fmt"
	"os"
	"strings"

	"github.com/PolarWolf314/panelctl/internal/configs"
	"github.com/PolarWolf314/panelctl/internal/envfile"
	perrors "github.com/PolarWolf314/panelctl/internal/errors"
	"github.com/PolarWolf314/panelctl/internal/legacy"
)

// DefaultMasterKeyVar is the dotenv variable holding the master key.
const DefaultMasterKeyVar = "APP_KEY"

// sourceFile is one loaded dotenv file.
type sourceFile struct {
	Path   string
	Exists bool
	Vars   *envfile.Map
}

// loadSources resolves patterns relative to dir and loads each file.
// Missing files load as empty.
func loadSources(patterns []string, dir string, log legacy.Logger) ([]sourceFile, error) {
	paths, err := envfile.Resolve(patterns, dir)
	if err != nil {
		return nil, fmt.Errorf("resolving dotenv files: %w", err)
	}

	sources := make([]sourceFile, 0, len(paths))
	for _, path := range paths {
		vars, err := envfile.Load(path)
		if err != nil {
			return nil, err
		}

		exists := envfile.Exists(path)
		if !exists {
			log.Debugf("%s: %v, treating it as empty", path, perrors.ErrNotConfigured)
		}

		sources = append(sources, sourceFile{Path: path, Exists: exists, Vars: vars})
	}

	return sources, nil
}

// resolveMasterKey returns the explicit key if set, otherwise the value of
// varName from the last source that defines it.
func resolveMasterKey(explicit, varName string, sources []sourceFile) (string, string, error) {
	if explicit != "" {
		return explicit, "flag", nil
	}

	for i := len(sources) - 1; i >= 0; i-- {
		if v, ok := sources[i].Vars.Get(varName); ok && v != "" {
			return v, sources[i].Path, nil
		}
	}

	return "", "", fmt.Errorf("%w: %s is not set", perrors.ErrMasterKeyMissing, varName)
}

// FieldMapping maps a dotenv variable onto a credential name.
type FieldMapping struct {
	Variable   string
	Credential string
}

// ParseFieldMapping parses VAR or VAR=credential. Without an explicit
// credential name the lowercased variable name is used.
func ParseFieldMapping(spec string) (FieldMapping, error) {
	variable, credential, found := strings.Cut(spec, "=")
	variable = strings.TrimSpace(variable)
	if variable == "" {
		return FieldMapping{}, fmt.Errorf("%w: empty variable in %q", perrors.ErrInvalidTarget, spec)
	}

	credential = strings.TrimSpace(credential)
	if !found || credential == "" {
		credential = configs.CredentialName(variable)
	}

	if err := configs.ValidateCredentialName(credential); err != nil {
		return FieldMapping{}, err
	}

	return FieldMapping{Variable: variable, Credential: credential}, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
