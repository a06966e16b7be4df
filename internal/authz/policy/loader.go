package policy

import (
	"embed"
	"encoding/json"
	"fmt"
	"path/filepath"

	"peopledesk/internal/authz/model"
)

//go:embed policies/*.json
var policiesFS embed.FS

// Loader loads policy declarations from embedded JSON files.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// LoadModulePolicies loads every module policy file and applies
// defaults for omitted audit metadata.
func (l *Loader) LoadModulePolicies() (map[string]*ModulePolicy, error) {
	policies := make(map[string]*ModulePolicy)

	entries, err := policiesFS.ReadDir("policies")
	if err != nil {
		return nil, fmt.Errorf("failed to read policies directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		data, err := policiesFS.ReadFile("policies/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read policy file %s: %w", entry.Name(), err)
		}

		var mp ModulePolicy
		if err := json.Unmarshal(data, &mp); err != nil {
			return nil, fmt.Errorf("failed to parse policy file %s: %w", entry.Name(), err)
		}
		if mp.Module == "" {
			return nil, fmt.Errorf("policy file %s is missing a module name", entry.Name())
		}

		for name, op := range mp.Operations {
			if op == nil {
				return nil, fmt.Errorf("policy file %s has an empty operation %q", entry.Name(), name)
			}
			if op.Category == "" {
				op.Category = model.AuditCategoryAuthorization
			}
			if op.Severity == "" {
				op.Severity = model.AuditSeverityMedium
			}
			for _, req := range op.Requirements {
				switch req {
				case RequirementPermission, RequirementHierarchy, RequirementBranch:
				default:
					return nil, fmt.Errorf("policy file %s operation %q names unknown requirement %q", entry.Name(), name, req)
				}
			}
		}

		policies[mp.Module] = &mp
	}

	return policies, nil
}
