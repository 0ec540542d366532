package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ValidatePath checks that the path is absolute or starts with ~
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// Validate checks paths, service names and apps.
// Service patterns are not checked here: the resolver reports invalid
// patterns when a service is used and "gt doctor" lists them.
func (c *Config) Validate() error {
	if c.Directory == "" {
		return errors.New("directory must be set")
	}
	if err := ValidatePath(c.Directory, "directory"); err != nil {
		return err
	}
	if err := ValidatePath(c.Scratchpads, "scratchpads"); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for i, svc := range c.Services {
		if svc.Name == "" {
			return fmt.Errorf("services[%d]: name must be set", i)
		}
		if strings.ContainsAny(svc.Name, `/\:`) {
			return fmt.Errorf("services[%d]: invalid name %q: must not contain %s", i, svc.Name, formatOptions([]string{"/", `\`, ":"}))
		}
		if svc.Name == "." || svc.Name == ".." {
			return fmt.Errorf("services[%d]: invalid name %q: must name a directory below directory", i, svc.Name)
		}
		if seen[svc.Name] {
			return fmt.Errorf("services[%d]: duplicate service %q", i, svc.Name)
		}
		seen[svc.Name] = true
	}

	apps := make(map[string]bool)
	for i, app := range c.Apps {
		if app.Name == "" {
			return fmt.Errorf("apps[%d]: name must be set", i)
		}
		if app.Command == "" {
			return fmt.Errorf("apps[%d] (%s): command must be set", i, app.Name)
		}
		if apps[app.Name] {
			return fmt.Errorf("apps[%d]: duplicate app %q", i, app.Name)
		}
		apps[app.Name] = true
		for _, kv := range app.Environment {
			if !strings.Contains(kv, "=") {
				return fmt.Errorf("apps[%d] (%s): environment entry %q must be KEY=VALUE", i, app.Name, kv)
			}
		}
	}

	return nil
}

// formatOptions formats a list of values for error messages.
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	switch len(quoted) {
	case 0:
		return ""
	case 1:
		return quoted[0]
	case 2:
		return quoted[0] + " or " + quoted[1]
	default:
		return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
	}
}
