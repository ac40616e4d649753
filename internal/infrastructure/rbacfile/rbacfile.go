// Package rbacfile reads and writes the role-permission matrix as YAML.
//
//	roles:
//	  kasse:
//	    - finance.read
//	    - finance.write
package rbacfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sommertheater/portal/internal/domain/access"
	"gopkg.in/yaml.v3"
)

type document struct {
	Roles map[string][]string `yaml:"roles"`
}

// Decode parses a matrix and rejects unknown roles and permission keys.
// The admin role may not be listed since it holds every permission.
func Decode(r io.Reader) (access.Matrix, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("rbac file is empty")
		}
		return nil, fmt.Errorf("failed to parse rbac file: %w", err)
	}

	matrix := make(access.Matrix, len(doc.Roles))
	for name, keys := range doc.Roles {
		role := access.Role(name)
		if !role.Valid() {
			return nil, fmt.Errorf("unknown role %q", name)
		}
		if role == access.RoleAdmin {
			return nil, errors.New("role admin cannot be configured")
		}

		seen := make(map[access.Permission]bool, len(keys))
		perms := make([]access.Permission, 0, len(keys))
		for _, key := range keys {
			perm := access.Permission(key)
			if !perm.Valid() {
				return nil, fmt.Errorf("unknown permission %q for role %s", key, name)
			}
			if seen[perm] {
				continue
			}
			seen[perm] = true
			perms = append(perms, perm)
		}
		matrix[role] = perms
	}
	return matrix, nil
}

// Load reads a matrix from path.
func Load(path string) (access.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rbac file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes m with roles and permissions sorted.
func Encode(w io.Writer, m access.Matrix) error {
	doc := document{Roles: make(map[string][]string, len(m))}
	for role, perms := range m {
		keys := make([]string, 0, len(perms))
		for _, p := range perms {
			keys = append(keys, string(p))
		}
		sort.Strings(keys)
		doc.Roles[string(role)] = keys
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write rbac file: %w", err)
	}
	return enc.Close()
}
