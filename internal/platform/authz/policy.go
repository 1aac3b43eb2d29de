// Package authz turns caller ids into the users authorization rules decide
// on. The mapping comes from a static YAML policy file.
package authz

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen11/go-business-objects/internal/domain/rules"
)

type policyFile struct {
	Users map[string]policyUser `yaml:"users"`
}

type policyUser struct {
	Name  string   `yaml:"name"`
	Roles []string `yaml:"roles"`
}

// Policy resolves caller ids to users. It is safe for concurrent use.
type Policy struct {
	path string
	mu   sync.RWMutex
	file policyFile
}

// Load reads the policy at path.
func Load(path string) (*Policy, error) {
	p := &Policy{path: path}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse builds a policy from YAML bytes. Reload is a no-op on it.
func Parse(data []byte) (*Policy, error) {
	f, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("authz: parsing policy: %w", err)
	}
	return &Policy{file: f}, nil
}

func parse(data []byte) (policyFile, error) {
	var f policyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return policyFile{}, err
	}
	for id, u := range f.Users {
		if id == "" {
			return policyFile{}, errors.New("user with empty id")
		}
		slices.Sort(u.Roles)
		f.Users[id] = policyUser{Name: u.Name, Roles: slices.Compact(u.Roles)}
	}
	return f, nil
}

// Reload rereads the policy file from disk.
func (p *Policy) Reload() error {
	if p.path == "" {
		return nil
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("authz: reading policy file %s: %w", p.path, err)
	}
	f, err := parse(data)
	if err != nil {
		return fmt.Errorf("authz: parsing policy file %s: %w", p.path, err)
	}

	p.mu.Lock()
	p.file = f
	p.mu.Unlock()
	return nil
}

// User returns the user for a caller id. Unknown or empty ids yield nil,
// which the rules treat as anonymous.
func (p *Policy) User(id string) rules.UserInfo {
	if id == "" {
		return nil
	}
	p.mu.RLock()
	u, ok := p.file.Users[id]
	p.mu.RUnlock()
	if !ok {
		return nil
	}
	return &rules.User{Code: id, Name: u.Name, Roles: slices.Clone(u.Roles)}
}

// Len returns the number of known callers.
func (p *Policy) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.file.Users)
}
