package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/apidoc"
)

// manifest declares handlers and their descriptions the way an annotation
// layer would produce them at load time.
type manifest struct {
	Handlers []handlerDecl `yaml:"handlers"`
}

type handlerDecl struct {
	Name       string                               `yaml:"name"`
	Parent     string                               `yaml:"parent"`
	Resource   string                               `yaml:"resource"`
	Path       string                               `yaml:"path"`
	ResourceID string                               `yaml:"resource_id"`
	Versions   []string                             `yaml:"versions"`
	Describe   *apidoc.ResourcePayload              `yaml:"describe"`
	Groups     map[string][]apidoc.ParamDescription `yaml:"param_groups"`
	Methods    yaml.Node                            `yaml:"methods"`
}

// methodDecl is a method payload plus the param groups it pulls in.
type methodDecl struct {
	apidoc.MethodPayload `yaml:",inline"`
	ParamGroups          []string `yaml:"param_groups"`
}

// readManifest parses the manifest at path.
func readManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// manifestLoader registers everything a manifest declares. Handler
// identities are created once so reloads reuse the same tree.
type manifestLoader struct {
	m        *manifest
	tree     *apidoc.Tree
	handlers map[string]*apidoc.Handler
}

func newManifestLoader(m *manifest, tree *apidoc.Tree) (*manifestLoader, error) {
	l := &manifestLoader{m: m, tree: tree, handlers: make(map[string]*apidoc.Handler, len(m.Handlers))}
	for _, d := range m.Handlers {
		if _, dup := l.handlers[d.Name]; dup {
			return nil, fmt.Errorf("handler %q declared twice", d.Name)
		}
		l.handlers[d.Name] = &apidoc.Handler{Name: d.Name, Resource: d.Resource, Path: d.Path}
	}
	for _, d := range m.Handlers {
		var parent *apidoc.Handler
		if d.Parent != "" {
			p, ok := l.handlers[d.Parent]
			if !ok {
				return nil, fmt.Errorf("handler %q: unknown parent %q", d.Name, d.Parent)
			}
			parent = p
		}
		if err := tree.Add(l.handlers[d.Name], parent); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Load implements apidoc.Loader. Handlers are processed in manifest order:
// identity and versions first, then param groups, resources and methods.
func (l *manifestLoader) Load(reg *apidoc.Registry) error {
	for _, d := range l.m.Handlers {
		h := l.handlers[d.Name]
		if d.ResourceID != "" {
			reg.SetResourceID(h, d.ResourceID)
		}
		reg.SetControllerVersions(h, d.Versions)
	}

	for _, d := range l.m.Handlers {
		h := l.handlers[d.Name]

		for name, params := range d.Groups {
			if err := reg.AddParamGroup(h, name, params); err != nil {
				return err
			}
		}

		if d.Describe != nil {
			for _, version := range reg.ControllerVersions(h) {
				if _, err := reg.DefineResourceDescription(h, version, d.Describe); err != nil {
					return fmt.Errorf("handler %s: %w", d.Name, err)
				}
			}
		}

		if err := l.loadMethods(reg, h, &d.Methods); err != nil {
			return fmt.Errorf("handler %s: %w", d.Name, err)
		}
	}
	return nil
}

// loadMethods walks the methods mapping node so declaration order survives.
func (l *manifestLoader) loadMethods(reg *apidoc.Registry, h *apidoc.Handler, node *yaml.Node) error {
	if node.Kind == 0 {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("methods: expected a mapping, got line %d", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value

		var decl methodDecl
		if err := node.Content[i+1].Decode(&decl); err != nil {
			return fmt.Errorf("method %s: %w", name, err)
		}

		for _, group := range decl.ParamGroups {
			params, err := reg.ParamGroup(l.groupOwner(h, group), group)
			if err != nil {
				return fmt.Errorf("method %s: %w", name, err)
			}
			decl.Params = append(decl.Params, params...)
		}

		if _, err := reg.DefineMethodDescription(h, name, decl.MethodPayload); err != nil {
			return fmt.Errorf("method %s: %w", name, err)
		}
	}
	return nil
}

// groupOwner finds the closest handler, starting at h, that declares group.
func (l *manifestLoader) groupOwner(h *apidoc.Handler, group string) *apidoc.Handler {
	declared := func(c *apidoc.Handler) bool {
		for _, d := range l.m.Handlers {
			if l.handlers[d.Name] == c {
				_, ok := d.Groups[group]
				return ok
			}
		}
		return false
	}
	for c := h; c != nil; c = l.tree.Parent(c) {
		if declared(c) {
			return c
		}
	}
	return h
}
