// Package apitest provides test helpers for the apidoc registry.
package apitest

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/apidoc"
)

// NewRegistry creates a registry that logs nowhere and reads recorded
// examples from a file inside t.TempDir() that does not exist yet. Options
// are applied after those defaults.
func NewRegistry(t testing.TB, opts ...apidoc.Option) *apidoc.Registry {
	t.Helper()
	defaults := []apidoc.Option{
		apidoc.WithLogger(slog.New(slog.DiscardHandler)),
		apidoc.WithExamplesFile(filepath.Join(t.TempDir(), "examples.yml")),
	}
	return apidoc.New(append(defaults, opts...)...)
}

// Handlers is a small fixture hierarchy:
//
//	Base (abstract)
//	├── Users    (resource "users")
//	└── Admin    (abstract)
//	    └── AdminWidgets (resource "widgets")
type Handlers struct {
	Base         *apidoc.Handler
	Users        *apidoc.Handler
	Admin        *apidoc.Handler
	AdminWidgets *apidoc.Handler
}

// NewHandlers builds the fixture hierarchy and links it into the tree of reg.
func NewHandlers(t testing.TB, reg *apidoc.Registry) *Handlers {
	t.Helper()
	h := &Handlers{
		Base:         &apidoc.Handler{Name: "ApplicationController"},
		Users:        &apidoc.Handler{Name: "UsersController", Resource: "users"},
		Admin:        &apidoc.Handler{Name: "Admin::BaseController"},
		AdminWidgets: &apidoc.Handler{Name: "Admin::WidgetsController", Resource: "widgets", Path: "admin/widgets"},
	}
	links := []struct{ child, parent *apidoc.Handler }{
		{h.Base, nil},
		{h.Users, h.Base},
		{h.Admin, h.Base},
		{h.AdminWidgets, h.Admin},
	}
	for _, l := range links {
		if err := reg.Tree().Add(l.child, l.parent); err != nil {
			t.Fatalf("apitest: link %s: %v", l.child, err)
		}
	}
	return h
}

// DefineMethod defines a method and fails the test on error.
func DefineMethod(t testing.TB, reg *apidoc.Registry, h *apidoc.Handler, method string, p apidoc.MethodPayload) *apidoc.MethodDescription {
	t.Helper()
	md, err := reg.DefineMethodDescription(h, method, p)
	if err != nil {
		t.Fatalf("apitest: define %s#%s: %v", h, method, err)
	}
	return md
}

// DocumentJSON encodes doc and decodes it back into generic JSON values, so
// tests can assert on the exact serialized shape.
func DocumentJSON(t testing.TB, doc *apidoc.Document) map[string]any {
	t.Helper()
	if doc == nil {
		t.Fatalf("apitest: nil document")
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		t.Fatalf("apitest: encode document: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("apitest: decode document: %v", err)
	}
	return out
}

// WriteExamples writes recorded examples as YAML to path.
func WriteExamples(t testing.TB, path string, examples map[string][]apidoc.RecordedExample) {
	t.Helper()
	data, err := yaml.Marshal(examples)
	if err != nil {
		t.Fatalf("apitest: marshal examples: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("apitest: create examples dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("apitest: write examples: %v", err)
	}
}
