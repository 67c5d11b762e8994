// Package apidoc is a runtime registry of API documentation. Handlers
// (typically controllers) describe their resources and methods as they are
// loaded, and the registry builds a versioned, in-memory catalog that can be
// queried, pruned and rendered to a documentation tree.
//
// A Registry is an ordinary value with an explicit lifecycle:
//
//	reg := apidoc.New(apidoc.WithAppName("Shop"), apidoc.WithDefaultVersion("v1"))
//
//	base := &apidoc.Handler{Name: "ApplicationController"}
//	users := &apidoc.Handler{Name: "UsersController", Resource: "users"}
//	reg.Tree().Add(users, base)
//	reg.SetControllerVersions(base, []string{"v1", "v2"})
//
//	reg.DefineMethodDescription(users, "show", apidoc.MethodPayload{
//	    ShortDescription: "Show a user",
//	    Successes:        []apidoc.SuccessArgs{{200, "OK"}},
//	})
//
// Handlers without their own version declaration inherit it from the
// closest ancestor in the registry's Tree, and fall back to the default
// version at the root. A method declared for several versions gets one
// independent MethodDescription per version.
//
// Lookups take a ResourceRef, built from a "#"-separated path or a handler:
//
//	md, err := reg.GetMethodDescription(apidoc.Path("v2#users#show"), "")
//	md, err = reg.GetMethodDescription(apidoc.HandlerRef(users).In("v2"), "show")
//
// Not-found lookups return nil. Malformed references fail with ErrArgument.
//
// The catalog of a version is rendered with ToJSON, WriteDocument or
// WriteDocumentYAML. Resources and methods keep their registration order.
package apidoc
