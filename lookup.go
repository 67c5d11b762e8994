package apidoc

import "iter"

// GetResourceDescription returns the resource ref points at, or nil when it
// is not in the catalog. A handler reference resolves through ResourceName,
// so it matches whatever description is registered under that name.
func (r *Registry) GetResourceDescription(ref ResourceRef) (*ResourceDescription, error) {
	res, err := r.resolve("get resource", ref)
	if err != nil {
		return nil, err
	}
	return r.find(res), nil
}

// GetMethodDescription returns method of the resource ref points at, or nil.
// When method is empty and ref is a path, the last path segment is taken as
// the method: Path("users#create") or Path("v2#users#create").
func (r *Registry) GetMethodDescription(ref ResourceRef, method string) (*MethodDescription, error) {
	const op = "get method"

	if method == "" {
		var ok bool
		ref, method, ok = ref.splitMethod()
		if !ok {
			return nil, argumentError(op, "no method given for %s", ref)
		}
	}

	res, err := r.resolve(op, ref)
	if err != nil {
		return nil, err
	}
	rd := r.find(res)
	if rd == nil {
		return nil, nil
	}
	return rd.MethodDescription(method), nil
}

// ResourceDescriptions yields the description of the referenced resource in
// every available version that has it, in AvailableVersions order. Any version
// pinned on ref is ignored.
func (r *Registry) ResourceDescriptions(ref ResourceRef) (iter.Seq[*ResourceDescription], error) {
	res, err := r.resolve("get resources", ref)
	if err != nil {
		return nil, err
	}
	return func(yield func(*ResourceDescription) bool) {
		for _, version := range r.AvailableVersions() {
			res.version = version
			rd := r.find(res)
			if rd == nil {
				continue
			}
			if !yield(rd) {
				return
			}
		}
	}, nil
}

// MethodDescriptions yields method of the referenced resource in every
// available version that has it, in AvailableVersions order.
func (r *Registry) MethodDescriptions(ref ResourceRef, method string) (iter.Seq[*MethodDescription], error) {
	resources, err := r.ResourceDescriptions(ref)
	if err != nil {
		return nil, err
	}
	return func(yield func(*MethodDescription) bool) {
		for rd := range resources {
			md := rd.MethodDescription(method)
			if md == nil {
				continue
			}
			if !yield(md) {
				return
			}
		}
	}, nil
}

// RemoveResourceDescription deletes the referenced resource from its
// version. Absent resources are ignored.
func (r *Registry) RemoveResourceDescription(ref ResourceRef) error {
	res, err := r.resolve("remove resource", ref)
	if err != nil {
		return err
	}
	if r.find(res) == nil {
		return nil
	}

	resources := r.catalog[res.version]
	resources.Delete(res.name)
	if resources.Len() == 0 {
		delete(r.catalog, res.version)
	}
	r.logger.Debug("removed resource", "version", res.version, "resource", res.name)
	return nil
}

// RemoveMethodDescription deletes method from the referenced resource in a
// single version. Absent entries are ignored.
func (r *Registry) RemoveMethodDescription(ref ResourceRef, method string) error {
	res, err := r.resolve("remove method", ref)
	if err != nil {
		return err
	}
	r.removeMethod(res, method)
	return nil
}

// RemoveMethodDescriptions deletes method from the referenced resource in
// each of versions. Absent entries are ignored.
func (r *Registry) RemoveMethodDescriptions(ref ResourceRef, versions []string, method string) error {
	res, err := r.resolve("remove method", ref)
	if err != nil {
		return err
	}
	for _, version := range versions {
		res.version = version
		r.removeMethod(res, method)
	}
	return nil
}

func (r *Registry) removeMethod(res resolvedRef, method string) {
	rd := r.find(res)
	if rd == nil || rd.MethodDescription(method) == nil {
		return
	}
	rd.RemoveMethodDescription(method)
	r.logger.Debug("removed method", "version", res.version, "resource", res.name, "method", method)
}

func (r *Registry) find(res resolvedRef) *ResourceDescription {
	return r.lookup(res.version, res.name)
}
