package apidoc

// AddParamGroup stores a reusable block of parameters under name, scoped to
// the path of h. Adding a group again replaces it.
func (r *Registry) AddParamGroup(h *Handler, name string, params []ParamDescription) error {
	if h == nil {
		return argumentError("add param group", "param group %q has no handler", name)
	}
	for i := range params {
		if err := r.validatePayload("add param group", &params[i]); err != nil {
			return err
		}
	}
	r.paramGroups[paramGroupKey(h, name)] = qualifyParams(params, "")
	return nil
}

// ParamGroup returns a copy of the parameters stored under name for h. An
// unknown group is a ConfigurationError matching ErrParamGroupUndefined.
func (r *Registry) ParamGroup(h *Handler, name string) ([]ParamDescription, error) {
	if h == nil {
		return nil, argumentError("param group", "param group %q has no handler", name)
	}
	key := paramGroupKey(h, name)
	params, ok := r.paramGroups[key]
	if !ok {
		return nil, &ConfigurationError{Key: key}
	}
	return qualifyParams(params, ""), nil
}

func paramGroupKey(h *Handler, name string) string {
	return h.path() + "#" + name
}
