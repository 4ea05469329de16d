package eval

// builtinFns is the registry of native functions. It is populated at init
// time by the builtin_fn_*.go files and installed into the global scope of
// every new Evaler.
var builtinFns = map[string]any{}

// addBuiltinFns adds native implementations to the registry. Each value is
// either a Callable or a Go function acceptable to NewGoFn.
func addBuiltinFns(fns map[string]any) {
	for name, impl := range fns {
		builtinFns[name] = impl
	}
}

// BuiltinNames returns the names of all registered builtin functions. Hosts
// use this for completion.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinFns))
	for name := range builtinFns {
		names = append(names, name)
	}
	return names
}
