package eval

import _ "embed"

// Lisp source executed by NewEvaler. Macros that are more natural to write
// in the language itself than as native functions live there.
//
//go:embed prelude.zl
var preludeCode string
