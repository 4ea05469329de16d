package parse

import "github.com/zem-editor/zem/pkg/diag"

// Error is the type of errors returned by the reader. It carries the
// position of the offending text.
type Error = diag.Error
