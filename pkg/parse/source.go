package parse

// Source describes a piece of source code.
type Source struct {
	Name string
	Code string
	// Whether the source code is from a file. Should be true for scripts,
	// plugins and buffers backed by files, and false for things like code
	// given on the command line.
	IsFile bool
}

// SourceText returns a Source for a piece of code not backed by a file.
func SourceText(name, code string) Source {
	return Source{Name: name, Code: code}
}
