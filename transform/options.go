package transform

// Options recognized by Transform (spec §6).
type Options struct {
	Indent              string
	Newline             string
	StrictTypes         bool
	AddTypeHints        bool
	AddDocBlocks        bool
	UseShortArraySyntax bool
	Namespace           string
	SkipFrameworkStubs  bool
	UseArrowFunctions   bool
}

// DefaultOptions matches spec §6's documented defaults.
func DefaultOptions() Options {
	return Options{
		Indent:              "    ",
		Newline:             "\n",
		StrictTypes:         true,
		AddTypeHints:        true,
		AddDocBlocks:        true,
		UseShortArraySyntax: true,
		UseArrowFunctions:   true,
	}
}
