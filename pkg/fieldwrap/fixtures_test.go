package fieldwrap

type dummy struct {
	b bool
}

type Base struct {
	ID    string
	count int
}

type Inner struct {
	Depth int
}

type sample struct {
	Base
	*Inner

	Name    string
	Mass    float64
	Tags    []string
	Extra   any
	Parent  *sample
	secret  string
	Enabled bool
}
