package spec

// fakeRaw is the in-memory RawNode used across this package's tests.
type fakeRaw struct {
	handle     Handle
	identifier string
	docstring  string
	annotation *Annotations
	parent     RawNode
	root       bool
}

func (f *fakeRaw) Handle() Handle     { return f.handle }
func (f *fakeRaw) Identifier() string { return f.identifier }
func (f *fakeRaw) Docstring() string  { return f.docstring }
func (f *fakeRaw) Parent() RawNode    { return f.parent }
func (f *fakeRaw) IsRootScope() bool  { return f.root }

func (f *fakeRaw) Annotation() string {
	if f.annotation == nil {
		return ""
	}
	return f.annotation.Get(f.handle)
}

// scope builds a root-scope sentinel.
func scope(h Handle, name string) *fakeRaw {
	return &fakeRaw{handle: h, identifier: name, root: true}
}

// raw builds a plain raw node under parent.
func raw(h Handle, name string, parent RawNode) *fakeRaw {
	return &fakeRaw{handle: h, identifier: name, parent: parent}
}
