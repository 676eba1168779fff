package engine

import "io/fs"

// Context tells the engine where templates come from and where output goes.
// Operation output paths are resolved against OutputRoot.
type Context struct {
	TmplFS     fs.FS
	OutputRoot string
}

func NewContext(tmplFS fs.FS, outputRoot string) Context {
	return Context{
		TmplFS:     tmplFS,
		OutputRoot: outputRoot,
	}
}
