package fs

import iofs "io/fs"

// WithFS makes the loader read from fsys instead of Dir.
func (l *Loader) WithFS(fsys iofs.FS) *Loader {
	l.fsys = fsys
	return l
}
