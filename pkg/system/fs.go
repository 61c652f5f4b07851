package system

import "github.com/spf13/afero"

// AppFs is the filesystem config and scenario files are read from.
// Tests swap in afero.NewMemMapFs().
var AppFs afero.Fs = afero.NewOsFs()
