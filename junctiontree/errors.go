package junctiontree

import "errors"

// ErrNotCompiled indicates that no network has been compiled yet.
var ErrNotCompiled = errors.New("junctiontree: network not compiled")
