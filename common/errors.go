package common

import "errors"

// ErrUsage is returned by subcommands when command line does not have
// expected arguments.
var ErrUsage = errors.New("malformed command line")
