package machine

import "errors"

// ErrAlreadyExists is returned when an element with the same identity has
// already been added to its container, such as two links with one source
// link ID or two chips at one coordinate.
var ErrAlreadyExists = errors.New("already exists")

// ErrInvalidParameter is returned when a constructor is given a value that
// can never describe working hardware, such as a negative SDRAM size or a
// chip coordinate outside the declared machine dimensions.
var ErrInvalidParameter = errors.New("invalid parameter")

// ErrNotFound is returned by lookups for chips or external links that are
// not present in the machine.
var ErrNotFound = errors.New("not found")
