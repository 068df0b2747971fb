package cart

import "errors"

var ErrInvalidInput = errors.New("invalid cart input")
