package checkout

import "errors"

var (
	ErrEmptyCart     = errors.New("cart is empty, nothing to checkout")
	ErrOutOfSequence = errors.New("checkout operation out of sequence")
	ErrInvalidInput  = errors.New("invalid checkout input")
)
