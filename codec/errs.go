package codec

import (
	"errors"
)

var (
	ErrParse    = errors.New("parse error")
	ErrEncoding = errors.New("encoding error")
)
