package seed

import "errors"

var (
	ErrInvalidFixtures = errors.New("invalid seed fixtures")
	ErrEmptyFixtures   = errors.New("seed file defines no agencies")
)
