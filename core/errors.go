package core

import "errors"

var ErrNotFound = errors.New("postbox: not found")
var ErrForbiddenPath = errors.New("postbox: path escapes served directory")

func IsNotFoundError(err error) bool {
	return err != nil && err.Error() == ErrNotFound.Error()
}
