package admin

import "errors"

var ErrCannotDeleteAdmin = errors.New("admin accounts cannot be deleted")
