package report

import "errors"

var ErrForbidden = errors.New("forbidden")
