package app

import "errors"

var ErrUnknownAction = errors.New("unknown action")
