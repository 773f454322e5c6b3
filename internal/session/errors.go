package session

import "errors"

var ErrEmptyURL = errors.New("bookmark URL is required")
