package oauthmodel

import "errors"

var ErrInvalidScope = errors.New("invalid scope")
