package config

import "errors"

var ErrMissingParameter = errors.New("missing configuration parameter")
