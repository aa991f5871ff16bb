package bootstrap

import "errors"

var errMissingDatabaseURL = errors.New("DATABASE_URL is required")
