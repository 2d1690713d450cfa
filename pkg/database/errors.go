package database

import "errors"

// ErrUnsupportedDriver is returned for a driver other than DriverPostgres or DriverSQLite.
var ErrUnsupportedDriver = errors.New("unsupported database driver")
