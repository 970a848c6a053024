package resp

import "errors"

var ErrTerminatorNotFound = errors.New("terminator not found")
var ErrInvalidClientData = errors.New("client data is not an array of bulk strings")
var ErrLengthExtraction = errors.New("couldn't extract length")
var ErrBulkStringDataSize = errors.New("bulk string data doesn't match its size")
var ErrArraySize = errors.New("array elements don't match its size")
var ErrEmptyCommand = errors.New("empty command")
