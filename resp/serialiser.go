package resp

import (
	"bytes"
	"strconv"
)

const (
	SIMPLE_STRING_IDENTIFIER = "+"
	SIMPLE_ERROR_IDENTIFIER  = "-"
	INTEGER_IDENTIFIER       = ":"
	BULK_STRING_IDENTIFIER   = "$"
	ARRAY_IDENTIFIER         = "*"
	TERMINATOR               = "\r\n"
	TERMINATOR_SIZE          = 2
)

// RESPDatatype is implemented by every reply
// the server can send
type RESPDatatype interface {
	// Serialise the data into a byte stream
	Serialise() ([]byte, error)
}

// SimpleString is a short, binary unsafe reply
type SimpleString struct {
	Data string
}

// Serialise serialises a SimpleString into
// the RESP format
func (s *SimpleString) Serialise() ([]byte, error) {
	return []byte(SIMPLE_STRING_IDENTIFIER + s.Data + TERMINATOR), nil
}

// SimpleError is sent back when a command fails
type SimpleError struct {
	Data string
}

// Serialise serialises a SimpleError into the RESP
// format
func (s *SimpleError) Serialise() ([]byte, error) {
	return []byte(SIMPLE_ERROR_IDENTIFIER + s.Data + TERMINATOR), nil
}

type Integer struct {
	Data int64
}

// Serialise serialises an Integer into the RESP format
func (i *Integer) Serialise() ([]byte, error) {
	return []byte(INTEGER_IDENTIFIER + strconv.FormatInt(i.Data, 10) + TERMINATOR), nil
}

// BulkString is a length prefixed string. A Size
// of -1 is the null bulk string
type BulkString struct {
	Size int
	Data []byte
}

// `NewBulkString` wraps s in a BulkString with the right size
func NewBulkString(s string) *BulkString {
	return &BulkString{Size: len(s), Data: []byte(s)}
}

// Serialise serialises a BulkString into the RESP format
func (bs *BulkString) Serialise() ([]byte, error) {
	// null bulk string
	if bs.Size == -1 {
		return []byte(BULK_STRING_IDENTIFIER + "-1" + TERMINATOR), nil
	}
	if bs.Size != len(bs.Data) {
		return nil, ErrBulkStringDataSize
	}
	return []byte(BULK_STRING_IDENTIFIER + strconv.Itoa(bs.Size) + TERMINATOR + string(bs.Data) + TERMINATOR), nil
}

// Array holds nested RESP values. A Size of -1
// is the null array
type Array struct {
	Size     int
	Elements []RESPDatatype
}

// `NewIntegerArray` builds an array of integers from vs
func NewIntegerArray(vs []int) *Array {
	a := &Array{Size: len(vs), Elements: make([]RESPDatatype, len(vs))}
	for i, v := range vs {
		a.Elements[i] = &Integer{Data: int64(v)}
	}
	return a
}

// Serialise serialises an Array into the RESP format
func (a *Array) Serialise() ([]byte, error) {
	// null array
	if a.Size == -1 {
		return []byte(ARRAY_IDENTIFIER + "-1" + TERMINATOR), nil
	}
	if a.Size != len(a.Elements) {
		return nil, ErrArraySize
	}

	var serialised bytes.Buffer
	serialised.WriteString(ARRAY_IDENTIFIER + strconv.Itoa(a.Size) + TERMINATOR)
	for i := 0; i < len(a.Elements); i++ {
		serialisedElement, err := a.Elements[i].Serialise()
		if err != nil {
			return nil, err
		}
		serialised.Write(serialisedElement)
	}
	return serialised.Bytes(), nil
}
