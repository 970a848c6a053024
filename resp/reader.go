package resp

import (
	"bufio"
	"io"
	"strconv"
)

const (
	MAX_MULTIBULK_LENGTH = 1024 * 1024
	MAX_BULK_LENGTH      = 512 * 1024 * 1024
)

// readLength reads a token of the form <identifier><length>TERMINATOR
// and returns the length
func readLength(reader *bufio.Reader, identifier string) (int, error) {
	token, err := reader.ReadBytes('\n')
	if err != nil {
		return 0, ErrTerminatorNotFound
	}
	if len(token) < 1+TERMINATOR_SIZE || token[len(token)-2] != '\r' {
		return 0, ErrTerminatorNotFound
	}
	if string(token[0]) != identifier {
		return 0, ErrInvalidClientData
	}
	length, err := strconv.Atoi(string(token[1 : len(token)-TERMINATOR_SIZE]))
	if err != nil {
		return 0, ErrLengthExtraction
	}
	return length, nil
}

// ReadCommand reads one client command, an array of bulk
// strings, from reader. It returns io.EOF if the client
// closed the connection before sending anything.
func ReadCommand(reader *bufio.Reader) ([][]byte, error) {
	// no data read and EOF implies that the client closed the connection
	if _, err := reader.Peek(1); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, err
	}
	arraySize, err := readLength(reader, ARRAY_IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if arraySize < 1 {
		return nil, ErrEmptyCommand
	}
	if arraySize > MAX_MULTIBULK_LENGTH {
		return nil, ErrLengthExtraction
	}
	command := make([][]byte, 0, arraySize)
	// read one bulk string at a time
	for i := 0; i < arraySize; i++ {
		length, err := readLength(reader, BULK_STRING_IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if length < 0 || length > MAX_BULK_LENGTH {
			return nil, ErrLengthExtraction
		}
		// the data plus its terminator
		bulkStringData := make([]byte, length+TERMINATOR_SIZE)
		if _, err := io.ReadFull(reader, bulkStringData); err != nil {
			return nil, ErrBulkStringDataSize
		}
		if string(bulkStringData[length:]) != TERMINATOR {
			return nil, ErrBulkStringDataSize
		}
		command = append(command, bulkStringData[:length])
	}
	return command, nil
}
