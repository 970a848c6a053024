package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Xnetter/datastructures-and-algos/linkedlist"
	"github.com/Xnetter/datastructures-and-algos/resp"
)

var errWrongArgs = errors.New("ERR wrong number of arguments")
var errNotInteger = errors.New("ERR value is not an integer")
var errUnknownCommand = errors.New("ERR unknown command")
var errNoSnapshot = errors.New("ERR no snapshot file configured")
var errSnapshotLine = errors.New("malformed snapshot line")

// `execute` runs a single command against the store and
// returns the serialised reply. Errors are meant to be sent
// back to the client as simple errors.
func (s *store) execute(command [][]byte) ([]byte, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	args := command[1:]
	switch strings.ToUpper(string(command[0])) {
	case "PING":
		return ping(args)
	case "ECHO":
		return echo(args)
	case "LAPPEND":
		return lappend(args, s)
	case "LPREPEND":
		return lprepend(args, s)
	case "LEMPTY":
		return lempty(args, s)
	case "LDEDUP":
		return ldedup(args, s)
	case "LPARTITION":
		return lpartition(args, s, (*linkedlist.List).PartitionAroundVal)
	case "LPARTITIONIP":
		return lpartition(args, s, (*linkedlist.List).PartitionAroundValInPlace)
	case "LSHOW":
		return lshow(args, s)
	case "LVALUES":
		return lvalues(args, s)
	case "LSUM":
		return lsum(args, s)
	case "LSET":
		return lset(args, s)
	case "DEL":
		return del(args, s)
	case "SAVE":
		return save(args, s)
	default:
		return nil, errUnknownCommand
	}
}

// `parseInts` converts every arg into an int
func parseInts(args [][]byte) ([]int, error) {
	values := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(string(arg))
		if err != nil {
			return nil, errNotInteger
		}
		values[i] = v
	}
	return values, nil
}

func rendering(l *linkedlist.List) ([]byte, error) {
	response := resp.SimpleString{Data: l.String()}
	return response.Serialise()
}

// PING command returns PONG
func ping(args [][]byte) ([]byte, error) {
	var response resp.SimpleString
	if len(args) == 0 {
		response.Data = "PONG"
	} else {
		response.Data = string(args[0])
	}
	return response.Serialise()
}

// ECHO command echoes back the data to the client
func echo(args [][]byte) ([]byte, error) {
	if len(args) != 1 {
		return nil, errWrongArgs
	}
	return resp.NewBulkString(string(args[0])).Serialise()
}

// LAPPEND key v [v ...] appends every value and replies
// with the new length
func lappend(args [][]byte, s *store) ([]byte, error) {
	if len(args) < 2 {
		return nil, errWrongArgs
	}
	values, err := parseInts(args[1:])
	if err != nil {
		return nil, err
	}
	l := s.list(string(args[0]))
	for _, v := range values {
		l.AppendValue(v)
	}
	response := resp.Integer{Data: int64(l.Len())}
	return response.Serialise()
}

// LPREPEND key v [v ...] prepends every value in turn, so
// the last value ends up at the head
func lprepend(args [][]byte, s *store) ([]byte, error) {
	if len(args) < 2 {
		return nil, errWrongArgs
	}
	values, err := parseInts(args[1:])
	if err != nil {
		return nil, err
	}
	l := s.list(string(args[0]))
	for _, v := range values {
		l.PrependValue(v)
	}
	response := resp.Integer{Data: int64(l.Len())}
	return response.Serialise()
}

// LEMPTY key replies 1 if the list is empty or missing
func lempty(args [][]byte, s *store) ([]byte, error) {
	if len(args) != 1 {
		return nil, errWrongArgs
	}
	var response resp.Integer
	if l, ok := s.lists[string(args[0])]; !ok || l.IsEmpty() {
		response.Data = 1
	}
	return response.Serialise()
}

func ldedup(args [][]byte, s *store) ([]byte, error) {
	if len(args) != 1 {
		return nil, errWrongArgs
	}
	l, ok := s.lists[string(args[0])]
	if !ok {
		return rendering(linkedlist.New())
	}
	l.RemoveDuplicates()
	return rendering(l)
}

// `lpartition` backs both LPARTITION and LPARTITIONIP
func lpartition(args [][]byte, s *store, partition func(*linkedlist.List, int)) ([]byte, error) {
	if len(args) != 2 {
		return nil, errWrongArgs
	}
	pivot, err := parseInts(args[1:])
	if err != nil {
		return nil, err
	}
	l, ok := s.lists[string(args[0])]
	if !ok {
		return rendering(linkedlist.New())
	}
	partition(l, pivot[0])
	return rendering(l)
}

// LSHOW key replies with the list rendering, [] for a
// missing key
func lshow(args [][]byte, s *store) ([]byte, error) {
	if len(args) != 1 {
		return nil, errWrongArgs
	}
	rendered := "[]"
	if l, ok := s.lists[string(args[0])]; ok {
		rendered = l.String()
	}
	return resp.NewBulkString(rendered).Serialise()
}

func lvalues(args [][]byte, s *store) ([]byte, error) {
	if len(args) != 1 {
		return nil, errWrongArgs
	}
	var values []int
	if l, ok := s.lists[string(args[0])]; ok {
		values = l.Values()
	}
	return resp.NewIntegerArray(values).Serialise()
}

// LSUM dst a b stores the digit-wise sum of a and b at dst
func lsum(args [][]byte, s *store) ([]byte, error) {
	if len(args) != 3 {
		return nil, errWrongArgs
	}
	sum := linkedlist.SumLinkedListNums(s.lists[string(args[1])], s.lists[string(args[2])])
	s.lists[string(args[0])] = sum
	return rendering(sum)
}

// LSET key rendering replaces key with the parsed rendering
func lset(args [][]byte, s *store) ([]byte, error) {
	if len(args) != 2 {
		return nil, errWrongArgs
	}
	l, err := linkedlist.Parse(string(args[1]))
	if err != nil {
		return nil, fmt.Errorf("ERR %w", err)
	}
	s.lists[string(args[0])] = l
	response := resp.SimpleString{Data: "OK"}
	return response.Serialise()
}

// DEL key [key ...] replies with the number of keys removed
func del(args [][]byte, s *store) ([]byte, error) {
	if len(args) == 0 {
		return nil, errWrongArgs
	}
	var response resp.Integer
	for _, key := range args {
		if _, ok := s.lists[string(key)]; ok {
			delete(s.lists, string(key))
			response.Data++
		}
	}
	return response.Serialise()
}

func save(args [][]byte, s *store) ([]byte, error) {
	if len(args) != 0 {
		return nil, errWrongArgs
	}
	if err := s.save(); err != nil {
		if errors.Is(err, errNoSnapshot) {
			return nil, err
		}
		return nil, fmt.Errorf("ERR %w", err)
	}
	response := resp.SimpleString{Data: "OK"}
	return response.Serialise()
}
