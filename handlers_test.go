package main

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"strings"
	"testing"

	"github.com/tychoish/fun/assert"
	"github.com/tychoish/fun/assert/check"
)

func run(t *testing.T, s *store, args ...string) (string, error) {
	t.Helper()
	command := make([][]byte, len(args))
	for i, arg := range args {
		command[i] = []byte(arg)
	}
	reply, err := s.execute(command)
	return string(reply), err
}

func mustRun(t *testing.T, s *store, args ...string) string {
	t.Helper()
	reply, err := run(t, s, args...)
	assert.NotError(t, err)
	return reply
}

func TestExecute(t *testing.T) {
	t.Run("Ping", func(t *testing.T) {
		s := newStore("")
		check.Equal(t, "+PONG\r\n", mustRun(t, s, "PING"))
		check.Equal(t, "+hi\r\n", mustRun(t, s, "ping", "hi"))
		check.Equal(t, "$2\r\nhi\r\n", mustRun(t, s, "ECHO", "hi"))
	})
	t.Run("AppendAndShow", func(t *testing.T) {
		s := newStore("")
		check.Equal(t, ":3\r\n", mustRun(t, s, "LAPPEND", "k", "1", "2", "3"))
		check.Equal(t, ":4\r\n", mustRun(t, s, "LPREPEND", "k", "0"))
		check.Equal(t, "$12\r\n[0->1->2->3]\r\n", mustRun(t, s, "LSHOW", "k"))
		check.Equal(t, "*4\r\n:0\r\n:1\r\n:2\r\n:3\r\n", mustRun(t, s, "LVALUES", "k"))
	})
	t.Run("PrependManyReversesOrder", func(t *testing.T) {
		s := newStore("")
		mustRun(t, s, "LPREPEND", "k", "1", "2", "3")
		check.Equal(t, "$9\r\n[3->2->1]\r\n", mustRun(t, s, "LSHOW", "k"))
	})
	t.Run("MissingKey", func(t *testing.T) {
		s := newStore("")
		check.Equal(t, ":1\r\n", mustRun(t, s, "LEMPTY", "nope"))
		check.Equal(t, "$2\r\n[]\r\n", mustRun(t, s, "LSHOW", "nope"))
		check.Equal(t, "*0\r\n", mustRun(t, s, "LVALUES", "nope"))
		mustRun(t, s, "LAPPEND", "k", "1")
		check.Equal(t, ":0\r\n", mustRun(t, s, "LEMPTY", "k"))
	})
	t.Run("MissingKeyNotCreated", func(t *testing.T) {
		s := newStore("")
		check.Equal(t, "+[]\r\n", mustRun(t, s, "LDEDUP", "nope"))
		check.Equal(t, "+[]\r\n", mustRun(t, s, "LPARTITION", "nope", "3"))
		check.Equal(t, "+[]\r\n", mustRun(t, s, "LPARTITIONIP", "nope", "3"))
		check.Equal(t, 0, len(s.lists))
		check.Equal(t, ":0\r\n", mustRun(t, s, "DEL", "nope"))
	})
	t.Run("Dedup", func(t *testing.T) {
		s := newStore("")
		mustRun(t, s, "LAPPEND", "k", "5", "3", "5", "9", "3", "1")
		check.Equal(t, "+[5->3->9->1]\r\n", mustRun(t, s, "LDEDUP", "k"))
	})
	t.Run("Partition", func(t *testing.T) {
		s := newStore("")
		mustRun(t, s, "LAPPEND", "a", "1", "4", "3", "2", "5", "2")
		mustRun(t, s, "LAPPEND", "b", "1", "4", "3", "2", "5", "2")
		check.Equal(t, "+[2->2->3->1->4->5]\r\n", mustRun(t, s, "LPARTITION", "a", "4"))
		check.Equal(t, "+[2->2->3->1->4->5]\r\n", mustRun(t, s, "LPARTITIONIP", "b", "4"))
	})
	t.Run("Sum", func(t *testing.T) {
		s := newStore("")
		mustRun(t, s, "LAPPEND", "a", "2", "4", "3")
		mustRun(t, s, "LAPPEND", "b", "5", "6", "4")
		check.Equal(t, "+[7->0->8]\r\n", mustRun(t, s, "LSUM", "c", "a", "b"))
		check.Equal(t, "+[2->4->3]\r\n", mustRun(t, s, "LSUM", "d", "a", "missing"))

		// d holds its own copy of a
		mustRun(t, s, "LAPPEND", "d", "9")
		check.Equal(t, "$9\r\n[2->4->3]\r\n", mustRun(t, s, "LSHOW", "a"))
	})
	t.Run("SetAndDel", func(t *testing.T) {
		s := newStore("")
		check.Equal(t, "+OK\r\n", mustRun(t, s, "LSET", "k", "[4->-2]"))
		check.Equal(t, "*2\r\n:4\r\n:-2\r\n", mustRun(t, s, "LVALUES", "k"))
		check.Equal(t, ":1\r\n", mustRun(t, s, "DEL", "k", "other"))
		check.Equal(t, ":1\r\n", mustRun(t, s, "LEMPTY", "k"))
	})
	t.Run("Errors", func(t *testing.T) {
		s := newStore("")
		cases := []struct {
			args []string
			want error
		}{
			{[]string{"NOPE"}, errUnknownCommand},
			{[]string{"LAPPEND", "k"}, errWrongArgs},
			{[]string{"LAPPEND", "k", "x"}, errNotInteger},
			{[]string{"LPARTITION", "k"}, errWrongArgs},
			{[]string{"LPARTITIONIP", "k", "1.5"}, errNotInteger},
			{[]string{"LSUM", "a", "b"}, errWrongArgs},
			{[]string{"SAVE"}, errNoSnapshot},
		}
		for _, tc := range cases {
			_, err := run(t, s, tc.args...)
			assert.ErrorIs(t, err, tc.want)
		}
		_, err := run(t, s, "LSET", "k", "1->2")
		assert.Error(t, err)
		check.True(t, strings.HasPrefix(err.Error(), "ERR malformed list rendering"))
	})
}

// client speaks just enough RESP to drive the server in tests
type client struct {
	conn   net.Conn
	reader *bufio.Reader
}

func (c *client) send(t *testing.T, args ...string) string {
	t.Helper()
	var sb strings.Builder
	fmt.Fprintf(&sb, "*%d\r\n", len(args))
	for _, arg := range args {
		fmt.Fprintf(&sb, "$%d\r\n%s\r\n", len(arg), arg)
	}
	_, err := c.conn.Write([]byte(sb.String()))
	assert.NotError(t, err)
	return c.reply(t)
}

func (c *client) reply(t *testing.T) string {
	t.Helper()
	line, err := c.reader.ReadString('\n')
	assert.NotError(t, err)
	switch line[0] {
	case '$':
		if line != "$-1\r\n" {
			data, err := c.reader.ReadString('\n')
			assert.NotError(t, err)
			line += data
		}
	case '*':
		n, err := strconv.Atoi(strings.TrimSpace(line[1:]))
		assert.NotError(t, err)
		for i := 0; i < n; i++ {
			element, err := c.reader.ReadString('\n')
			assert.NotError(t, err)
			line += element
		}
	}
	return line
}

func TestDispatch(t *testing.T) {
	t.Run("Session", func(t *testing.T) {
		server, conn := net.Pipe()
		done := make(chan error, 1)
		go func() { done <- dispatchHelper(server, newStore("")) }()

		c := &client{conn: conn, reader: bufio.NewReader(conn)}
		check.Equal(t, "+PONG\r\n", c.send(t, "PING"))
		check.Equal(t, ":2\r\n", c.send(t, "LAPPEND", "k", "3", "4"))
		check.Equal(t, "-ERR value is not an integer\r\n", c.send(t, "LAPPEND", "k", "x"))
		check.Equal(t, "$6\r\n[3->4]\r\n", c.send(t, "LSHOW", "k"))

		assert.NotError(t, conn.Close())
		assert.NotError(t, <-done)
	})
	t.Run("ProtocolErrorClosesConnection", func(t *testing.T) {
		server, conn := net.Pipe()
		done := make(chan struct{})
		go func() {
			dispatch(server, newStore(""))
			close(done)
		}()

		_, err := conn.Write([]byte("+PING\r\n"))
		assert.NotError(t, err)
		c := &client{conn: conn, reader: bufio.NewReader(conn)}
		check.Equal(t, "-ERR client data is not an array of bulk strings\r\n", c.reply(t))
		<-done
		conn.Close()
	})
}
