package main

import (
	"bufio"
	"errors"
	"flag"
	"io"
	"log"
	"net"

	"github.com/Xnetter/datastructures-and-algos/resp"
)

// `dispatch` serves one client until it disconnects. A
// protocol error is reported to the client before the
// connection is closed.
func dispatch(c net.Conn, s *store) {
	defer c.Close()
	err := dispatchHelper(c, s)
	if err != nil {
		log.Printf("%s: %v", c.RemoteAddr(), err)
		respError := resp.SimpleError{Data: "ERR " + err.Error()}
		serialisedError, serialisationError := respError.Serialise()
		if serialisationError != nil {
			return
		}
		c.Write(serialisedError)
	}
}

func dispatchHelper(c io.ReadWriter, s *store) error {
	reader := bufio.NewReader(c)
	// read from the TCP connection until its closed
	for {
		command, err := resp.ReadCommand(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		serialisedData, err := s.execute(command)
		if err != nil {
			// command errors don't end the connection
			respError := resp.SimpleError{Data: err.Error()}
			serialisedData, err = respError.Serialise()
			if err != nil {
				return err
			}
		}
		if _, err := c.Write(serialisedData); err != nil {
			return err
		}
	}
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalln(err)
	}
	s := newStore(cfg.Snapshot)
	if cfg.Snapshot != "" {
		if err := s.load(); err != nil {
			log.Fatalln(err)
		}
		log.Printf("loaded %d lists from %s", len(s.lists), cfg.Snapshot)
	}

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		log.Fatalln(err)
	}
	defer listener.Close()
	log.Printf("listening on %s", listener.Addr())

	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Fatalln(err)
		}
		go dispatch(conn, s)
	}
}
