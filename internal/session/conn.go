package session

import (
	"bufio"
	"net"
	"strings"
	"sync"
)

// LineConn is the capability a connection handler needs from a transport:
// line-oriented reads and writes plus close. The TCP implementation lives
// here; tests use an in-memory fake.
type LineConn interface {
	// ReadLine blocks until a full line arrives and returns it without
	// the trailing newline
	ReadLine() (string, error)

	// WriteLine writes one line, appending the newline
	WriteLine(line string) error

	// Close tears the connection down; concurrent ReadLine/WriteLine
	// calls unblock with an error
	Close() error
}

// netLineConn adapts a net.Conn to LineConn
type netLineConn struct {
	conn   net.Conn
	reader *bufio.Reader

	writeMu sync.Mutex
}

// NewLineConn wraps a network connection in the line protocol
func NewLineConn(conn net.Conn) LineConn {
	return &netLineConn{
		conn:   conn,
		reader: bufio.NewReader(conn),
	}
}

func (c *netLineConn) ReadLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *netLineConn) WriteLine(line string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_, err := c.conn.Write([]byte(line + "\n"))
	return err
}

func (c *netLineConn) Close() error {
	return c.conn.Close()
}
