package ipc

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const dialTimeout = 2 * time.Second

// Send delivers one message to the socket and returns the bar's response
// line.
func Send(socketPath, message string) (string, error) {
	conn, err := net.DialTimeout("unix", socketPath, dialTimeout)
	if err != nil {
		return "", fmt.Errorf("connect to %s: %w", socketPath, err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(dialTimeout))
	if _, err := conn.Write(append([]byte(message), '\n')); err != nil {
		return "", fmt.Errorf("send to %s: %w", socketPath, err)
	}

	// Replies to forwarded panel actions wait on the panel itself.
	conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	reader := bufio.NewReader(conn)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read response from %s: %w", socketPath, err)
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// Sockets lists every socket file in dir, one per running bar.
func Sockets(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list sockets in %s: %w", dir, err)
	}
	var sockets []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		sockets = append(sockets, filepath.Join(dir, entry.Name()))
	}
	return sockets, nil
}
