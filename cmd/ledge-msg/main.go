// ledge-msg sends one message to a running bar's control socket and prints
// the response. Without -bar it broadcasts to every socket in the runtime
// directory, prefixing each response with the bar's name.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/b/ledge/pkg/ipc"
	"github.com/b/ledge/pkg/paths"
)

var barName = flag.String("bar", "", "bar to message (default: all running bars)")

func main() {
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: ledge-msg [-bar name] message...")
		os.Exit(2)
	}
	message := strings.Join(flag.Args(), " ")

	if *barName != "" {
		response, err := ipc.Send(paths.SocketPath(*barName), message)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ledge-msg: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(response)
		return
	}

	sockets, err := ipc.Sockets(paths.RuntimeDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "ledge-msg: %v\n", err)
		os.Exit(1)
	}
	if len(sockets) == 0 {
		fmt.Fprintln(os.Stderr, "ledge-msg: no running bars")
		os.Exit(1)
	}

	failed := false
	for _, socket := range sockets {
		name := filepath.Base(socket)
		response, err := ipc.Send(socket, message)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ledge-msg: %s: %v\n", name, err)
			failed = true
			continue
		}
		fmt.Printf("%s: %s\n", name, response)
	}
	if failed {
		os.Exit(1)
	}
}
