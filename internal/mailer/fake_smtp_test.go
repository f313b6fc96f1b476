package mailer

import (
	"bufio"
	"net"
	"strings"
	"sync"
	"testing"
)

// fakeRelay is a scripted SMTP server that understands just enough of the
// protocol for net/smtp to deliver one message over plaintext.
type fakeRelay struct {
	listener net.Listener
	authCode string
	hangUp   bool
	silent   bool

	mu       sync.Mutex
	accepted int
	messages []string
	commands []string
}

func startFakeRelay(t *testing.T, configure func(*fakeRelay)) *fakeRelay {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	relay := &fakeRelay{listener: listener, authCode: "235 2.7.0 Authentication successful"}
	if configure != nil {
		configure(relay)
	}
	t.Cleanup(func() { listener.Close() })

	go relay.serve()
	return relay
}

func (r *fakeRelay) port() int {
	return r.listener.Addr().(*net.TCPAddr).Port
}

func (r *fakeRelay) serve() {
	for {
		conn, err := r.listener.Accept()
		if err != nil {
			return
		}
		r.mu.Lock()
		r.accepted++
		r.mu.Unlock()
		go r.handle(conn)
	}
}

func (r *fakeRelay) handle(conn net.Conn) {
	defer conn.Close()
	if r.hangUp {
		return
	}
	if r.silent {
		buffer := make([]byte, 1)
		_, _ = conn.Read(buffer)
		return
	}

	reader := bufio.NewReader(conn)
	reply := func(lines ...string) {
		for _, line := range lines {
			_, _ = conn.Write([]byte(line + "\r\n"))
		}
	}

	reply("220 fake.relay ESMTP ready")
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		command := strings.TrimRight(line, "\r\n")
		r.record(command)

		upper := strings.ToUpper(command)
		switch {
		case strings.HasPrefix(upper, "EHLO"), strings.HasPrefix(upper, "HELO"):
			reply("250-fake.relay", "250 AUTH PLAIN")
		case strings.HasPrefix(upper, "AUTH"):
			reply(r.authCode)
		case command == "*":
			reply("501 5.7.0 Authentication aborted")
		case strings.HasPrefix(upper, "MAIL FROM"), strings.HasPrefix(upper, "RCPT TO"):
			reply("250 2.1.0 OK")
		case upper == "DATA":
			reply("354 End data with <CR><LF>.<CR><LF>")
			var body strings.Builder
			for {
				dataLine, err := reader.ReadString('\n')
				if err != nil {
					return
				}
				if dataLine == ".\r\n" {
					break
				}
				body.WriteString(dataLine)
			}
			r.mu.Lock()
			r.messages = append(r.messages, body.String())
			r.mu.Unlock()
			reply("250 2.0.0 queued")
		case upper == "QUIT":
			reply("221 2.0.0 bye")
			return
		default:
			reply("502 5.5.2 command not recognized")
		}
	}
}

func (r *fakeRelay) record(command string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, command)
}

func (r *fakeRelay) acceptedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accepted
}

func (r *fakeRelay) deliveredMessages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}
