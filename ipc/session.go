package ipc

import (
	"context"
	"log"
	"net"

	"central/frame"
)

const readChunkSize = 4096

// Session is one accepted connection's read/write state machine (spec 4.B).
// It owns its write interface and its framed reader exclusively. The read
// loop decodes one request at a time, hands it to the bound router, and
// waits for that response before decoding the next — so responses on this
// session appear in the order their requests arrived, even though the
// router may be serving other sessions concurrently.
type Session struct {
	conn   net.Conn
	router *Router
	writer *Writer
}

// NewSession wraps an already-accepted connection, bound to router.
func NewSession(conn net.Conn, router *Router) *Session {
	return &Session{conn: conn, router: router, writer: NewWriter(conn)}
}

// Run drives the session until the peer closes the connection or a fatal
// codec error occurs. It never returns while the connection is healthy, so
// callers run it in its own goroutine (see Server.Serve).
func (s *Session) Run() {
	defer s.conn.Close()
	defer s.writer.Close()

	buf := make([]byte, 0, readChunkSize)
	chunk := make([]byte, readChunkSize)

	for {
		for {
			env, consumed, err := frame.DecodeEnvelope(buf)
			if err != nil {
				log.Printf("ipc: session: decode error, abandoning connection: %v", err)
				return
			}
			if consumed == 0 {
				break
			}
			buf = buf[consumed:]

			resp := s.router.Dispatch(context.Background(), env)
			if resp == nil {
				log.Printf("ipc: session: no response produced for %q, continuing", env.Message)
				continue
			}

			respEnv, err := frame.NewEnvelope(resp.EnvelopeMessage(), resp)
			if err != nil {
				log.Printf("ipc: session: encode error for %q: %v", resp.EnvelopeMessage(), err)
				continue
			}
			if err := s.writer.Send(respEnv); err != nil {
				log.Printf("ipc: session: write error, abandoning connection: %v", err)
				return
			}
		}

		n, err := s.conn.Read(chunk)
		if err != nil {
			return
		}
		buf = append(buf, chunk[:n]...)
	}
}
