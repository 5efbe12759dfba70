package ipc

import (
	"math/rand/v2"
	"net"
	"sync"
	"sync/atomic"

	"central/frame"
)

// ResponseDecoder parses a response variant's data payload given its
// discriminator has already been matched.
type ResponseDecoder func(data []byte) (Response, error)

// Client is a correlated client (spec 4.F): it issues requests tagged with
// a freshly allocated rqs_id and completes a waiter when a response bearing
// that id arrives, however long that takes and regardless of what else is
// in flight on the same connection.
//
// Per spec 9's noted valid alternative, waiters are kept in a single map
// keyed by rqs_id rather than one map per response-type family — the
// response's own concrete type is recovered by the decoder the caller
// registered for the variant that arrived.
type Client struct {
	conn     net.Conn
	writer   *Writer
	decoders map[string]ResponseDecoder

	seq uint32

	mu      sync.Mutex
	waiters map[uint32]chan Response
}

// Connect opens a Unix-domain socket at path and starts the client's
// background reader. decoders maps each response variant name this client
// cares about to a function decoding its data payload.
func Connect(path string, decoders map[string]ResponseDecoder) (*Client, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, &ConnectError{Path: path, Err: err}
	}

	c := &Client{
		conn:     conn,
		writer:   NewWriter(conn),
		decoders: decoders,
		seq:      rand.Uint32(),
		waiters:  make(map[uint32]chan Response),
	}
	go c.readLoop()
	return c, nil
}

// NextID allocates a fresh request id, wrapping on overflow like any
// unsigned counter.
func (c *Client) NextID() uint32 {
	return atomic.AddUint32(&c.seq, 1)
}

// Wait registers a single-shot waiter for the response tagged id. The
// caller must eventually either receive from the returned channel or call
// Cancel(id) to avoid leaking the map entry.
func (c *Client) Wait(id uint32) <-chan Response {
	ch := make(chan Response, 1)
	c.mu.Lock()
	c.waiters[id] = ch
	c.mu.Unlock()
	return ch
}

// Cancel drops a waiter without delivering a response. It does not cancel
// the request on the wire — the server still executes and replies; the
// reply is simply dropped on arrival, per spec 4.F.
func (c *Client) Cancel(id uint32) {
	c.mu.Lock()
	delete(c.waiters, id)
	c.mu.Unlock()
}

// Send encodes req, tagged with message, and enqueues it on the write
// interface.
func (c *Client) Send(message string, req any) error {
	env, err := frame.NewEnvelope(message, req)
	if err != nil {
		return err
	}
	return c.writer.Send(env)
}

// Close closes the underlying connection. The read loop notices and purges
// every outstanding waiter.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) readLoop() {
	defer c.purgeWaiters()

	buf := make([]byte, 0, readChunkSize)
	chunk := make([]byte, readChunkSize)

	for {
		for {
			env, consumed, err := frame.DecodeEnvelope(buf)
			if err != nil {
				return
			}
			if consumed == 0 {
				break
			}
			buf = buf[consumed:]
			c.dispatch(env)
		}

		n, err := c.conn.Read(chunk)
		if err != nil {
			return
		}
		buf = append(buf, chunk[:n]...)
	}
}

func (c *Client) dispatch(env frame.Envelope) {
	decode, ok := c.decoders[env.Message]
	if !ok {
		return
	}
	resp, err := decode(env.Data)
	if err != nil {
		return
	}

	c.mu.Lock()
	ch, ok := c.waiters[resp.RqsID()]
	if ok {
		delete(c.waiters, resp.RqsID())
	}
	c.mu.Unlock()

	if ok {
		ch <- resp
	}
}

func (c *Client) purgeWaiters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, ch := range c.waiters {
		close(ch)
		delete(c.waiters, id)
	}
}
