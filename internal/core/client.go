package core

// Client is one connected peer as seen by the hub. It exists from accept
// time; identity is attached only after a successful USER command, so a
// Client without a Session is a pending connection.
type Client struct {
	ID     string
	Events chan string
}

// NewClient constructs a client with a buffered event channel.
func NewClient(id string) *Client {
	return &Client{
		ID:     id,
		Events: make(chan string, 16),
	}
}

// deliver queues a response or notice for the client's writer. The send is
// non-blocking: a stalled consumer loses the event instead of blocking the
// hub loop.
func (c *Client) deliver(text string) {
	select {
	case c.Events <- text:
	default:
	}
}
