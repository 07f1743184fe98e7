package telegram

import (
	"context"

	"github.com/gramkit/gram/bin"
	"github.com/gramkit/gram/mtproto"
	"github.com/gramkit/gram/session"
)

// connHandler routes connection events back to the client.
type connHandler struct {
	client *Client
}

func (h connHandler) OnMessage(b *bin.Buffer) error     { return h.client.onMessage(b) }
func (h connHandler) OnSession(s mtproto.Session) error { return h.client.onSession(s) }

func (c *Client) onMessage(b *bin.Buffer) error {
	if c.updates == nil {
		return nil
	}
	return c.updates.Handle(b)
}

// onSession carries the negotiated key and salt over to the next
// reconnect and persists them.
func (c *Client) onSession(s mtproto.Session) error {
	c.sessionMux.Lock()
	c.authKey = s.Key
	c.salt = s.Salt
	c.sessionMux.Unlock()

	if c.storage == nil {
		return nil
	}
	return c.storage.Save(context.Background(), &session.Data{
		DC:        c.dc,
		Addr:      c.addr,
		AuthKey:   s.Key.Value[:],
		AuthKeyID: s.Key.ID[:],
		Salt:      s.Salt,
	})
}
