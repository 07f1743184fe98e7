package mtproto

import "github.com/gramkit/gram/crypto"

// Session represents connection state.
type Session struct {
	ID   int64
	Key  crypto.AuthKey
	Salt int64
}

func (c *Conn) session() Session {
	c.sessionMux.RLock()
	defer c.sessionMux.RUnlock()
	return Session{
		ID:   c.sessionID,
		Key:  c.authKey,
		Salt: c.salt,
	}
}

func (c *Conn) storeSalt(salt int64) {
	c.sessionMux.Lock()
	c.salt = salt
	c.sessionMux.Unlock()
}
