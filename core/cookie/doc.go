// Package cookie reads and writes HTTP cookies with secure defaults
// (Path=/, HttpOnly, SameSite=Lax) and optional HMAC-SHA256 signatures.
//
//	m, err := cookie.New([]string{secret})
//	if err != nil {
//		return err
//	}
//	_ = m.SetSigned(w, ".webdemo.session", sessionID)
//	id, err := m.GetSigned(r, ".webdemo.session")
//
// Several secrets may be configured. New cookies are signed with the first
// one and any of them verifies, which allows rotating keys without logging
// everyone out.
package cookie
