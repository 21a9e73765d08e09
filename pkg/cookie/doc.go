// Package cookie wraps net/http cookies with shared defaults, HMAC-SHA256
// signing and encrypted single-use flash values.
//
//	m, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")}, cookie.WithSecure(true))
//
//	m.SetSigned(w, "form_id", id)
//	id, err := m.GetSigned(r, "form_id") // ErrInvalidSignature when tampered
//
//	_ = m.SetFlash(w, "notice", "contact.submitted")
//	var notice string
//	_ = m.GetFlash(w, r, "notice", &notice) // cookie is deleted after reading
//
// Several secrets may be configured for rotation. The first one signs and
// encrypts; every secret is tried when verifying.
package cookie
