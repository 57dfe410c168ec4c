// Package session provides server-side per-client state over a distributed
// cache.
//
// A Manager reads the session id from a signed cookie, loads the values from
// a Store and hands the request a *Session. After the request, Commit saves
// modified sessions, refreshes the idle expiry of untouched ones and issues
// the cookie for sessions created during the request. New sessions that
// hold nothing are never persisted.
//
//	store := session.NewStore(cache.NewMemory(), 20*time.Minute, "session:")
//	manager := session.NewManager(store, cookies)
//
//	b.Use(middleware.Session[*handler.BaseContext](manager))
//
//	func visits(ctx *handler.BaseContext) handler.Response {
//		sess, _ := middleware.GetSession(ctx)
//		n, _ := sess.GetInt("visits")
//		sess.SetInt("visits", n+1)
//		return response.String(strconv.Itoa(n + 1))
//	}
//
// TempData stores values inside the session under "__tempdata". A value is
// dropped at commit once it has been read with Get, unless Keep is called;
// Peek reads without consuming.
//
// Concurrent requests of the same client each work on their own copy of the
// values; the last commit wins.
package session
