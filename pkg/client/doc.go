// Package client is a Go consumer of the taskpad REST API.
//
// It plays the role a browser client's session storage would: Login
// stores the issued identity token and user in the Client value, every
// subsequent call attaches the token as an Authorization bearer header,
// and Logout clears the session.
//
//	c := client.New("http://localhost:4000")
//	if _, err := c.Register("A", "a@x.com", "secret1"); err != nil {
//	    log.Fatal(err)
//	}
//	if err := c.Login("a@x.com", "secret1"); err != nil {
//	    log.Fatal(err)
//	}
//	task, err := c.AddTask("buy milk")
//
// When the server rejects the session (expired or revoked token), calls
// return ErrUnauthorized; callers should treat that as a signal to
// re-authenticate:
//
//	tasks, err := c.Tasks()
//	if errors.Is(err, client.ErrUnauthorized) {
//	    // redirect to login
//	}
package client
