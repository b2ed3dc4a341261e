// package transport puts requests on the wire and reads responses back, following
// the message syntax of HTTP/1.1 (RFC9112). semantics stay with net/http types
// ([net/http.Header], status codes, etc.)
//
// the backend only ever sees one request per connection: the request asks for
// `Connection: close` and the response body is read until its framing (or the
// connection) ends. there is no keep-alive and no HTTP/2, a connection belongs
// to exactly one exchange.
package transport
