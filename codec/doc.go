// Package codec encodes request bodies and decodes response bodies.
//
// JSON is the only codec the HTTP layers use. It tolerates unknown keys and,
// when Lenient is set, accepts JSON with comments and trailing commas.
// Every failure is returned as *Error so callers can tell a payload problem
// apart from a transport one.
package codec
