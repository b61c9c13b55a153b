// Package control translates client messages into pointer operations.
package control

// Message is a control payload shared by the websocket and data channel
// transports. Requests and replies use the same shape: "pos" replies carry
// x/y plus the containing monitor index, "error" replies carry the
// rejection text.
type Message struct {
	T       string  `json:"t"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
	DX      int     `json:"dx,omitempty"`
	DY      int     `json:"dy,omitempty"`
	XN      float64 `json:"xn,omitempty"`
	YN      float64 `json:"yn,omitempty"`
	Button  string  `json:"button,omitempty"`
	Times   int     `json:"times,omitempty"`
	Idx     int     `json:"idx,omitempty"`
	Enabled *bool   `json:"enabled,omitempty"`
	Error   string  `json:"error,omitempty"`
}
