// Package signaling negotiates WebRTC peers for remote control clients.
package signaling

import "github.com/pion/webrtc/v3"

// Message is a websocket signaling payload. Update messages carry a
// reason so clients can refresh the matching piece of state.
type Message struct {
	T         string                   `json:"t"`
	SDP       string                   `json:"sdp,omitempty"`
	Candidate *webrtc.ICECandidateInit `json:"candidate,omitempty"`
	Reason    string                   `json:"reason,omitempty"`
}
