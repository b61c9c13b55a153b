// Package rtc bridges WebRTC data channels into the control dispatcher.
package rtc

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/pion/interceptor"
	"github.com/pion/webrtc/v3"

	"github.com/halvex/xmouse/internal/control"
)

// ControlChannelLabel is the data channel a remote client opens for
// pointer control.
const ControlChannelLabel = "control"

// Bridge manages the WebRTC peer connection and feeds its control data
// channel into the shared dispatcher.
type Bridge struct {
	mu         sync.Mutex
	api        *webrtc.API
	peer       *webrtc.PeerConnection
	dispatcher *control.Dispatcher
}

// NewBridge initializes a WebRTC bridge with default codecs and
// interceptors.
func NewBridge(dispatcher *control.Dispatcher) (*Bridge, error) {
	media := &webrtc.MediaEngine{}
	if err := media.RegisterDefaultCodecs(); err != nil {
		return nil, fmt.Errorf("register codecs: %w", err)
	}

	interceptors := &interceptor.Registry{}
	if err := webrtc.RegisterDefaultInterceptors(media, interceptors); err != nil {
		return nil, fmt.Errorf("register interceptors: %w", err)
	}

	api := webrtc.NewAPI(
		webrtc.WithMediaEngine(media),
		webrtc.WithInterceptorRegistry(interceptors),
	)

	return &Bridge{api: api, dispatcher: dispatcher}, nil
}

// NewPeer creates a new peer connection that accepts the control channel.
// An existing peer is closed first; the bridge serves one client at a
// time.
func (b *Bridge) NewPeer() (*webrtc.PeerConnection, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.peer != nil {
		_ = b.peer.Close()
		b.peer = nil
	}

	peer, err := b.api.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		return nil, err
	}

	peer.OnDataChannel(func(dc *webrtc.DataChannel) {
		if dc.Label() != ControlChannelLabel {
			debugf("rtc: ignoring data channel %q", dc.Label())
			return
		}
		b.attach(dc)
	})
	peer.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		debugf("rtc: peer state %s", state.String())
		if state == webrtc.PeerConnectionStateFailed || state == webrtc.PeerConnectionStateClosed {
			b.dispatcher.ReleaseAll()
		}
	})

	b.peer = peer
	return peer, nil
}

// ClosePeer closes the current peer connection.
func (b *Bridge) ClosePeer() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.peer != nil {
		_ = b.peer.Close()
		b.peer = nil
	}
}

// attach wires a control data channel into the dispatcher.
func (b *Bridge) attach(dc *webrtc.DataChannel) {
	dc.OnMessage(func(m webrtc.DataChannelMessage) {
		reply, fatal := b.HandleData(m.Data)
		if fatal != nil {
			log.Printf("rtc control: %v", fatal)
			_ = dc.Close()
			return
		}
		if reply == nil {
			return
		}
		if err := dc.Send(reply); err != nil {
			debugf("rtc send: %v", err)
		}
	})
	dc.OnClose(func() {
		b.dispatcher.ReleaseAll()
	})
}

// HandleData decodes one control message, executes it and returns the
// encoded reply, if any. A non-nil error means the display connection is
// broken and the channel should close.
func (b *Bridge) HandleData(data []byte) ([]byte, error) {
	var msg control.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return encodeReply(&control.Message{T: "error", Error: "bad message"}), nil
	}
	reply, err := b.dispatcher.Dispatch(msg)
	if err != nil {
		return nil, err
	}
	if reply == nil {
		return nil, nil
	}
	return encodeReply(reply), nil
}

// encodeReply marshals a reply message, dropping it on failure.
func encodeReply(msg *control.Message) []byte {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil
	}
	return data
}
