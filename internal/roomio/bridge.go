// Package roomio bootstraps the realtime session: it joins the room as
// the agent participant, subscribes to the user's microphone and carries
// the text side-channel. The speech pipeline itself runs outside this
// process; its model identifiers travel in the participant metadata.
package roomio

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/livekit/protocol/livekit"
	lksdk "github.com/livekit/server-sdk-go/v2"
)

// Config carries everything needed to join a room.
type Config struct {
	URL          string
	APIKey       string
	APISecret    string
	RoomName     string
	Identity     string
	Metadata     string
	ChatTopic    string
	ContextTopic string
}

// TurnFunc receives one side-channel utterance and returns the augmented
// turn payload to hand to the reasoning runtime.
type TurnFunc func(ctx context.Context, utterance string) (string, error)

// Bridge is one live room connection.
type Bridge struct {
	room         *lksdk.Room
	chatTopic    string
	contextTopic string
	onTurn       TurnFunc
}

// Connect joins the room and starts routing side-channel messages to
// onTurn. Augmented turns are published on the context topic.
func Connect(cfg Config, onTurn TurnFunc) (*Bridge, error) {
	b := &Bridge{
		chatTopic:    cfg.ChatTopic,
		contextTopic: cfg.ContextTopic,
		onTurn:       onTurn,
	}

	callback := &lksdk.RoomCallback{
		OnParticipantConnected: func(p *lksdk.RemoteParticipant) {
			log.Printf("participant connected: %s", p.Identity())
		},
		OnParticipantDisconnected: func(p *lksdk.RemoteParticipant) {
			log.Printf("participant disconnected: %s", p.Identity())
		},
		ParticipantCallback: lksdk.ParticipantCallback{
			OnTrackPublished: func(pub *lksdk.RemoteTrackPublication, rp *lksdk.RemoteParticipant) {
				if pub.Kind() != lksdk.TrackKindAudio || rp.Identity() == cfg.Identity {
					return
				}
				// Microphone only; screen-share and system audio stay
				// unsubscribed.
				if pub.Source() != livekit.TrackSource_MICROPHONE {
					return
				}
				if err := pub.SetSubscribed(true); err != nil {
					log.Printf("subscribe to %s failed: %v", pub.SID(), err)
				}
			},
			OnDataPacket: func(data lksdk.DataPacket, _ lksdk.DataReceiveParams) {
				packet, isUser := data.(*lksdk.UserDataPacket)
				if !isUser || packet.Topic != b.chatTopic || len(packet.Payload) == 0 {
					return
				}
				go b.handleChat(DecodeChatPayload(packet.Payload))
			},
		},
	}

	room, err := lksdk.ConnectToRoom(cfg.URL, lksdk.ConnectInfo{
		APIKey:              cfg.APIKey,
		APISecret:           cfg.APISecret,
		RoomName:            cfg.RoomName,
		ParticipantIdentity: cfg.Identity,
		ParticipantName:     cfg.Identity,
		ParticipantMetadata: cfg.Metadata,
	}, callback)
	if err != nil {
		return nil, fmt.Errorf("lksdk.ConnectToRoom failed: %w", err)
	}
	b.room = room

	log.Printf("connected to room %s", room.Name())

	return b, nil
}

// DecodeChatPayload accepts either the JSON {"message": ...} chat format
// or raw UTF-8 text.
func DecodeChatPayload(payload []byte) string {
	var msg struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &msg); err == nil && msg.Message != "" {
		return msg.Message
	}

	return string(payload)
}

func (b *Bridge) handleChat(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	turn, err := b.onTurn(ctx, text)
	if err != nil {
		log.Printf("turn handling failed: %v", err)
		return
	}

	if err := b.publish(turn, b.contextTopic); err != nil {
		log.Printf("publishing turn failed: %v", err)
	}
}

// Say publishes assistant text on the chat topic for the client UI.
func (b *Bridge) Say(text string) error {
	return b.publish(text, b.chatTopic)
}

func (b *Bridge) publish(text, topic string) error {
	err := b.room.LocalParticipant.PublishData([]byte(text),
		lksdk.WithDataPublishReliable(true),
		lksdk.WithDataPublishTopic(topic))
	if err != nil {
		return fmt.Errorf("PublishData failed: %w", err)
	}

	return nil
}

// Close disconnects from the room.
func (b *Bridge) Close() {
	b.room.Disconnect()
}
