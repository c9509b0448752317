package stream

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Publisher is the part of an MQTT client the Streamer needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// ErrPublishTimeout is returned when the broker does not acknowledge a frame in time.
var ErrPublishTimeout = errors.New("stream: publish timed out")

const publishTimeout = 5 * time.Second

// Streamer streams frames over MQTT to an LED receiver.
type Streamer struct {
	client    Publisher
	topic     string
	animation Animation
	interval  time.Duration
}

// NewStreamer creates a Streamer publishing frameRate frames per second.
func NewStreamer(client Publisher, topic string, animation Animation, frameRate float64) *Streamer {
	s := new(Streamer)
	s.client = client
	s.topic = topic
	s.animation = animation
	s.interval = time.Duration(float64(time.Second) / frameRate)
	return s
}

// SendFrame renders the frame for now and publishes it.
func (s *Streamer) SendFrame(now time.Time) error {
	f := s.animation.Frame(now)
	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}

	token := s.client.Publish(s.topic, 0, false, b)
	if !token.WaitTimeout(publishTimeout) {
		return ErrPublishTimeout
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("stream: publish to %s: %w", s.topic, err)
	}
	return nil
}

// Run sends frames until ctx is cancelled. Failed frames are logged and
// skipped.
func (s *Streamer) Run(ctx context.Context) error {
	publishTimer := time.NewTicker(s.interval)
	defer publishTimer.Stop()

	log.Printf("Streaming to %s every %v", s.topic, s.interval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-publishTimer.C:
			if err := s.SendFrame(now); err != nil {
				log.Println(err)
			}
		}
	}
}
