package stream

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/meshtx/animation"
	"github.com/matt-g-everett/meshtx/scene"
)

type fakeToken struct {
	mqtt.Token
	err     error
	timeout bool
}

func (t *fakeToken) Wait() bool                     { return !t.timeout }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return !t.timeout }
func (t *fakeToken) Error() error                   { return t.err }

type published struct {
	topic   string
	payload []byte
}

type fakeClient struct {
	mu    sync.Mutex
	msgs  []published
	token *fakeToken
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, published{topic: topic, payload: payload.([]byte)})
	if c.token != nil {
		return c.token
	}
	return &fakeToken{}
}

func (c *fakeClient) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.msgs)
}

func newPlayer(t *testing.T, vp scene.Viewport) *Player {
	t.Helper()
	s, err := scene.New(scene.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	return NewPlayer(s, animation.NewDriver(animation.DefaultTiming()), vp)
}

func TestPlayerFollowsDriver(t *testing.T) {
	p := newPlayer(t, scene.Viewport{Width: 8, Height: 4})
	start := time.Unix(100, 0)

	f := p.Frame(start)
	if f.T != 0 {
		t.Errorf("first frame t = %v", f.T)
	}
	if b := f.Image.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("frame bounds %v", b)
	}

	f = p.Frame(start.Add(8 * time.Second))
	if f.T != 1 {
		t.Errorf("t after one leg = %v", f.T)
	}
	if st := p.State(start.Add(8 * time.Second)); st.Phase != animation.Reverse {
		t.Errorf("phase = %v", st.Phase)
	}
}

func TestSendFrame(t *testing.T) {
	client := new(fakeClient)
	s := NewStreamer(client, "led/matrix", newPlayer(t, scene.Viewport{Width: 5, Height: 3}), 30)

	if err := s.SendFrame(time.Unix(0, 0)); err != nil {
		t.Fatal(err)
	}
	if len(client.msgs) != 1 {
		t.Fatalf("got %d messages", len(client.msgs))
	}
	msg := client.msgs[0]
	if msg.topic != "led/matrix" {
		t.Errorf("topic = %s", msg.topic)
	}
	if len(msg.payload) != 4+5*3*3 {
		t.Errorf("payload length = %d", len(msg.payload))
	}
	if w := binary.LittleEndian.Uint16(msg.payload); w != 5 {
		t.Errorf("width = %d", w)
	}
}

func TestSendFrameErrors(t *testing.T) {
	p := newPlayer(t, scene.Viewport{Width: 2, Height: 2})

	client := &fakeClient{token: &fakeToken{timeout: true}}
	if err := NewStreamer(client, "x", p, 30).SendFrame(time.Now()); !errors.Is(err, ErrPublishTimeout) {
		t.Errorf("got %v, want timeout", err)
	}

	broken := errors.New("not connected")
	client = &fakeClient{token: &fakeToken{err: broken}}
	if err := NewStreamer(client, "x", p, 30).SendFrame(time.Now()); !errors.Is(err, broken) {
		t.Errorf("got %v, want %v", err, broken)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	client := new(fakeClient)
	s := NewStreamer(client, "led/matrix", newPlayer(t, scene.Viewport{Width: 2, Height: 2}), 200)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for client.count() < 3 {
		select {
		case <-deadline:
			t.Fatal("no frames published")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}
