// Package stream broadcasts tick frames to WebSocket subscribers so
// external renderers can follow a run in real time.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/san-kum/gassim/internal/particle"
)

// Frame is the wire representation of one tick.
type Frame struct {
	Time        float64         `json:"time"`
	Temperature float64         `json:"temperature"`
	Particles   []ParticleFrame `json:"particles"`
}

type ParticleFrame struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	VX         float64 `json:"vx"`
	VY         float64 `json:"vy"`
	Radius     float64 `json:"radius"`
	Mass       float64 `json:"mass"`
	Color      string  `json:"color,omitempty"`
	Collisions uint64  `json:"collisions"`
}

// NewFrame converts a tick snapshot to its wire form.
func NewFrame(t, temperature float64, snaps []particle.Snapshot) Frame {
	frame := Frame{
		Time:        t,
		Temperature: temperature,
		Particles:   make([]ParticleFrame, len(snaps)),
	}
	for i, s := range snaps {
		frame.Particles[i] = ParticleFrame{
			X: s.X, Y: s.Y, VX: s.VX, VY: s.VY,
			Radius: s.Radius, Mass: s.Mass,
			Color: s.Color, Collisions: s.Collisions,
		}
	}
	return frame
}

// Broadcaster fans frames out to every connected WebSocket client. A single
// goroutine owns registration, unregistration, and writes.
type Broadcaster struct {
	mu         sync.RWMutex
	clients    map[*websocket.Conn]bool
	upgrader   websocket.Upgrader
	broadcast  chan Frame
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	wg         sync.WaitGroup
}

func NewBroadcaster() *Broadcaster {
	b := &Broadcaster{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan Frame, 256),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	b.wg.Add(1)
	go b.run()

	return b
}

// Publish queues a frame for delivery to all clients.
func (b *Broadcaster) Publish(ctx context.Context, frame Frame) error {
	select {
	case b.broadcast <- frame:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-b.done:
		return fmt.Errorf("stream: broadcaster closed")
	case <-time.After(1 * time.Second):
		return fmt.Errorf("stream: broadcast queue full")
	}
}

// Handler returns an HTTP handler that upgrades the request and subscribes
// the connection until the peer goes away.
func (b *Broadcaster) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := b.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		select {
		case b.register <- conn:
		case <-b.done:
			conn.Close()
			return
		}

		// drain reads to notice the client closing
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					select {
					case b.unregister <- conn:
					case <-b.done:
					}
					return
				}
			}
		}()
	}
}

// ClientCount reports the number of connected subscribers.
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

func (b *Broadcaster) run() {
	defer b.wg.Done()
	for {
		select {
		case <-b.done:
			return

		case conn := <-b.register:
			if conn == nil {
				continue
			}
			b.mu.Lock()
			b.clients[conn] = true
			b.mu.Unlock()

		case conn := <-b.unregister:
			if conn == nil {
				continue
			}
			b.mu.Lock()
			if _, ok := b.clients[conn]; ok {
				delete(b.clients, conn)
				conn.Close()
			}
			b.mu.Unlock()

		case frame := <-b.broadcast:
			data, err := json.Marshal(frame)
			if err != nil {
				continue
			}

			b.mu.RLock()
			conns := make([]*websocket.Conn, 0, len(b.clients))
			for conn := range b.clients {
				conns = append(conns, conn)
			}
			b.mu.RUnlock()

			var failed []*websocket.Conn
			for _, conn := range conns {
				conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					failed = append(failed, conn)
					conn.Close()
				}
			}

			if len(failed) > 0 {
				b.mu.Lock()
				for _, conn := range failed {
					delete(b.clients, conn)
				}
				b.mu.Unlock()
			}
		}
	}
}

// Close disconnects every client and stops the broadcast goroutine.
func (b *Broadcaster) Close() error {
	close(b.done)

	b.mu.Lock()
	for conn := range b.clients {
		conn.Close()
		delete(b.clients, conn)
	}
	b.mu.Unlock()

	b.wg.Wait()
	return nil
}
