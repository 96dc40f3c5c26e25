package kds

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yeremiapane/table-orders/models"
	"github.com/yeremiapane/table-orders/utils"
)

const (
	writeWait = 5 * time.Second
	// sendBuffer is how many frames a client may fall behind before it is dropped.
	sendBuffer = 16
)

// Message is the frame sent to kitchen displays.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// client owns one connection; only its write loop writes data frames.
type client struct {
	conn *websocket.Conn
	addr string
	send chan []byte
}

// Hub keeps the connected kitchen display clients and fans table order changes out to them.
// Broadcast only queues frames, so a slow display never blocks the caller.
type Hub struct {
	clients map[*websocket.Conn]*client
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*client)}
}

// RegisterClient -> menambahkan connection ke set dan menjalankan write loop
func (h *Hub) RegisterClient(conn *websocket.Conn) {
	cl := &client{conn: conn, addr: conn.RemoteAddr().String(), send: make(chan []byte, sendBuffer)}

	h.mutex.Lock()
	h.clients[conn] = cl
	count := len(h.clients)
	h.mutex.Unlock()

	go h.writeLoop(cl)
	utils.InfoLogger.Printf("KDS client connected: %s (%d clients)", cl.addr, count)
}

// UnregisterClient -> melepaskan connection
func (h *Hub) UnregisterClient(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.removeLocked(conn)
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// NotifyTableOrders broadcasts the change to every client.
func (h *Hub) NotifyTableOrders(_ context.Context, event models.TableOrdersEvent) error {
	return h.Broadcast(Message{Event: event.Event, Data: event})
}

// Broadcast queues msg for all clients. A client whose queue is full is dropped.
func (h *Hub) Broadcast(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, cl := range h.clients {
		select {
		case cl.send <- data:
		default:
			utils.ErrorLogger.Printf("KDS client %s is too slow, disconnecting", cl.addr)
			h.removeLocked(conn)
		}
	}
	return nil
}

// Close disconnects all clients.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.clients {
		h.removeLocked(conn)
	}
}

// removeLocked closes the client's queue; its write loop then says goodbye and closes the connection.
func (h *Hub) removeLocked(conn *websocket.Conn) {
	cl, ok := h.clients[conn]
	if !ok {
		return
	}
	delete(h.clients, conn)
	close(cl.send)
}

func (h *Hub) writeLoop(cl *client) {
	defer cl.conn.Close()

	for data := range cl.send {
		_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending message to KDS client %s: %v", cl.addr, err)
			h.UnregisterClient(cl.conn)
			// drain until the queue is closed
			for range cl.send {
			}
			return
		}
	}

	_ = cl.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
		time.Now().Add(writeWait))
}
