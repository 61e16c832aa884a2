package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"campusmarket/pkg/logger"
)

// Client is one long-lived socket session belonging to an authenticated user.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// session tracks which broadcast scopes a connection has joined so the
// whole membership can be torn down on disconnect.
type session struct {
	orderRooms map[string]bool
	inUserRoom bool
}

// Manager is the process-local session registry: connection -> joined rooms.
// Rooms are not shared across server instances; a multi-instance deployment
// needs a pub/sub backplane behind the same methods.
type Manager struct {
	sessions   map[*Client]*session
	orderRooms map[string]map[*Client]bool
	userRooms  map[string]map[*Client]bool

	Register   chan *Client
	Unregister chan *Client

	poster MessagePoster

	mutex sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions:   make(map[*Client]*session),
		orderRooms: make(map[string]map[*Client]bool),
		userRooms:  make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// SetMessagePoster wires the chat layer in after construction; the manager
// and the chat use case reference each other, so one side is set late.
func (m *Manager) SetMessagePoster(poster MessagePoster) {
	m.poster = poster
}

// Start runs the registration loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.sessions[client] = &session{orderRooms: make(map[string]bool)}
				m.mutex.Unlock()
				logger.Info("Client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				m.removeClientLocked(client)
				m.mutex.Unlock()
				logger.Info("Client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// removeClientLocked tears down every room membership of the connection.
// Callers must hold the write lock.
func (m *Manager) removeClientLocked(client *Client) {
	sess, ok := m.sessions[client]
	if !ok {
		return
	}

	for orderID := range sess.orderRooms {
		delete(m.orderRooms[orderID], client)
		if len(m.orderRooms[orderID]) == 0 {
			delete(m.orderRooms, orderID)
		}
	}

	if sess.inUserRoom {
		delete(m.userRooms[client.UserID], client)
		if len(m.userRooms[client.UserID]) == 0 {
			delete(m.userRooms, client.UserID)
		}
	}

	delete(m.sessions, client)
	close(client.Send)
}

// JoinOrderRoom subscribes the connection to an order's chat broadcasts.
func (m *Manager) JoinOrderRoom(client *Client, orderID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	sess, ok := m.sessions[client]
	if !ok {
		return
	}

	sess.orderRooms[orderID] = true
	if m.orderRooms[orderID] == nil {
		m.orderRooms[orderID] = make(map[*Client]bool)
	}
	m.orderRooms[orderID][client] = true
}

// JoinUserRoom subscribes the connection to its user's personal room, used
// for cross-order push events.
func (m *Manager) JoinUserRoom(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	sess, ok := m.sessions[client]
	if !ok {
		return
	}

	sess.inUserRoom = true
	if m.userRooms[client.UserID] == nil {
		m.userRooms[client.UserID] = make(map[*Client]bool)
	}
	m.userRooms[client.UserID][client] = true
}

// BroadcastToOrderRoom delivers a message to every member of the order room,
// including the sender's own sessions.
func (m *Manager) BroadcastToOrderRoom(orderID string, message []byte) {
	m.mutex.RLock()
	clients := make([]*Client, 0, len(m.orderRooms[orderID]))
	for client := range m.orderRooms[orderID] {
		clients = append(clients, client)
	}
	m.mutex.RUnlock()

	for _, client := range clients {
		m.sendToClient(client, message)
	}
}

// SendToUserRoom delivers a message to every session the user currently has
// in its personal room. A user with no live session simply misses the push;
// the durable unread counters cover them on the next poll.
func (m *Manager) SendToUserRoom(userID string, message []byte) {
	m.mutex.RLock()
	clients := make([]*Client, 0, len(m.userRooms[userID]))
	for client := range m.userRooms[userID] {
		clients = append(clients, client)
	}
	m.mutex.RUnlock()

	for _, client := range clients {
		m.sendToClient(client, message)
	}
}

// OrderRoomSize reports current membership, used by tests and diagnostics.
func (m *Manager) OrderRoomSize(orderID string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.orderRooms[orderID])
}

func (m *Manager) UserRoomSize(userID string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.userRooms[userID])
}

func (m *Manager) sendToClient(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		logger.Warn("Client %s send buffer full, dropping connection", client.UserID)
		m.mutex.Lock()
		m.removeClientLocked(client)
		m.mutex.Unlock()
	}
}

// ReadPump reads events from the socket until it closes, dispatching each
// one, then unregisters the connection.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("websocket read: %v", err)
			}
			break
		}

		m.HandleClientEvent(c, message)
	}
}

// WritePump drains the send channel onto the socket.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Error("websocket write: %v", err)
			return
		}
	}
}
