package ws

import (
	"log"
	"sync"
)

// Hub maintains the set of active tracking connections and fans location
// updates out to the parties of an order.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Map to quickly find the connections watching an order
	orderClients map[uint][]*Client

	// Mutex to protect the orderClients map
	mutex sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Register:     make(chan *Client),
		Unregister:   make(chan *Client),
		clients:      make(map[*Client]bool),
		orderClients: make(map[uint][]*Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			h.addOrderClient(client)
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeOrderClient(client)
			}
		}
	}
}

func (h *Hub) addOrderClient(client *Client) {
	h.mutex.Lock()
	h.orderClients[client.OrderID] = append(h.orderClients[client.OrderID], client)
	count := len(h.orderClients[client.OrderID])
	h.mutex.Unlock()

	log.Printf("User %d watching order %d (%d connections)", client.UserID, client.OrderID, count)
}

func (h *Hub) removeOrderClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	conns := h.orderClients[client.OrderID]
	for i, conn := range conns {
		if conn == client {
			h.orderClients[client.OrderID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.orderClients[client.OrderID]) == 0 {
		delete(h.orderClients, client.OrderID)
	}
}

// SendToOrder pushes a message to every connection watching orderID except
// those belonging to exceptUserID (the party that produced the update).
func (h *Hub) SendToOrder(orderID uint, exceptUserID uint, message []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for _, client := range h.orderClients[orderID] {
		if client.UserID == exceptUserID {
			continue
		}
		select {
		case client.Send <- message:
		default:
			close(client.Send)
			delete(h.clients, client)
		}
	}
}
