package hub

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"wallet_transfer_back/models"
)

const (
	MsgStatus = "status"
	MsgReload = "reload"

	writeTimeout = 3 * time.Second
	clientBuffer = 64
)

type Message struct {
	Type string         `json:"type"`
	Data *models.Status `json:"data,omitempty"`
}

// a websocket client with a channel for downstream messages.
type client struct {
	channel chan Message
	// closed when the websocket client is disconnected.
	exit chan struct{}
}

// Hub рассылает статусы и команду перезагрузки всем открытым страницам
type Hub struct {
	mu       sync.Mutex
	clients  map[uint64]*client
	nextID   uint64
	upgrader websocket.Upgrader
	current  func() (models.Status, bool)
	log      logrus.FieldLogger
}

// NewHub; current supplies the status replayed to a freshly connected page.
func NewHub(current func() (models.Status, bool), log logrus.FieldLogger) *Hub {
	return &Hub{
		clients: make(map[uint64]*client),
		upgrader: websocket.Upgrader{
			HandshakeTimeout: writeTimeout,
			CheckOrigin:      func(r *http.Request) bool { return true },
		},
		current: current,
		log:     log,
	}
}

func (h *Hub) register() (uint64, *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	c := &client{
		channel: make(chan Message, clientBuffer),
		exit:    make(chan struct{}),
	}
	h.clients[id] = c
	return id, c
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		close(c.exit)
		delete(h.clients, id)
	}
}

// Broadcast never blocks: a slow page just misses the message.
func (h *Hub) Broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		select {
		case c.channel <- msg:
		default:
		}
	}
}

// OnStatus подписывается на status.Messenger; nil означает, что сообщение очищено
func (h *Hub) OnStatus(msg *models.Status) {
	h.Broadcast(Message{Type: MsgStatus, Data: msg})
}

func (h *Hub) BroadcastReload() {
	h.Broadcast(Message{Type: MsgReload})
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeWS upgrades the request and pumps messages until the page goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer ws.Close()

	id, c := h.register()
	defer h.remove(id)

	if h.current != nil {
		if msg, ok := h.current(); ok {
			c.channel <- Message{Type: MsgStatus, Data: &msg}
		}
	}

	// the reader only notices the close frame; pages never send anything
	go func() {
		defer h.remove(id)
		for {
			if _, _, err := ws.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg := <-c.channel:
			_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := ws.WriteJSON(msg); err != nil {
				h.log.WithError(err).Debug("Websocket write failed")
				return
			}
		case <-c.exit:
			return
		}
	}
}
