package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/Fenet-Ab/fen-one-shop/entity"
	"github.com/Fenet-Ab/fen-one-shop/pkg/logger"
	"github.com/Fenet-Ab/fen-one-shop/pkg/resp"
	"github.com/Fenet-Ab/fen-one-shop/services"
	"github.com/Fenet-Ab/fen-one-shop/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// AllConversations is the channel key for staff watching every conversation.
const AllConversations uint = 0

// SupportHub fans stored support messages out to websocket subscribers,
// grouped by the conversation (user id) they belong to.
type SupportHub struct {
	clients    map[uint]map[*websocket.Conn]bool
	broadcast  chan *entity.SupportMessage
	register   chan Subscription
	unregister chan Subscription
	done       chan struct{}
	mu         sync.Mutex
	service    *services.SupportService
	log        *zap.Logger
}

// Subscription is one connection listening on one conversation.
type Subscription struct {
	Conn           *websocket.Conn
	ConversationID uint
	UserID         uint
	IsAdmin        bool
}

func NewSupportHub(service *services.SupportService) *SupportHub {
	return &SupportHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan *entity.SupportMessage, 64),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		done:       make(chan struct{}),
		service:    service,
		log:        logger.Named("support_ws"),
	}
}

// Run serves register, unregister and broadcast until ctx ends. Run must be
// called at most once.
func (h *SupportHub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.ConversationID] == nil {
				h.clients[sub.ConversationID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.ConversationID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.ConversationID][sub.Conn]; ok {
				delete(h.clients[sub.ConversationID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			h.send(msg.UserID, msg)
			h.send(AllConversations, msg)
			h.mu.Unlock()
		}
	}
}

// Publish queues a stored message for delivery. A full queue drops the push;
// the message is already persisted and clients can reload it.
func (h *SupportHub) Publish(msg *entity.SupportMessage) {
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn("support broadcast queue full", zap.Uint("messageId", msg.ID))
	}
}

// Subscribers reports how many connections listen on a conversation.
func (h *SupportHub) Subscribers(conversationID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[conversationID])
}

// caller holds h.mu
func (h *SupportHub) send(key uint, msg *entity.SupportMessage) {
	for conn := range h.clients[key] {
		if err := conn.WriteJSON(msg); err != nil {
			h.log.Debug("ws write failed", zap.Error(err))
			conn.Close()
			delete(h.clients[key], conn)
		}
	}
}

func (h *SupportHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for key, conns := range h.clients {
		for conn := range conns {
			conn.Close()
		}
		delete(h.clients, key)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket serves /ws/support and /ws/support/:userId.
// Users always join their own conversation. Admins join the conversation in
// the path, or every conversation when the path has none.
func (h *SupportHub) HandleWebSocket(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	isAdmin := utils.CurrentRole(c) == entity.RoleAdmin

	conversation := userID
	if c.Param("userId") != "" {
		id, ok := utils.ParamID(c, "userId")
		if !ok {
			resp.BadRequest(c, "invalid user id")
			return
		}
		if !isAdmin && id != userID {
			resp.Forbidden(c, "no access")
			return
		}
		conversation = id
	} else if isAdmin {
		conversation = AllConversations
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	sub := Subscription{Conn: conn, ConversationID: conversation, UserID: userID, IsAdmin: isAdmin}
	select {
	case h.register <- sub:
	case <-h.done:
		conn.Close()
		return
	}

	go h.listenMessages(sub)
}

// listenMessages stores what the client writes. Delivery happens through
// Publish, which the service calls once the message is saved.
func (h *SupportHub) listenMessages(sub Subscription) {
	defer func() {
		select {
		case h.unregister <- sub:
		case <-h.done:
			sub.Conn.Close()
		}
	}()

	for {
		_, data, err := sub.Conn.ReadMessage()
		if err != nil {
			h.log.Debug("ws read ended", zap.Error(err))
			return
		}

		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			h.log.Debug("invalid ws payload", zap.Error(err))
			continue
		}

		switch {
		case sub.IsAdmin && sub.ConversationID != AllConversations:
			_, err = h.service.Reply(sub.ConversationID, payload.Message)
		case sub.IsAdmin:
			// the inbox channel has no conversation to write into
			continue
		default:
			_, err = h.service.Send(sub.UserID, payload.Message)
		}
		if err != nil {
			h.log.Warn("store support message failed", zap.Uint("userId", sub.UserID), zap.Error(err))
		}
	}
}
