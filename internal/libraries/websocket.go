package libraries

import (
	"encoding/json"
	"log"
	"sync"

	"floormapper-backend/internal/models"
	"floormapper-backend/internal/reconciler"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// WebSocketMessage represents the standard structure for all websocket messages
type WebSocketMessageType string

const (
	WebSocketMessageTypePing  WebSocketMessageType = "ping"
	WebSocketMessageTypePong  WebSocketMessageType = "pong"
	WebSocketMessageTypeError WebSocketMessageType = "error"

	// events from the annotation surface
	WebSocketMessageTypeCreateAnnotation WebSocketMessageType = "createAnnotation"
	WebSocketMessageTypeUpdateAnnotation WebSocketMessageType = "updateAnnotation"
	WebSocketMessageTypeDeleteAnnotation WebSocketMessageType = "deleteAnnotation"

	// commands back to the annotation surface
	WebSocketMessageTypeRemoveAnnotation WebSocketMessageType = "removeAnnotation"
	// current record state, sent so the edit form can be pre-filled
	WebSocketMessageTypeSpaceState WebSocketMessageType = "spaceState"
)

type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
	once sync.Once
}

type Hub struct {
	Clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan []byte
}

type WebSocketMessage struct {
	Type WebSocketMessageType `json:"type"`
	Data interface{}          `json:"data,omitempty"`
}

// AnnotationEventPayload wraps an annotation surface event with the plan it
// belongs to.
type AnnotationEventPayload struct {
	PlanID     string                `json:"plan_id"`
	Annotation reconciler.Annotation `json:"annotation"`
}

type RemoveAnnotationPayload struct {
	PlanID       string `json:"plan_id"`
	AnnotationID string `json:"annotation_id"`
}

type SpaceStatePayload struct {
	PlanID string            `json:"plan_id"`
	Space  models.FloorSpace `json:"space"`
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan []byte),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client.ID] = client
		case client := <-h.Unregister:
			if _, exists := h.Clients[client.ID]; exists {
				delete(h.Clients, client.ID)
				client.once.Do(func() {
					close(client.Send)
				})
			}
		case message := <-h.Broadcast:
			for _, client := range h.Clients {
				client.Send <- message
			}
		}
	}
}

func (h *Hub) BroadcastMessage(message []byte) {
	h.Broadcast <- message
}

func (h *Hub) SendMessage(client *Client, message []byte) {
	client.Send <- message
}

// SendErrorMessage sends a standardized error message to a client
func SendErrorMessage(hub *Hub, client *Client, errorMsg string) {
	errorResp := WebSocketMessage{
		Type: WebSocketMessageTypeError,
		Data: map[string]string{"message": errorMsg},
	}
	errorBytes, err := json.Marshal(errorResp)
	if err != nil {
		log.Println("failed to marshal error response:", err)
		return
	}
	hub.SendMessage(client, errorBytes)
}

// sendPongMessage sends a standardized pong message to a client
func sendPongMessage(hub *Hub, client *Client) {
	pongResp := WebSocketMessage{
		Type: WebSocketMessageTypePong,
	}
	pongBytes, err := json.Marshal(pongResp)
	if err != nil {
		log.Println("failed to marshal pong response:", err)
		return
	}
	hub.SendMessage(client, pongBytes)
}

// SendSpaceState sends the current record backing an annotation to a client
func SendSpaceState(hub *Hub, client *Client, planID uuid.UUID, space models.FloorSpace) {
	stateResp := WebSocketMessage{
		Type: WebSocketMessageTypeSpaceState,
		Data: &SpaceStatePayload{
			PlanID: planID.String(),
			Space:  space,
		},
	}
	stateBytes, err := json.Marshal(stateResp)
	if err != nil {
		log.Println("failed to marshal space state response:", err)
		return
	}
	hub.SendMessage(client, stateBytes)
}

// SurfaceBroadcaster relays removeAnnotation commands to every connected
// editor, implementing the reconciler's AnnotationSurface interface.
type SurfaceBroadcaster struct {
	Hub *Hub
}

func (s *SurfaceBroadcaster) RemoveAnnotation(planID uuid.UUID, annotationID string) {
	msg := WebSocketMessage{
		Type: WebSocketMessageTypeRemoveAnnotation,
		Data: &RemoveAnnotationPayload{
			PlanID:       planID.String(),
			AnnotationID: annotationID,
		},
	}
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		log.Println("failed to marshal remove annotation command:", err)
		return
	}
	s.Hub.BroadcastMessage(msgBytes)
}

// parseWebSocketMessage parses incoming websocket message and returns the message structure
func parseWebSocketMessage(msg []byte) (*WebSocketMessage, error) {
	var rawMessage struct {
		Type WebSocketMessageType `json:"type"`
		Data json.RawMessage      `json:"data,omitempty"`
	}
	if err := json.Unmarshal(msg, &rawMessage); err != nil {
		return nil, err
	}

	message := &WebSocketMessage{
		Type: rawMessage.Type,
	}

	if len(rawMessage.Data) > 0 {
		switch rawMessage.Type {
		case WebSocketMessageTypeCreateAnnotation,
			WebSocketMessageTypeUpdateAnnotation,
			WebSocketMessageTypeDeleteAnnotation:
			var payload AnnotationEventPayload
			if err := json.Unmarshal(rawMessage.Data, &payload); err != nil {
				return nil, err
			}
			message.Data = &payload
		default:
			var data interface{}
			if err := json.Unmarshal(rawMessage.Data, &data); err != nil {
				return nil, err
			}
			message.Data = data
		}
	}

	return message, nil
}

// AnnotationEventProcessor handles the annotation surface's event stream.
type AnnotationEventProcessor interface {
	ProcessCreateAnnotation(hub *Hub, client *Client, planID uuid.UUID, a reconciler.Annotation)
	ProcessUpdateAnnotation(hub *Hub, client *Client, planID uuid.UUID, a reconciler.Annotation)
	ProcessDeleteAnnotation(hub *Hub, client *Client, planID uuid.UUID, a reconciler.Annotation)
}

func WebSocketHandler(hub *Hub, processor AnnotationEventProcessor) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := &Client{
			ID:   uuid.NewString(),
			Conn: conn,
			Send: make(chan []byte, 256),
		}

		hub.Register <- client

		// Write loop
		go func() {
			defer func() {
				hub.Unregister <- client
				conn.Close()
			}()
			for msg := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					log.Println("write error:", err)
					return
				}
			}
		}()

		// Read loop
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				log.Println("read error:", err)
				break
			}

			message, err := parseWebSocketMessage(msg)
			if err != nil {
				log.Println("failed to parse JSON:", err)
				SendErrorMessage(hub, client, "Invalid JSON format")
				continue
			}

			if message.Type == WebSocketMessageTypePing {
				sendPongMessage(hub, client)
				continue
			}

			payload, ok := message.Data.(*AnnotationEventPayload)
			if !ok {
				SendErrorMessage(hub, client, "Type is invalid or not provided")
				continue
			}
			planID, err := uuid.Parse(payload.PlanID)
			if err != nil {
				SendErrorMessage(hub, client, "Plan ID is invalid")
				continue
			}

			switch message.Type {
			case WebSocketMessageTypeCreateAnnotation:
				processor.ProcessCreateAnnotation(hub, client, planID, payload.Annotation)
			case WebSocketMessageTypeUpdateAnnotation:
				processor.ProcessUpdateAnnotation(hub, client, planID, payload.Annotation)
			case WebSocketMessageTypeDeleteAnnotation:
				processor.ProcessDeleteAnnotation(hub, client, planID, payload.Annotation)
			}
		}

		hub.Unregister <- client
		conn.Close()
	})
}
