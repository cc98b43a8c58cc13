package live

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"jobtrack/internal/domain"
	jobmod "jobtrack/internal/modules/job"
	"jobtrack/internal/pkg/access"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // Allow all origins (configure in prod)
}

// Event is a real-time push to a connected dashboard.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

const EventJobsSnapshot = "jobs_snapshot"

type JobSource interface {
	ListAll(ctx context.Context) ([]domain.Job, error)
}

// connection represents a single dashboard client.
type connection struct {
	id   string
	sess access.Session
	conn *websocket.Conn
	send chan []byte
}

// Hub pushes job snapshots to connected dashboards whenever a mutation
// lands. Engineers receive only their assigned jobs; the snapshot a client
// sees mirrors what its role could read over HTTP.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*connection
	jobs        JobSource
	log         *logrus.Logger
}

func NewHub(jobs JobSource, log *logrus.Logger) *Hub {
	return &Hub{
		connections: make(map[string]*connection),
		jobs:        jobs,
		log:         log,
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c.id] = c
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.connections[c.id]; ok && existing == c {
		delete(h.connections, c.id)
		close(c.send)
	}
}

// JobsChanged re-queries the collection and pushes a role-scoped snapshot to
// every connected client. Implements the notifier the job service calls after
// each successful mutation.
func (h *Hub) JobsChanged() {
	h.mu.RLock()
	empty := len(h.connections) == 0
	h.mu.RUnlock()
	if empty {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	jobs, err := h.jobs.ListAll(ctx)
	if err != nil {
		h.log.WithError(err).Warn("live: snapshot query failed, skipping push")
		return
	}
	jobs = jobmod.NormalizeAll(jobs)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.connections {
		h.push(c, jobs)
	}
}

func (h *Hub) push(c *connection, jobs []domain.Job) {
	data, err := json.Marshal(&Event{
		Type:    EventJobsSnapshot,
		Payload: scopeJobs(jobs, c.sess),
	})
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
		// Client too slow — skip
	}
}

func scopeJobs(jobs []domain.Job, sess access.Session) []domain.Job {
	if sess.Role != domain.RoleEngineer {
		return jobs
	}
	out := make([]domain.Job, 0)
	for _, j := range jobs {
		if j.AssignedTo(sess.Email) {
			out = append(out, j)
		}
	}
	return out
}

// ServeWS upgrades the request, pushes an initial snapshot and starts the
// read/write loops. Blocks until the client disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sess access.Session) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("live: websocket upgrade failed")
		return
	}

	c := &connection{
		id:   uuid.NewString(),
		sess: sess,
		conn: conn,
		send: make(chan []byte, 16),
	}
	h.register(c)

	go h.writePump(c)
	h.sendInitial(c)
	h.readPump(c)
}

func (h *Hub) sendInitial(c *connection) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	jobs, err := h.jobs.ListAll(ctx)
	if err != nil {
		h.log.WithError(err).Warn("live: initial snapshot query failed")
		return
	}
	h.push(c, jobmod.NormalizeAll(jobs))
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Clients only listen; inbound frames are drained to keep the
	// connection's control handlers running.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
