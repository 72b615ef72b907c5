package services

import (
	"encoding/json"
	"sync"

	"github.com/dhaval-dalia/personal-diet-tracker/utils"

	"github.com/gorilla/websocket"
)

type ChangeAction string

const (
	ChangeInsert ChangeAction = "INSERT"
	ChangeUpdate ChangeAction = "UPDATE"
	ChangeDelete ChangeAction = "DELETE"
)

// ChangeEvent is the row-change notification pushed to a user's open
// websocket connections whenever one of their rows is written.
type ChangeEvent struct {
	Table  string       `json:"table"`
	Action ChangeAction `json:"action"`
	Row    any          `json:"row"`
}

// ClientState maps table name -> the latest row payload a client holds.
type ClientState map[string]any

// ApplyChange is the merge policy, made explicit: last-write-wins,
// replace-wholesale. The incoming row replaces whatever the client held
// for that table; no diffing or field merge. The input state is not
// mutated.
func ApplyChange(state ClientState, ev ChangeEvent) ClientState {
	next := make(ClientState, len(state)+1)
	for k, v := range state {
		next[k] = v
	}
	if ev.Action == ChangeDelete {
		delete(next, ev.Table)
		return next
	}
	next[ev.Table] = ev.Row
	return next
}

type WSClient struct {
	UserID uint
	Conn   *websocket.Conn
}

// ChangeFeed fans change events out to every websocket client a user has
// open. Delivery is per-connection in publish order; nothing is ordered
// across users.
type ChangeFeed struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewChangeFeed() *ChangeFeed {
	return &ChangeFeed{clients: make(map[uint]map[*WSClient]struct{})}
}

func (f *ChangeFeed) Register(c *WSClient) {
	f.mu.Lock()
	if f.clients[c.UserID] == nil {
		f.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	f.clients[c.UserID][c] = struct{}{}
	f.mu.Unlock()
}

func (f *ChangeFeed) Unregister(c *WSClient) {
	f.mu.Lock()
	if set := f.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(f.clients, c.UserID)
		}
	}
	f.mu.Unlock()
	_ = c.Conn.Close()
}

// Publish writes the event to every connection of the user. Write errors
// are logged only; the subscription is not restarted.
func (f *ChangeFeed) Publish(userID uint, ev ChangeEvent) {
	msg, err := json.Marshal(ev)
	if err != nil {
		utils.Log.WithError(err).Warn("change feed: marshal failed")
		return
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for c := range f.clients[userID] {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			utils.Log.WithError(err).Warn("change feed: write failed")
		}
	}
}

var _feed *ChangeFeed

func InitChangeFeed(f *ChangeFeed) { _feed = f }

// EmitChange is safe to call from any service; it is a no-op until the
// feed is initialized.
func EmitChange(userID uint, table string, action ChangeAction, row any) {
	if _feed == nil {
		return
	}
	_feed.Publish(userID, ChangeEvent{Table: table, Action: action, Row: row})
}
