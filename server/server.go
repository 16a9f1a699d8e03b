// Package server exposes a Sheet over a websocket connection for a
// live-updating browser client: every accepted mutation is broadcast to all
// connected clients as a fresh snapshot of the printable rectangle.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/jys1670/spreadsheet/position"
	"github.com/jys1670/spreadsheet/sheet"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local dev: allow all origins
	},
}

// Server guards a Sheet with a mutex and fans its state out to websocket
// clients. The engine itself (sheet.Sheet) holds no lock of its own; Server
// is the layer that serializes concurrent HTTP goroutines against it.
type Server struct {
	mu      sync.Mutex
	sheet   *sheet.Sheet
	clients map[*websocket.Conn]bool
}

// NewServer returns a Server seeded with a small demonstration sheet.
func NewServer() *Server {
	s := &Server{
		sheet:   sheet.New(),
		clients: make(map[*websocket.Conn]bool),
	}
	s.seedDemo()
	return s
}

func (s *Server) mustSetCell(id string, text string) {
	if err := s.sheet.SetCell(position.FromString(id), text); err != nil {
		log.Printf("set cell %s failed: %v", id, err)
	}
}

func (s *Server) seedDemo() {
	s.mustSetCell("A1", "Quantity")
	s.mustSetCell("B1", "Price")
	s.mustSetCell("C1", "Total")

	s.mustSetCell("A2", "3")
	s.mustSetCell("B2", "19.5")
	s.mustSetCell("C2", "=A2*B2")

	s.mustSetCell("A3", "7")
	s.mustSetCell("B3", "4")
	s.mustSetCell("C3", "=A3*B3")

	s.mustSetCell("A5", "Grand total")
	s.mustSetCell("C5", "=C2+C3")

	s.mustSetCell("A7", "Divide by zero")
	s.mustSetCell("C7", "=1/0")

	s.mustSetCell("A9", "Escaped formula text")
	s.mustSetCell("C9", "'=not evaluated")
}

// updateRequest is a client-originated websocket message.
type updateRequest struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Value string `json:"value"`
}

// cellUpdate is a server-originated websocket message describing one cell.
type cellUpdate struct {
	Type    string `json:"type"`
	ID      string `json:"id"`
	Text    string `json:"text"`
	Display string `json:"display"`
	Error   string `json:"error,omitempty"`
}

// resetMessage tells the client to discard its grid before a fresh
// broadcast of every populated cell follows.
type resetMessage struct {
	Type string `json:"type"`
	Rows int    `json:"rows"`
	Cols int    `json:"cols"`
}

// HandleWebSocket upgrades r to a websocket connection, streams the current
// sheet state, then applies every incoming update_cell/clear_cell message
// and rebroadcasts the resulting state to all connected clients.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade error:", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	s.sendSnapshot(conn)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var req updateRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			log.Println("decode error:", err)
			continue
		}

		s.mu.Lock()
		switch req.Type {
		case "update_cell":
			if err := s.sheet.SetCell(position.FromString(req.ID), req.Value); err != nil {
				log.Printf("set cell %s failed: %v", req.ID, err)
			}
		case "clear_cell":
			if err := s.sheet.ClearCell(position.FromString(req.ID)); err != nil {
				log.Printf("clear cell %s failed: %v", req.ID, err)
			}
		}
		s.mu.Unlock()

		s.broadcastSnapshot()
	}
}

// sendSnapshot writes every populated cell in the sheet to one connection.
func (s *Server) sendSnapshot(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	size := s.sheet.GetPrintableSize()
	if err := conn.WriteJSON(resetMessage{Type: "reset", Rows: size.Rows, Cols: size.Cols}); err != nil {
		log.Printf("snapshot reset write failed: %v", err)
		return
	}
	s.forEachCell(func(upd cellUpdate) {
		if err := conn.WriteJSON(upd); err != nil {
			log.Printf("snapshot write failed: %v", err)
		}
	})
}

// broadcastSnapshot sends a reset followed by every populated cell to every
// connected client, dropping any client whose write fails.
func (s *Server) broadcastSnapshot() {
	s.mu.Lock()
	defer s.mu.Unlock()

	size := s.sheet.GetPrintableSize()
	reset := resetMessage{Type: "reset", Rows: size.Rows, Cols: size.Cols}
	for client := range s.clients {
		if err := client.WriteJSON(reset); err != nil {
			log.Printf("broadcast reset failed: %v", err)
			client.Close()
			delete(s.clients, client)
		}
	}

	s.forEachCell(func(upd cellUpdate) {
		for client := range s.clients {
			if err := client.WriteJSON(upd); err != nil {
				log.Printf("broadcast write failed: %v", err)
				client.Close()
				delete(s.clients, client)
			}
		}
	})
}

// forEachCell walks the printable rectangle and invokes fn for every
// non-empty cell. Callers must hold s.mu.
func (s *Server) forEachCell(fn func(cellUpdate)) {
	size := s.sheet.GetPrintableSize()
	for row := 0; row < size.Rows; row++ {
		for col := 0; col < size.Cols; col++ {
			pos := position.Position{Row: row, Col: col}
			c, _ := s.sheet.GetCell(pos)
			if c == nil || c.IsEmpty() {
				continue
			}
			v := c.GetValue(s.sheet)
			upd := cellUpdate{
				Type:    "cell_updated",
				ID:      pos.String(),
				Text:    c.GetText(),
				Display: v.String(),
			}
			if v.IsError() {
				upd.Error = v.String()
			}
			fn(upd)
		}
	}
}

// Start serves static assets alongside the /ws websocket endpoint on addr.
func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()

	dir := "assets/gridsheet"
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Printf("static directory %s not found; serving /ws only", dir)
	} else {
		mux.Handle("/", http.FileServer(http.Dir(dir)))
	}
	mux.HandleFunc("/ws", s.HandleWebSocket)

	log.Printf("starting gridsheet server at http://%s", addr)
	return http.ListenAndServe(addr, mux)
}
