package controllers

import (
	"net/http"
	"time"

	"github.com/rajwani-7/Mediguard/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type RealtimeController struct {
	RT *services.RealtimeHub
}

func NewRealtimeController(rt *services.RealtimeHub) *RealtimeController {
	return &RealtimeController{RT: rt}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind ALB/CloudFront if needed
}

// RemindersWS streams due-reminder events to the client. On connect the
// client first receives a "reminder.snapshot" with everything coming up
// in the next 24 hours, then live "reminder.due" events as the scan
// loop promotes entries.
func (rc *RealtimeController) RemindersWS(c *gin.Context) {
	uid := c.GetUint("userID")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{UserID: uid, Conn: conn}
	rc.RT.Register(cl)

	if upcoming, err := services.UpcomingReminders(uid, 24*time.Hour); err == nil {
		_ = conn.WriteJSON(services.RealtimeEvent{
			Kind:    "reminder.snapshot",
			SentAt:  time.Now(),
			Payload: map[string]any{"reminders": upcoming},
		})
	}

	// ping to keep connections alive through some proxies
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				rc.RT.Unregister(cl)
				return
			}
		}
	}()

	// read loop ends on client close/error → unregister
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rc.RT.Unregister(cl)
			return
		}
	}
}
