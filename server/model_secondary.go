package server

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/mazescape/model"
)

// publish stores a fresh status for readers outside the Loop goroutine.
func (gs *GameSession) publish() {
	st := SessionStatus{Id: gs.Id, State: gs.State.Name()}
	if gs.world != nil {
		st.TotalKeys = len(gs.world.Keys)
	}
	if s := gs.Session; s != nil {
		st.Game = s.State.Name()
		st.Phase = s.Phase().Name()
		st.Remaining = s.RemainingSeconds()
		st.Collected = s.Collected
	}
	gs.status.Store(&st)
}

func (gs *GameSession) Status() SessionStatus {
	if st := gs.status.Load(); st != nil {
		return *st
	}
	return SessionStatus{Id: gs.Id}
}

// detail adds the rendered maze and the ideal route length to the status.
func (gs *GameSession) detail() SessionStatus {
	gs.publish()
	st := gs.Status()
	if gs.world == nil {
		return st
	}
	player := gs.world.Origin
	if gs.Session != nil {
		player = gs.Session.Player.Pos
	}
	st.Layout = gs.world.Render(player)
	route, err := model.CompositePath(gs.world.Grid, gs.world.Waypoints())
	if err != nil {
		log.WithError(err).WithField("session", gs.Id).Warn("ideal route")
	} else if len(route) > 0 {
		st.IdealLength = len(route) - 1
	}
	return st
}

func (s *GameServer) lookup(id string) ([]*GameSession, bool) {
	reply := make(chan []*GameSession, 1)
	select {
	case s.SessionRequests <- SessionRequest{Id: id, Reply: reply}:
	case <-time.After(handoffTimeout):
		return nil, false
	}
	select {
	case found := <-reply:
		return found, true
	case <-time.After(handoffTimeout):
		return nil, false
	}
}

func (s *GameServer) HandleSessions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		found, ok := s.lookup("")
		if !ok {
			log.Warn("HandleSessions TIMEOUTED")
			writeJSON(w, http.StatusRequestTimeout, map[string]string{"error": "timeout"})
			return
		}
		statuses := make([]SessionStatus, 0, len(found))
		for _, gs := range found {
			statuses = append(statuses, gs.Status())
		}
		sort.Slice(statuses, func(i, j int) bool { return statuses[i].Id < statuses[j].Id })
		writeJSON(w, http.StatusOK, statuses)
	}
}

func (s *GameServer) HandleSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := way.Param(r.Context(), "id")
		found, ok := s.lookup(id)
		if !ok {
			writeJSON(w, http.StatusRequestTimeout, map[string]string{"error": "timeout"})
			return
		}
		if len(found) == 0 {
			writeJSON(w, GAME_NOT_FOUND.ToHttp(), map[string]string{"error": "no session " + id})
			return
		}
		gs := found[0]
		reply := make(chan SessionStatus, 1)
		select {
		case gs.StatusRequests <- reply:
		case <-gs.done:
			writeJSON(w, http.StatusOK, gs.Status())
			return
		case <-time.After(handoffTimeout):
			writeJSON(w, http.StatusRequestTimeout, map[string]string{"error": "timeout"})
			return
		}
		writeJSON(w, http.StatusOK, <-reply)
	}
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Warn("writeJSON")
	}
}
