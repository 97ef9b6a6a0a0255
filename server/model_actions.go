package server

import (
	"encoding/gob"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/mazescape/model"
)

const (
	handoffTimeout = 200 * time.Millisecond
	// connectTimeout drops sessions whose websocket never arrived.
	connectTimeout = 5 * time.Second
	sendBuffer     = 10
)

func NewGameServer(cfg model.Config) *GameServer {
	return &GameServer{
		Config:          cfg,
		GameSessions:    make(map[string]*GameSession),
		GameRequests:    make(chan GameRequest),
		SessionRequests: make(chan SessionRequest),
		Ended:           make(chan string, 16),
		Upgrader:        &websocket.Upgrader{},
		seeds:           cfg.Seed,
	}
}

func (s *GameServer) HandleHttpCall() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("HandleHttpCall - connection received")

		gcas := make(chan GameContextAwaiting, 1)
		select {
		case s.GameRequests <- GameRequest{GameContextAwaiting: gcas}:
		case <-time.After(handoffTimeout):
			log.Warn("GameRequests TIMEOUTED")
			w.WriteHeader(http.StatusRequestTimeout)
			return
		}

		var gca GameContextAwaiting
		select {
		case gca = <-gcas:
			switch gca.ResponseCode {
			case GAME_NOT_FOUND, GAME_FAILED:
				log.WithError(gca.Err).Warn("HandleHttpCall no game")
				http.Error(w, gca.Err.Error(), gca.ResponseCode.ToHttp())
				return
			case GAME_READY:
			default:
				log.Errorf("gca.ResponseCode not expected:%v", gca.ResponseCode)
			}
		case <-time.After(handoffTimeout):
			log.Warn("HandleHttpCall GameContextAwaiting <- TIMEOUTED")
			w.WriteHeader(http.StatusRequestTimeout)
			return
		}

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already answered the request
			log.WithError(err).Warn("HandleHttpCall websocket upgrade")
			return
		}
		defer con.Close()

		gameOver := make(chan struct{})
		select {
		case gca.GameSession.PlayerConnectRequests <- PlayerConnectRequest{Con: con, GameOver: gameOver}:
		case <-time.After(handoffTimeout):
			log.Warn("HandleHttpCall PlayerConnectRequests TIMEOUTED")
			return
		}
		<-gameOver
		log.WithField("session", gca.GameSession.Id).Debug("HandleHttpCall game over")
	}
}

// Loop owns GameSessions. It never returns.
func (s *GameServer) Loop() {
	log.Info("GameServer.Loop starting")
	for {
		select {
		case gameReq := <-s.GameRequests:
			gs, err := s.newGameSession()
			if err != nil {
				log.WithError(err).Error("create GameSession")
				gameReq.GameContextAwaiting <- GameContextAwaiting{ResponseCode: GAME_FAILED, Err: err}
				continue
			}
			s.GameSessions[gs.Id] = gs
			go gs.Loop()
			gameReq.GameContextAwaiting <- GameContextAwaiting{ResponseCode: GAME_READY, GameSession: gs}

		case req := <-s.SessionRequests:
			var found []*GameSession
			if req.Id == "" {
				found = make([]*GameSession, 0, len(s.GameSessions))
				for _, gs := range s.GameSessions {
					found = append(found, gs)
				}
			} else if gs, ok := s.GameSessions[req.Id]; ok {
				found = []*GameSession{gs}
			}
			req.Reply <- found

		case id := <-s.Ended:
			delete(s.GameSessions, id)
			log.WithFields(log.Fields{"session": id, "live": len(s.GameSessions)}).Info("GameSession removed")
		}
	}
}

func (s *GameServer) nextRand() model.Rand {
	if s.seeds == 0 {
		return model.NewRand(0)
	}
	seed := s.seeds
	s.seeds++
	return model.NewRand(seed)
}

func (s *GameServer) buildWorld(rng model.Rand) (*model.World, error) {
	if s.LayoutFile != "" {
		return model.LoadLayout(s.LayoutFile)
	}
	return model.NewWorld(s.Config, rng)
}

func (s *GameServer) newGameSession() (*GameSession, error) {
	rng := s.nextRand()
	world, err := s.buildWorld(rng)
	if err != nil {
		return nil, err
	}
	gs := &GameSession{
		Id:                    uuid.NewString(),
		State:                 GS_NEW,
		Errors:                make(chan string),
		Events:                make(chan PlayerEvent),
		PlayerConnectRequests: make(chan PlayerConnectRequest),
		StatusRequests:        make(chan chan SessionStatus),
		server:                s,
		world:                 world,
		rng:                   rng,
		done:                  make(chan struct{}),
	}
	gs.publish()
	log.WithField("session", gs.Id).Info("create GameSession")
	return gs, nil
}

func (gs *GameSession) Loop() {
	logger := log.WithField("session", gs.Id)
	logger.Debug("GameSession.Loop start")
	ticker := time.NewTicker(gs.server.Config.TickInterval())
	defer ticker.Stop()
	defer gs.end()

	created := time.Now()
	var input model.Input
	for {
		select {
		case pcr := <-gs.PlayerConnectRequests:
			if gs.Player != nil {
				logger.Warn("GameSession already has a player")
				close(pcr.GameOver)
				continue
			}
			gs.addPlayer(pcr.Con, pcr.GameOver)
			gs.start(gs.world)

		case <-gs.Errors:
			logger.Warn("killing GameSession")
			gs.State = GS_ERR
			gs.Player.State = PS_ERR
			return

		case pe := <-gs.Events:
			if !gs.handle(pe.Message, &input) {
				return
			}

		case reply := <-gs.StatusRequests:
			reply <- gs.detail()

		case <-ticker.C:
			if gs.State == GS_NEW && time.Since(created) > connectTimeout {
				logger.Warn("no player connected")
				return
			}
			if gs.State != GS_PLAY {
				continue
			}
			if gs.Session.Phase() == model.PHASE_PLAY {
				gs.Session.Tick(input)
			}
			gs.send()
			gs.publish()
		}
	}
}

// handle applies one client message. It returns false when the session
// should end.
func (gs *GameSession) handle(cm model.ClientMessage, input *model.Input) bool {
	if gs.State != GS_PLAY {
		return true
	}
	if !cm.Restart && !cm.Menu {
		*input = cm.Input
		return true
	}
	if phase := gs.Session.Phase(); phase != model.PHASE_END {
		log.WithFields(log.Fields{"session": gs.Id, "phase": phase.Name()}).Debug("ignoring request before end screen")
		return true
	}
	if cm.Menu {
		gs.State = GS_OVER
		return false
	}
	world, err := gs.server.buildWorld(gs.rng)
	if err != nil {
		log.WithError(err).WithField("session", gs.Id).Error("restart")
		select {
		case gs.Player.MessagesToSend <- model.ServerMessage{Session: gs.Id, Error: err.Error()}:
		default:
		}
		gs.State = GS_ERR
		return false
	}
	*input = model.Input{}
	gs.start(world)
	return true
}

func (gs *GameSession) start(world *model.World) {
	gs.world = world
	gs.Session = model.NewSessionWithWorld(gs.server.Config, world, model.NewWallClock())
	gs.hint = nil
	gs.sentWalls = false
	gs.State = GS_PLAY
	gs.Player.State = PS_PLAY
	gs.publish()
	log.WithFields(log.Fields{"session": gs.Id, "keys": len(world.Keys)}).Info("game started")
}

func (gs *GameSession) send() {
	msg := model.ServerMessage{
		Session:  gs.Id,
		Snapshot: gs.Session.Snapshot(),
		Phase:    gs.Session.Phase(),
	}
	if gs.sentWalls {
		msg.Snapshot.Walls = nil
	}
	if msg.Phase == model.PHASE_HINT || msg.Phase == model.PHASE_END {
		if gs.hint == nil {
			hint, err := gs.Session.Hint()
			if err != nil {
				log.WithError(err).WithField("session", gs.Id).Error("hint")
			}
			gs.hint = hint
		}
		msg.Hint = gs.hint
	}
	select {
	case gs.Player.MessagesToSend <- msg:
		gs.sentWalls = true
	default:
		gs.Player.DebugDropped++
		log.WithField("session", gs.Id).Debug("dropping frame, send buffer full")
	}
}

func (gs *GameSession) end() {
	if gs.State == GS_NEW || gs.State == GS_PLAY {
		gs.State = GS_OVER
	}
	close(gs.done)
	if gs.Player != nil {
		if gs.Player.State != PS_ERR {
			gs.Player.State = PS_OVER
		}
		close(gs.Player.GameOver)
	}
	gs.publish()
	gs.server.Ended <- gs.Id
	log.WithFields(log.Fields{"session": gs.Id, "state": gs.State.Name()}).Info("GameSession.Loop ended")
}

func (gs *GameSession) addPlayer(conn *websocket.Conn, gameOver chan struct{}) {
	ps := &PlayerSession{
		State:          PS_NEW,
		GameSession:    gs,
		Conn:           conn,
		GameOver:       gameOver,
		MessagesToSend: make(chan model.ServerMessage, sendBuffer),
	}
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Timeout() {
				return nil
			}
			return err
		})
	go ps.LoopChannelRead()
	go ps.LoopChannelWrite()
	gs.Player = ps
}

func (ps *PlayerSession) fail() {
	select {
	case ps.GameSession.Errors <- ps.GameSession.Id:
	case <-ps.GameSession.done:
	}
}

func (ps *PlayerSession) LoopChannelRead() {
	logger := log.WithField("session", ps.GameSession.Id)
	for {
		_, r, err := ps.Conn.NextReader()
		if err != nil {
			logger.WithError(err).Debug("LoopChannelRead reading message from Conn")
			ps.fail()
			return
		}
		cm := model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(&cm); err != nil {
			logger.WithError(err).Warn("LoopChannelRead cant decode")
			ps.fail()
			return
		}
		ps.DebugLastMessage = time.Now()
		ps.DebugInMessages++

		select {
		case ps.GameSession.Events <- PlayerEvent{Message: cm}:
		case <-ps.GameSession.done:
			return
		}
	}
}

// LoopChannelWrite is the only writer of data frames on Conn.
func (ps *PlayerSession) LoopChannelWrite() {
	logger := log.WithField("session", ps.GameSession.Id)
	for {
		select {
		case mes := <-ps.MessagesToSend:
			w, err := ps.Conn.NextWriter(websocket.BinaryMessage)
			if err != nil {
				logger.WithError(err).Warn("LoopChannelWrite cant get writer")
				ps.fail()
				return
			}
			if err := gob.NewEncoder(w).Encode(mes); err != nil {
				logger.WithError(err).Warn("LoopChannelWrite cant encode")
				ps.fail()
				return
			}
			if err := w.Close(); err != nil {
				logger.WithError(err).Warn("LoopChannelWrite cant flush")
				ps.fail()
				return
			}
			ps.DebugOutMessages++
		case <-ps.GameSession.done:
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over")
			_ = ps.Conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			return
		}
	}
}
