package server

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zucenko/mazescape/model"
)

type GameServer struct {
	Config model.Config
	// LayoutFile, when set, replaces maze generation with a fixed world.
	LayoutFile string

	GameSessions    map[string]*GameSession
	GameRequests    chan GameRequest
	SessionRequests chan SessionRequest
	Ended           chan string
	Upgrader        *websocket.Upgrader

	seeds int64
}

type GameSessionState int

const (
	GS_NEW GameSessionState = iota
	GS_PLAY
	GS_ERR
	GS_OVER
)

// GameSession runs one player's games. Everything in it belongs to its
// Loop goroutine; other goroutines talk to it through the channels.
type GameSession struct {
	Id      string
	State   GameSessionState
	Session *model.Session
	Player  *PlayerSession

	Errors                chan string
	Events                chan PlayerEvent
	PlayerConnectRequests chan PlayerConnectRequest
	StatusRequests        chan chan SessionStatus

	server    *GameServer
	world     *model.World
	rng       model.Rand
	hint      []model.Position
	sentWalls bool
	done      chan struct{}
	status    atomic.Pointer[SessionStatus]
}

type PlayerSessionState int

const (
	PS_NEW PlayerSessionState = iota + 1
	PS_PLAY
	PS_OVER
	PS_ERR
)

type PlayerSession struct {
	State       PlayerSessionState
	GameSession *GameSession
	Conn        *websocket.Conn
	GameOver    chan struct{}

	MessagesToSend chan model.ServerMessage

	DebugInMessages  int
	DebugOutMessages int
	DebugDropped     int
	DebugLastMessage time.Time
}
