package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/zucenko/mazescape/model"
)

// ResponseCode is how GameServer.Loop answers a /play request.
type ResponseCode int

const (
	GAME_READY ResponseCode = iota
	GAME_NOT_FOUND
	// GAME_FAILED means no world could be built for the session.
	GAME_FAILED
)

var httpStatus = map[ResponseCode]int{
	GAME_READY:     http.StatusOK,
	GAME_NOT_FOUND: http.StatusNotFound,
	GAME_FAILED:    http.StatusServiceUnavailable,
}

// ToHttp falls back to 500 for codes with no mapping.
func (rc ResponseCode) ToHttp() int {
	if code, ok := httpStatus[rc]; ok {
		return code
	}
	return http.StatusInternalServerError
}

var gameSessionStates = [...]string{GS_NEW: "GS_NEW", GS_PLAY: "GS_PLAY", GS_ERR: "GS_ERR", GS_OVER: "GS_OVER"}

func (gss GameSessionState) Name() string {
	if gss < 0 || int(gss) >= len(gameSessionStates) {
		return fmt.Sprintf("GS_?%d", int(gss))
	}
	return gameSessionStates[gss]
}

var playerSessionStates = [...]string{PS_NEW: "NEW", PS_PLAY: "PLAY", PS_OVER: "OVER", PS_ERR: "ERR"}

func (ps PlayerSessionState) Name() string {
	if ps <= 0 || int(ps) >= len(playerSessionStates) {
		return "N/A"
	}
	return playerSessionStates[ps]
}

type GameContextAwaiting struct {
	ResponseCode ResponseCode
	GameSession  *GameSession
	Err          error
}

type GameRequest struct {
	GameContextAwaiting chan GameContextAwaiting
}

// SessionRequest looks up live sessions. An empty Id asks for all of them.
type SessionRequest struct {
	Id    string
	Reply chan []*GameSession
}

type PlayerConnectRequest struct {
	Con      *websocket.Conn
	GameOver chan struct{}
}

type PlayerEvent struct {
	Message model.ClientMessage
}

// SessionStatus is the JSON view of a session for the HTTP endpoints.
type SessionStatus struct {
	Id          string `json:"id"`
	State       string `json:"state"`
	Game        string `json:"game,omitempty"`
	Phase       string `json:"phase,omitempty"`
	Remaining   int    `json:"remaining"`
	Collected   int    `json:"collected"`
	TotalKeys   int    `json:"total_keys"`
	Layout      string `json:"layout,omitempty"`
	IdealLength int    `json:"ideal_length,omitempty"`
}
