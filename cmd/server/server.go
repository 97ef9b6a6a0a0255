package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/mazescape/model"
	"github.com/zucenko/mazescape/server"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG"), "yaml config file")
	layout := flag.String("layout", os.Getenv("MAZE_FILE"), "fixed maze layout file")
	seed := flag.Int64("seed", 0, "seed for maze generation, 0 picks one from the clock")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	cfg := model.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = model.LoadConfig(*configPath); err != nil {
			log.WithError(err).Fatal("config")
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	gs := server.NewGameServer(cfg)
	gs.LayoutFile = *layout
	if *layout != "" {
		if _, err := model.LoadLayout(*layout); err != nil {
			log.WithError(err).Fatal("layout")
		}
	}

	s := Server{GameServer: gs}
	go s.GameServer.Loop()
	s.routes()
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("Defaulting to port %s", port)
	}
	log.WithFields(log.Fields{"maze": fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), "seed": cfg.Seed}).Info("listening on :" + port)
	log.Fatalln(http.ListenAndServe(":"+port, s.router))
}
