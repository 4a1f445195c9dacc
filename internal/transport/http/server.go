package http

import (
	"fmt"
	"net/http"

	"github.com/SpaceNomad/pkg/config"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewHTTPServer(cfg *config.Config, h *Handlers) *http.Server {
	r := mux.NewRouter()

	r.HandleFunc("/", h.Root).Methods("GET")
	r.HandleFunc("/index", h.Index).Methods("GET")
	r.HandleFunc("/news/", h.News).Methods("GET")
	r.HandleFunc("/missions/", h.ListMissions).Methods("GET")
	r.HandleFunc("/missions/", h.CreateMission).Methods("POST")
	r.HandleFunc("/spacex-launches/", h.SpaceXLaunches).Methods("GET")
	r.HandleFunc("/update-missions/", h.UpdateMissions).Methods("POST")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := fmt.Fprintf(w, "OK"); err != nil {
			// Log error but don't fail health check
			_ = err
		}
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}
}
