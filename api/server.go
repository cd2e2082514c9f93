package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/matt-g-everett/ledtween/stream"
)

// StatusSource provides the status served on /status.
type StatusSource interface {
	Status() stream.Status
}

// Api serves the streamer status and the client pages.
type Api struct {
	source StatusSource
	mux    *http.ServeMux
}

// NewApi creates an Api reporting source.
func NewApi(source StatusSource) *Api {
	a := &Api{source: source, mux: http.NewServeMux()}
	a.mux.HandleFunc("/status", a.handleStatus)
	a.mux.Handle("/", http.FileServer(http.Dir("client/dist")))
	return a
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

func (a *Api) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.source.Status()); err != nil {
		log.Println(err)
	}
}

// Serve listens on addr until the server fails.
func (a *Api) Serve(addr string) error {
	log.Printf("Listening on %s...", addr)
	return http.ListenAndServe(addr, a)
}
