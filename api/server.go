// Package api serves a live preview of the scene over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/matt-g-everett/meshtx/scene"
	"github.com/matt-g-everett/meshtx/stream"
)

const maxPreviewSize = 4096

// Api renders preview frames on request.
type Api struct {
	player   *stream.Player
	viewport scene.Viewport
	static   string
	now      func() time.Time
}

// StateResponse is the JSON body of /state.
type StateResponse struct {
	T     float64 `json:"t"`
	Phase string  `json:"phase"`
	Cycle int64   `json:"cycle"`
}

// NewApi creates an Api. Frames default to vp; static is a directory served
// at / and may be empty.
func NewApi(player *stream.Player, vp scene.Viewport, static string) *Api {
	a := new(Api)
	a.player = player
	a.viewport = vp
	a.static = static
	a.now = time.Now
	return a
}

// Handler returns the routes.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/frame.png", a.handleFrame)
	mux.HandleFunc("/state", a.handleState)
	if a.static != "" {
		mux.Handle("/", http.FileServer(http.Dir(a.static)))
	}
	return mux
}

// Serve listens on addr until ctx is cancelled.
func (a *Api) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s...", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}

func (a *Api) handleFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	vp := a.viewport
	var err error
	if vp.Width, err = sizeParam(r, "width", vp.Width); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if vp.Height, err = sizeParam(r, "height", vp.Height); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f := a.player.RenderAt(vp, a.now())
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := png.Encode(w, f.Image); err != nil {
		log.Printf("Failed to encode frame: %v", err)
	}
}

func (a *Api) handleState(w http.ResponseWriter, r *http.Request) {
	st := a.player.State(a.now())
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(StateResponse{
		T:     st.T,
		Phase: st.Phase.String(),
		Cycle: st.Cycle,
	})
	if err != nil {
		log.Printf("Failed to encode state: %v", err)
	}
}

func sizeParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > maxPreviewSize {
		return 0, fmt.Errorf("%s must be between 1 and %d", name, maxPreviewSize)
	}
	return n, nil
}
