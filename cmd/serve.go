package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scentlab/scent-cli/internal/advisor"
	"github.com/scentlab/scent-cli/internal/model"
	"github.com/scentlab/scent-cli/internal/recommend"
	"github.com/scentlab/scent-cli/internal/store"
	"github.com/scentlab/scent-cli/internal/vibe"
)

var (
	servePort int
	serveDemo bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the recommendation API server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var (
			st  store.Store
			err error
		)
		if serveDemo {
			st = store.NewMemory()
			if _, err := st.UpsertItems(ctx, demoCatalog()); err != nil {
				return err
			}
		} else {
			st, err = openStore(ctx)
			if err != nil {
				return err
			}
		}
		defer st.Close() //nolint:errcheck

		var session *advisor.Session
		if bridge, err := advisor.FromConfig(cfg.Advisory); err != nil {
			zap.L().Warn("advisory disabled", zap.Error(err))
		} else {
			session = advisor.NewSession(bridge)
		}

		srvEnv := &serverEnv{store: st, session: session, limit: cfg.Recommend.Limit}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(srvEnv),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownServer(srv)
		}()

		zap.L().Info("starting server", zap.Int("port", port), zap.Bool("demo", serveDemo))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().BoolVar(&serveDemo, "demo", false, "serve a built-in in-memory catalog")
	rootCmd.AddCommand(serveCmd)
}

const shutdownGrace = 10 * time.Second

// shutdownServer drains in-flight requests. The signal context is already
// cancelled by the time shutdown starts, so the drain runs on a fresh
// bounded context instead.
func shutdownServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	srv.Shutdown(ctx) //nolint:errcheck
}

type serverEnv struct {
	store   store.Store
	session *advisor.Session
	limit   int
}

func newRouter(env *serverEnv) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/items", env.handleListItems)
		r.Get("/items/search", env.handleSearchItems)
		r.Get("/items/{id}", env.handleGetItem)
		r.Post("/recommend", env.handleRecommend)
		r.Get("/vibes", env.handleListVibes)
		r.Get("/vibes/{id}", env.handleGetVibe)
		r.Get("/favorites", env.handleListFavorites)
		r.Put("/favorites/{id}", env.handleAddFavorite)
		r.Delete("/favorites/{id}", env.handleRemoveFavorite)
		r.Post("/favorites/{id}/toggle", env.handleToggleFavorite)
		r.Delete("/favorites", env.handleClearFavorites)
	})

	return r
}

func (env *serverEnv) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := env.store.ListItems(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmptyItems(items))
}

func (env *serverEnv) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeErrorMessage(w, http.StatusBadRequest, "q is required")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	items, err := env.store.SearchItems(r.Context(), query, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmptyItems(items))
}

func (env *serverEnv) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item, err := env.store.FindItem(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if item == nil {
		writeErrorMessage(w, http.StatusNotFound, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type recommendRequest struct {
	model.Answers
	Limit  int  `json:"limit,omitempty"`
	Advice bool `json:"advice,omitempty"`
}

type recommendResponse struct {
	Recommendations []model.Recommendation `json:"recommendations"`
	Advice          *model.AdvisoryResult  `json:"advice,omitempty"`
}

func (env *serverEnv) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Answers.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = env.limit
	}

	catalog, err := env.store.ListItems(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	recs := recommend.Score(req.Answers, catalog, limit)
	resp := recommendResponse{Recommendations: recs}
	if resp.Recommendations == nil {
		resp.Recommendations = []model.Recommendation{}
	}

	if req.Advice && env.session != nil && len(recs) > 0 {
		advice, err := env.session.Advise(r.Context(), req.Answers, recs)
		switch {
		case err == nil:
			resp.Advice = advice
		case errors.Is(err, advisor.ErrSuperseded):
			// A newer request took over; the deterministic picks still stand.
			zap.L().Debug("advisory superseded")
		default:
			zap.L().Warn("advisory unavailable", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type vibeView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (env *serverEnv) handleListVibes(w http.ResponseWriter, _ *http.Request) {
	views := make([]vibeView, 0)
	for _, v := range vibe.All() {
		views = append(views, vibeView{ID: v.ID, Title: v.Title, Description: v.Description})
	}
	writeJSON(w, http.StatusOK, views)
}

func (env *serverEnv) handleGetVibe(w http.ResponseWriter, r *http.Request) {
	v, err := vibe.Find(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorMessage(w, http.StatusNotFound, "vibe not found")
		return
	}

	catalog, err := env.store.ListItems(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		vibeView
		Items []model.Item `json:"items"`
	}{
		vibeView{ID: v.ID, Title: v.Title, Description: v.Description},
		orEmptyItems(v.Filter(catalog)),
	})
}

func (env *serverEnv) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	refs, err := env.store.ListFavorites(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if refs == nil {
		refs = []store.FavoriteRef{}
	}
	writeJSON(w, http.StatusOK, refs)
}

func (env *serverEnv) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	ref, ok := env.resolveFavorite(w, r)
	if !ok {
		return
	}
	if err := env.store.AddFavorite(r.Context(), *ref); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, ref)
}

func (env *serverEnv) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	if err := env.store.RemoveFavorite(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (env *serverEnv) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ref, ok := env.resolveFavorite(w, r)
	if !ok {
		return
	}
	added, err := env.store.ToggleFavorite(r.Context(), *ref)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"favorite": added})
}

func (env *serverEnv) handleClearFavorites(w http.ResponseWriter, r *http.Request) {
	if err := env.store.ClearFavorites(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (env *serverEnv) resolveFavorite(w http.ResponseWriter, r *http.Request) (*store.FavoriteRef, bool) {
	id := chi.URLParam(r, "id")
	item, err := env.store.FindItem(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	if item == nil {
		writeErrorMessage(w, http.StatusNotFound, "item not found")
		return nil, false
	}
	return &store.FavoriteRef{ID: item.ID, Brand: item.Brand, Name: item.Name}, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func orEmptyItems(items []model.Item) []model.Item {
	if items == nil {
		return []model.Item{}
	}
	return items
}

// demoCatalog is a small built-in catalog for serve --demo.
func demoCatalog() []model.Item {
	return []model.Item{
		{
			ID: "aqua-azzura", Brand: "Brise", Name: "Aqua Azzura",
			Concentration: "EDT", Gender: "unisex", Year: 2019,
			Intensity: model.IntensityFresh, Longevity: 5,
			Notes:    []string{"citrus", "morsko", "bergamot"},
			Season:   []model.Season{model.SeasonSummer, model.SeasonSpring},
			Occasion: []model.Occasion{model.OccasionCasual, model.OccasionWork},
		},
		{
			ID: "nightfall-oud", Brand: "Acme", Name: "Nightfall Oud",
			Concentration: "EDP", Gender: "muški", Year: 2021,
			Intensity: model.IntensityStrong, Longevity: 10,
			Notes:    []string{"oud", "vanilija", "ambra", "začinsko"},
			Season:   []model.Season{model.SeasonWinter, model.SeasonAutumn},
			Occasion: []model.Occasion{model.OccasionNight, model.OccasionDate},
		},
		{
			ID: "linen-iris", Brand: "Ciel", Name: "Linen Iris",
			Concentration: "EDP", Gender: "ženski", Year: 2020,
			Intensity: model.IntensityMedium, Longevity: 7,
			Notes:    []string{"iris", "cvjetno", "mošus"},
			Season:   []model.Season{model.SeasonSpring, model.SeasonAutumn},
			Occasion: []model.Occasion{model.OccasionWork, model.OccasionFormal},
		},
		{
			ID: "velvet-tonka", Brand: "Acme", Name: "Velvet Tonka",
			Concentration: "EDP", Gender: "unisex", Year: 2022,
			Intensity: model.IntensityMedium, Longevity: 8,
			Notes:    []string{"tonka", "vanilija", "koža"},
			Season:   []model.Season{model.SeasonAutumn, model.SeasonWinter},
			Occasion: []model.Occasion{model.OccasionDate, model.OccasionFormal},
		},
	}
}
