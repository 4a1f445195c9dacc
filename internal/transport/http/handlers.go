package http

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SpaceNomad/internal/app"
	"github.com/SpaceNomad/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Fun space facts rotated on the home page.
var funFacts = []string{
	"The sun is 330,000 times more massive than Earth!",
	"One day on Venus is longer than a year on Venus.",
	"The Milky Way has over 200 billion stars.",
	"Space is completely silent because there's no air.",
	"Jupiter's Great Red Spot is a massive storm that has raged for hundreds of years.",
}

// SyncTrigger requests an out-of-band mission sync.
type SyncTrigger interface {
	TriggerSync()
}

type Handlers struct {
	pager     *app.NewsPager
	missions  domain.MissionRepository
	launches  domain.LaunchSource
	sync      SyncTrigger
	templates *template.Template
}

func NewHandlers(
	pager *app.NewsPager,
	missions domain.MissionRepository,
	launches domain.LaunchSource,
	sync SyncTrigger,
) (*Handlers, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handlers{
		pager:     pager,
		missions:  missions,
		launches:  launches,
		sync:      sync,
		templates: tmpl,
	}, nil
}

func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to Space Nomad!"})
}

type indexPageData struct {
	TotalMissions     int64
	CompletedMissions int64
	OngoingMissions   int64
	FunFact           string
}

func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	counts, err := h.missions.StatusCounts(r.Context())
	if err != nil {
		slog.Error("Failed to load mission stats", "error", err)
		http.Error(w, "failed to load mission stats", http.StatusInternalServerError)
		return
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	data := indexPageData{
		TotalMissions:     total,
		CompletedMissions: counts[domain.StatusCompleted],
		OngoingMissions:   counts[domain.StatusOngoing],
		FunFact:           funFacts[rand.Intn(len(funFacts))],
	}
	h.render(w, "index.html", data)
}

type newsPageData struct {
	Articles []domain.Article
	Cursor   domain.PageCursor
	Error    string
}

// News renders one page of space-news articles. The Previous/Next links carry
// a nav parameter handled by the pager's navigation command, so its no-op
// guards apply; a direct load can still request a page number. A fetch failure
// replaces the list with a single error message and leaves the navigation
// controls on the pager's last known state.
//
// The pager (and so the cursor rendered on error) is process-wide state shared
// by every client of this page.
func (h *Handlers) News(w http.ResponseWriter, r *http.Request) {
	var (
		batch domain.PageBatch
		err   error
	)
	switch r.URL.Query().Get("nav") {
	case "previous":
		batch, err = h.pager.OnNavigate(r.Context(), app.Previous)
	case "next":
		batch, err = h.pager.OnNavigate(r.Context(), app.Next)
	default:
		page := 1
		if raw := r.URL.Query().Get("page"); raw != "" {
			if n, perr := strconv.Atoi(raw); perr == nil && n >= 1 {
				page = n
			}
		}
		batch, err = h.pager.Retrieve(r.Context(), page)
	}

	data := newsPageData{}
	if err != nil {
		data.Error = err.Error()
		data.Cursor = h.pager.Cursor()
	} else {
		data.Articles = batch.Articles
		data.Cursor = batch.Cursor
	}

	h.render(w, "news.html", data)
}

func (h *Handlers) ListMissions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.MissionFilter{
		Keyword:   q.Get("keyword"),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
		Page:      intParam(q.Get("page"), 1),
		Size:      intParam(q.Get("size"), 10),
	}
	if t, err := time.Parse(time.RFC3339, q.Get("start_date")); err == nil {
		filter.StartDate = t
	}
	if t, err := time.Parse(time.RFC3339, q.Get("end_date")); err == nil {
		filter.EndDate = t
	}

	var (
		missions []domain.Mission
		err      error
	)
	if filter.Keyword == "" && filter.SortBy == "" && filter.StartDate.IsZero() && filter.EndDate.IsZero() {
		missions, err = h.missions.List(r.Context(), filter.Page, filter.Size)
	} else {
		missions, err = h.missions.Search(r.Context(), filter)
	}
	if err != nil {
		slog.Error("Failed to list missions", "error", err)
		http.Error(w, "failed to list missions", http.StatusInternalServerError)
		return
	}
	if missions == nil {
		missions = []domain.Mission{}
	}

	writeJSON(w, http.StatusOK, missions)
}

type createMissionRequest struct {
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	LaunchDate time.Time `json:"launch_date"`
	Details    string    `json:"details"`
}

func (h *Handlers) CreateMission(w http.ResponseWriter, r *http.Request) {
	var req createMissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		return
	}
	if req.Name == "" || req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "name and status are required"})
		return
	}

	now := time.Now().UTC()
	mission := &domain.Mission{
		ID:         "manual_" + strings.ToLower(strings.ReplaceAll(req.Name, " ", "-")),
		Name:       req.Name,
		Status:     req.Status,
		LaunchDate: req.LaunchDate,
		Details:    req.Details,
		UpdatedAt:  now,
		FetchedAt:  now,
	}
	mission.ContentHash = mission.ComputeHash()

	if err := h.missions.Create(r.Context(), mission); err != nil {
		if errors.Is(err, domain.ErrMissionExists) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Mission already exists"})
			return
		}
		slog.Error("Failed to create mission", "name", req.Name, "error", err)
		http.Error(w, "failed to create mission", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, mission)
}

func (h *Handlers) SpaceXLaunches(w http.ResponseWriter, r *http.Request) {
	launches, err := h.launches.FetchLaunches(r.Context())
	if err != nil {
		slog.Error("Failed to fetch launches", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"detail": "SpaceX API unavailable"})
		return
	}
	if len(launches) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "SpaceX launches not found!"})
		return
	}
	writeJSON(w, http.StatusOK, launches)
}

func (h *Handlers) UpdateMissions(w http.ResponseWriter, r *http.Request) {
	h.sync.TriggerSync()
	writeJSON(w, http.StatusAccepted, map[string]string{"message": "SpaceX mission update has been triggered!"})
}

func (h *Handlers) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("Template render failed", "template", name, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
