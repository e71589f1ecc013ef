package api

import (
	"net/http"

	app "github.com/okian/stocksanalyzer/internal/app"
	"github.com/okian/stocksanalyzer/internal/domain/model"
)

type sentimentRequest struct {
	Posts          []model.SocialPost `json:"posts"`
	TrackedTickers []string           `json:"tracked_tickers"`
}

type popularityRequest struct {
	History map[string]model.Series `json:"history"`
}

type ideasRequest struct {
	Social     model.Scores `json:"social"`
	Popularity model.Scores `json:"popularity"`
	MinScore   *float64     `json:"min_score"`
}

type pipelineRequest struct {
	Posts          []model.SocialPost      `json:"posts"`
	TrackedTickers []string                `json:"tracked_tickers"`
	History        map[string]model.Series `json:"history"`
	MinScore       *float64                `json:"min_score"`
}

type scoresResponse struct {
	Scores model.Scores `json:"scores"`
}

type ideasResponse struct {
	Ideas []model.TradeIdea `json:"ideas"`
}

// HandleSentiment handles POST /sentiment.
func (s *Server) HandleSentiment(w http.ResponseWriter, r *http.Request) {
	const op = "api.sentiment"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req sentimentRequest
	if err := s.decode(w, r, op, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.checkPosts(op, req.Posts, req.TrackedTickers); err != nil {
		s.fail(w, r, err)
		return
	}
	scores := s.engine.AnalyzeSocialPosts(r.Context(), req.Posts, req.TrackedTickers)
	writeJSON(w, http.StatusOK, scoresResponse{Scores: scores})
}

// HandlePopularity handles POST /popularity.
func (s *Server) HandlePopularity(w http.ResponseWriter, r *http.Request) {
	const op = "api.popularity"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req popularityRequest
	if err := s.decode(w, r, op, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.checkTickers(op, "history", len(req.History)); err != nil {
		s.fail(w, r, err)
		return
	}
	scores := s.engine.AnalyzePopularity(r.Context(), req.History)
	if err := finite(op, scores); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scoresResponse{Scores: scores})
}

// HandleIdeas handles POST /ideas.
func (s *Server) HandleIdeas(w http.ResponseWriter, r *http.Request) {
	const op = "api.ideas"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req ideasRequest
	if err := s.decode(w, r, op, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.checkTickers(op, "score", len(req.Social)+len(req.Popularity)); err != nil {
		s.fail(w, r, err)
		return
	}
	minScore := s.engine.MinScore()
	if req.MinScore != nil {
		minScore = *req.MinScore
	}
	out := s.engine.GenerateIdeas(r.Context(), req.Social, req.Popularity, minScore)
	if err := finite(op, ideaScores(out)); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ideasResponse{Ideas: out})
}

// HandlePipeline handles POST /pipeline: sentiment, popularity and ideas in one call.
func (s *Server) HandlePipeline(w http.ResponseWriter, r *http.Request) {
	const op = "api.pipeline"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req pipelineRequest
	if err := s.decode(w, r, op, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.checkPosts(op, req.Posts, req.TrackedTickers); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.checkTickers(op, "history", len(req.History)); err != nil {
		s.fail(w, r, err)
		return
	}
	res := s.engine.Run(r.Context(), app.Input{
		Posts:    req.Posts,
		Tracked:  req.TrackedTickers,
		History:  req.History,
		MinScore: req.MinScore,
	})
	if err := finite(op, res.Social, res.Popularity, ideaScores(res.Ideas)); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
