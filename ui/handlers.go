package ui

import (
	"encoding/json"
	"net/http"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// tool request bodies mirror the tool signatures; responses carry the
// plain-text result, or rendered HTML when ?format=html is requested
type analyzeRequest struct {
	FilePath string `json:"file_path"`
	Question string `json:"question,omitempty"`
}

type cleanRequest struct {
	FilePath   string `json:"file_path"`
	OutputName string `json:"output_name,omitempty"`
}

type infoRequest struct {
	FilePath string `json:"file_path"`
}

type toolResponse struct {
	Result string `json:"result"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !s.decode(w, r, &req) || !s.requirePath(w, req.FilePath) {
		return
	}
	result := s.toolset.AnalyzeCSV(r.Context(), req.FilePath, req.Question)
	s.respond(w, r, result)
}

func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	var req cleanRequest
	if !s.decode(w, r, &req) || !s.requirePath(w, req.FilePath) {
		return
	}
	result := s.toolset.CleanCSV(r.Context(), req.FilePath, req.OutputName)
	s.respond(w, r, result)
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	var req infoRequest
	if !s.decode(w, r, &req) || !s.requirePath(w, req.FilePath) {
		return
	}
	result := s.toolset.CSVInfo(r.Context(), req.FilePath)
	s.respond(w, r, result)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) requirePath(w http.ResponseWriter, path string) bool {
	if path == "" {
		http.Error(w, "file_path is required", http.StatusBadRequest)
		return false
	}
	return true
}

// respond writes the tool result as JSON, or as rendered HTML when the
// caller asks for format=html. Tool results are already final text; HTTP
// status is 200 either way per the never-raises tool contract.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, result string) {
	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(renderMarkdown(result))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toolResponse{Result: result})
}

func renderMarkdown(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return markdown.Render(doc, renderer)
}
