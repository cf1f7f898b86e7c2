package studio

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jsphweid/melodygen/file"
	"github.com/jsphweid/melodygen/model"
	"github.com/jsphweid/melodygen/playback"
	"go.uber.org/zap"
)

func (s *Studio) NewRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/", s.HandleIndex).Methods("GET")
	router.HandleFunc("/generate", s.HandleGenerate).Methods("POST")
	router.HandleFunc("/download", s.HandleDownload).Methods("GET")
	router.HandleFunc("/api/sources", s.HandleSources).Methods("GET")
	router.HandleFunc("/api/generate", s.HandleAPIGenerate).Methods("POST")
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")
	return router
}

func (s *Studio) writePage(w http.ResponseWriter, status int, v pageView) {
	var buf bytes.Buffer
	if err := renderPage(&buf, v); err != nil {
		s.log.Error("could not render page", zap.Error(err))
		http.Error(w, "Could not render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (s *Studio) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("could not write response", zap.Error(err))
	}
}

// sourcesView loads the picker. ok is false once a response has been written.
func (s *Studio) sourcesView(w http.ResponseWriter) (pageView, bool) {
	files, err := s.Sources()
	if err != nil {
		s.log.Error("could not scan for songs", zap.Error(err))
		s.writePage(w, http.StatusInternalServerError, pageView{Error: err.Error()})
		return pageView{}, false
	}
	if len(files) == 0 {
		s.writePage(w, http.StatusOK, pageView{NoInput: true})
		return pageView{}, false
	}
	return pageView{Files: files, Selected: files[0].Name}, true
}

func (s *Studio) HandleIndex(w http.ResponseWriter, r *http.Request) {
	v, ok := s.sourcesView(w)
	if !ok {
		return
	}
	s.writePage(w, http.StatusOK, v)
}

func (s *Studio) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	v, ok := s.sourcesView(w)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		v.Error = "Could not read form: " + err.Error()
		s.writePage(w, http.StatusBadRequest, v)
		return
	}

	selected := r.PostForm.Get("source")
	res, err := s.Generate(r.Context(), selected)
	switch {
	case errors.Is(err, file.ErrNoMidiFiles):
		s.writePage(w, http.StatusOK, pageView{NoInput: true})
		return
	case errors.Is(err, ErrUnknownSource):
		v.Error = err.Error()
		s.writePage(w, http.StatusBadRequest, v)
		return
	case err != nil:
		v.Selected = selected
		v.Error = err.Error()
		s.writePage(w, http.StatusInternalServerError, v)
		return
	}

	v.Selected = res.Source
	v.Generated = newGeneratedView(res)
	s.writePage(w, http.StatusOK, v)
}

func (s *Studio) HandleDownload(w http.ResponseWriter, r *http.Request) {
	playback.ServeDownload(w, r, s.opts.OutputPath)
}

func (s *Studio) HandleSources(w http.ResponseWriter, r *http.Request) {
	files, err := s.Sources()
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
		return
	}
	res := model.SourcesResponse{Files: make([]model.SourceResult, 0, len(files))}
	for _, f := range files {
		res.Files = append(res.Files, model.SourceResult{Name: f.Name, Label: f.Label()})
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Studio) HandleAPIGenerate(w http.ResponseWriter, r *http.Request) {
	var input model.GenerateRequestBody
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			s.writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "Could not unmarshal request body: " + err.Error()})
			return
		}
	}

	res, err := s.Generate(r.Context(), input.Source)
	switch {
	case errors.Is(err, file.ErrNoMidiFiles):
		s.writeJSON(w, http.StatusConflict, model.ErrorResponse{Error: noInputWarning})
		return
	case errors.Is(err, ErrUnknownSource):
		s.writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		s.writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
		return
	}

	out := model.GenerateResponse{
		RunID:       res.RunID,
		Source:      res.Source,
		Notes:       make([]model.NoteResult, 0, len(res.Melody)),
		DownloadURL: downloadURL(res.RunID),
		Playback:    model.PlaybackResult{Status: res.Embed.Status.String()},
	}
	if res.Embed.Err != nil {
		out.Playback.Error = res.Embed.Err.Error()
	}
	for _, n := range res.Melody {
		out.Notes = append(out.Notes, model.NoteResult{
			Pitch:    n.Pitch.Name,
			Rank:     n.Pitch.Rank,
			Key:      n.Pitch.Key,
			Duration: float64(n.Duration),
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}
