package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"os"
	"strconv"

	"github.com/xyx050/sketchbin/encoding/qd"
	"github.com/xyx050/sketchbin/log"
	"github.com/xyx050/sketchbin/visualize"
)

// ApiServer serves decoded sketch files for previewing. It holds no
// state: every request decodes the file it names.
type ApiServer struct{}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type RecordInfo struct {
	Index      int    `json:"index"`
	KeyID      uint64 `json:"key_id"`
	Country    string `json:"country"`
	Recognized bool   `json:"recognized"`
	Timestamp  uint32 `json:"timestamp"`
	Strokes    int    `json:"strokes"`
}

type FileInfo struct {
	File       string         `json:"file"`
	Records    int            `json:"records"`
	Recognized int            `json:"recognized"`
	Countries  map[string]int `json:"countries"`
}

func NewApiServer() *ApiServer {
	return &ApiServer{}
}

func (s *ApiServer) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
}

func (s *ApiServer) writeSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{Data: data})
}

func (s *ApiServer) decodeFile(name string, limit int) ([]*qd.Drawing, error) {
	if name == "" {
		return nil, errors.New("missing file parameter")
	}
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return qd.DecodeAll(file, limit)
}

// GET /api/info?file=<path>
func (s *ApiServer) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := r.URL.Query().Get("file")
	drawings, err := s.decodeFile(name, 0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	info := FileInfo{File: name, Records: len(drawings), Countries: make(map[string]int)}
	for _, d := range drawings {
		if d.Recognized {
			info.Recognized++
		}
		info.Countries[d.CountryCode]++
	}

	s.writeSuccess(w, info)
}

// GET /api/records?file=<path>&offset=<int>&limit=<int>
func (s *ApiServer) handleRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	offset, _ := strconv.Atoi(query.Get("offset"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 100
	}

	drawings, err := s.decodeFile(query.Get("file"), offset+limit)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	records := []RecordInfo{}
	for i := offset; i < len(drawings); i++ {
		d := drawings[i]
		records = append(records, RecordInfo{
			Index:      i,
			KeyID:      d.KeyID,
			Country:    d.CountryCode,
			Recognized: d.Recognized,
			Timestamp:  d.Timestamp,
			Strokes:    d.NumStrokes(),
		})
	}

	s.writeSuccess(w, records)
}

// GET /api/render?file=<path>&index=<int>&width=<float>&size=<int>
func (s *ApiServer) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	index, err := strconv.Atoi(query.Get("index"))
	if err != nil || index < 0 {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid index parameter"))
		return
	}

	drawings, err := s.decodeFile(query.Get("file"), index+1)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if index >= len(drawings) {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("record %d not found, file has %d records", index, len(drawings)))
		return
	}

	opts := visualize.Options{}
	if v := query.Get("width"); v != "" {
		opts.StrokeWidth, _ = strconv.ParseFloat(v, 64)
	}
	if v := query.Get("size"); v != "" {
		opts.OutputSize, _ = strconv.Atoi(v)
	}

	img, err := visualize.Render(drawings[index], opts)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		log.Trace.Printf("failed to write png response: %v", err)
	}
}

func (s *ApiServer) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/info", s.handleInfo)
	mux.HandleFunc("/api/records", s.handleRecords)
	mux.HandleFunc("/api/render", s.handleRender)

	log.Info.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
