// Package httpserver exposes the store service over HTTP/JSON.
package httpserver

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"arbor/bstree"
	"arbor/service"
)

type Server struct {
	svc *service.StoreService
}

func NewServer(svc *service.StoreService) *Server {
	return &Server{svc: svc}
}

// Router binds all routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/insert", s.HandleInsert).Methods("POST")
	r.HandleFunc("/search/{key}", s.HandleSearch).Methods("GET")
	r.HandleFunc("/delete/{key}", s.HandleDelete).Methods("DELETE")
	r.HandleFunc("/len", s.HandleLen).Methods("GET")
	r.HandleFunc("/dump", s.HandleDump).Methods("GET")
	return r
}

func (s *Server) HandleInsert(w http.ResponseWriter, r *http.Request) {
	var data map[string]string
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	key, ok := data["key"]
	if !ok {
		http.Error(w, "Key is required", http.StatusBadRequest)
		return
	}

	seq := s.svc.Insert(key, data["payload"])
	log.Printf("[http] insert key=%q seq=%d", key, seq)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]uint64{"seq": seq})
}

func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := vars["key"]

	payload, found := s.svc.Search(key)
	if !found {
		http.Error(w, "Key not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"payload": payload})
}

func (s *Server) HandleDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := vars["key"]

	payload, found := s.svc.Delete(key)
	if !found {
		http.Error(w, "Key not found", http.StatusNotFound)
		return
	}
	log.Printf("[http] delete key=%q", key)

	json.NewEncoder(w).Encode(map[string]string{"payload": payload})
}

func (s *Server) HandleLen(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]int{"len": s.svc.Len()})
}

func (s *Server) HandleDump(w http.ResponseWriter, r *http.Request) {
	order, ok := parseOrder(r.URL.Query().Get("order"))
	if !ok {
		http.Error(w, "order must be inorder, preorder, or postorder", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	s.svc.Dump(w, order)
}

func parseOrder(s string) (bstree.Order, bool) {
	switch s {
	case "", "inorder":
		return bstree.InOrder, true
	case "preorder":
		return bstree.PreOrder, true
	case "postorder":
		return bstree.PostOrder, true
	default:
		return bstree.InOrder, false
	}
}
