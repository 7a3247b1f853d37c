// Package mockapitest runs an in-memory stand-in for the JSON mock API
// (collections of documents addressed as /<collection>/<id>).
package mockapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

type document = map[string]any

type Server struct {
	*httptest.Server

	mu          sync.Mutex
	collections map[string]map[string]document
	order       map[string][]string
	failures    map[string]int
	requests    []string
	token       string
}

// NewServer starts a server. When token is not empty, writes must carry
// "Authorization: Bearer <token>".
func NewServer(token string) *Server {
	s := &Server{
		collections: map[string]map[string]document{},
		order:       map[string][]string{},
		failures:    map[string]int{},
		token:       token,
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(s.record, s.fail)
	r.GET("/:collection", s.list)
	r.GET("/:collection/:id", s.get)
	r.PUT("/:collection/:id", s.requireToken, s.put)
	r.PATCH("/:collection/:id", s.requireToken, s.patch)

	s.Server = httptest.NewServer(r)

	return s
}

// Seed stores v (any JSON-encodable value with an "id") in collection.
func (s *Server) Seed(collection string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		panic(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store(collection, fmt.Sprint(doc["id"]), doc)
}

// SeedEmpty makes collection exist without documents.
func (s *Server) SeedEmpty(collection string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection]; !ok {
		s.collections[collection] = map[string]document{}
	}
}

// Decode copies the stored document into v.
func (s *Server) Decode(collection, id string, v any) error {
	s.mu.Lock()
	doc, ok := s.collections[collection][id]
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%v/%v not found", collection, id)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, v)
}

// Fail makes every request matching "<METHOD> <path>" answer status.
func (s *Server) Fail(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[method+" "+path] = status
}

// Requests lists every "<METHOD> <path>" received, in order.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.requests...)
}

// Writes lists the PUT and PATCH requests received.
func (s *Server) Writes() []string {
	var writes []string
	for _, r := range s.Requests() {
		if strings.HasPrefix(r, "PUT ") || strings.HasPrefix(r, "PATCH ") {
			writes = append(writes, r)
		}
	}
	return writes
}

func (s *Server) store(collection, id string, doc document) {
	if _, ok := s.collections[collection]; !ok {
		s.collections[collection] = map[string]document{}
	}
	if _, ok := s.collections[collection][id]; !ok {
		s.order[collection] = append(s.order[collection], id)
	}
	s.collections[collection][id] = doc
}

func (s *Server) record(c *gin.Context) {
	s.mu.Lock()
	s.requests = append(s.requests, c.Request.Method+" "+c.Request.URL.Path)
	s.mu.Unlock()
}

func (s *Server) fail(c *gin.Context) {
	s.mu.Lock()
	status, ok := s.failures[c.Request.Method+" "+c.Request.URL.Path]
	s.mu.Unlock()

	if ok {
		c.AbortWithStatusJSON(status, gin.H{"error": "injected failure"})
	}
}

func (s *Server) requireToken(c *gin.Context) {
	if s.token != "" && c.GetHeader("Authorization") != "Bearer "+s.token {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}

func (s *Server) list(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collection := c.Param("collection")
	docs, ok := s.collections[collection]

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{})
		return
	}

	out := []document{}
	for _, id := range s.order[collection] {
		out = append(out, docs[id])
	}

	c.JSON(http.StatusOK, out)
}

func (s *Server) get(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collections[c.Param("collection")][c.Param("id")]

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{})
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (s *Server) put(c *gin.Context) {
	var doc document

	if err := c.BindJSON(&doc); err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	collection, id := c.Param("collection"), c.Param("id")

	if _, ok := s.collections[collection][id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{})
		return
	}

	doc["id"] = id
	s.store(collection, id, doc)

	c.JSON(http.StatusOK, doc)
}

func (s *Server) patch(c *gin.Context) {
	var patch document

	if err := c.BindJSON(&patch); err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collections[c.Param("collection")][c.Param("id")]

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{})
		return
	}

	for k, v := range patch {
		if k != "id" {
			doc[k] = v
		}
	}

	c.JSON(http.StatusOK, doc)
}
