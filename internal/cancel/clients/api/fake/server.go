package fake

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gorilla/mux"
	"github.com/w-h-a/cancelrun/api/cancellation"
	"github.com/w-h-a/cancelrun/internal/cancel/clients/api"
)

const BasePath = "/v1"

// Reply is one scripted answer of the fake API.
type Reply struct {
	Code        int
	ContentType string
	Body        string
}

func JSON(code int, body any) Reply {
	bs, _ := json.Marshal(body)
	return Reply{Code: code, ContentType: "application/json", Body: string(bs)}
}

func Raw(code int, body string) Reply {
	return Reply{Code: code, Body: body}
}

func Empty(code int) Reply {
	return Reply{Code: code}
}

// Call is one request the fake API received.
type Call struct {
	Header  http.Header
	Body    []byte
	Request *cancellation.Request
}

// Server serves scripted replies in order and repeats the last one once the
// script runs out.
type Server struct {
	srv     *httptest.Server
	replies []Reply
	calls   []Call
	mtx     sync.Mutex
}

func (s *Server) URL() string {
	return s.srv.URL + BasePath
}

func (s *Server) Close() {
	s.srv.Close()
}

func (s *Server) Calls() []Call {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	calls := make([]Call, len(s.calls))
	copy(calls, s.calls)

	return calls
}

func (s *Server) PutCancel(w http.ResponseWriter, r *http.Request) {
	bs, _ := io.ReadAll(r.Body)
	defer r.Body.Close()

	req, _ := cancellation.Factory(bs)

	s.mtx.Lock()
	idx := len(s.calls)
	s.calls = append(s.calls, Call{Header: r.Header.Clone(), Body: bs, Request: req})
	if idx >= len(s.replies) {
		idx = len(s.replies) - 1
	}
	reply := s.replies[idx]
	s.mtx.Unlock()

	wrtRsp(w, reply)
}

func wrtRsp(w http.ResponseWriter, reply Reply) {
	if len(reply.ContentType) > 0 {
		w.Header().Set("content-type", reply.ContentType)
	}
	w.WriteHeader(reply.Code)
	fmt.Fprint(w, reply.Body)
}

func NewServer(replies ...Reply) *Server {
	if len(replies) == 0 {
		replies = []Reply{Empty(http.StatusNotFound)}
	}

	s := &Server{
		replies: replies,
		calls:   []Call{},
		mtx:     sync.Mutex{},
	}

	router := mux.NewRouter()
	router.Methods(http.MethodPut).Path(BasePath + api.CancelByGithubCIPath).HandlerFunc(s.PutCancel)

	s.srv = httptest.NewServer(router)

	return s
}
