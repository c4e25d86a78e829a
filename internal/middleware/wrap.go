package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"
)

// ResponseRecorder wraps ResponseWriter, captures the status code and runs a hook right
// before the first byte or header goes out.
type ResponseRecorder struct {
	http.ResponseWriter
	status      int
	wrote       bool
	beforeWrite func(http.ResponseWriter)
}

func NewResponseRecorder(w http.ResponseWriter) *ResponseRecorder {
	return &ResponseRecorder{ResponseWriter: w, status: http.StatusOK}
}

// SetBeforeWrite registers fn to run once, before headers are flushed.
func (rw *ResponseRecorder) SetBeforeWrite(fn func(http.ResponseWriter)) { rw.beforeWrite = fn }

func (rw *ResponseRecorder) WriteHeader(statusCode int) {
	rw.flushHook()
	rw.status = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *ResponseRecorder) Write(b []byte) (int, error) {
	rw.flushHook()
	return rw.ResponseWriter.Write(b)
}

func (rw *ResponseRecorder) Status() int { return rw.status }

// Wrote reports whether anything reached the underlying writer.
func (rw *ResponseRecorder) Wrote() bool { return rw.wrote }

// Flush supports streamed responses.
func (rw *ResponseRecorder) Flush() {
	rw.flushHook()
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack lets WebSocket upgrades pass through.
func (rw *ResponseRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("middleware: response writer does not support hijacking")
	}
	rw.wrote = true
	return h.Hijack()
}

func (rw *ResponseRecorder) flushHook() {
	if rw.wrote {
		return
	}
	rw.wrote = true
	if rw.beforeWrite != nil {
		rw.beforeWrite(rw.ResponseWriter)
	}
}
