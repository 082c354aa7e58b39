package httpaudit

import (
	"bytes"
	"net/http"
)

// bufferedWriter holds status, headers and body until replay.
type bufferedWriter struct {
	header      http.Header
	status      int
	wroteHeader bool
	buf         bytes.Buffer
}

func newBufferedWriter() *bufferedWriter {
	return &bufferedWriter{header: make(http.Header)}
}

func (b *bufferedWriter) Header() http.Header {
	return b.header
}

func (b *bufferedWriter) WriteHeader(status int) {
	if b.wroteHeader {
		return
	}
	b.status = status
	b.wroteHeader = true
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	if !b.wroteHeader {
		b.WriteHeader(http.StatusOK)
	}
	return b.buf.Write(p)
}

func (b *bufferedWriter) statusCode() int {
	if !b.wroteHeader {
		return http.StatusOK
	}
	return b.status
}

// replay copies the buffered response to w. Called once.
func (b *bufferedWriter) replay(w http.ResponseWriter) {
	dst := w.Header()
	for k, v := range b.header {
		dst[k] = v
	}
	w.WriteHeader(b.statusCode())
	if b.buf.Len() > 0 {
		_, _ = w.Write(b.buf.Bytes())
	}
}
