package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

const (
	defaultLogLines = 200
	maxLogLines     = 5000
	logChunkSize    = 64 * 1024
)

// LogsHandler serves the tail of the rotating server log.
type LogsHandler struct {
	logFile string
}

func NewLogsHandler(logFile string) *LogsHandler {
	return &LogsHandler{logFile: logFile}
}

// Tail writes the last ?lines= lines (default 200, at most 5000) as plain text.
func (h *LogsHandler) Tail(w http.ResponseWriter, r *http.Request) {
	if h.logFile == "" {
		jsonError(w, "no log file configured", http.StatusNotFound)
		return
	}
	n := defaultLogLines
	if raw := strings.TrimSpace(r.URL.Query().Get("lines")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			jsonError(w, "lines must be a positive integer", http.StatusBadRequest)
			return
		}
		n = min(v, maxLogLines)
	}

	f, err := os.Open(h.logFile)
	if err != nil {
		jsonError(w, fmt.Sprintf("could not open log file: %v", err), http.StatusInternalServerError)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		jsonError(w, fmt.Sprintf("could not read log file: %v", err), http.StatusInternalServerError)
		return
	}
	lines, err := lastLines(f, info.Size(), n)
	if err != nil {
		jsonError(w, fmt.Sprintf("could not read log file: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	for _, line := range lines {
		io.WriteString(w, line)
		io.WriteString(w, "\n")
	}
}

func (h *LogsHandler) Register(r *mux.Router) {
	r.HandleFunc("/logs", h.Tail).Methods(http.MethodGet)
}

// lastLines reads backwards from size in chunks until it has n lines.
// A trailing newline does not produce an empty last line.
func lastLines(f io.ReaderAt, size int64, n int) ([]string, error) {
	pos := size
	if pos == 0 || n <= 0 {
		return nil, nil
	}

	var (
		rev      []string
		leftover []byte
		first    = true
	)
	for pos > 0 && len(rev) < n {
		step := min(int64(logChunkSize), pos)
		pos -= step
		chunk := make([]byte, step, step+int64(len(leftover)))
		if _, err := f.ReadAt(chunk, pos); err != nil && err != io.EOF {
			return nil, err
		}
		chunk = append(chunk, leftover...)
		parts := bytes.Split(chunk, []byte("\n"))
		leftover = parts[0]
		for i := len(parts) - 1; i > 0 && len(rev) < n; i-- {
			line := string(bytes.TrimRight(parts[i], "\r"))
			if first {
				first = false
				if line == "" {
					continue
				}
			}
			rev = append(rev, line)
		}
	}
	if pos == 0 && len(leftover) > 0 && len(rev) < n {
		rev = append(rev, string(bytes.TrimRight(leftover, "\r")))
	}

	out := make([]string, len(rev))
	for i, line := range rev {
		out[len(rev)-1-i] = line
	}
	return out, nil
}
