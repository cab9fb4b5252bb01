package middleware

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// statusWriter captures the status code and body size.
type statusWriter struct {
	http.ResponseWriter
	statusCode int
	length     int
}

func (w *statusWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.length += n
	return n, err
}

var (
	cGet     = color.New(color.FgHiCyan, color.Bold).SprintFunc()
	cPost    = color.New(color.FgHiGreen, color.Bold).SprintFunc()
	cDefault = color.New(color.FgWhite, color.Bold).SprintFunc()

	c200 = color.New(color.FgGreen, color.Bold).SprintFunc()
	c400 = color.New(color.FgYellow, color.Bold).SprintFunc()
	c500 = color.New(color.FgRed, color.Bold).SprintFunc()

	cTime = color.New(color.FgHiBlack).SprintFunc()
	cPath = color.New(color.FgWhite).SprintFunc()
)

// LoggerMiddleware prints one access line per request to stdout.
func LoggerMiddleware(next http.Handler) http.Handler {
	return AccessLog(os.Stdout)(next)
}

// AccessLog writes access lines to out and tags each request with an
// X-Request-ID, reusing the caller's id when one is sent.
func AccessLog(out io.Writer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqID := r.Header.Get(RequestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
				r.Header.Set(RequestIDHeader, reqID)
			}
			w.Header().Set(RequestIDHeader, reqID)

			ww := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			duration := time.Since(start)

			var statusStr string
			code := ww.statusCode
			switch {
			case code >= 500:
				statusStr = c500(fmt.Sprintf("%d", code))
			case code >= 400:
				statusStr = c400(fmt.Sprintf("%d", code))
			default:
				statusStr = c200(fmt.Sprintf("%d", code))
			}

			method := fmt.Sprintf("%-7s", "["+r.Method+"]")
			var methodStr string
			switch r.Method {
			case http.MethodGet:
				methodStr = cGet(method)
			case http.MethodPost:
				methodStr = cPost(method)
			default:
				methodStr = cDefault(method)
			}

			fmt.Fprintf(out, "%s %s %s %s %s %s %s\n",
				cTime(start.Format("2006-01-02 15:04:05")),
				methodStr,
				cPath(r.RequestURI),
				statusStr,
				cTime("|"),
				cTime(duration.String()),
				cTime(reqID[:min(8, len(reqID))]),
			)
		})
	}
}
