package main

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpadapter "svw.info/seatplan/internal/adapters/http"
	"svw.info/seatplan/web"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration in a human-readable format.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		dur := time.Since(start)
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", dur.Round(time.Millisecond),
		)
	})
}

// newMux wires the API, metrics and viewer page.
func newMux(h *httpadapter.Handler) *http.ServeMux {
	tmpl := web.Templates()

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(web.StaticFS())))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.ExecuteTemplate(w, "index.tmpl", map[string]any{}); err != nil {
			http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
		}
	})
	h.Register(mux)
	return mux
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and seat map viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			uc, st, err := a.service()
			if err != nil {
				return err
			}
			defer st.Close()

			srv := &http.Server{
				Addr:              a.cfg.Server.Addr,
				Handler:           requestLogger(a.logger, newMux(httpadapter.New(uc))),
				ReadHeaderTimeout: a.cfg.Server.ReadHeaderTimeout,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			a.logger.Info("listening",
				"addr", a.cfg.Server.Addr,
				"storage", a.cfg.Storage.Driver,
				"persist", a.cfg.Storage.Path,
				"strategy", a.cfg.Solver.Strategy,
			)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("server error", "err", err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
