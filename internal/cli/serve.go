package cli

import (
	"net/http"
	"os"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type serveOptions struct {
	Dir  string
	Addr string
}

func newServeCommand() *cobra.Command {
	opts := serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host a local directory as a models repository over HTTP",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(opts)
		},
	}
	cmd.Flags().StringVar(&opts.Dir, "dir", ".", "Repository root directory")
	cmd.Flags().StringVar(&opts.Addr, "addr", ":8080", "Listen address")
	return cmd
}

func runServe(opts serveOptions) error {
	info, err := os.Stat(opts.Dir)
	if err != nil || !info.IsDir() {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("repository root must be an existing directory").
			WithCause(err)
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(requestLogger)
	router.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		http.FileServer(http.Dir(opts.Dir)).ServeHTTP(w, r)
	})

	log.Info().Str("dir", opts.Dir).Str("addr", opts.Addr).Msg("serving models repository")
	server := &http.Server{
		Addr:              opts.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server.ListenAndServe()
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(wrapped, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapped.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
