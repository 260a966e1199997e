package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/polypath/pkg/buildinfo"
	"github.com/matzehuels/polypath/pkg/cache"
	"github.com/matzehuels/polypath/pkg/errors"
	"github.com/matzehuels/polypath/pkg/observability"
	"github.com/matzehuels/polypath/pkg/pipeline"
	"github.com/matzehuels/polypath/pkg/render"
)

const (
	requestIDHeader = "X-Request-Id"
	shutdownTimeout = 5 * time.Second

	// serveCacheEntries caps the in-memory cache. Each request with a new
	// scale, style or format adds an artifact entry.
	serveCacheEntries = 512
)

// Content types by artifact format.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		maxSize int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve paths and drawings over HTTP",
		Long: `Serve paths and drawings over HTTP.

Endpoints:
  GET /paths/{n}          paths as JSON (also /paths/{n}.json)
  GET /paths/{n}.svg      grid drawing (also .png, .pdf, .dot)
  GET /paths/{n}/{i}.svg  the i-th path (1-based) on its own
  GET /healthz            liveness check
  GET /version            build information

Query parameters for drawings: style, scale, labels=false, type=nodelink.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Serve.Addr
			}
			if maxSize == 0 {
				maxSize = c.Config.Serve.MaxSize
			}
			if err := errors.ValidateSize(maxSize); err != nil {
				return fmt.Errorf("--max-size: %w", err)
			}

			runner, err := c.newServeRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			printKeyValue("cache", cacheName(runner.Cache))
			printKeyValue("max size", strconv.Itoa(maxSize))
			printKeyValue("workers", strconv.Itoa(max(c.Config.Workers, 1)))

			srv := &server{runner: runner, logger: c.Logger, maxSize: maxSize, workers: c.Config.Workers}
			return listenAndServe(cmd.Context(), addr, srv.routes(), c.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default "+defaultServeAddr+")")
	cmd.Flags().IntVar(&maxSize, "max-size", 0, "largest polygon served (default "+strconv.Itoa(defaultServeLimit)+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

// newServeRunner keeps results in process memory unless Redis is
// configured, so a long-running server does not grow the local file cache.
func (c *CLI) newServeRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	if noCache || !c.Config.cacheEnabled() || c.Config.Redis.Addr != "" {
		return c.newRunner(ctx, noCache)
	}
	c.Logger.Debug("using in-memory cache")
	return pipeline.NewRunner(cache.NewMemoryCache(serveCacheEntries), nil, c.Logger), nil
}

// cacheName describes a cache backend for the startup banner.
func cacheName(cc cache.Cache) string {
	switch cc := cc.(type) {
	case *cache.MemoryCache:
		return fmt.Sprintf("memory (%d entries max)", serveCacheEntries)
	case *cache.RedisCache:
		return "redis"
	case *cache.FileCache:
		return "file " + cc.Dir()
	default:
		return "off"
	}
}

// listenAndServe runs h on addr until ctx is cancelled, then shuts down gracefully.
func listenAndServe(ctx context.Context, addr string, h http.Handler, logger *log.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	hs := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	printInfo("Listening on %s", StyleLink.Render("http://"+ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() { errCh <- hs.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// =============================================================================
// HTTP Handlers
// =============================================================================

type server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	maxSize int
	workers int
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, buildinfo.String())
	})
	r.Route("/paths", func(r chi.Router) {
		r.Get("/{n}", s.handlePaths)
		r.Get("/{n}/{index}", s.handleShape)
	})
	return r
}

// requestID tags each request with a UUID, attaches a request-scoped logger
// and reports the request to the HTTP hooks.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := withRequestLogger(r.Context(), s.logger, id)
		hooks := observability.HTTP()
		hooks.OnRequest(ctx, id, r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(ctx, id, r.Method, r.URL.Path, status, time.Since(start))
	})
}

// handlePaths serves /paths/{n}[.ext].
func (s *server) handlePaths(w http.ResponseWriter, r *http.Request) {
	raw, format := splitExt(chi.URLParam(r, "n"), pipeline.FormatJSON)
	opts, err := s.options(r, raw, format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("X-Path-Count", strconv.Itoa(result.Stats.PathCount))
	s.write(w, format, result.Artifacts[format])
}

// handleShape serves /paths/{n}/{index}.svg for a single path.
func (s *server) handleShape(w http.ResponseWriter, r *http.Request) {
	rawIndex, format := splitExt(chi.URLParam(r, "index"), pipeline.FormatSVG)
	if format != pipeline.FormatSVG {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "single paths are only available as svg"))
		return
	}
	opts, err := s.options(r, chi.URLParam(r, "n"), format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	paths, err := s.runner.Enumerate(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	i, err := strconv.Atoi(rawIndex)
	if err != nil || i < 1 || i > len(paths) {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no path %q on a %d-gon (1..%d)", rawIndex, opts.Size, len(paths)))
		return
	}

	style, _ := render.StyleByName(opts.Style)
	svg := render.ShapeSVG(paths[i-1],
		render.WithScale(opts.Scale),
		render.WithStyle(style),
		render.WithLabels(!opts.NoLabels))
	s.write(w, format, svg)
}

// options builds validated pipeline options from the path and query.
func (s *server) options(r *http.Request, rawSize, format string) (pipeline.Options, error) {
	n, err := errors.ParseSize(rawSize)
	if err != nil {
		return pipeline.Options{}, err
	}
	if n > s.maxSize {
		return pipeline.Options{}, errors.New(errors.ErrCodeOutOfRange, "this server stops at %d vertices, got %d", s.maxSize, n)
	}

	q := r.URL.Query()
	opts := pipeline.Options{
		Size:     n,
		Workers:  s.workers,
		Formats:  []string{format},
		Style:    q.Get("style"),
		VizType:  q.Get("type"),
		NoLabels: q.Get("labels") == "false",
		Logger:   loggerFromContext(r.Context()),
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.Atoi(v)
		if err != nil || scale < 1 || scale > 500 {
			return pipeline.Options{}, errors.New(errors.ErrCodeOutOfRange, "scale must be an integer in [1, 500], got %q", v)
		}
		opts.Scale = scale
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

func (s *server) write(w http.ResponseWriter, format string, data []byte) {
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if r.Context().Err() != nil {
		status = http.StatusServiceUnavailable
	}
	logger := loggerFromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		logger.Debug("rejected request", "path", r.URL.Path, "err", err)
	}
	http.Error(w, errors.UserMessage(err), status)
}

// splitExt splits "7.svg" into ("7", "svg"). Without an extension it returns
// the default format.
func splitExt(s, def string) (string, string) {
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[:i], strings.ToLower(s[i+1:])
	}
	return s, def
}
