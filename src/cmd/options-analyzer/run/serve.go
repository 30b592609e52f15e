package run

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jiaming2012/options-analyzer/src/analysis"
	"github.com/jiaming2012/options-analyzer/src/eventproducers/analyzerapi"
)

// Serve runs the json api until ctx is cancelled.
func Serve(ctx context.Context, analyzer *analysis.Analyzer, port int) error {
	handler, err := analyzerapi.NewHandler(analyzer, analyzer.Config().Ranking.DaysAfterTarget)
	if err != nil {
		return fmt.Errorf("Serve: %w", err)
	}

	router := mux.NewRouter()
	analyzerapi.SetupHandler(router, handler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           otelhttp.NewHandler(router, "options-analyzer"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("Serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("Serve: shutdown: %w", err)
	}

	return nil
}
