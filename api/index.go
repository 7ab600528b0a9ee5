package handler

import (
	"net/http"
	"tourly/config"
	"tourly/di"
	"tourly/shared/logger"
)

// Handler is the serverless entrypoint; each invocation routes through the
// same wired service as cmd/app.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	service := di.InitializeService()
	service.Handler().ServeHTTP(w, r)
}
