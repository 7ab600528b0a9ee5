package notify

//go:generate go run go.uber.org/mock/mockgen -source=./notify.go -destination=./mocks/notify_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"
	"time"
	"tourly/config"
	"tourly/infras/otel"
	"tourly/shared/constant"

	"github.com/guonaihong/gout"
	"github.com/rs/zerolog/log"
)

const (
	defaultTimeoutSeconds = 10
)

// Notifier is the outbound cancellation side channel. Calls are best-effort
// and at-most-once: the caller treats a failure as a warning, never as a
// reason to undo the state change that triggered it.
type Notifier interface {
	CancellationNotice(ctx context.Context, bookingID string) error
}

type httpNotifier struct {
	cfg  *config.Config
	otel otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Notifier {
	return &httpNotifier{
		cfg:  cfg,
		otel: otl,
	}
}

func (n *httpNotifier) CancellationNotice(ctx context.Context, bookingID string) (err error) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelNotifyScopeName, constant.OtelNotifyScopeName+".CancellationNotice")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("booking_id", bookingID)

	timeout := time.Duration(n.cfg.Notification.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeoutSeconds * time.Second
	}

	var res struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}

	code := 0

	err = gout.POST(n.cfg.Notification.Endpoint).
		WithContext(ctx).
		SetTimeout(timeout).
		SetHeader(gout.H{constant.RequestHeaderAuthorization: "Bearer " + n.cfg.Notification.Token}).
		SetJSON(gout.H{"booking_id": bookingID}).
		BindJSON(&res).
		Code(&code).
		Do()
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("cancellation notice call failed")

		return fmt.Errorf("cancellation notice call failed: %w", err)
	}

	if code >= http.StatusBadRequest || res.Error != "" {
		log.Error().Int("status", code).Str("error", res.Error).Str("booking_id", bookingID).Msg("cancellation notice rejected")

		return fmt.Errorf("cancellation notice rejected: status=%d error=%s", code, res.Error)
	}

	return nil
}
