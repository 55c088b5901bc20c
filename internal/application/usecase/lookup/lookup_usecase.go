package lookup

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/devfinder/internal/application/service"
	"github.com/khoahotran/devfinder/internal/domain/account"
	"github.com/khoahotran/devfinder/pkg/apperror"
	"github.com/khoahotran/devfinder/pkg/logger"
	"github.com/khoahotran/devfinder/pkg/metrics"
)

type LookupUseCase struct {
	fetcher   account.Fetcher
	publisher service.EventPublisher
	logger    logger.Logger
	now       func() time.Time
}

func NewLookupUseCase(fetcher account.Fetcher, publisher service.EventPublisher, log logger.Logger) *LookupUseCase {
	return &LookupUseCase{
		fetcher:   fetcher,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

type LookupInput struct {
	Username  string
	SessionID string
}

type LookupOutput struct {
	Account *account.Account
}

func (uc *LookupUseCase) Execute(ctx context.Context, input LookupInput) (*LookupOutput, error) {
	log := uc.logger.WithContext(ctx).With(zap.String("username", input.Username))

	start := uc.now()
	acc, err := uc.fetcher.GetAccount(ctx, input.Username)
	elapsed := uc.now().Sub(start)

	outcome, status := classify(err)
	metrics.LookupsTotal.WithLabelValues(outcome).Inc()
	metrics.LookupDuration.Observe(elapsed.Seconds())

	evt := service.LookupEvent{
		ID:         uuid.NewString(),
		Username:   input.Username,
		SessionID:  input.SessionID,
		Outcome:    outcome,
		Status:     status,
		DurationMs: elapsed.Milliseconds(),
		OccurredAt: start.UTC(),
	}
	if pubErr := uc.publisher.PublishLookup(ctx, evt); pubErr != nil {
		log.Warn("Failed to publish lookup event", zap.Error(pubErr))
	}

	if err != nil {
		if outcome == service.OutcomeNotFound {
			log.Info("Account not found")
		} else {
			log.Error("Account lookup failed", err)
		}
		return nil, err
	}

	log.Info("Account lookup succeeded", zap.Duration("elapsed", elapsed))
	return &LookupOutput{Account: acc}, nil
}

// AsFetcher lets a view controller call the use case for one session.
func (uc *LookupUseCase) AsFetcher(sessionID string) account.Fetcher {
	return account.FetcherFunc(func(ctx context.Context, username string) (*account.Account, error) {
		out, err := uc.Execute(ctx, LookupInput{Username: username, SessionID: sessionID})
		if err != nil {
			return nil, err
		}
		return out.Account, nil
	})
}

func classify(err error) (string, int) {
	switch {
	case err == nil:
		return service.OutcomeFound, http.StatusOK
	case errors.Is(err, apperror.ErrNotFound):
		return service.OutcomeNotFound, http.StatusNotFound
	default:
		return service.OutcomeError, apperror.ToHTTPStatus(err)
	}
}
