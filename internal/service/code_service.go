package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"threadnest/internal/cache"
	"threadnest/internal/middleware"
	"threadnest/internal/models"
	"threadnest/internal/observability"
	"threadnest/internal/validation"

	"github.com/redis/go-redis/v9"
)

// CodeService issues and checks short-lived email confirmation codes. Codes
// live in Redis with a TTL and are consumed on a successful check; when Redis
// is down a mutex-guarded in-process store takes over so the flow keeps
// working on a single instance.
type CodeService struct {
	redis  *redis.Client
	mailer Mailer

	mu    sync.Mutex
	local map[string]localCode
}

type localCode struct {
	code      string
	expiresAt time.Time
}

func NewCodeService(rdb *redis.Client, mailer Mailer) *CodeService {
	return &CodeService{
		redis:  rdb,
		mailer: mailer,
		local:  make(map[string]localCode),
	}
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Issue generates a fresh code for the email, stores it with the
// confirmation TTL (replacing any previous code) and dispatches it by mail.
func (s *CodeService) Issue(ctx context.Context, email string) error {
	if err := validation.ValidateEmail(email); err != nil {
		return models.NewValidationError(err.Error())
	}

	code, err := generateCode()
	if err != nil {
		return models.NewInternalError(err)
	}

	if err := s.store(ctx, email, code); err != nil {
		return models.NewInternalError(err)
	}
	observability.ConfirmationCodesIssued.Inc()

	if err := s.mailer.SendConfirmationCode(ctx, email, code); err != nil {
		middleware.Logger.Error("failed to send confirmation code",
			"email", email, "error", err)
		return models.NewInternalError(err)
	}
	return nil
}

// Check compares the presented code against the stored one. A match consumes
// the code so it cannot be replayed.
func (s *CodeService) Check(ctx context.Context, email, code string) (bool, error) {
	if email == "" || code == "" {
		return false, models.NewValidationError("Email and code are required")
	}

	stored, found, err := s.load(ctx, email)
	if err != nil {
		return false, models.NewInternalError(err)
	}
	if !found || stored != code {
		observability.ConfirmationCodeChecks.WithLabelValues("mismatch").Inc()
		return false, nil
	}

	s.consume(ctx, email)
	observability.ConfirmationCodeChecks.WithLabelValues("ok").Inc()
	return true, nil
}

func (s *CodeService) store(ctx context.Context, email, code string) error {
	if s.redis != nil {
		err := s.redis.Set(ctx, cache.ConfirmationCodeKey(email), code, cache.ConfirmationCodeTTL).Err()
		if err == nil {
			return nil
		}
		middleware.Logger.Warn("confirmation code store falling back to local",
			"error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.local[email] = localCode{code: code, expiresAt: time.Now().Add(cache.ConfirmationCodeTTL)}
	return nil
}

func (s *CodeService) load(ctx context.Context, email string) (string, bool, error) {
	if s.redis != nil {
		code, err := s.redis.Get(ctx, cache.ConfirmationCodeKey(email)).Result()
		switch {
		case err == nil:
			return code, true, nil
		case errors.Is(err, redis.Nil):
			return "", false, nil
		default:
			middleware.Logger.Warn("confirmation code load falling back to local",
				"error", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.local[email]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.local, email)
		return "", false, nil
	}
	return entry.code, true, nil
}

func (s *CodeService) consume(ctx context.Context, email string) {
	if s.redis != nil {
		s.redis.Del(ctx, cache.ConfirmationCodeKey(email))
	}
	s.mu.Lock()
	delete(s.local, email)
	s.mu.Unlock()
}
