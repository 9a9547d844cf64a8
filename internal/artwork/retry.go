package artwork

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
)

// sleepFunc is swapped out by tests to make the backoff schedule
// deterministic.
var sleepFunc = time.Sleep

// backoffDelay returns the wait between attempt n and n+1:
// initial * 2^attempt.
func backoffDelay(initial time.Duration, attempt int) time.Duration {
	return initial << attempt
}

// isRateLimit reports whether the error is a rate limiting response from
// the image API, detected by status code or by message text.
func isRateLimit(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"429", "rate limit", "quota", "resource exhausted", "resource_exhausted"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// renderWithRetry calls the image generator, retrying rate-limited calls on
// an exponential schedule up to the configured attempt budget. Any other
// error aborts immediately.
func (s *Service) renderWithRetry(ctx context.Context, prompt string) ([]byte, error) {
	maxAttempts := s.cfg.ImageRetryMaxAttempts
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(s.cfg.ImageRetryInitialDelay, attempt-1)
			slog.Info("Rate limited by image API, backing off", "attempt", attempt, "delay", delay)
			sleepFunc(delay)
		}

		data, err := s.images.GenerateImage(ctx, s.cfg.ImageModel, prompt)
		if err == nil {
			if len(data) == 0 {
				return nil, fmt.Errorf("image model returned empty image data")
			}
			return data, nil
		}
		if !isRateLimit(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("image generation rate limited after %d attempts: %w", maxAttempts, lastErr)
}
