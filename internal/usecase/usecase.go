package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortlink/internal/entity"
	"github.com/vadimbarashkov/shortlink/internal/keygen"
)

const defaultMaxRetries = 100

type urlRepository interface {
	Save(ctx context.Context, key, secretKey, targetURL string) (*entity.URL, error)
	RetrieveByKey(ctx context.Context, key string) (*entity.URL, error)
	RetrieveBySecretKey(ctx context.Context, secretKey string) (*entity.URL, error)
	IncrementClicks(ctx context.Context, url *entity.URL) (*entity.URL, error)
	DeactivateBySecretKey(ctx context.Context, secretKey string) (*entity.URL, error)
}

type Option func(*URLUseCase)

func WithKeyLength(n int) Option {
	return func(uc *URLUseCase) {
		uc.keyLength = n
	}
}

func WithSecretKeyLength(n int) Option {
	return func(uc *URLUseCase) {
		uc.secretKeyLength = n
	}
}

func WithMaxRetries(n int) Option {
	return func(uc *URLUseCase) {
		if n > 0 {
			uc.maxRetries = n
		}
	}
}

type URLUseCase struct {
	keyLength       int
	secretKeyLength int
	maxRetries      int
	urlRepo         urlRepository
	validate        *validator.Validate
}

func New(urlRepo urlRepository, opts ...Option) *URLUseCase {
	uc := &URLUseCase{
		keyLength:       keygen.DefaultKeyLength,
		secretKeyLength: keygen.DefaultSecretKeyLength,
		maxRetries:      defaultMaxRetries,
		urlRepo:         urlRepo,
		validate:        validator.New(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// CreateURL validates targetURL and stores it under a freshly generated key
// and secret key. A collision reported by the repository triggers a new draw
// of both values until maxRetries is reached.
func (uc *URLUseCase) CreateURL(ctx context.Context, targetURL string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.CreateURL"

	if err := uc.validate.Var(targetURL, "required,http_url"); err != nil {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrInvalidURL)
	}

	for i := 0; i < uc.maxRetries; i++ {
		key, err := keygen.GenerateKey(uc.keyLength)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		secretKey, err := keygen.GenerateSecretKey(uc.secretKeyLength)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		url, err := uc.urlRepo.Save(ctx, key, secretKey, targetURL)
		if err != nil {
			if errors.Is(err, entity.ErrKeyExists) {
				continue
			}

			return nil, fmt.Errorf("%s: failed to create url: %w", op, err)
		}

		return url, nil
	}

	return nil, fmt.Errorf("%s: %w", op, entity.ErrMaxRetriesExceeded)
}

// ForwardToTargetURL resolves an active key and counts the visit.
func (uc *URLUseCase) ForwardToTargetURL(ctx context.Context, key string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ForwardToTargetURL"

	url, err := uc.urlRepo.RetrieveByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve key: %w", op, err)
	}

	url, err = uc.urlRepo.IncrementClicks(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to increment clicks: %w", op, err)
	}

	return url, nil
}

func (uc *URLUseCase) GetAdminInfo(ctx context.Context, secretKey string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.GetAdminInfo"

	url, err := uc.urlRepo.RetrieveBySecretKey(ctx, secretKey)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get admin info: %w", op, err)
	}

	return url, nil
}

func (uc *URLUseCase) DeactivateURL(ctx context.Context, secretKey string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.DeactivateURL"

	url, err := uc.urlRepo.DeactivateBySecretKey(ctx, secretKey)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to deactivate url: %w", op, err)
	}

	return url, nil
}
