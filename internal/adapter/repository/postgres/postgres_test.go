package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/vadimbarashkov/shortlink/internal/entity"
)

func TestIsUniqueViolationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unique violation error",
			err:  &pgconn.PgError{Code: uniqueViolationErrCode},
			want: true,
		},
		{
			name: "wrapped unique violation error",
			err:  fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: uniqueViolationErrCode}),
			want: true,
		},
		{
			name: "not unique violation error",
			err:  &pgconn.PgError{Code: "unknown error code"},
			want: false,
		},
		{
			name: "not PgError",
			err:  errors.New("unknown error"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isUniqueViolationError(tt.err)

			assert.Equal(t, tt.want, got)
		})
	}
}

type URLRepositoryTestSuite struct {
	suite.Suite
	errUnknown error
	columns    []string
	mock       sqlmock.Sqlmock
	repo       *URLRepository
}

func (suite *URLRepositoryTestSuite) SetupSuite() {
	suite.errUnknown = errors.New("unknown error")
	suite.columns = []string{"id", "target_url", "key", "secret_key", "is_active", "clicks", "created_at", "updated_at"}
}

func (suite *URLRepositoryTestSuite) SetupSubTest() {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		suite.T().Fatalf("Failed to create mock database: %v", err)
	}
	suite.T().Cleanup(func() {
		mockDB.Close()
	})

	db := sqlx.NewDb(mockDB, "sqlmock")

	suite.mock = mock
	suite.repo = NewURLRepository(db)
}

func (suite *URLRepositoryTestSuite) TearDownSubTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
}

func (suite *URLRepositoryTestSuite) row(active bool, clicks int64) *sqlmock.Rows {
	return sqlmock.NewRows(suite.columns).
		AddRow(1, "https://example.com", "abCDe", "SeCrEt12", active, clicks, time.Time{}, time.Time{})
}

func (suite *URLRepositoryTestSuite) TestSave() {
	suite.Run("key exists", func() {
		suite.mock.ExpectQuery(`INSERT INTO urls`).
			WithArgs("abCDe", "SeCrEt12", "https://example.com").
			WillReturnError(&pgconn.PgError{Code: uniqueViolationErrCode})

		url, err := suite.repo.Save(context.Background(), "abCDe", "SeCrEt12", "https://example.com")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrKeyExists)
		suite.NotErrorIs(err, entity.ErrStorageUnavailable)
		suite.Nil(url)
	})

	suite.Run("unknown error", func() {
		suite.mock.ExpectQuery(`INSERT INTO urls`).
			WithArgs("abCDe", "SeCrEt12", "https://example.com").
			WillReturnError(suite.errUnknown)

		url, err := suite.repo.Save(context.Background(), "abCDe", "SeCrEt12", "https://example.com")

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.ErrorIs(err, entity.ErrStorageUnavailable)
		suite.Nil(url)
	})

	suite.Run("success", func() {
		suite.mock.ExpectQuery(`INSERT INTO urls`).
			WithArgs("abCDe", "SeCrEt12", "https://example.com").
			WillReturnRows(suite.row(true, 0))

		url, err := suite.repo.Save(context.Background(), "abCDe", "SeCrEt12", "https://example.com")

		suite.NoError(err)
		suite.NotNil(url)
		suite.Equal("abCDe", url.Key)
		suite.Equal("SeCrEt12", url.SecretKey)
		suite.Equal("https://example.com", url.TargetURL)
		suite.Equal(entity.StateActive, url.State)
		suite.Zero(url.Clicks)
	})
}

func (suite *URLRepositoryTestSuite) TestRetrieveByKey() {
	suite.Run("url not found", func() {
		suite.mock.ExpectQuery(`SELECT (.+) FROM urls WHERE key = \$1 AND is_active`).
			WithArgs("abCDe").
			WillReturnError(sql.ErrNoRows)

		url, err := suite.repo.RetrieveByKey(context.Background(), "abCDe")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrURLNotFound)
		suite.Nil(url)
	})

	suite.Run("unknown error", func() {
		suite.mock.ExpectQuery(`SELECT (.+) FROM urls`).
			WithArgs("abCDe").
			WillReturnError(suite.errUnknown)

		url, err := suite.repo.RetrieveByKey(context.Background(), "abCDe")

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.ErrorIs(err, entity.ErrStorageUnavailable)
		suite.Nil(url)
	})

	suite.Run("success", func() {
		suite.mock.ExpectQuery(`SELECT (.+) FROM urls`).
			WithArgs("abCDe").
			WillReturnRows(suite.row(true, 3))

		url, err := suite.repo.RetrieveByKey(context.Background(), "abCDe")

		suite.NoError(err)
		suite.NotNil(url)
		suite.Equal("abCDe", url.Key)
		suite.Equal("https://example.com", url.TargetURL)
		suite.EqualValues(3, url.Clicks)
	})
}

func (suite *URLRepositoryTestSuite) TestRetrieveBySecretKey() {
	suite.Run("url not found", func() {
		suite.mock.ExpectQuery(`SELECT (.+) FROM urls WHERE secret_key = \$1 AND is_active`).
			WithArgs("SeCrEt12").
			WillReturnError(sql.ErrNoRows)

		url, err := suite.repo.RetrieveBySecretKey(context.Background(), "SeCrEt12")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrURLNotFound)
		suite.Nil(url)
	})

	suite.Run("unknown error", func() {
		suite.mock.ExpectQuery(`SELECT (.+) FROM urls`).
			WithArgs("SeCrEt12").
			WillReturnError(suite.errUnknown)

		url, err := suite.repo.RetrieveBySecretKey(context.Background(), "SeCrEt12")

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(url)
	})

	suite.Run("success", func() {
		suite.mock.ExpectQuery(`SELECT (.+) FROM urls`).
			WithArgs("SeCrEt12").
			WillReturnRows(suite.row(true, 1))

		url, err := suite.repo.RetrieveBySecretKey(context.Background(), "SeCrEt12")

		suite.NoError(err)
		suite.NotNil(url)
		suite.Equal("SeCrEt12", url.SecretKey)
		suite.EqualValues(1, url.Clicks)
	})
}

func (suite *URLRepositoryTestSuite) TestIncrementClicks() {
	suite.Run("url not found", func() {
		suite.mock.ExpectQuery(`UPDATE urls SET clicks = clicks \+ 1`).
			WithArgs(int64(1)).
			WillReturnError(sql.ErrNoRows)

		url, err := suite.repo.IncrementClicks(context.Background(), &entity.URL{ID: 1})

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrURLNotFound)
		suite.Nil(url)
	})

	suite.Run("unknown error", func() {
		suite.mock.ExpectQuery(`UPDATE urls`).
			WithArgs(int64(1)).
			WillReturnError(suite.errUnknown)

		url, err := suite.repo.IncrementClicks(context.Background(), &entity.URL{ID: 1})

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.ErrorIs(err, entity.ErrStorageUnavailable)
		suite.Nil(url)
	})

	suite.Run("success", func() {
		suite.mock.ExpectQuery(`UPDATE urls SET clicks = clicks \+ 1`).
			WithArgs(int64(1)).
			WillReturnRows(suite.row(true, 1))

		url, err := suite.repo.IncrementClicks(context.Background(), &entity.URL{ID: 1})

		suite.NoError(err)
		suite.NotNil(url)
		suite.EqualValues(1, url.Clicks)
	})
}

func (suite *URLRepositoryTestSuite) TestDeactivateBySecretKey() {
	suite.Run("url not found", func() {
		suite.mock.ExpectQuery(`UPDATE urls SET is_active = FALSE`).
			WithArgs("SeCrEt12").
			WillReturnError(sql.ErrNoRows)

		url, err := suite.repo.DeactivateBySecretKey(context.Background(), "SeCrEt12")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrURLNotFound)
		suite.Nil(url)
	})

	suite.Run("unknown error", func() {
		suite.mock.ExpectQuery(`UPDATE urls`).
			WithArgs("SeCrEt12").
			WillReturnError(suite.errUnknown)

		url, err := suite.repo.DeactivateBySecretKey(context.Background(), "SeCrEt12")

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(url)
	})

	suite.Run("success", func() {
		suite.mock.ExpectQuery(`UPDATE urls SET is_active = FALSE`).
			WithArgs("SeCrEt12").
			WillReturnRows(suite.row(false, 1))

		url, err := suite.repo.DeactivateBySecretKey(context.Background(), "SeCrEt12")

		suite.NoError(err)
		suite.NotNil(url)
		suite.Equal("https://example.com", url.TargetURL)
		suite.Equal(entity.StateDeactivated, url.State)
	})
}

func TestURLRepository(t *testing.T) {
	suite.Run(t, new(URLRepositoryTestSuite))
}
