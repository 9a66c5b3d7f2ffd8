package credentials

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// BunStore is the persistent CredentialStore, backed by any database Bun can
// speak to. The insert relies on the unique username constraint, so the
// existence check and the insert are one atomic statement.
type BunStore struct {
	db *bun.DB
}

var _ CredentialStore = (*BunStore)(nil)

// NewBunStore creates a BunStore on top of an existing bun.DB
func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{db: db}
}

// OpenDB opens a sqlite backed bun.DB for the given DSN
func OpenDB(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to open database")
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// Init creates the users table if it does not exist yet
func (s *BunStore) Init(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().
		Model((*User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to create users table")
	}
	return nil
}

func (s *BunStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	user := new(User)
	err := s.db.NewSelect().
		Model(user).
		Where("username = ?", username).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user")
	}

	return user, nil
}

func (s *BunStore) CreateIfAbsent(ctx context.Context, user *User) (*User, error) {
	if user == nil || user.Username == "" {
		return nil, ErrNoEmptyString
	}

	record := *user
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	res, err := s.db.NewInsert().
		Model(&record).
		On("CONFLICT (username) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to insert user")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to read insert result")
	}

	if rows == 0 {
		return nil, ErrUserAlreadyExists
	}

	return &record, nil
}
