package session

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/talentauth/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/talentauth/internal/common"
	"github.com/dmitrijs2005/talentauth/internal/dbx"
)

// savedAtKey records when the current token was stored.
const savedAtKey = "token_saved_at"

// TokenStore persists the session token across runs. Load returns "" when
// no token is stored.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// MetadataTokenStore keeps the token in the SQLite metadata table under
// common.TokenMetadataKey, with the time it was saved next to it. Both keys
// are written and removed in one transaction.
type MetadataTokenStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewMetadataTokenStore(db *sql.DB) *MetadataTokenStore {
	return &MetadataTokenStore{db: db, now: time.Now}
}

func (s *MetadataTokenStore) Load(ctx context.Context) (string, error) {
	token, _, err := metadata.NewSQLiteRepository(s.db).Get(ctx, common.TokenMetadataKey)
	return token, err
}

func (s *MetadataTokenStore) Save(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokenMetadataKey, token); err != nil {
			return err
		}
		return repo.Set(ctx, savedAtKey, s.now().UTC().Format(time.RFC3339))
	})
}

func (s *MetadataTokenStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, common.TokenMetadataKey); err != nil {
			return err
		}
		return repo.Delete(ctx, savedAtKey)
	})
}

// SavedAt reports when the stored token was saved.
func (s *MetadataTokenStore) SavedAt(ctx context.Context) (time.Time, bool, error) {
	v, ok, err := metadata.NewSQLiteRepository(s.db).Get(ctx, savedAtKey)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
