package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/campus-community/gateway/internal/models"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type sessionRow struct {
	SID       string         `gorm:"primaryKey;size:64"`
	Token     string         `gorm:"not null"`
	User      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index"`
}

func (sessionRow) TableName() string { return "sessions" }

// hashSID keys rows by sha256 of the session id, so a leaked table dump
// exposes no usable ids. The bearer token itself stays recoverable: the
// gateway has to replay it to the backend on every proxied call.
func hashSID(sid string) string {
	h := sha256.Sum256([]byte(sid))
	return hex.EncodeToString(h[:])
}

func newSessionRow(rec *Record) (sessionRow, error) {
	row := sessionRow{
		SID:       hashSID(rec.SID),
		Token:     rec.Token,
		ExpiresAt: rec.ExpiresAt,
	}
	if rec.User != nil {
		b, err := json.Marshal(rec.User)
		if err != nil {
			return sessionRow{}, err
		}
		row.User = datatypes.JSON(b)
	}
	return row, nil
}

// GormStore keeps session records in postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(databaseURL string) (*GormStore, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	db, err := gorm.Open(postgres.Open(databaseURL), gormCfg)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&sessionRow{}); err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Pooling sensible defaults for small VPS (tune later)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return &GormStore{db: db}, nil
}

func (g *GormStore) Save(ctx context.Context, rec *Record) error {
	row, err := newSessionRow(rec)
	if err != nil {
		return err
	}
	return g.db.WithContext(ctx).Save(&row).Error
}

func (g *GormStore) Get(ctx context.Context, sid string) (*Record, error) {
	var row sessionRow
	err := g.db.WithContext(ctx).
		Where("sid = ? AND expires_at > now()", hashSID(sid)).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec := &Record{SID: sid, Token: row.Token, ExpiresAt: row.ExpiresAt}
	if len(row.User) > 0 {
		var u models.User
		if err := json.Unmarshal(row.User, &u); err == nil {
			rec.User = &u
		}
	}
	return rec, nil
}

func (g *GormStore) Delete(ctx context.Context, sid string) error {
	return g.db.WithContext(ctx).Where("sid = ?", hashSID(sid)).Delete(&sessionRow{}).Error
}

// DeleteExpired clears out rows past their expiry; called periodically
// from main.
func (g *GormStore) DeleteExpired(ctx context.Context) error {
	return g.db.WithContext(ctx).Where("expires_at < now()").Delete(&sessionRow{}).Error
}

func (g *GormStore) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
