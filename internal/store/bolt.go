package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/bizwise/maya/internal/business"
	"github.com/bizwise/maya/internal/whatsapp"
)

var (
	businessesBucket = []byte("businesses")
	phonesBucket     = []byte("phones")
	apiKeysBucket    = []byte("api_keys")
)

// ErrNotFound is returned for lookups that match no record. The relay path
// treats it as a routine miss, never as a pipeline abort.
var ErrNotFound = errors.New("store: not found")

// Store is the read API the relay uses plus the write paths the dashboard
// and seed loader go through. Reads are safe under arbitrary concurrency.
type Store interface {
	FindByBotID(id string) (*business.Business, error)
	FindByPhone(number string) (*business.Business, error)
	ListAll() ([]business.Business, error)
	SaveBusiness(b business.Business) error
	GetAPIKey(botID string) (string, error)
	SaveAPIKey(botID, key string) error
	Close() error
}

type BoltStore struct {
	db *bolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{businessesBucket, phonesBucket, apiKeysBucket} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) SaveBusiness(b business.Business) error {
	if b.BotID == "" {
		return errors.New("store: business bot_id is required")
	}
	b.Phone = whatsapp.NormalizePhone(b.Phone)

	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(b)
		if err != nil {
			return err
		}
		if err := tx.Bucket(businessesBucket).Put([]byte(b.BotID), data); err != nil {
			return err
		}
		if b.Phone != "" {
			return tx.Bucket(phonesBucket).Put([]byte(b.Phone), []byte(b.BotID))
		}
		return nil
	})
}

func (s *BoltStore) FindByBotID(id string) (*business.Business, error) {
	var b business.Business
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(businessesBucket).Get([]byte(id))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &b)
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BoltStore) FindByPhone(number string) (*business.Business, error) {
	number = whatsapp.NormalizePhone(number)

	var botID string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(phonesBucket).Get([]byte(number))
		if v == nil {
			return ErrNotFound
		}
		botID = string(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.FindByBotID(botID)
}

func (s *BoltStore) ListAll() ([]business.Business, error) {
	var all []business.Business
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(businessesBucket).ForEach(func(_, v []byte) error {
			var b business.Business
			if err := json.Unmarshal(v, &b); err != nil {
				return err
			}
			all = append(all, b)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

func (s *BoltStore) GetAPIKey(botID string) (string, error) {
	var key string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(apiKeysBucket).Get([]byte(botID))
		if v == nil {
			return ErrNotFound
		}
		key = string(v)
		return nil
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *BoltStore) SaveAPIKey(botID, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(apiKeysBucket).Put([]byte(botID), []byte(key))
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
