package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bizwise/maya/internal/business"
)

// LoadSeed imports a JSON array of business records into the store. It makes
// the directory usable without the dashboard, e.g. in development and tests.
func LoadSeed(s Store, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading seed file: %w", err)
	}

	var businesses []business.Business
	if err := json.Unmarshal(data, &businesses); err != nil {
		return 0, fmt.Errorf("parsing seed file: %w", err)
	}

	for i, b := range businesses {
		if err := s.SaveBusiness(b); err != nil {
			return i, fmt.Errorf("seeding business %q: %w", b.BotID, err)
		}
	}
	return len(businesses), nil
}
