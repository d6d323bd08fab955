package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FetchFunc retrieves a blob from object storage by key.
type FetchFunc func(ctx context.Context, key string) ([]byte, error)

type recipientsFile struct {
	Emails []string `json:"emails"`
}

// LoadRecipients reads the recipient list from a local JSON file, falling
// back to the report bucket when the file is not present on disk.
func LoadRecipients(ctx context.Context, path string, fetch FetchFunc) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) || fetch == nil {
			return nil, fmt.Errorf("reading recipients file %s: %w", path, err)
		}
		data, err = fetch(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("fetching recipients %s: %w", path, err)
		}
	}

	var parsed recipientsFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing recipients %s: %w", path, err)
	}
	if len(parsed.Emails) == 0 {
		return nil, fmt.Errorf("recipients file %s has no emails", path)
	}
	return parsed.Emails, nil
}
