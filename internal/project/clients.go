package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/dkurek/ofertownik/internal/model"
)

// DefaultClientsPath returns the default path of the saved-clients file.
func DefaultClientsPath() string {
	return filepath.Join(DefaultConfigDir(), "clients.json")
}

// SaveClients writes the client registry to a JSON file.
func SaveClients(path string, clients []model.Client) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(clients, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadClients reads the client registry from a JSON file.
// A missing file yields an empty registry.
func LoadClients(path string) ([]model.Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Client{}, nil
		}
		return nil, err
	}
	var clients []model.Client
	if err := json.Unmarshal(data, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// AddClient appends a client to the registry unless an entry with the
// same name and NIP already exists, in which case it is replaced.
func AddClient(clients []model.Client, c model.Client) []model.Client {
	for i, existing := range clients {
		if existing.Name == c.Name && existing.NIP == c.NIP {
			clients[i] = c
			return clients
		}
	}
	return append(clients, c)
}
