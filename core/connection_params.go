package core

import "encoding/json"

type ConnectionParams struct {
	ID       ConnectionID
	Name     string
	Type     string
	Host     string
	Port     string
	Database string
	User     string
	Password string
	// Options are driver specific connection options (e.g. sslmode)
	Options map[string]string
}

// Expand returns a copy of the original parameters with expanded fields
func (p *ConnectionParams) Expand() *ConnectionParams {
	var opts map[string]string
	if p.Options != nil {
		opts = make(map[string]string, len(p.Options))
		for k, v := range p.Options {
			opts[k] = expandOrDefault(v)
		}
	}

	return &ConnectionParams{
		ID:       ConnectionID(expandOrDefault(string(p.ID))),
		Name:     expandOrDefault(p.Name),
		Type:     expandOrDefault(p.Type),
		Host:     expandOrDefault(p.Host),
		Port:     expandOrDefault(p.Port),
		Database: expandOrDefault(p.Database),
		User:     expandOrDefault(p.User),
		Password: expandOrDefault(p.Password),
		Options:  opts,
	}
}

// Option returns a driver option or the fallback value.
func (p *ConnectionParams) Option(key, fallback string) string {
	if v, ok := p.Options[key]; ok && v != "" {
		return v
	}
	return fallback
}

// MarshalJSON never exposes the password.
func (cp *ConnectionParams) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Type     string `json:"type"`
		Host     string `json:"host"`
		Port     string `json:"port"`
		Database string `json:"database"`
		User     string `json:"user"`
	}{
		ID:       string(cp.ID),
		Name:     cp.Name,
		Type:     cp.Type,
		Host:     cp.Host,
		Port:     cp.Port,
		Database: cp.Database,
		User:     cp.User,
	})
}
