package models

// ModRecord is one entry of the live mod inventory, as supplied by the
// deployment-directory scan. The ID is the installed filename, which is
// stable across machines for identical mod files.
type ModRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Version  string `json:"version"`
	Type     string `json:"type"`
	Format   string `json:"format"`
	Location string `json:"location"`
	Path     string `json:"path"`
}
