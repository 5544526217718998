package report

import (
	"github.com/meur/caseforge/internal/models"
	"github.com/meur/caseforge/internal/storage"
)

// Publisher renders reports and writes them to a store
type Publisher struct {
	Renderer
	store *storage.Store
}

// NewPublisher creates a Publisher writing into store
func NewPublisher(store *storage.Store, currency string) *Publisher {
	return &Publisher{
		Renderer: Renderer{Currency: currency},
		store:    store,
	}
}

// Publish renders snap and sum, writes the text under name and returns the
// artifact path together with the text itself.
func (p *Publisher) Publish(name string, snap *models.CaseSnapshot, sum *models.Summary) (string, string, error) {
	text := p.Render(snap, sum)
	path, err := p.store.Write(name, text)
	if err != nil {
		return "", "", err
	}
	return path, text, nil
}
