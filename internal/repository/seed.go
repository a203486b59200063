package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/programari/backend/pkg/contract"
)

func strPtr(s string) *string { return &s }

// DefaultServices is the catalogue installed by Seed.
var DefaultServices = []contract.InsertService{
	{
		Title:            "Ședință consiliere personală",
		Slug:             "consiliere-personala",
		Description:      "Ședință standard de consiliere pentru dezvoltare personală, creșterea stimei de sine și rezolvarea conflictelor interioare. Durată: 50 minute.",
		ShortDescription: strPtr("Consiliere individuală pentru dezvoltare personală."),
		Price:            150,
		Duration:         "50 min",
		ImageURL:         strPtr("https://alinamates.ro/wp-content/uploads/2023/10/hai-sa-ne-cunoastem-1.png"),
	},
	{
		Title:            "Situație de criză",
		Slug:             "situatie-de-criza",
		Description:      "Pachet special pentru situații de criză majoră. Include o ședință extinsă inițială și 4 ședințe standard de urmărire.",
		ShortDescription: strPtr("Pachet intensiv pentru situații dificile."),
		Price:            800,
		Duration:         "1 x 90 min + 4 x 50 min",
		ImageURL:         strPtr("https://alinamates.ro/wp-content/uploads/2023/10/alina-mates_situatie-criza.png"),
	},
	{
		Title:            "Ședință consiliere de cuplu",
		Slug:             "consiliere-cuplu",
		Description:      "Consiliere dedicată cuplurilor care doresc să își îmbunătățească comunicarea și să rezolve problemele din relație.",
		ShortDescription: strPtr("Suport pentru armonie în relația de cuplu."),
		Price:            200,
		Duration:         "60-70 min",
		ImageURL:         strPtr("https://alinamates.ro/wp-content/uploads/2023/10/vreau-sa-ma-cunosc-2.png"),
	},
}

// Seed installs DefaultServices when the catalogue is empty. It returns the
// number of services created.
func Seed(ctx context.Context, store Storage) (int, error) {
	existing, err := store.ListServices(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed: list services: %w", err)
	}
	if len(existing) > 0 {
		slog.Debug("seed skipped, services already present", "count", len(existing))
		return 0, nil
	}

	for _, in := range DefaultServices {
		if _, err := contract.InsertServiceSchema.ParseValue(in); err != nil {
			return 0, fmt.Errorf("seed: service %q: %w", in.Slug, err)
		}
		if _, err := store.CreateService(ctx, in); err != nil {
			return 0, fmt.Errorf("seed: create %q: %w", in.Slug, err)
		}
	}
	slog.Info("database seeded with services", "count", len(DefaultServices))
	return len(DefaultServices), nil
}
