package repository

import "context"

// SeedDefaults creates the demo stand locations used by development
// environments.
func (r PlaceRepository) SeedDefaults(ctx context.Context) error {
	places := []string{
		"Rynek Główny",
		"Hala Targowa",
		"Plac Nowy",
		"Targ Śniadaniowy",
	}

	for _, name := range places {
		_, err := r.DB.Pool.Exec(ctx, `
			INSERT INTO places (name, created_at, updated_at)
			VALUES ($1, now(), now())
			ON CONFLICT (name) DO NOTHING
		`, name)
		if err != nil {
			return err
		}
	}
	return nil
}
